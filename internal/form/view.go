package form

// Labels and placeholders shown by the page.
const (
	SkillsLabel       = "Your Technical Skills (e.g., Android (Kotlin), GenAI, SQL)"
	SkillsPlaceholder = "List your skills, separated by commas (e.g., Python, SQL, React, AWS, Machine Learning)"
	GoalLabel         = "Passive Income Goal (in ₹'000 / month)"
	GoalPlaceholder   = "e.g., 25 for ₹25,000"

	SubmitLabel        = "Get My Personalized Roadmap"
	SubmitLoadingLabel = "Generating Report..."
)

// View is everything a renderer needs to draw the form.
type View struct {
	Skills            string
	Goal              string
	Errors            Errors
	Error             string // submission error from the parent, shown verbatim
	Disabled          bool
	SubmitLabel       string
	SkillsLabel       string
	SkillsPlaceholder string
	GoalLabel         string
	GoalPlaceholder   string
}

// View reflects the parent's loading flag and error alongside the form's own values.
func (f *Form) View(isLoading bool, err string) View {
	label := SubmitLabel
	if isLoading {
		label = SubmitLoadingLabel
	}
	return View{
		Skills:            f.Skills,
		Goal:              f.Goal,
		Errors:            f.Errors,
		Error:             err,
		Disabled:          isLoading,
		SubmitLabel:       label,
		SkillsLabel:       SkillsLabel,
		SkillsPlaceholder: SkillsPlaceholder,
		GoalLabel:         GoalLabel,
		GoalPlaceholder:   GoalPlaceholder,
	}
}
