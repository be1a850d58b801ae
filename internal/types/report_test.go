package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedReport_IsEmpty(t *testing.T) {
	assert.True(t, ParsedReport{}.IsEmpty())
	assert.False(t, ParsedReport{Niche: "Micro-SaaS"}.IsEmpty())
	assert.False(t, ParsedReport{ActionPlan: "Ship it"}.IsEmpty())
}

func TestUserInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   UserInput
		wantErr bool
	}{
		{name: "valid", input: UserInput{Skills: "Python", Goal: 25}},
		{name: "fractional goal", input: UserInput{Skills: "SQL", Goal: 0.5}},
		{name: "empty skills", input: UserInput{Skills: "", Goal: 25}, wantErr: true},
		{name: "whitespace skills", input: UserInput{Skills: "  \n\t", Goal: 25}, wantErr: true},
		{name: "zero goal", input: UserInput{Skills: "Python", Goal: 0}, wantErr: true},
		{name: "negative goal", input: UserInput{Skills: "Python", Goal: -3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReportRequest_Validate(t *testing.T) {
	valid := ReportRequest{Skills: "Android, SQL", Goal: 25}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, UserInput{Skills: "Android, SQL", Goal: 25}, valid.Input())

	blank := ReportRequest{Skills: "   ", Goal: 25}
	assert.Error(t, blank.Validate())

	zero := ReportRequest{Skills: "Go", Goal: 0}
	assert.Error(t, zero.Validate())
}
