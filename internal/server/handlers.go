package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/income-strategist/internal/app"
	"github.com/jonathan/income-strategist/internal/display"
	"github.com/jonathan/income-strategist/internal/form"
	"github.com/jonathan/income-strategist/internal/types"
)

// SessionCookie names the cookie that carries the session id.
const SessionCookie = "strategist_session"

// session returns the caller's controller, issuing a session cookie when needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *app.Controller {
	var current string
	if c, err := r.Cookie(SessionCookie); err == nil {
		current = c.Value
	}

	id, ctrl := s.sessions.Get(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return ctrl
}

// handlePage renders the form and the session's current report.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	s.renderPage(w, http.StatusOK, form.New(), ctrl.State())
}

// handleSubmit validates the posted form and, when valid, runs a report cycle before
// rendering the result.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form body: "+err.Error())
		return
	}

	f := form.New()
	submitted := f.Submit(r.PostFormValue("skills"), r.PostFormValue("goal"), func(input types.UserInput) {
		_ = ctrl.Submit(r.Context(), input) // outcome is read back from State
	})
	if !submitted {
		s.renderPage(w, http.StatusUnprocessableEntity, f, ctrl.State())
		return
	}
	f.Complete()

	s.renderPage(w, http.StatusOK, f, ctrl.State())
}

// handleReport generates a report for a JSON request and returns it with its parsed sections.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)

	req, ok := s.decodeReportRequest(w, r)
	if !ok {
		return
	}

	if err := ctrl.Submit(r.Context(), req.Input()); err != nil {
		state := ctrl.State()
		s.jsonResponse(w, HTTPStatus(err), types.ReportResponse{Error: state.Error})
		return
	}
	s.jsonResponse(w, http.StatusOK, reportResponse(ctrl.State()))
}

// handleReportStream runs a report cycle and streams every state change as it happens.
func (s *Server) handleReportStream(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)

	req, ok := s.decodeReportRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	events := make(chan app.State, 8)
	unsubscribe := ctrl.Subscribe(func(state app.State) {
		select {
		case events <- state:
		case <-ctx.Done():
		}
	})
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Submit(ctx, req.Input())
	}()

	for {
		select {
		case state := <-events:
			if err := sse.WriteEvent("state", state); err != nil {
				s.log.Warn("stream write failed", "error", err)
				return
			}
		case <-done:
			// Submit sends its last update before returning; flush what is queued.
			for {
				select {
				case state := <-events:
					sse.WriteEvent("state", state) //nolint:errcheck
				default:
					sse.WriteComplete(reportResponse(ctrl.State()))
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleState returns the session's current state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	ctrl := s.session(w, r)
	s.jsonResponse(w, http.StatusOK, reportResponse(ctrl.State()))
}

func (s *Server) decodeReportRequest(w http.ResponseWriter, r *http.Request) (*types.ReportRequest, bool) {
	var req types.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := req.Validate(); err != nil {
		verr := requestError(err)
		s.errorResponse(w, HTTPStatus(verr), verr.Message)
		return nil, false
	}
	return &req, true
}

// reportResponse combines a state snapshot with the parsed view of its report.
func reportResponse(state app.State) types.ReportResponse {
	resp := display.Response(state.Report)
	resp.Error = state.Error
	resp.IsLoading = state.IsLoading
	return resp
}
