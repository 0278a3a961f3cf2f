package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/naveenaduri/resume-agent/internal/chat"
	"go.uber.org/zap"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

type emailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := s.deps.Session.Respond(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			s.writeError(w, http.StatusBadRequest, "no message provided")
			return
		}
		s.logger.Error("chat failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "no text provided")
		return
	}

	found := s.deps.Extractor.Extract(req.Text)

	s.writeJSON(w, http.StatusOK, extractResponse{Skills: found, Count: len(found)})
}

func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"explicit_skills": s.deps.Base.ExplicitSkills(),
		"inferred_skills": s.deps.Base.InferredSkills(),
	})
}

func (s *Server) handleExperience(w http.ResponseWriter, _ *http.Request) {
	professional, other := s.deps.Segmenter.Segment(s.cfg.ResumeText)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"professional_experience": professional,
		"other_experience":        other,
	})
}

func (s *Server) handleResumeInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"raw_text":  s.cfg.ResumeText,
		"file_name": filepath.Base(s.cfg.ResumeFile),
	})
}

func (s *Server) handleProjects(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"projects": s.deps.Base.Projects(),
	})
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "email and message are required")
		return
	}
	if s.deps.Mailer == nil {
		s.writeError(w, http.StatusServiceUnavailable, "mail is not configured")
		return
	}

	if err := s.deps.Mailer.Send(req.Email, req.Message); err != nil {
		s.logger.Error("sending contact mail", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to send email")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "email sent successfully"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
