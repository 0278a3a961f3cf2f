package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/naveenaduri/resume-agent/internal/ai"
	"github.com/naveenaduri/resume-agent/internal/chat"
	"github.com/naveenaduri/resume-agent/internal/github"
	"github.com/naveenaduri/resume-agent/internal/knowledge"
	"github.com/naveenaduri/resume-agent/internal/resume"
	"github.com/naveenaduri/resume-agent/internal/skills"
	"go.uber.org/zap"
)

type echoEngine struct{}

func (echoEngine) Predict(_ context.Context, _ []ai.Turn, input string) (string, error) {
	return "reply to: " + input, nil
}

const testResumeText = "Professional Experience\nSenior Engineer at Acme (2019-2022)\nBuilt a billing pipeline in Python."

func testServer() *Server {
	graph := skills.DefaultGraph()
	repos := []*github.Repository{
		{Name: "app", Description: "a tool", Language: "Python", Stars: 2, Topics: []string{"cli"}},
	}
	base := knowledge.Build(testResumeText, repos, graph)
	enricher := knowledge.NewEnricher(base, zap.NewNop())
	session := chat.NewSession(echoEngine{}, enricher, zap.NewNop())
	extractor := skills.NewExtractor(nil)

	return New(Config{ResumeText: testResumeText, ResumeFile: "/tmp/resume.pdf"}, Deps{
		Session:   session,
		Base:      base,
		Segmenter: resume.NewSegmenter(extractor),
		Extractor: extractor,
		Logger:    zap.NewNop(),
	})
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleChat(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{"message": "Do you know Python?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.Contains(resp.Response, "Do you know Python?") {
		t.Fatalf("unexpected response: %q", resp.Response)
	}
}

func TestHandleChatEmptyMessage(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodPost, "/api/chat", `{"message": ""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleExtractSkills(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodPost, "/api/extract-skills", `{"text": "Python and Docker"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp extractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != len(resp.Skills) || resp.Count == 0 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestHandleExtractSkillsEmptyText(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodPost, "/api/extract-skills", `{"text": ""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSkillsPartitions(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodGet, "/api/skills", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp struct {
		Explicit []*knowledge.SkillEntry `json:"explicit_skills"`
		Inferred []*knowledge.SkillEntry `json:"inferred_skills"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Explicit) == 0 || len(resp.Inferred) == 0 {
		t.Fatalf("expected both partitions populated: %+v", resp)
	}
	for _, entry := range resp.Inferred {
		if entry.InferredFrom == "" {
			t.Fatalf("inferred entry without origin: %+v", entry)
		}
	}
}

func TestHandleExperience(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodGet, "/api/experience", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp struct {
		Professional []resume.ExperienceRecord `json:"professional_experience"`
		Other        []resume.ExperienceRecord `json:"other_experience"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Professional) != 1 {
		t.Fatalf("expected one professional record, got %+v", resp)
	}
	if resp.Professional[0].Position != "Senior Engineer" {
		t.Fatalf("unexpected record: %+v", resp.Professional[0])
	}
}

func TestHandleResumeInfo(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodGet, "/api/resume-info", "")

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["file_name"] != "resume.pdf" {
		t.Fatalf("unexpected file name: %q", resp["file_name"])
	}
	if !strings.Contains(resp["raw_text"], "Senior Engineer") {
		t.Fatalf("unexpected raw text: %q", resp["raw_text"])
	}
}

func TestHandleProjects(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodGet, "/api/projects", "")

	var resp struct {
		Projects []*knowledge.ProjectEntry `json:"projects"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Projects) != 1 || resp.Projects[0].Name != "app" {
		t.Fatalf("unexpected projects: %+v", resp.Projects)
	}
}

func TestHandleSendEmailValidation(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodPost, "/api/send-email", `{"email": "", "message": "hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/send-email", `{"email": "a@b.c", "message": "hi"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a mailer, got %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer()

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
