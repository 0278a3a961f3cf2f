package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestReposDecodesListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("missing authorization header")
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Fatalf("unexpected per_page: %q", got)
		}

		payload := []map[string]any{
			{
				"name":             "app",
				"description":      "a cli app",
				"html_url":         "https://github.com/octocat/app",
				"topics":           []string{"cli", "golang"},
				"language":         "Go",
				"stargazers_count": 5,
				"forks_count":      2,
			},
			{
				"name":        "notes",
				"description": nil,
				"language":    nil,
			},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop(), "token")
	client.APIURL = server.URL

	repos, err := client.Repos("octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repos.Len() != 2 {
		t.Fatalf("expected 2 repositories, got %d", repos.Len())
	}

	app := repos.FindByName("app")
	if app == nil {
		t.Fatal("expected to find repository app")
	}
	if app.Language != "Go" || app.Stars != 5 || app.Forks != 2 {
		t.Fatalf("unexpected repository: %+v", app)
	}
	if len(app.Topics) != 2 || app.Topics[0] != "cli" {
		t.Fatalf("unexpected topics: %v", app.Topics)
	}

	notes := repos.FindByName("notes")
	if notes == nil {
		t.Fatal("expected to find repository notes")
	}
	if notes.Description != "" || notes.Language != "" {
		t.Fatalf("null fields must decode to empty strings: %+v", notes)
	}
}

func TestReposAnonymousRequestHasNoAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("unexpected authorization header: %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop(), "")
	client.APIURL = server.URL

	repos, err := client.Repos("octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repos.Len() != 0 {
		t.Fatalf("expected empty listing, got %d", repos.Len())
	}
}

func TestReposBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(context.Background(), zap.NewNop(), "")
	client.APIURL = server.URL

	if _, err := client.Repos("ghost"); err == nil {
		t.Fatal("expected error on bad status")
	}
}

func TestTopByStars(t *testing.T) {
	repos := &Repositories{Items: []*Repository{
		{Name: "a", Stars: 1},
		{Name: "b", Stars: 7},
		{Name: "c", Stars: 7},
		{Name: "d", Stars: 3},
	}}

	top := repos.TopByStars(3)

	if len(top) != 3 {
		t.Fatalf("expected 3 repositories, got %d", len(top))
	}
	if top[0].Name != "b" || top[1].Name != "c" || top[2].Name != "d" {
		t.Fatalf("unexpected order: %v", []string{top[0].Name, top[1].Name, top[2].Name})
	}
}

func TestTopByStarsShortList(t *testing.T) {
	repos := &Repositories{Items: []*Repository{{Name: "only"}}}

	top := repos.TopByStars(3)
	if len(top) != 1 || top[0].Name != "only" {
		t.Fatalf("unexpected result: %v", top)
	}
}
