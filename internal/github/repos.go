package github

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

type Repositories struct {
	Items []*Repository
}

type Repository struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	HTMLURL     string   `json:"html_url,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Language    string   `json:"language,omitempty"`
	Stars       int      `json:"stargazers_count,omitempty"`
	Forks       int      `json:"forks_count,omitempty"`
	Fork        bool     `json:"fork,omitempty"`
	Archived    bool     `json:"archived,omitempty"`
}

func (c *Client) listRepos(username string) (*Repositories, error) {
	if username == "" {
		return nil, fmt.Errorf("github username is required")
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos", c.APIURL, username)

	items, err := c.GetItems(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}

	var repos []*Repository
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &repos,
		TagName:  "json",
		// GitHub returns null descriptions and languages; leave them zero.
		ZeroFields: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode repositories: %w", err)
	}

	return &Repositories{Items: repos}, nil
}

func (r *Repositories) Len() int {
	return len(r.Items)
}

func (r *Repositories) Names() []string {
	names := make([]string, 0, len(r.Items))
	for _, repo := range r.Items {
		names = append(names, repo.Name)
	}
	return names
}

func (r *Repositories) FindByName(name string) *Repository {
	for _, repo := range r.Items {
		if repo.Name == name {
			return repo
		}
	}
	return nil
}

// TopByStars returns up to n repositories ordered by star count descending.
// Ties keep the original listing order.
func (r *Repositories) TopByStars(n int) []*Repository {
	top := append([]*Repository(nil), r.Items...)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Stars > top[j].Stars
	})

	if n > len(top) {
		n = len(top)
	}
	return top[:n]
}
