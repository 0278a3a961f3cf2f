// Package github lists a user's public repositories via the GitHub REST API.
package github

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.github.com"
	userAgent = "naveenaduri/resume-agent"
	// Max value GitHub allows per page.
	perPage = 100
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a client. The token is optional: without one requests are
// anonymous and subject to the lower unauthenticated rate limit.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// Repos returns all public repositories of the given user.
func (c *Client) Repos(username string) (*Repositories, error) {
	return c.listRepos(username)
}
