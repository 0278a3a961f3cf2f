package github

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	acceptType      = "application/vnd.github+json"
	contentEncoding = "gzip, deflate, br"
)

type Item interface{}

// GetItems makes GET requests to the GitHub API and returns items from all
// pages. GitHub pages list endpoints with per_page/page query parameters; a
// short page means the listing is exhausted.
func (c *Client) GetItems(endpoint string, q url.Values) ([]Item, error) {
	var items []Item

	if q == nil {
		q = url.Values{}
	}
	q.Set("per_page", strconv.Itoa(perPage))

	for page := 1; ; page++ {
		q.Set("page", strconv.Itoa(page))

		req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		req = c.setHeaders(req)
		req.URL.RawQuery = q.Encode()

		resp, err := c.request(req)
		if err != nil {
			return nil, err
		}

		batch, err := c.parseItemResponse(resp)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("got response from github",
			zap.Int("page", page),
			zap.Int("items", len(batch)),
		)

		items = append(items, batch...)

		if len(batch) < perPage {
			return items, nil
		}
	}
}

func (c *Client) parseItemResponse(resp *http.Response) ([]Item, error) {
	body, err := decodedBody(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var items []Item
	if err := json.NewDecoder(body).Decode(&items); err != nil {
		return nil, err
	}

	return items, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", acceptType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return reader, nil
	default:
		return resp.Body, nil
	}
}
