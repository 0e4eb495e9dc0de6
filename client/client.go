package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goware/urlx"
	log "github.com/sirupsen/logrus"

	"github.com/jointwt/ghuser"
	"github.com/jointwt/ghuser/types"
)

var (
	// DefaultUserAgent ...
	DefaultUserAgent = fmt.Sprintf("ghuser/%s", ghuser.FullVersion())
)

// Client looks up users, their followers and their repositories on the
// GitHub REST API. A Client is safe for concurrent use.
type Client struct {
	BaseURL   *url.URL
	Config    *Config
	UserAgent string

	httpClient *http.Client
}

// NewClient ...
func NewClient(options ...Option) (*Client, error) {
	config := NewConfig()

	for _, opt := range options {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	u, err := url.Parse(config.URI)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if config.HTTPClient != nil {
		c := *config.HTTPClient
		httpClient = &c
	}
	httpClient.Timeout = config.Timeout

	cli := &Client{
		BaseURL:    u,
		Config:     config,
		UserAgent:  DefaultUserAgent,
		httpClient: httpClient,
	}

	return cli, nil
}

// NormalizeURI cleans up an API base URI so relative paths resolve below it
func NormalizeURI(uri string) (string, error) {
	u, err := urlx.Parse(uri)
	if err != nil {
		return "", err
	}
	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}
	u.User = nil
	u.Path = strings.TrimSuffix(u.Path, "/")
	norm, err := urlx.Normalize(u)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(norm, "/") + "/", nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	path = strings.TrimPrefix(path, "/")
	rel, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	u := c.BaseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.UserAgent)
	if c.Config.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Config.Token))
	}
	return req, nil
}

func (c *Client) do(req *http.Request, v interface{}) (int, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return res.StatusCode, ErrUnauthorized
	case http.StatusNotFound:
		return res.StatusCode, ErrNotFound
	}
	if res.StatusCode >= http.StatusInternalServerError {
		return res.StatusCode, ErrServerError
	}
	if res.StatusCode != http.StatusOK {
		return res.StatusCode, fmt.Errorf("error: unexpected status %s", res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return res.StatusCode, fmt.Errorf("error decoding response: %w", err)
	}

	return res.StatusCode, nil
}

func (c *Client) lookup(ctx context.Context, op, login, path string, v interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return &LookupError{Op: op, Login: login, Err: err}
	}

	log.WithField("op", op).Debugf("GET %s", req.URL)

	status, err := c.do(req, v)
	if err != nil {
		return &LookupError{Op: op, Login: login, StatusCode: status, Err: err}
	}
	return nil
}

// Profile ...
func (c *Client) Profile(ctx context.Context, login string) (res types.Profile, err error) {
	err = c.lookup(ctx, "profile", login, fmt.Sprintf("/users/%s", url.PathEscape(login)), &res)
	return
}

// Followers ...
func (c *Client) Followers(ctx context.Context, login string) (res types.Followers, err error) {
	err = c.lookup(ctx, "followers", login, fmt.Sprintf("/users/%s/followers", url.PathEscape(login)), &res)
	return
}

// Repositories ...
func (c *Client) Repositories(ctx context.Context, login string) (res types.Repositories, err error) {
	err = c.lookup(ctx, "repositories", login, fmt.Sprintf("/users/%s/repos", url.PathEscape(login)), &res)
	return
}
