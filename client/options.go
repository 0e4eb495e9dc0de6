package client

import (
	"net/http"
	"os"
	"time"
)

const (
	// DefaultURI is the default base URI to use for the GitHub API endpoint
	DefaultURI = "https://api.github.com/"

	// DefaultTimeout is the default deadline for a single lookup
	DefaultTimeout = 15 * time.Second
)

// NewConfig ...
func NewConfig() *Config {
	return &Config{
		URI:     DefaultURI,
		Token:   os.Getenv("GITHUB_TOKEN"),
		Timeout: DefaultTimeout,
	}
}

// Config ...
type Config struct {
	URI     string
	Token   string
	Timeout time.Duration

	HTTPClient *http.Client
}

// Option is a function that takes a config struct and modifies it
type Option func(*Config) error

// WithURI sets the base URI to used for the GitHub API endpoint
func WithURI(uri string) Option {
	return func(cfg *Config) error {
		norm, err := NormalizeURI(uri)
		if err != nil {
			return err
		}
		cfg.URI = norm
		return nil
	}
}

// WithToken sets the API token used to authenticate to GitHub endpoints
func WithToken(token string) Option {
	return func(cfg *Config) error {
		cfg.Token = token
		return nil
	}
}

// WithTimeout sets the deadline applied to every lookup
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) error {
		cfg.Timeout = timeout
		return nil
	}
}

// WithHTTPClient sets the underlying http.Client, its Timeout is overridden
// by the configured timeout
func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *Config) error {
		cfg.HTTPClient = httpClient
		return nil
	}
}
