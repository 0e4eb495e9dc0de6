package internal

import (
	"time"

	"github.com/jointwt/ghuser/client"
)

const (
	// DefaultName is the default instance name
	DefaultName = "ghuser"

	// DefaultAPIURI is the default GitHub API endpoint lookups are made against
	DefaultAPIURI = client.DefaultURI

	// DefaultWorkers is the default number of workers in the shared pool
	DefaultWorkers = 16

	// DefaultMaxQueue is the default size of the pool's task queue
	DefaultMaxQueue = 100

	// DefaultFetchTimeout is the default deadline of a single lookup
	DefaultFetchTimeout = client.DefaultTimeout

	// DefaultTaskTTL is how long finished tasks can be looked up
	DefaultTaskTTL = 5 * time.Minute
)

// Option is a function that takes a config struct and modifies it
type Option func(*Config) error

// WithConfigFile loads settings from a YAML file, overriding any options
// applied before it
func WithConfigFile(path string) Option {
	return func(cfg *Config) error {
		if path == "" {
			return ErrConfigPathMissing
		}
		settings, err := LoadSettings(path)
		if err != nil {
			return err
		}
		settings.Apply(cfg)
		cfg.path = path
		return nil
	}
}

// WithName sets the instance's name
func WithName(name string) Option {
	return func(cfg *Config) error {
		cfg.Name = name
		return nil
	}
}

// WithAPIURI sets the GitHub API endpoint to use
func WithAPIURI(uri string) Option {
	return func(cfg *Config) error {
		cfg.APIURI = uri
		return nil
	}
}

// WithAPIToken sets the token used to authenticate lookups
func WithAPIToken(token string) Option {
	return func(cfg *Config) error {
		cfg.APIToken = token
		return nil
	}
}

// WithWorkers sets the number of workers, 0 runs lookups inline without a pool
func WithWorkers(workers int) Option {
	return func(cfg *Config) error {
		cfg.Workers = workers
		return nil
	}
}

// WithMaxQueue sets the size of the task queue
func WithMaxQueue(maxQueue int) Option {
	return func(cfg *Config) error {
		cfg.MaxQueue = maxQueue
		return nil
	}
}

// WithFetchTimeout sets the deadline of a single lookup
func WithFetchTimeout(timeout time.Duration) Option {
	return func(cfg *Config) error {
		cfg.FetchTimeout = timeout
		return nil
	}
}

// WithTaskTTL sets how long finished tasks can be looked up
func WithTaskTTL(ttl time.Duration) Option {
	return func(cfg *Config) error {
		cfg.TaskTTL = ttl
		return nil
	}
}
