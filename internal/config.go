package internal

import (
	"errors"
	"io/ioutil"
	"os"
	"time"

	"github.com/gabstv/merger"
	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"
)

var (
	ErrConfigPathMissing = errors.New("error: config file missing")
)

// Settings contains the subset of the configuration that can be persisted
// to and loaded from a YAML file
type Settings struct {
	Name     string `yaml:"name"`
	APIURI   string `yaml:"api_uri"`
	Workers  int    `yaml:"workers"`
	MaxQueue int    `yaml:"max_queue"`
}

// Config contains the server configuration parameters
type Config struct {
	Name     string
	APIURI   string
	APIToken string
	Workers  int
	MaxQueue int

	FetchTimeout time.Duration
	TaskTTL      time.Duration

	path string
}

func NewConfig() *Config {
	return &Config{
		Name:         DefaultName,
		APIURI:       DefaultAPIURI,
		Workers:      DefaultWorkers,
		MaxQueue:     DefaultMaxQueue,
		FetchTimeout: DefaultFetchTimeout,
		TaskTTL:      DefaultTaskTTL,
	}
}

// LoadConfig builds a configuration from the defaults and the given options
func LoadConfig(options ...Option) (*Config, error) {
	config := NewConfig()

	for _, opt := range options {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// ConfigFile returns the path of the settings file the configuration was
// loaded from, if any
func (c *Config) ConfigFile() string {
	return c.path
}

// Settings returns a `Settings` struct containing the settings that can
// then be persisted to disk to override some configuration options.
func (c *Config) Settings() *Settings {
	settings := &Settings{}

	if err := merger.MergeOverwrite(settings, c); err != nil {
		log.WithError(err).Warn("error creating settings")
	}

	return settings
}

// Apply overrides configuration options with every non-empty setting
func (s *Settings) Apply(c *Config) {
	if s.Name != "" {
		c.Name = s.Name
	}
	if s.APIURI != "" {
		c.APIURI = s.APIURI
	}
	if s.Workers > 0 {
		c.Workers = s.Workers
	}
	if s.MaxQueue > 0 {
		c.MaxQueue = s.MaxQueue
	}
}

// LoadSettings loads settings from the given path
func LoadSettings(path string) (*Settings, error) {
	var settings Settings

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Save saves the settings to the given path
func (s *Settings) Save(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := yaml.MarshalWithOptions(s, yaml.Indent(4))
	if err != nil {
		return err
	}

	if _, err = f.Write(data); err != nil {
		return err
	}

	return f.Sync()
}
