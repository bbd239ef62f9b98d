package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsnanigans/excise/pkg/excise"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "excise.yaml"

// Config is the worklist and the text the engine matches and inserts.
type Config struct {
	// Root every target path is resolved against.
	Root string `yaml:"root"`

	// Marker comment expected just above each declaration.
	Marker string `yaml:"marker"`

	// Keyword that precedes the declaration name, e.g. "class".
	Keyword string `yaml:"keyword"`

	// Template for the replacement block; {name} is the declaration name.
	Template string `yaml:"template"`

	// Targets in processing order.
	Targets []Target `yaml:"targets"`
}

// Target is one worklist entry.
type Target struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
	Hint int    `yaml:"hint"` // 1-based line near the declaration
}

// DefaultConfig returns the stock worklist: the view models being moved out
// of the tribe views.
func DefaultConfig() *Config {
	return &Config{
		Root:     ".",
		Marker:   excise.DefaultMarker,
		Keyword:  excise.DefaultKeyword,
		Template: excise.DefaultTemplate,
		Targets: []Target{
			{Path: "ios/HelpEmApp/Views/Tribe/TribeDetailView.swift", Name: "TribeDetailViewModel", Hint: 392},
			{Path: "ios/HelpEmApp/Views/Tribe/TribeInboxView.swift", Name: "TribeInboxViewModel", Hint: 366},
			{Path: "ios/HelpEmApp/Views/Tribe/TribeListView.swift", Name: "TribeListViewModel", Hint: 252},
			{Path: "ios/HelpEmApp/Views/Tribe/TribeMessagesView.swift", Name: "TribeMessagesViewModel", Hint: 111},
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// A config file owns its worklist; the built-in targets only apply
	// when there is no file at all.
	cfg.Targets = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if root := os.Getenv("EXCISE_ROOT"); root != "" {
		c.Root = root
	}
	if marker := os.Getenv("EXCISE_MARKER"); marker != "" {
		c.Marker = marker
	}
	if keyword := os.Getenv("EXCISE_KEYWORD"); keyword != "" {
		c.Keyword = keyword
	}
}

// Validate reports every problem with the worklist at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Marker) == "" {
		errs = append(errs, errors.New("marker must not be empty"))
	}
	if strings.TrimSpace(c.Keyword) == "" {
		errs = append(errs, errors.New("keyword must not be empty"))
	}
	if len(c.Targets) == 0 {
		errs = append(errs, errors.New("no targets listed"))
	}
	seen := make(map[string]int, len(c.Targets))
	for i, t := range c.Targets {
		clean := filepath.Clean(t.Path)
		switch {
		case t.Path == "":
			errs = append(errs, fmt.Errorf("targets[%d]: path is required", i))
		case seen[clean] > 0:
			errs = append(errs, fmt.Errorf("targets[%d]: %s already listed as targets[%d]", i, t.Path, seen[clean]-1))
		default:
			seen[clean] = i + 1
		}
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("targets[%d]: name is required", i))
		}
		if t.Hint < 1 {
			errs = append(errs, fmt.Errorf("targets[%d]: hint must be a positive line number, got %d", i, t.Hint))
		}
	}
	return errors.Join(errs...)
}

// ExciseOptions translates the config into engine options.
func (c *Config) ExciseOptions() []excise.Option {
	opts := []excise.Option{
		excise.WithMarker(c.Marker),
		excise.WithKeyword(c.Keyword),
	}
	if c.Template != "" {
		opts = append(opts, excise.WithReplacement(excise.Replacement{Template: c.Template}))
	}
	return opts
}
