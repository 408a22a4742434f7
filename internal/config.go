package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Environments. The content-management API only works in development; in
// production every mutating endpoint is rejected.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Release ReleaseConfig     `yaml:"release"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	return c.Release.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	Env      string     `yaml:"env"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	// Normalise empty env to "development"; this is a dev tool first.
	if c.Env == "" {
		c.Env = EnvDevelopment
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Env, validation.Required, validation.In(EnvDevelopment, EnvProduction)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// DevMode reports whether the development gate is open.
func (c *ApplicationConfig) DevMode() bool {
	return c.Env != EnvProduction
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig holds the path to the content directory the static-site
// build reads from.
type ContentConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ReleaseConfig holds the release pipeline configuration. Repo and Branch
// are purely descriptive (returned by the deploy status endpoint); the
// commands run in WorkDir.
type ReleaseConfig struct {
	Repo                  string `yaml:"repo"`
	Branch                string `yaml:"branch"`
	WorkDir               string `yaml:"work_dir"`
	BuildCommand          string `yaml:"build_command"`
	PublishCommand        string `yaml:"publish_command"`
	PublishTimeoutSeconds int    `yaml:"publish_timeout_seconds"`
}

// Validate validates the release configuration.
func (c *ReleaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Repo, validation.Required),
		validation.Field(&c.Branch, validation.Required),
		validation.Field(&c.PublishTimeoutSeconds, validation.Required, validation.Min(1)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			Env:      EnvDevelopment,
			HTTP: HTTPConfig{
				Port: 3001,
			},
		},
		Content: ContentConfig{
			Path: "./content",
		},
		Release: ReleaseConfig{
			Repo:                  "skriv-site",
			Branch:                "main",
			WorkDir:               ".",
			BuildCommand:          "npm run build",
			PublishCommand:        "npx wrangler deploy",
			PublishTimeoutSeconds: 60,
		},
	}
}
