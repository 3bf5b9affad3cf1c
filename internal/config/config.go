// File: internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Browser() BrowserConfig
	Scenario() ScenarioConfig

	// Browser Setters
	SetBrowserHeadless(bool)
	SetBrowserScreenshotPolicy(ScreenshotPolicy)

	// Scenario Setters
	SetScenarioBaseURL(string)
	SetScenarioTags(string)
	SetScenarioPaths([]string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	BrowserCfg  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	ScenarioCfg ScenarioConfig `mapstructure:"scenario" yaml:"scenario"`
}

var _ Interface = (*Config)(nil)

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.LoggerCfg }
func (c *Config) Browser() BrowserConfig   { return c.BrowserCfg }
func (c *Config) Scenario() ScenarioConfig { return c.ScenarioCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetBrowserHeadless(b bool) { c.BrowserCfg.Headless = b }
func (c *Config) SetBrowserScreenshotPolicy(p ScreenshotPolicy) {
	c.BrowserCfg.Screenshots.Policy = p
}

func (c *Config) SetScenarioBaseURL(u string)     { c.ScenarioCfg.BaseURL = u }
func (c *Config) SetScenarioTags(tags string)     { c.ScenarioCfg.Tags = tags }
func (c *Config) SetScenarioPaths(paths []string) { c.ScenarioCfg.Paths = paths }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
	Fatal string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig holds settings for the browser driven by the actors.
type BrowserConfig struct {
	Headless       bool     `mapstructure:"headless" yaml:"headless"`
	StartMaximized bool     `mapstructure:"start_maximized" yaml:"start_maximized"`
	DisableGPU     bool     `mapstructure:"disable_gpu" yaml:"disable_gpu"`
	ExecPath       string   `mapstructure:"exec_path" yaml:"exec_path"`
	Args           []string `mapstructure:"args" yaml:"args"`
	// Concurrency caps the number of browser processes alive at once.
	Concurrency  int `mapstructure:"concurrency" yaml:"concurrency"`
	WindowWidth  int `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight int `mapstructure:"window_height" yaml:"window_height"`
	// ImplicitWait bounds how long element lookups poll for a first match.
	ImplicitWait      time.Duration    `mapstructure:"implicit_wait" yaml:"implicit_wait"`
	ActionTimeout     time.Duration    `mapstructure:"action_timeout" yaml:"action_timeout"`
	NavigationTimeout time.Duration    `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	Screenshots       ScreenshotConfig `mapstructure:"screenshots" yaml:"screenshots"`
}

// ScreenshotPolicy decides when the browser captures the page.
type ScreenshotPolicy string

const (
	ScreenshotsDisabled      ScreenshotPolicy = "disabled"
	ScreenshotsForEachAction ScreenshotPolicy = "for_each_action"
	ScreenshotsOnFailure     ScreenshotPolicy = "on_failure"
)

// ScreenshotConfig configures screenshot capture.
type ScreenshotConfig struct {
	Policy  ScreenshotPolicy `mapstructure:"policy" yaml:"policy"`
	Dir     string           `mapstructure:"dir" yaml:"dir"`
	Quality int              `mapstructure:"quality" yaml:"quality"`
}

// ScenarioConfig configures the feature run.
type ScenarioConfig struct {
	BaseURL   string   `mapstructure:"base_url" yaml:"base_url"`
	ActorName string   `mapstructure:"actor_name" yaml:"actor_name"`
	Paths     []string `mapstructure:"paths" yaml:"paths"`
	Tags      string   `mapstructure:"tags" yaml:"tags"`
	// Format is a godog formatter name: pretty, progress, cucumber, junit.
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
	Strict bool   `mapstructure:"strict" yaml:"strict"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "screenplay-cli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.start_maximized", true)
	v.SetDefault("browser.disable_gpu", true)
	v.SetDefault("browser.concurrency", 1)
	v.SetDefault("browser.window_width", 1366)
	v.SetDefault("browser.window_height", 768)
	v.SetDefault("browser.implicit_wait", "5s")
	v.SetDefault("browser.action_timeout", "15s")
	v.SetDefault("browser.navigation_timeout", "60s")
	v.SetDefault("browser.screenshots.policy", string(ScreenshotsDisabled))
	v.SetDefault("browser.screenshots.dir", "screenshots")
	v.SetDefault("browser.screenshots.quality", 90)

	// -- Scenario --
	v.SetDefault("scenario.base_url", "https://www.saucedemo.com/")
	v.SetDefault("scenario.actor_name", "usuario")
	v.SetDefault("scenario.paths", []string{"features"})
	v.SetDefault("scenario.tags", "")
	v.SetDefault("scenario.format", "pretty")
	v.SetDefault("scenario.output", "")
	v.SetDefault("scenario.strict", true)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	dir, err := homedir.Expand(cfg.BrowserCfg.Screenshots.Dir)
	if err != nil {
		return nil, fmt.Errorf("error expanding screenshot dir: %w", err)
	}
	cfg.BrowserCfg.Screenshots.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.BrowserCfg.Validate(); err != nil {
		return fmt.Errorf("browser configuration invalid: %w", err)
	}
	if err := c.ScenarioCfg.Validate(); err != nil {
		return fmt.Errorf("scenario configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the browser settings.
func (b *BrowserConfig) Validate() error {
	if b.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be a positive integer")
	}
	if b.ImplicitWait < 0 {
		return fmt.Errorf("implicit_wait must not be negative")
	}
	if b.ActionTimeout <= 0 {
		return fmt.Errorf("action_timeout must be a positive duration")
	}
	if b.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation_timeout must be a positive duration")
	}
	switch b.Screenshots.Policy {
	case "", ScreenshotsDisabled, ScreenshotsForEachAction, ScreenshotsOnFailure:
	default:
		return fmt.Errorf("unknown screenshots.policy %q", b.Screenshots.Policy)
	}
	return nil
}

// Validate checks the scenario settings.
func (s *ScenarioConfig) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL, got %q", s.BaseURL)
	}
	if strings.TrimSpace(s.ActorName) == "" {
		return fmt.Errorf("actor_name is required")
	}
	if len(s.Paths) == 0 {
		return fmt.Errorf("at least one feature path is required")
	}
	return nil
}
