package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the runtime configuration of the studio server and tools.
type Config struct {
	LogLevel   string           `yaml:"log_level"`
	Server     ServerConfig     `yaml:"server"`
	Content    ContentConfig    `yaml:"content"`
	Contact    ContactConfig    `yaml:"contact"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Hero       HeroConfig       `yaml:"hero"`
	Copywriter CopywriterConfig `yaml:"copywriter"`
}

type ServerConfig struct {
	Port       string        `yaml:"port"`
	PublicDir  string        `yaml:"public_dir"`
	CacheDir   string        `yaml:"cache_dir"`
	VisitorTTL time.Duration `yaml:"visitor_ttl"`
}

type ContentConfig struct {
	// Path to a site file; empty serves the bundled content.
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type ContactConfig struct {
	Endpoint   string        `yaml:"endpoint"`
	Timeout    time.Duration `yaml:"timeout"`
	ResetAfter time.Duration `yaml:"reset_after"`
}

type RevealConfig struct {
	Threshold float64 `yaml:"threshold"`
}

type HeroConfig struct {
	Seed uint32        `yaml:"seed"`
	Hold time.Duration `yaml:"hold"`
}

type CopywriterConfig struct {
	// Provider is gemini, ollama or openai.
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:       "8888",
			PublicDir:  "public",
			CacheDir:   "cache/images",
			VisitorTTL: 30 * time.Minute,
		},
		Content: ContentConfig{
			Watch: true,
		},
		Contact: ContactConfig{
			Timeout:    15 * time.Second,
			ResetAfter: 3 * time.Second,
		},
		Reveal: RevealConfig{
			Threshold: 0.35,
		},
		Hero: HeroConfig{
			Hold: 1500 * time.Millisecond,
		},
		Copywriter: CopywriterConfig{
			Provider:    "gemini",
			Model:       "gemini-1.5-flash",
			Temperature: 0.4,
		},
	}
}

// Validate checks the configuration for values the server cannot run with.
// An empty contact endpoint is allowed: the form reports it to the visitor.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port must be set"))
	}
	if c.Server.VisitorTTL <= 0 {
		errs = append(errs, errors.New("server.visitor_ttl must be positive"))
	}
	if c.Contact.Timeout <= 0 {
		errs = append(errs, errors.New("contact.timeout must be positive"))
	}
	if c.Contact.ResetAfter <= 0 {
		errs = append(errs, errors.New("contact.reset_after must be positive"))
	}
	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		errs = append(errs, fmt.Errorf("reveal.threshold must be in (0, 1], got %v", c.Reveal.Threshold))
	}
	if c.Copywriter.Temperature < 0 || c.Copywriter.Temperature > 2 {
		errs = append(errs, fmt.Errorf("copywriter.temperature must be in [0, 2], got %v", c.Copywriter.Temperature))
	}
	switch c.Copywriter.Provider {
	case "gemini", "ollama", "openai":
	default:
		errs = append(errs, fmt.Errorf("copywriter.provider must be gemini, ollama or openai, got %q", c.Copywriter.Provider))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
