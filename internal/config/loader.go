package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is given and it exists.
const DefaultPath = "studio.yaml"

// Load builds the configuration from defaults, then the YAML file, then
// STUDIO_* environment variables, and validates the result. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	if err := loadFromFile(config, path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// loadFromFile decodes the file over the existing values, so keys left
// out of the file keep their defaults.
func loadFromFile(config *Config, path string) error {
	// #nosec G304 - operator supplied path
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"STUDIO_LOG_LEVEL": func(v string) error { config.LogLevel = v; return nil },

		"STUDIO_PORT":        func(v string) error { config.Server.Port = v; return nil },
		"PORT":               func(v string) error { config.Server.Port = v; return nil },
		"STUDIO_PUBLIC_DIR":  func(v string) error { config.Server.PublicDir = v; return nil },
		"STUDIO_CACHE_DIR":   func(v string) error { config.Server.CacheDir = v; return nil },
		"STUDIO_VISITOR_TTL": func(v string) error { return parseDuration(v, &config.Server.VisitorTTL) },

		"STUDIO_CONTENT_PATH":  func(v string) error { config.Content.Path = v; return nil },
		"STUDIO_CONTENT_WATCH": func(v string) error { return parseBool(v, &config.Content.Watch) },

		"STUDIO_CONTACT_ENDPOINT":    func(v string) error { config.Contact.Endpoint = v; return nil },
		"STUDIO_CONTACT_TIMEOUT":     func(v string) error { return parseDuration(v, &config.Contact.Timeout) },
		"STUDIO_CONTACT_RESET_AFTER": func(v string) error { return parseDuration(v, &config.Contact.ResetAfter) },

		"STUDIO_REVEAL_THRESHOLD": func(v string) error { return parseFloat(v, &config.Reveal.Threshold) },
		"STUDIO_HERO_SEED":        func(v string) error { return parseUint32(v, &config.Hero.Seed) },

		"STUDIO_COPYWRITER_PROVIDER": func(v string) error { config.Copywriter.Provider = v; return nil },
		"STUDIO_COPYWRITER_MODEL":    func(v string) error { config.Copywriter.Model = v; return nil },
	}

	// STUDIO_PORT wins over the platform PORT
	order := []string{"PORT"}
	for key := range envMappings {
		if key != "PORT" {
			order = append(order, key)
		}
	}

	for _, key := range order {
		value, ok := os.LookupEnv(key)
		if !ok || value == "" {
			continue
		}
		if err := envMappings[key](value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

func parseDuration(v string, target *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*target = d
	return nil
}

func parseBool(v string, target *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*target = b
	return nil
}

func parseFloat(v string, target *float64) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*target = f
	return nil
}

func parseUint32(v string, target *uint32) error {
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return err
	}
	*target = uint32(n)
	return nil
}
