package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "boilerplate.config.yml"

type Config struct {
	Port         int             `yaml:"port" json:"port" env:"BOILERPLATE_PORT"`
	OutputDir    string          `yaml:"outputDir" json:"outputDir" env:"BOILERPLATE_OUTPUT_DIR"`
	DebugHeaders bool            `yaml:"debugHeaders" json:"debugHeaders" env:"BOILERPLATE_DEBUG_HEADERS"`
	DebugLogs    bool            `yaml:"debugLogs" json:"debugLogs" env:"BOILERPLATE_DEBUG_LOGS"`
	LiveReload   bool            `yaml:"liveReload" json:"liveReload" env:"BOILERPLATE_LIVE_RELOAD"`
	Page         PageConfig      `yaml:"page" json:"page" envPrefix:"BOILERPLATE_PAGE_"`
	Telemetry    TelemetryConfig `yaml:"telemetry" json:"telemetry" envPrefix:"BOILERPLATE_OTEL_"`
}

// PageConfig holds the text of the placeholder page. DocsTitle may be left
// empty, in which case it is derived from Framework at render time.
type PageConfig struct {
	Heading   string `yaml:"heading" json:"heading" env:"HEADING"`
	Command   string `yaml:"command" json:"command" env:"COMMAND"`
	Framework string `yaml:"framework" json:"framework" env:"FRAMEWORK"`
	DocsURL   string `yaml:"docsURL" json:"docsURL" env:"DOCS_URL"`
	DocsTitle string `yaml:"docsTitle,omitempty" json:"docsTitle,omitempty" env:"DOCS_TITLE"`
}

type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" env:"ENDPOINT"`
	ServiceName string `yaml:"serviceName" json:"serviceName" env:"SERVICE_NAME"`
}

func DefaultConfig() Config {
	return Config{
		Port:      8080,
		OutputDir: "./dist",
		Page: PageConfig{
			Heading:   "Boilerplate Ready",
			Command:   "./integrate-flightphp-skeleton.sh",
			Framework: "FlightPHP",
			DocsURL:   "https://docs.flightphp.com/en/v3/",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "boilerplate",
		},
	}
}

// LoadConfig reads the YAML file at path, fills unset keys from
// DefaultConfig and applies BOILERPLATE_* environment overrides. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parse %s: %v: %w", path, err, ErrInvalidConfig)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return DefaultConfig(), fmt.Errorf("read %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return DefaultConfig(), fmt.Errorf("apply defaults: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %v: %w", err, ErrInvalidConfig)
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("port %d out of range: %w", cfg.Port, ErrInvalidConfig)
	}

	return cfg, nil
}
