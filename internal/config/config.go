// Package config loads the application configuration from an optional yaml
// file, overlaid with RESUME_ prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"resume-parser/internal/logging"
)

const envPrefix = "RESUME_"

type Serve struct {
	Port int `koanf:"port" validate:"gte=0,lte=65535"`
}

type AI struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model" validate:"required"`
	Timeout time.Duration `koanf:"timeout"`
}

type Database struct {
	// DSN is optional. Without it the service runs with storage disabled,
	// parsed documents are still written to the output directory.
	DSN string `koanf:"dsn"`
}

type Parser struct {
	InputDirs []string `koanf:"input_dirs" validate:"required,min=1"`
	OutputDir string   `koanf:"output_dir" validate:"required"`
}

type Config struct {
	Log      logging.Config `koanf:"log"`
	Serve    Serve          `koanf:"serve"`
	AI       AI             `koanf:"ai"`
	Database Database       `koanf:"database"`
	Parser   Parser         `koanf:"parser"`
}

func defaultConfig() Config {
	return Config{
		Log: logging.Config{Level: "info"},
		Serve: Serve{
			Port: 3000,
		},
		AI: AI{
			BaseURL: "https://api.openai.com",
			Model:   "gpt-3.5-turbo-16k",
			Timeout: 60 * time.Second,
		},
		Parser: Parser{
			InputDirs: []string{"resumes"},
			OutputDir: "parsed",
		},
	}
}

// Load builds the configuration from defaults, the given yaml file (skipped
// when configFile is empty) and the process environment, in that order of
// precedence, and validates the result.
func Load(configFile string) (Config, error) {
	cfg := defaultConfig()

	parser := koanf.New(".")

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", configFile, err)
		}
		if err := parser.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	if err := parser.Load(env.Provider(".", env.Opt{
		Prefix:        envPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := parser.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// envKey maps RESUME_SERVE_PORT to serve.port. A double underscore keeps a
// literal underscore in the key, e.g. RESUME_AI_BASE__URL -> ai.base_url.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "__", `\_`)
	key = strings.ReplaceAll(key, "_", ".")
	key = strings.ReplaceAll(key, `\.`, "_")

	return key, value
}
