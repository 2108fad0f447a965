package update

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/todomvc/internal/model"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Title          string        `yaml:"title"`
	Filter         model.Filter  `yaml:"filter"`
	StatusTTL      time.Duration `yaml:"status_ttl"`
	DispatchBuffer int           `yaml:"dispatch_buffer"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Title:          model.DefaultTitle,
		Filter:         model.FilterAll,
		StatusTTL:      3 * time.Second,
		DispatchBuffer: 64,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// LoadRuntimeConfigFile overlays the YAML file at path onto base. Keys missing
// from the file keep their base value.
func LoadRuntimeConfigFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOMVC_TITLE"); ok {
		cfg.Title = v
	}
	if v, ok := getEnvString("TODOMVC_FILTER"); ok {
		if f, err := model.ParseFilter(v); err == nil {
			cfg.Filter = f
		}
	}
	if v, ok := getEnvDuration("TODOMVC_STATUS_TTL"); ok && v >= 0 {
		cfg.StatusTTL = v
	}
	if v, ok := getEnvInt("TODOMVC_DISPATCH_BUFFER"); ok && v > 0 {
		cfg.DispatchBuffer = v
	}
	if v, ok := getEnvString("TODOMVC_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TODOMVC_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TODOMVC_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if !c.Filter.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidFilter, c.Filter)
	}
	if c.StatusTTL < 0 {
		return fmt.Errorf("status_ttl must not be negative: %s", c.StatusTTL)
	}
	if c.DispatchBuffer <= 0 {
		return fmt.Errorf("dispatch_buffer must be positive: %d", c.DispatchBuffer)
	}
	return nil
}

// InitialModel is the empty task list the program starts from.
func (c RuntimeConfig) InitialModel() model.Model {
	m := model.New()
	if strings.TrimSpace(c.Title) != "" {
		m.Title = strings.TrimSpace(c.Title)
	}
	if c.Filter.IsValid() {
		m.Filter = c.Filter
	}
	m.StatusTTL = c.StatusTTL
	return m
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
