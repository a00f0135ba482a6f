// Package config loads the service configuration from a YAML file with
// environment overrides. The file is found by walking up from the
// working directory, so tools run from subdirectories during
// development still pick it up.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/madukisp/oris-vagas/pkg/authz"
	"github.com/madukisp/oris-vagas/pkg/dateparse"
)

const DefaultPath = "config/oris.yaml"

// DefaultDataMinima is the earliest event date that may open a vacancy
// when the file does not set one.
const DefaultDataMinima = "2025-01-01"

type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	// DataMinimaVagas is the cutoff: events strictly before it are
	// ignored by detection.
	DataMinimaVagas string `yaml:"data_minima_vagas"`

	// FiltroRelatorio is an optional CEL expression narrowing the
	// roster before any computation. Empty admits every row.
	FiltroRelatorio string `yaml:"filtro_relatorio"`

	RoutingAllowlist string    `yaml:"routing_allowlist"`
	Authz            AuthzConf `yaml:"authz"`
}

type AuthzConf struct {
	ModelPath  string `yaml:"model"`
	PolicyPath string `yaml:"policy"`
	Mode       string `yaml:"mode"`
}

// DataMinima returns the parsed cutoff date.
func (c Config) DataMinima() time.Time {
	t, ok := dateparse.Parse(c.DataMinimaVagas)
	if !ok {
		t, _ = dateparse.Parse(DefaultDataMinima)
	}
	return t
}

// AuthzMode returns the validated mode, with AUTHZ_MODE taking
// precedence over the file.
func (c Config) AuthzMode() (authz.Mode, error) {
	if os.Getenv("AUTHZ_MODE") != "" {
		return authz.ModeFromEnv()
	}
	return authz.ParseMode(c.Authz.Mode)
}

// Load reads and validates the configuration. An empty path means the
// default location, searched upward; a missing default file yields the
// built-in defaults instead of an error.
func Load(path string) (Config, error) {
	c := defaults()

	explicit := path != ""
	if !explicit {
		if v := os.Getenv("ORIS_CONFIG"); v != "" {
			path = v
			explicit = true
		} else {
			path = findUpward(DefaultPath)
		}
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	applyEnv(&c)

	if err := validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func defaults() Config {
	return Config{
		HTTPAddr:        ":8084",
		LogLevel:        "info",
		DataMinimaVagas: DefaultDataMinima,
	}
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		c.HTTPAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("DATA_MINIMA_VAGAS")); v != "" {
		c.DataMinimaVagas = v
	}
	if v := strings.TrimSpace(os.Getenv("FILTRO_RELATORIO")); v != "" {
		c.FiltroRelatorio = v
	}
	if v := strings.TrimSpace(os.Getenv("AUTHZ_MODEL_PATH")); v != "" {
		c.Authz.ModelPath = v
	}
	if v := strings.TrimSpace(os.Getenv("AUTHZ_POLICY_PATH")); v != "" {
		c.Authz.PolicyPath = v
	}
}

func validate(c Config) error {
	if _, ok := dateparse.Parse(c.DataMinimaVagas); !ok {
		return fmt.Errorf("config: data_minima_vagas invalida: %q", c.DataMinimaVagas)
	}
	if _, err := c.AuthzMode(); err != nil {
		return err
	}
	return nil
}

func findUpward(path string) string {
	for range 8 {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		path = filepath.Join("..", path)
	}
	return ""
}
