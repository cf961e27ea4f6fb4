package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables overlaid by ApplyEnv.
const (
	EnvLocations = "PGFIX_LOCATIONS"
	EnvStrict    = "PGFIX_STRICT"
)

// EnvFileName is read from the project directory by LoadEnv.
const EnvFileName = ".env"

// KindConfig configures default-name generation for one metadata kind.
type KindConfig struct {
	Prefix            string `yaml:"prefix"`
	Suffix            string `yaml:"suffix"`
	ProbeGroupDefault bool   `yaml:"probe_group_default,omitempty"`
}

// Convention returns the naming convention part of the kind config.
func (k KindConfig) Convention() pgfix.NamingConvention {
	return pgfix.NamingConvention{Prefix: k.Prefix, Suffix: k.Suffix}
}

type ProjectConfig struct {
	Locations []string              `yaml:"locations,omitempty"`
	Strict    bool                  `yaml:"strict,omitempty"`
	Kinds     map[string]KindConfig `yaml:"kinds,omitempty"`
}

// Default returns the built-in configuration: the conventional prefixes
// and suffixes of every built-in kind, searched in the project root and
// in the scripts and datasets directories.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Locations: []string{pgfix.RootLocation, "scripts", "datasets"},
		Kinds: map[string]KindConfig{
			string(pgfix.KindCleanupScript):   {Prefix: "cleanup-", Suffix: "sql"},
			string(pgfix.KindScriptBefore):    {Prefix: "before-", Suffix: "sql"},
			string(pgfix.KindScriptAfter):     {Prefix: "after-", Suffix: "sql"},
			string(pgfix.KindDataSet):         {Suffix: "yml"},
			string(pgfix.KindExpectedDataSet): {Prefix: "expected-", Suffix: "yml"},
		},
	}
}

func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, pgfix.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", pgfix.ConfigFileName, err)
	}
	return &cfg, nil
}

// LoadOrDefault loads the project config merged over Default. A missing
// config file is not an error.
func LoadOrDefault(sourcePath string) (*ProjectConfig, error) {
	cfg := Default()
	loaded, err := Load(sourcePath)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return cfg, nil
		}
		return nil, err
	}
	cfg.Merge(loaded)
	return cfg, nil
}

// Merge overlays other onto c. Non-empty locations replace c's list;
// kinds are replaced one by one; strict can only be switched on.
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}
	if len(other.Locations) > 0 {
		c.Locations = append([]string(nil), other.Locations...)
	}
	if other.Strict {
		c.Strict = true
	}
	if len(other.Kinds) > 0 && c.Kinds == nil {
		c.Kinds = make(map[string]KindConfig, len(other.Kinds))
	}
	for name, kind := range other.Kinds {
		c.Kinds[name] = kind
	}
}

// LoadEnv reads <dir>/.env and overlays the process environment on it,
// so exported non-blank variables win over the file. A missing .env is
// ignored.
func LoadEnv(dir string) (map[string]string, error) {
	env, err := godotenv.Read(filepath.Join(dir, EnvFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", EnvFileName, err)
		}
		env = make(map[string]string)
	}
	for _, key := range []string{EnvLocations, EnvStrict} {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overlays PGFIX_LOCATIONS (comma-separated) and PGFIX_STRICT.
func (c *ProjectConfig) ApplyEnv(env map[string]string) error {
	if raw, ok := env[EnvLocations]; ok && strings.TrimSpace(raw) != "" {
		var locations []string
		for _, loc := range strings.Split(raw, ",") {
			locations = append(locations, strings.TrimSpace(loc))
		}
		c.Locations = locations
	}
	if raw, ok := env[EnvStrict]; ok && strings.TrimSpace(raw) != "" {
		strict, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvStrict, raw, pgfix.ErrInvalidConfig)
		}
		c.Strict = strict
	}
	return nil
}

// Validate reports the first problem that would make resolution fail
// for every case. All errors wrap pgfix.ErrInvalidConfig.
func (c *ProjectConfig) Validate() error {
	if len(c.Locations) == 0 {
		return fmt.Errorf("no search locations configured: %w", pgfix.ErrInvalidConfig)
	}
	for i, loc := range c.Locations {
		if strings.TrimSpace(loc) == "" {
			return fmt.Errorf("search location #%d is blank (use %q for the project root): %w", i+1, pgfix.RootLocation, pgfix.ErrInvalidConfig)
		}
	}
	for _, name := range c.KindNames() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("kind with blank name: %w", pgfix.ErrInvalidConfig)
		}
		if strings.TrimPrefix(strings.TrimSpace(c.Kinds[name].Suffix), ".") == "" {
			return fmt.Errorf("kind %q has no suffix: %w", name, pgfix.ErrInvalidConfig)
		}
	}
	return nil
}

// KindNames returns the configured kinds sorted by name.
func (c *ProjectConfig) KindNames() []string {
	names := make([]string, 0, len(c.Kinds))
	for name := range c.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Conventions returns the naming convention of every configured kind.
func (c *ProjectConfig) Conventions() map[pgfix.Kind]pgfix.NamingConvention {
	out := make(map[pgfix.Kind]pgfix.NamingConvention, len(c.Kinds))
	for name, kind := range c.Kinds {
		out[pgfix.Kind(name)] = kind.Convention()
	}
	return out
}
