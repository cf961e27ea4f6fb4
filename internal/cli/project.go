package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvka-141/pgfix/internal/checksum"
	"github.com/vvka-141/pgfix/internal/config"
	"github.com/vvka-141/pgfix/internal/files/filesystem"
	"github.com/vvka-141/pgfix/internal/files/locator"
	"github.com/vvka-141/pgfix/internal/files/scanner"
	"github.com/vvka-141/pgfix/internal/manifest"
	"github.com/vvka-141/pgfix/internal/metadata"
	"github.com/vvka-141/pgfix/internal/resolver"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// project is everything a command needs to resolve resources for one
// project directory.
type project struct {
	root     string
	config   *config.ProjectConfig
	manifest *manifest.Manifest
	source   pgfix.MetadataSource
	engine   *resolver.Engine
	scanner  *scanner.Scanner
	strict   bool
}

// loadProject reads pgfix.yaml (defaults when absent), overlays .env and
// the environment, parses the test manifest and builds the engine.
// Resources are located relative to projectPath.
func loadProject(projectPath, manifestPath string, strictFlag bool, logger pgfix.Logger) (*project, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project directory %s does not exist: %w", projectPath, pgfix.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("failed to access project directory %s: %w", projectPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory: %w", projectPath, pgfix.ErrInvalidConfig)
	}

	cfg, err := config.LoadOrDefault(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", pgfix.ConfigFileName, err)
	}
	env, err := config.LoadEnv(projectPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Verbose("Search locations: %v", cfg.Locations)
	logger.Verbose("Configured kinds: %v", cfg.KindNames())

	fsProvider := filesystem.NewOSFileSystem(projectPath)
	if manifestPath == "" {
		manifestPath = pgfix.ManifestFileName
	}
	logger.Verbose("Manifest: %s", filepath.Join(fsProvider.Root(), filepath.FromSlash(manifestPath)))
	m, err := manifest.LoadFile(fsProvider, manifestPath)
	if err != nil {
		return nil, err
	}

	source := metadata.NewCachedSource(m.Registry())
	engine, err := resolver.New(resolver.Config{
		Source:      source,
		Locator:     locator.New(fsProvider, cfg.Locations),
		Conventions: cfg.Conventions(),
		Policies:    policies(cfg),
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	return &project{
		root:     projectPath,
		config:   cfg,
		manifest: m,
		source:   source,
		engine:   engine,
		scanner:  scanner.NewScanner(checksum.New(), fsProvider),
		strict:   strictFlag || cfg.Strict,
	}, nil
}

func policies(cfg *config.ProjectConfig) map[pgfix.Kind]resolver.Policy {
	out := make(map[pgfix.Kind]resolver.Policy, len(cfg.Kinds))
	for name, kind := range cfg.Kinds {
		out[pgfix.Kind(name)] = resolver.Policy{ProbeGroupDefault: kind.ProbeGroupDefault}
	}
	return out
}

// kinds returns the configured kinds followed by any kind the manifest
// uses without configuring it.
func (p *project) kinds() []pgfix.Kind {
	var out []pgfix.Kind
	seen := make(map[pgfix.Kind]bool)
	for _, name := range p.config.KindNames() {
		kind := pgfix.Kind(name)
		seen[kind] = true
		out = append(out, kind)
	}
	for _, kind := range p.manifest.Kinds() {
		if !seen[kind] {
			seen[kind] = true
			out = append(out, kind)
		}
	}
	return out
}

func (p *project) options() resolver.Options {
	return resolver.Options{Strict: p.strict}
}

// suffixes returns the file suffix of every configured kind.
func (p *project) suffixes() []string {
	var out []string
	for _, name := range p.config.KindNames() {
		out = append(out, p.config.Kinds[name].Suffix)
	}
	return out
}
