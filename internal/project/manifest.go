package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no velac.toml found\nplease specify the module list explicitly, e.g.:\n  velac resolve --module s1-numeric-ctor"

// Manifest mirrors the teacher's projectManifest (cmd/surge/project_manifest.go):
// a resolved path to the TOML file, its containing directory, and the
// decoded config.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is velac.toml's shape. [run].modules names fixtures from
// internal/fixture's registry to resolve, in order, standing in for
// the teacher's [run].main entry-point path (this core has no single
// entry point to run, only a set of modules to resolve).
type Config struct {
	Package PackageConfig `toml:"package"`
	Run     RunConfig     `toml:"run"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Modules []string `toml:"modules"`
	Jobs    int      `toml:"jobs"`
}

// FindManifest walks up from startDir looking for velac.toml, exactly
// like the teacher's findSurgeToml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "velac.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes velac.toml starting from startDir.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("run") || len(cfg.Run.Modules) == 0 {
		return Config{}, fmt.Errorf("%s: missing [run].modules", path)
	}
	if cfg.Run.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	return cfg, nil
}

// NoManifestMessage is shown to a user who ran a subcommand needing a
// manifest outside any velac.toml tree.
func NoManifestMessage() string { return noManifestMessage }
