package workspacefinder

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/tmulin/wire/internal/domain"
)

// LoadConfig loads wire.yaml from the workspace root and applies defaults. Relative
// schema roots are resolved against the workspace root.
func LoadConfig(root string) (domain.Config, error) {
	return LoadConfigFs(afero.NewOsFs(), root)
}

func LoadConfigFs(fsys afero.Fs, root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := afero.ReadFile(fsys, path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Wire.Profile != "" {
		cfg.Profile = y.Wire.Profile
	}
	if len(y.Wire.Schema.Roots) > 0 {
		cfg.Schema.Roots = y.Wire.Schema.Roots
	}
	if len(y.Wire.Schema.Include) > 0 {
		cfg.Schema.Include = y.Wire.Schema.Include
	}
	if len(y.Wire.Schema.Exclude) > 0 {
		cfg.Schema.Exclude = y.Wire.Schema.Exclude
	}
	if y.Wire.Paths.LogsDir != "" {
		cfg.Paths.LogsDir = y.Wire.Paths.LogsDir
	}

	if err := domain.ValidateProfileName(cfg.Profile); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("field wire.profile: %w", err),
		}
	}

	roots := make([]string, 0, len(cfg.Schema.Roots))
	for _, r := range cfg.Schema.Roots {
		if !filepath.IsAbs(r) {
			r = filepath.Join(root, r)
		}
		roots = append(roots, filepath.Clean(r))
	}
	cfg.Schema.Roots = roots

	return cfg, nil
}

type yamlConfig struct {
	Wire struct {
		Profile string `yaml:"profile"`

		Schema struct {
			Roots   []string `yaml:"roots"`
			Include []string `yaml:"include"`
			Exclude []string `yaml:"exclude"`
		} `yaml:"schema"`

		Paths struct {
			LogsDir string `yaml:"logs_dir"`
		} `yaml:"paths"`
	} `yaml:"wire"`
}
