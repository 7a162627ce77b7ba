// Package workspacefinder locates a wire workspace and loads its wire.yaml.
package workspacefinder

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/ports"
)

// ConfigFile is the name of the workspace configuration file.
const ConfigFile = "wire.yaml"

// Finder walks upward from a start directory until it sees ConfigFile. The zero value
// searches the OS filesystem for wire.yaml.
type Finder struct {
	ConfigFile string
	Fs         afero.Fs
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile, Fs: afero.NewOsFs()}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

// FindRoot returns the closest directory at or above startDir that holds the config file.
// A file path starts the search at its directory.
func (f *Finder) FindRoot(startDir string) (string, error) {
	const op = "workspacefinder.findroot"

	if startDir == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: errors.New("startDir is empty")}
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindReadFailure, Path: startDir, Err: err}
	}

	fsys, name := f.fs(), f.name()
	if isDir, err := afero.IsDir(fsys, start); err == nil && !isDir {
		start = filepath.Dir(start)
	}

	for dir := start; ; {
		if ok, _ := isRegular(fsys, filepath.Join(dir, name)); ok {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: start, Err: domain.ErrNotFound}
		}
		dir = parent
	}
}

func (f *Finder) fs() afero.Fs {
	if f.Fs == nil {
		return afero.NewOsFs()
	}
	return f.Fs
}

func (f *Finder) name() string {
	if f.ConfigFile == "" {
		return ConfigFile
	}
	return f.ConfigFile
}

func isRegular(fsys afero.Fs, p string) (bool, error) {
	info, err := fsys.Stat(p)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
