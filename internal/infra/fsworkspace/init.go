// Package fsworkspace lays out a new wire workspace on disk.
package fsworkspace

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/ports"
)

const (
	gitignoreHeader = "# wire"
	gitignoreEntry  = ".wire/"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

type templateData struct {
	Profile string
}

// Init writes every embedded template under spec.Root. Files that already exist are kept
// unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	data := templateData{Profile: spec.Profile}
	if data.Profile == "" {
		data.Profile = domain.DefaultConfig().Profile
	}

	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(domain.DefaultConfig().Paths.LogsDir)), 0o755); err != nil {
		return initError(root, err)
	}
	if err := ensureGitignore(root); err != nil {
		return initError(filepath.Join(root, ".gitignore"), err)
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".tmpl")
		dst := filepath.Join(root, filepath.FromSlash(rel))
		if !force && fileExists(dst) {
			return nil
		}

		out, err := render(p, data)
		if err != nil {
			return initError(p, err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return initError(dst, err)
		}
		if err := os.WriteFile(dst, out, 0o644); err != nil {
			return initError(dst, err)
		}
		return nil
	})
}

func render(name string, data templateData) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Option("missingkey=error").ParseFS(templatesFS, name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func initError(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindReadFailure,
		Path: path,
		Err:  err,
	}
}

// ensureGitignore makes sure .gitignore ignores the .wire/ state directory. An existing
// file is only ever appended to.
func ensureGitignore(root string) error {
	p := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(p)
	switch {
	case os.IsNotExist(err):
		return os.WriteFile(p, []byte(gitignoreHeader+"\n"+gitignoreEntry+"\n"), 0o644)
	case err != nil:
		return err
	}

	hasHeader, hasEntry := false, false
	for _, line := range strings.Split(string(b), "\n") {
		switch strings.TrimSpace(line) {
		case gitignoreHeader:
			hasHeader = true
		case gitignoreEntry:
			hasEntry = true
		}
	}
	if hasEntry {
		return nil
	}

	var block bytes.Buffer
	if len(b) > 0 && !bytes.HasSuffix(b, []byte("\n")) {
		block.WriteByte('\n')
	}
	block.WriteByte('\n')
	if !hasHeader {
		block.WriteString(gitignoreHeader + "\n")
	}
	block.WriteString(gitignoreEntry + "\n")

	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(block.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
