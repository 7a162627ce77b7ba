package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp, Profile: "java"}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "wire.yaml"))
	assertFileExists(t, filepath.Join(tmp, ".gitignore"))
	assertFileExists(t, filepath.Join(tmp, ".wire", "logs"))

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Profile != "java" {
		t.Fatalf("expected profile java, got %q", cfg.Profile)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	wireYAML := filepath.Join(tmp, "wire.yaml")
	if err := os.WriteFile(wireYAML, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing wire.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(wireYAML)
	if err != nil {
		t.Fatalf("read wire.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected wire.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(wireYAML)
	if err != nil {
		t.Fatalf("read wire.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "profile: android") {
		t.Fatalf("expected wire.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
