package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/infra/profileparser"
	"github.com/tmulin/wire/internal/infra/protoscan"
	"github.com/tmulin/wire/internal/infra/rootfs"
	"github.com/tmulin/wire/internal/infra/workspacefinder"
	"github.com/tmulin/wire/internal/ports"
	"github.com/tmulin/wire/internal/usecase"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	opener *rootfs.Opener
	parser ports.ProfileParser
}

// loadWorkspace resolves the workspace and its config. When roots are passed explicitly
// a workspace is optional and defaults apply.
func loadWorkspace(workspaceFlag string, roots []string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	var cfg domain.Config
	switch {
	case err == nil:
		cfg, err = workspacefinder.LoadConfig(root)
		if err != nil {
			return nil, err
		}
	case len(roots) > 0 && strings.TrimSpace(workspaceFlag) == "":
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		cfg = domain.DefaultConfig()
	default:
		return nil, err
	}

	if len(roots) > 0 {
		cfg.Schema.Roots = absRoots(roots)
	}

	return &workspaceCtx{
		root:   root,
		cfg:    cfg,
		opener: rootfs.NewOpener(),
		parser: profileparser.New(),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `wire init` or pass schema roots): %w", wd, err)
	}
	return root, nil
}

func resolveProfile(ws *workspaceCtx, flag string) (string, error) {
	name := strings.TrimSpace(flag)
	if name == "" {
		name = ws.cfg.Profile
	}
	if err := domain.ValidateProfileName(name); err != nil {
		return "", err
	}
	return name, nil
}

// profileLoader scans the configured schema roots and registers every file found.
func (ws *workspaceCtx) profileLoader(ctx context.Context, profile string, log *slog.Logger) (*usecase.ProfileLoader, domain.Schema, error) {
	scanner := protoscan.NewScanner(ws.opener,
		protoscan.WithInclude(ws.cfg.Schema.Include...),
		protoscan.WithExclude(ws.cfg.Schema.Exclude...),
		protoscan.WithLogger(log),
	)

	schema, err := scanner.Scan(ctx, ws.cfg.Schema.Roots)
	if err != nil {
		return nil, domain.Schema{}, err
	}

	pl := usecase.NewProfileLoader(profile, ws.opener, ws.parser, usecase.WithLogger(log)).
		AddSchema(schema)
	return pl, schema, nil
}

func absRoots(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if abs, err := filepath.Abs(r); err == nil {
			r = abs
		}
		out = append(out, r)
	}
	return out
}
