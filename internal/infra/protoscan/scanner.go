// Package protoscan discovers .proto schema files under directory and archive roots.
package protoscan

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/infra/rootfs"
	"github.com/tmulin/wire/internal/ports"
)

type Scanner struct {
	opener  *rootfs.Opener
	include []string
	exclude []string
	logger  *slog.Logger
}

type Option func(*Scanner)

func WithInclude(patterns ...string) Option {
	return func(s *Scanner) {
		if len(patterns) > 0 {
			s.include = patterns
		}
	}
}

func WithExclude(patterns ...string) Option {
	return func(s *Scanner) { s.exclude = patterns }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewScanner(opener *rootfs.Opener, opts ...Option) *Scanner {
	s := &Scanner{
		opener:  opener,
		include: []string{"**/*.proto"},
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SchemaScanner = (*Scanner)(nil)

// Scan returns every matching file, root by root, in lexical order within a root.
func (s *Scanner) Scan(ctx context.Context, roots []string) (domain.Schema, error) {
	for _, p := range append(append([]string{}, s.include...), s.exclude...) {
		if !doublestar.ValidatePattern(p) {
			return domain.Schema{}, &domain.OpError{
				Op:   "protoscan.pattern",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("invalid glob %q: %w", p, domain.ErrInvalidConfig),
			}
		}
	}

	seen := domain.NewLocationSet()
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return domain.Schema{}, err
		}
		if err := s.scanRoot(ctx, root, seen); err != nil {
			return domain.Schema{}, err
		}
	}

	var schema domain.Schema
	for _, loc := range seen.All() {
		schema.Files = append(schema.Files, domain.ProtoFile{Location: loc})
	}
	s.logger.Debug("protoscan.done", "roots", len(roots), "files", len(schema.Files))
	return schema, nil
}

func (s *Scanner) scanRoot(ctx context.Context, root string, seen *domain.LocationSet) error {
	r, err := s.opener.Open(root)
	if err != nil {
		return err
	}
	defer r.Close()

	err = r.Walk(func(rel string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.matches(rel) {
			seen.Add(domain.Location{Base: root, Path: rel})
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return &domain.OpError{
			Op:   "protoscan.walk",
			Kind: domain.KindReadFailure,
			Root: root,
			Err:  err,
		}
	}
	return nil
}

func (s *Scanner) matches(rel string) bool {
	included := false
	for _, p := range s.include {
		if doublestar.MatchUnvalidated(p, rel) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, p := range s.exclude {
		if doublestar.MatchUnvalidated(p, rel) {
			return false
		}
	}
	return true
}
