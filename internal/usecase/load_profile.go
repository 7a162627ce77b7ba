package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/ports"
)

// ProfileLoader loads the <name>.wire files that apply to a set of schema files.
// Register locations with AddSchema/AddLocation, then call Load. A ProfileLoader is not
// safe for concurrent use.
type ProfileLoader struct {
	name      string
	opener    ports.RootOpener
	parser    ports.ProfileParser
	locations *domain.LocationSet
	logger    *slog.Logger
	now       func() time.Time
}

type LoadOption func(*ProfileLoader)

func WithLogger(l *slog.Logger) LoadOption {
	return func(pl *ProfileLoader) {
		if l != nil {
			pl.logger = l
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) LoadOption {
	return func(pl *ProfileLoader) {
		if now != nil {
			pl.now = now
		}
	}
}

func NewProfileLoader(name string, opener ports.RootOpener, parser ports.ProfileParser, opts ...LoadOption) *ProfileLoader {
	pl := &ProfileLoader{
		name:      name,
		opener:    opener,
		parser:    parser,
		locations: domain.NewLocationSet(),
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// AddSchema registers the location of every file in src.
func (pl *ProfileLoader) AddSchema(src ports.SchemaSource) *ProfileLoader {
	for _, loc := range src.ProtoLocations() {
		pl.locations.Add(loc)
	}
	return pl
}

func (pl *ProfileLoader) AddLocation(loc domain.Location) *ProfileLoader {
	pl.locations.Add(loc)
	return pl
}

// Candidates returns every profile path that might apply to the registered locations.
func (pl *ProfileLoader) Candidates() *domain.CandidateSet {
	return domain.DeriveCandidates(pl.locations.All(), pl.name)
}

// Load reads and parses every candidate that exists, in discovery order. Each root is
// opened once and closed before Load returns. On error no partial profile is returned.
func (pl *ProfileLoader) Load(ctx context.Context) (profile domain.Profile, err error) {
	started := pl.now()
	candidates := pl.Candidates()
	pl.logger.Debug("profile.load.start",
		"profile", pl.name,
		"locations", pl.locations.Len(),
		"candidates", candidates.Len(),
	)

	type openRoot struct {
		name string
		root ports.Root
	}
	var opened []openRoot
	defer func() {
		for i := len(opened) - 1; i >= 0; i-- {
			cerr := opened[i].root.Close()
			if cerr == nil {
				continue
			}
			if err != nil {
				pl.logger.Warn("profile.load.close_failed", "root", opened[i].name, "error", cerr.Error())
				continue
			}
			profile = domain.Profile{}
			err = &domain.OpError{
				Op:   "profile.close",
				Kind: domain.KindReadFailure,
				Root: opened[i].name,
				Err:  cerr,
			}
		}
	}()

	var files []domain.ProfileFile
	for _, root := range candidates.Roots() {
		r, err := pl.opener.OpenRoot(root)
		if err != nil {
			return domain.Profile{}, readFailure("profile.open_root", root, "", err)
		}
		opened = append(opened, openRoot{name: root, root: r})

		for _, path := range candidates.Paths(root) {
			if err := ctx.Err(); err != nil {
				return domain.Profile{}, err
			}

			f, ok, err := pl.loadFile(r, root, path)
			if err != nil {
				return domain.Profile{}, err
			}
			if ok {
				files = append(files, f)
			}
		}
	}

	pl.logger.Debug("profile.load.done",
		"profile", pl.name,
		"files", len(files),
		"duration_ms", pl.now().Sub(started).Milliseconds(),
	)
	return domain.Profile{Files: files}, nil
}

// loadFile returns ok=false when nothing exists at path.
func (pl *ProfileLoader) loadFile(r ports.Root, root, path string) (domain.ProfileFile, bool, error) {
	exists, err := r.Exists(path)
	if err != nil {
		return domain.ProfileFile{}, false, readFailure("profile.stat", root, r.Resolve(path), err)
	}
	if !exists {
		return domain.ProfileFile{}, false, nil
	}

	b, err := r.ReadFile(path)
	if err != nil {
		return domain.ProfileFile{}, false, readFailure("profile.read", root, r.Resolve(path), err)
	}

	pl.logger.Debug("profile.load.file", "root", root, "path", path, "bytes", len(b))

	f, err := pl.parser.Parse(domain.Location{Base: root, Path: path}, string(b))
	if err != nil {
		return domain.ProfileFile{}, false, err
	}
	return f, true, nil
}

func readFailure(op, root, path string, err error) error {
	var oe *domain.OpError
	if errors.As(err, &oe) {
		return err
	}
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindReadFailure,
		Root: root,
		Path: path,
		Err:  err,
	}
}
