// Package rootfs resolves schema roots to navigable filesystems. A root is either a
// directory or an archive (.zip, .jar, .tar, .tar.gz, .tgz) mounted read-only.
package rootfs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/afero/zipfs"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/ports"
)

type Opener struct {
	fs afero.Fs
}

type Option func(*Opener)

// WithFs replaces the OS filesystem roots are resolved against.
func WithFs(fs afero.Fs) Option {
	return func(o *Opener) {
		if fs != nil {
			o.fs = fs
		}
	}
}

func NewOpener(opts ...Option) *Opener {
	o := &Opener{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var _ ports.RootOpener = (*Opener)(nil)

func (o *Opener) OpenRoot(root string) (ports.Root, error) {
	return o.Open(root)
}

// Open resolves root. A missing root behaves as an empty directory.
func (o *Opener) Open(root string) (*Root, error) {
	info, err := o.fs.Stat(root)
	switch {
	case err != nil && os.IsNotExist(err):
		return &Root{name: root, fs: afero.NewMemMapFs()}, nil
	case err != nil:
		return nil, mountError(root, err)
	case info.IsDir():
		dir := root
		if !filepath.IsAbs(dir) {
			if dir, err = filepath.Abs(dir); err != nil {
				return nil, mountError(root, err)
			}
		}
		return &Root{name: root, fs: afero.NewBasePathFs(o.fs, dir)}, nil
	case info.Mode().IsRegular():
		return o.mount(root, info.Size())
	default:
		return nil, mountError(root, fmt.Errorf("%s is neither a directory nor a regular file: %w", root, domain.ErrUnsupportedArchive))
	}
}

func (o *Opener) mount(root string, size int64) (*Root, error) {
	kind, ok := archiveKind(root)
	if !ok {
		return nil, mountError(root, fmt.Errorf("unknown extension %q: %w", filepath.Ext(root), domain.ErrUnsupportedArchive))
	}

	f, err := o.fs.Open(root)
	if err != nil {
		return nil, mountError(root, err)
	}

	switch kind {
	case kindZip:
		zr, err := zip.NewReader(f, size)
		if err != nil {
			_ = f.Close()
			return nil, mountError(root, err)
		}
		return &Root{name: root, archive: true, fs: zipfs.New(zr), zip: zr, closer: f}, nil
	default:
		defer f.Close()
		mem, err := readTar(f, kind == kindTarGz)
		if err != nil {
			return nil, mountError(root, err)
		}
		return &Root{name: root, archive: true, fs: mem}, nil
	}
}

func mountError(root string, err error) error {
	return &domain.OpError{
		Op:   "rootfs.open",
		Kind: domain.KindReadFailure,
		Root: root,
		Err:  err,
	}
}

// Root is a mounted root. It is owned by whoever opened it and must be closed.
type Root struct {
	name    string
	archive bool
	fs      afero.Fs
	zip     *zip.Reader
	closer  io.Closer
	closed  bool
}

var _ ports.Root = (*Root)(nil)

func (r *Root) Name() string {
	return r.name
}

func (r *Root) IsArchive() bool {
	return r.archive
}

func (r *Root) Exists(path string) (bool, error) {
	return afero.Exists(r.fs, fsPath(path))
}

func (r *Root) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(r.fs, fsPath(path))
}

func (r *Root) Resolve(path string) string {
	if r.archive {
		return r.name + "!/" + path
	}
	return filepath.Join(r.name, filepath.FromSlash(path))
}

// Walk calls fn with the slash-separated relative path of every regular file under the
// root, in lexical order.
func (r *Root) Walk(fn func(rel string) error) error {
	if r.zip != nil {
		var names []string
		for _, f := range r.zip.File {
			if f.FileInfo().IsDir() {
				continue
			}
			names = append(names, strings.TrimPrefix(f.Name, "/"))
		}
		sort.Strings(names)
		for _, n := range names {
			if err := fn(n); err != nil {
				return err
			}
		}
		return nil
	}

	return afero.Walk(r.fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && p == "/" {
				return nil
			}
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return fn(strings.TrimPrefix(filepath.ToSlash(p), "/"))
	})
}

// Close releases the archive handle, if any. It is safe to call more than once.
func (r *Root) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func fsPath(p string) string {
	return "/" + strings.TrimLeft(p, "/")
}
