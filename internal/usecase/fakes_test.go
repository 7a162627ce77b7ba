package usecase

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/ports"
)

type fakeRoot struct {
	name     string
	files    map[string]string
	readErrs map[string]error
	statErrs map[string]error
	closeErr error

	closes *[]string
	probed []string
}

func (r *fakeRoot) Exists(path string) (bool, error) {
	r.probed = append(r.probed, path)
	if err, ok := r.statErrs[path]; ok {
		return false, err
	}
	_, ok := r.files[path]
	if !ok {
		_, ok = r.readErrs[path]
	}
	return ok, nil
}

func (r *fakeRoot) ReadFile(path string) ([]byte, error) {
	if err, ok := r.readErrs[path]; ok {
		return nil, err
	}
	s, ok := r.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (r *fakeRoot) Resolve(path string) string {
	return r.name + "!/" + path
}

func (r *fakeRoot) Close() error {
	*r.closes = append(*r.closes, r.name)
	return r.closeErr
}

type fakeOpener struct {
	roots   map[string]*fakeRoot
	openErr map[string]error

	opens  []string
	closes []string
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{roots: map[string]*fakeRoot{}, openErr: map[string]error{}}
}

func (o *fakeOpener) root(name string, files map[string]string) *fakeRoot {
	r := &fakeRoot{name: name, files: files, closes: &o.closes}
	o.roots[name] = r
	return r
}

func (o *fakeOpener) OpenRoot(root string) (ports.Root, error) {
	o.opens = append(o.opens, root)
	if err, ok := o.openErr[root]; ok {
		return nil, err
	}
	r, ok := o.roots[root]
	if !ok {
		r = o.root(root, nil)
	}
	return r, nil
}

func (o *fakeOpener) openCount(root string) int {
	n := 0
	for _, r := range o.opens {
		if r == root {
			n++
		}
	}
	return n
}

func (o *fakeOpener) closeCount(root string) int {
	n := 0
	for _, r := range o.closes {
		if r == root {
			n++
		}
	}
	return n
}

// fakeParser records the contents it was given as the package name.
type fakeParser struct {
	err   error
	calls []domain.Location
}

func (p *fakeParser) Parse(loc domain.Location, data string) (domain.ProfileFile, error) {
	p.calls = append(p.calls, loc)
	if p.err != nil {
		return domain.ProfileFile{}, p.err
	}
	if data == "reject" {
		return domain.ProfileFile{}, &domain.ParseError{Location: loc.At(1, 1), Msg: "rejected"}
	}
	return domain.ProfileFile{Location: loc, PackageName: data}, nil
}

type fakeSchema []domain.Location

func (s fakeSchema) ProtoLocations() []domain.Location { return s }

var errBoom = errors.New("boom")

func pathsOf(p domain.Profile) []string {
	out := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		out = append(out, fmt.Sprintf("%s|%s", f.Location.Base, f.Location.Path))
	}
	return out
}
