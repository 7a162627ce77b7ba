package rootfs

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

type archiveType int

const (
	kindZip archiveType = iota
	kindTar
	kindTarGz
)

func archiveKind(name string) (archiveType, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".jar"):
		return kindZip, true
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return kindTarGz, true
	case strings.HasSuffix(lower, ".tar"):
		return kindTar, true
	default:
		return 0, false
	}
}

// readTar copies a tar stream into an in-memory filesystem.
func readTar(in io.Reader, gzipped bool) (afero.Fs, error) {
	if gzipped {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		in = gz
	}

	mem := afero.NewMemMapFs()
	r := tar.NewReader(in)
	for {
		hdr, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("tar: %w", err)
		}

		name := path.Clean("/" + hdr.Name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := mem.MkdirAll(name, 0o755); err != nil {
				return nil, err
			}
		case tar.TypeReg:
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("tar: read %s: %w", hdr.Name, err)
			}
			if err := mem.MkdirAll(path.Dir(name), 0o755); err != nil {
				return nil, err
			}
			if err := afero.WriteFile(mem, name, data, os.FileMode(0o644)); err != nil {
				return nil, err
			}
		}
	}
	return mem, nil
}
