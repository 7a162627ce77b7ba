// Package profileparser reads .wire profile files:
//
//	syntax = "wire2";
//	package squareup.dinosaurs;
//	import "squareup/geology/period.proto";
//
//	/** Dinosaurs map to the app's own model. */
//	type squareup.dinosaurs.Dinosaur {
//	  target com.squareup.dino.Dinosaur using com.squareup.dino.DinosaurAdapter#ADAPTER;
//	  with java_package = "com.example";
//	}
package profileparser

import (
	"fmt"
	"strings"

	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/ports"
)

// Syntax is the only accepted value of the syntax declaration.
const Syntax = "wire2"

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

var _ ports.ProfileParser = (*Parser)(nil)

func (p *Parser) Parse(loc domain.Location, data string) (domain.ProfileFile, error) {
	r := &reader{loc: loc, data: data, line: 1}
	return r.readFile()
}

type reader struct {
	loc       domain.Location
	data      string
	pos       int
	line      int
	lineStart int
}

func (r *reader) readFile() (domain.ProfileFile, error) {
	file := domain.ProfileFile{Location: r.loc}
	declarations := 0

	for {
		doc, err := r.skipSpace()
		if err != nil {
			return domain.ProfileFile{}, err
		}
		if r.pos == len(r.data) {
			return file, nil
		}

		at := r.location()
		word, err := r.readWord()
		if err != nil {
			return domain.ProfileFile{}, err
		}

		switch word {
		case "syntax":
			if declarations > 0 {
				return domain.ProfileFile{}, r.errorAt(at, "'syntax' element must be the first declaration in a file")
			}
			if err := r.require('='); err != nil {
				return domain.ProfileFile{}, err
			}
			valueAt, err := r.nextLocation()
			if err != nil {
				return domain.ProfileFile{}, err
			}
			s, err := r.readString()
			if err != nil {
				return domain.ProfileFile{}, err
			}
			if s != Syntax {
				return domain.ProfileFile{}, r.errorAt(valueAt, fmt.Sprintf("expected syntax %q but was %q", Syntax, s))
			}
			if err := r.require(';'); err != nil {
				return domain.ProfileFile{}, err
			}
			file.Syntax = s

		case "package":
			if file.PackageName != "" {
				return domain.ProfileFile{}, r.errorAt(at, "too many package names")
			}
			name, err := r.readWord()
			if err != nil {
				return domain.ProfileFile{}, err
			}
			if err := r.require(';'); err != nil {
				return domain.ProfileFile{}, err
			}
			file.PackageName = name

		case "import":
			s, err := r.readString()
			if err != nil {
				return domain.ProfileFile{}, err
			}
			if err := r.require(';'); err != nil {
				return domain.ProfileFile{}, err
			}
			file.Imports = append(file.Imports, s)

		case "type":
			tc, err := r.readTypeConfig(at, doc)
			if err != nil {
				return domain.ProfileFile{}, err
			}
			file.TypeConfigs = append(file.TypeConfigs, tc)

		default:
			return domain.ProfileFile{}, r.errorAt(at, "unexpected label: "+word)
		}
		declarations++
	}
}

func (r *reader) readTypeConfig(at domain.Location, doc string) (domain.TypeConfig, error) {
	tc := domain.TypeConfig{Location: at, Documentation: doc}

	name, err := r.readWord()
	if err != nil {
		return tc, err
	}
	tc.Type = name

	if err := r.require('{'); err != nil {
		return tc, err
	}

	for {
		if _, err := r.skipSpace(); err != nil {
			return tc, err
		}
		if r.peek('}') {
			r.advance()
			return tc, nil
		}

		sub := r.location()
		word, err := r.readWord()
		if err != nil {
			return tc, err
		}

		switch word {
		case "target":
			if tc.Target != "" {
				return tc, r.errorAt(sub, "too many targets")
			}
			if tc.Target, err = r.readWord(); err != nil {
				return tc, err
			}
			usingAt, err := r.nextLocation()
			if err != nil {
				return tc, err
			}
			using, err := r.readWord()
			if err != nil {
				return tc, err
			}
			if using != "using" {
				return tc, r.errorAt(usingAt, "expected 'using'")
			}
			adapterType, err := r.readWord()
			if err != nil {
				return tc, err
			}
			if err := r.require('#'); err != nil {
				return tc, err
			}
			constant, err := r.readWord()
			if err != nil {
				return tc, err
			}
			if err := r.require(';'); err != nil {
				return tc, err
			}
			tc.Adapter = adapterType + "#" + constant

		case "with":
			opt, err := r.readOption(sub)
			if err != nil {
				return tc, err
			}
			tc.With = append(tc.With, opt)

		default:
			return tc, r.errorAt(sub, "unexpected label: "+word)
		}
	}
}

func (r *reader) readOption(at domain.Location) (domain.Option, error) {
	name, err := r.readWord()
	if err != nil {
		return domain.Option{}, err
	}
	if err := r.require('='); err != nil {
		return domain.Option{}, err
	}

	var value string
	if _, err := r.skipSpace(); err != nil {
		return domain.Option{}, err
	}
	if r.peek('"') || r.peek('\'') {
		value, err = r.readString()
	} else {
		value, err = r.readWord()
	}
	if err != nil {
		return domain.Option{}, err
	}
	if err := r.require(';'); err != nil {
		return domain.Option{}, err
	}
	return domain.Option{Location: at, Name: name, Value: value}, nil
}

// skipSpace skips whitespace and comments, returning the text of the last comment block
// seen so it can be attached to the following declaration.
func (r *reader) skipSpace() (string, error) {
	var doc []string
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		switch {
		case c == '\n':
			r.advance()
		case c == ' ' || c == '\t' || c == '\r':
			r.advance()
		case strings.HasPrefix(r.data[r.pos:], "//"):
			end := strings.IndexByte(r.data[r.pos:], '\n')
			if end < 0 {
				end = len(r.data) - r.pos
			}
			doc = append(doc, strings.TrimSpace(r.data[r.pos+2:r.pos+end]))
			r.advanceBy(end)
		case strings.HasPrefix(r.data[r.pos:], "/*"):
			start := r.location()
			end := strings.Index(r.data[r.pos+2:], "*/")
			if end < 0 {
				return "", r.errorAt(start, "unterminated comment")
			}
			body := r.data[r.pos+2 : r.pos+2+end]
			doc = []string{cleanBlockComment(body)}
			r.advanceBy(end + 4)
		default:
			return strings.TrimSpace(strings.Join(doc, "\n")), nil
		}
	}
	return strings.TrimSpace(strings.Join(doc, "\n")), nil
}

func cleanBlockComment(body string) string {
	body = strings.TrimPrefix(body, "*")
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "*")
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (r *reader) readWord() (string, error) {
	if _, err := r.skipSpace(); err != nil {
		return "", err
	}
	start := r.pos
	for r.pos < len(r.data) && isWordChar(r.data[r.pos]) {
		r.advance()
	}
	if start == r.pos {
		if r.pos == len(r.data) {
			return "", r.errorAt(r.location(), "unexpected end of file")
		}
		return "", r.errorAt(r.location(), fmt.Sprintf("expected a word but was '%c'", r.data[r.pos]))
	}
	return r.data[start:r.pos], nil
}

func (r *reader) readString() (string, error) {
	if _, err := r.skipSpace(); err != nil {
		return "", err
	}
	start := r.location()
	if r.pos == len(r.data) || (r.data[r.pos] != '"' && r.data[r.pos] != '\'') {
		return "", r.errorAt(start, "expected a quoted string")
	}
	quote := r.data[r.pos]
	r.advance()

	var sb strings.Builder
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		switch {
		case c == quote:
			r.advance()
			return sb.String(), nil
		case c == '\n':
			return "", r.errorAt(start, "unterminated string")
		case c == '\\' && r.pos+1 < len(r.data):
			r.advance()
			sb.WriteByte(unescape(r.data[r.pos]))
			r.advance()
		default:
			sb.WriteByte(c)
			r.advance()
		}
	}
	return "", r.errorAt(start, "unterminated string")
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func (r *reader) require(c byte) error {
	if _, err := r.skipSpace(); err != nil {
		return err
	}
	if !r.peek(c) {
		if r.pos == len(r.data) {
			return r.errorAt(r.location(), fmt.Sprintf("expected '%c' but was end of file", c))
		}
		return r.errorAt(r.location(), fmt.Sprintf("expected '%c' but was '%c'", c, r.data[r.pos]))
	}
	r.advance()
	return nil
}

func (r *reader) peek(c byte) bool {
	return r.pos < len(r.data) && r.data[r.pos] == c
}

func (r *reader) advance() {
	if r.data[r.pos] == '\n' {
		r.line++
		r.lineStart = r.pos + 1
	}
	r.pos++
}

func (r *reader) advanceBy(n int) {
	for i := 0; i < n && r.pos < len(r.data); i++ {
		r.advance()
	}
}

// nextLocation skips ahead to the next token and returns where it starts.
func (r *reader) nextLocation() (domain.Location, error) {
	if _, err := r.skipSpace(); err != nil {
		return domain.Location{}, err
	}
	return r.location(), nil
}

func (r *reader) location() domain.Location {
	return r.loc.At(r.line, r.pos-r.lineStart+1)
}

func (r *reader) errorAt(at domain.Location, msg string) error {
	return &domain.ParseError{Location: at, Msg: msg}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '.' || c == '$'
}
