package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrReadFailure        = errors.New("read failure")
	ErrUnsupportedArchive = errors.New("unsupported archive")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindReadFailure   ErrorKind = "read_failure"
	KindParseFailure  ErrorKind = "parse_failure"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Root string // Optional: root the path belongs to
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	switch {
	case e.Root != "" && e.Path != "":
		base += fmt.Sprintf(" (path=%s, root=%s)", e.Path, e.Root)
	case e.Path != "":
		base += fmt.Sprintf(" (path=%s)", e.Path)
	case e.Root != "":
		base += fmt.Sprintf(" (root=%s)", e.Root)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError is returned by profile parsers when a file's contents are rejected.
type ParseError struct {
	Location Location
	Msg      string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("syntax error in %s: %s", e.Location, e.Msg)
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return kind == KindParseFailure
	}
	return false
}
