package domain

import (
	"fmt"
	"strings"
)

// ProfileExt is the file extension of profile files.
const ProfileExt = ".wire"

// ProfileFileName returns the file name a profile is stored under, e.g. "android.wire".
func ProfileFileName(name string) string {
	return name + ProfileExt
}

// ValidateProfileName rejects names that cannot be used verbatim as a file stem.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name is empty: %w", ErrInvalidConfig)
	}
	if strings.ContainsAny(name, "/\\ \t\r\n") {
		return fmt.Errorf("profile name %q must not contain separators or whitespace: %w", name, ErrInvalidConfig)
	}
	return nil
}

// CandidateSet maps each root to the profile paths that might exist beneath it.
// Roots and per-root paths keep first-seen order; duplicates are ignored.
type CandidateSet struct {
	roots []string
	paths map[string][]string
	seen  map[string]map[string]struct{}
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{
		paths: map[string][]string{},
		seen:  map[string]map[string]struct{}{},
	}
}

// Add reports whether path was new for root.
func (c *CandidateSet) Add(root, path string) bool {
	seen, ok := c.seen[root]
	if !ok {
		seen = map[string]struct{}{}
		c.seen[root] = seen
		c.roots = append(c.roots, root)
	}
	if _, dup := seen[path]; dup {
		return false
	}
	seen[path] = struct{}{}
	c.paths[root] = append(c.paths[root], path)
	return true
}

func (c *CandidateSet) Roots() []string {
	out := make([]string, len(c.roots))
	copy(out, c.roots)
	return out
}

func (c *CandidateSet) Paths(root string) []string {
	p := c.paths[root]
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// Len returns the number of candidates across all roots.
func (c *CandidateSet) Len() int {
	n := 0
	for _, p := range c.paths {
		n += len(p)
	}
	return n
}

// DeriveCandidates computes every profile file that could apply to the given schema
// locations. No filesystem access happens here.
func DeriveCandidates(locations []Location, profileName string) *CandidateSet {
	set := NewCandidateSet()
	for _, loc := range locations {
		AppendCandidates(set, loc, profileName)
	}
	return set
}

// AppendCandidates adds the candidates for a single schema location to set. It starts at
// the file's parent directory and walks up to the root, one level at a time:
//
//	a/b/c.proto -> a/b/android.wire, a/android.wire, android.wire
func AppendCandidates(set *CandidateSet, loc Location, profileName string) {
	file := ProfileFileName(profileName)

	p := loc.Path
	for p != "" {
		parent := p[:strings.LastIndex(p[:len(p)-1], "/")+1]
		set.Add(loc.Base, parent+file)
		p = parent
	}
}
