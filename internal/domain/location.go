package domain

import "strconv"

// Location identifies a file by its root (directory or archive) and a slash-separated
// path relative to that root. Line and Column are optional and zero when unknown.
type Location struct {
	Base   string
	Path   string
	Line   int
	Column int
}

// At returns a copy of the location pointing at line and column.
func (l Location) At(line, column int) Location {
	l.Line = line
	l.Column = column
	return l
}

func (l Location) String() string {
	s := l.Path
	if l.Base != "" {
		s = l.Base + "/" + l.Path
	}
	if l.Line > 0 {
		s += ":" + strconv.Itoa(l.Line)
		if l.Column > 0 {
			s += ":" + strconv.Itoa(l.Column)
		}
	}
	return s
}

// LocationSet is an insertion-ordered set of locations.
type LocationSet struct {
	seen  map[Location]struct{}
	order []Location
}

func NewLocationSet() *LocationSet {
	return &LocationSet{seen: map[Location]struct{}{}}
}

// Add reports whether loc was not already present.
func (s *LocationSet) Add(loc Location) bool {
	if s.seen == nil {
		s.seen = map[Location]struct{}{}
	}
	if _, ok := s.seen[loc]; ok {
		return false
	}
	s.seen[loc] = struct{}{}
	s.order = append(s.order, loc)
	return true
}

// All returns a snapshot of the set in insertion order.
func (s *LocationSet) All() []Location {
	out := make([]Location, len(s.order))
	copy(out, s.order)
	return out
}

func (s *LocationSet) Len() int {
	return len(s.order)
}
