package ports

import "github.com/tmulin/wire/internal/domain"

// ProfileParser turns the contents of a .wire file into a ProfileFile.
type ProfileParser interface {
	Parse(loc domain.Location, data string) (domain.ProfileFile, error)
}
