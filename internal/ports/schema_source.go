package ports

import (
	"context"

	"github.com/tmulin/wire/internal/domain"
)

// SchemaSource supplies the locations of schema files.
type SchemaSource interface {
	ProtoLocations() []domain.Location
}

// SchemaScanner discovers schema files under a set of roots.
type SchemaScanner interface {
	Scan(ctx context.Context, roots []string) (domain.Schema, error)
}
