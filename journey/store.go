package journey

import (
	"context"
	"errors"

	"github.com/aamoria/wellness-api/models"
)

var (
	// ErrNotFound is returned by stores when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStale is returned by DocumentStore.Save when the journey changed since it was loaded.
	ErrStale = errors.New("journey was modified concurrently")
	// ErrExists is returned by DocumentStore.Create for a duplicate slug.
	ErrExists = errors.New("journey already exists")
)

// DocumentStore persists whole journey documents keyed by slug.
type DocumentStore interface {
	FindBySlug(ctx context.Context, slug string) (*models.Journey, error)
	List(ctx context.Context) ([]models.Journey, error)
	Create(ctx context.Context, j *models.Journey) error
	// Save writes content and settings only if the stored version still equals
	// j.Version, then increments j.Version.
	Save(ctx context.Context, j *models.Journey) error
}

// MirrorStore is the flat Product table kept loosely in sync with catalogs.
type MirrorStore interface {
	// Upsert inserts p or updates its name, description, price and images.
	// CategoryID is only applied on insert.
	Upsert(ctx context.Context, p *models.Product) error
	// Delete returns ErrNotFound when no row matched.
	Delete(ctx context.Context, id string) error
	FirstCategory(ctx context.Context) (*models.Category, error)
}
