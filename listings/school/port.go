package school

import (
	"context"

	"github.com/chalkhire/chalkboard/pkg/kernel"
)

type Repository interface {
	// GetByUserID retrieves the profile owned by a user; job enrichment
	// resolves postings to their school through this lookup
	GetByUserID(ctx context.Context, userID kernel.UserID) (*School, error)

	// GetByID retrieves a profile by its own ID
	GetByID(ctx context.Context, id kernel.SchoolID) (*School, error)

	// Upsert creates or replaces the profile owned by profile.UserID
	Upsert(ctx context.Context, profile *School) error

	// UpdateLogo sets the stored logo URL
	UpdateLogo(ctx context.Context, id kernel.SchoolID, logoURL string) error
}
