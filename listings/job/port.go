package job

import (
	"context"

	"github.com/chalkhire/chalkboard/pkg/kernel"
)

// ScoredJob is one hit of the scored pipeline; Score is always > 0
type ScoredJob struct {
	JobPosting
	Score int
}

// Repository is the document-store port. Both execution modes take the same
// CompiledQuery; the caller dispatches on query.IsScored().
type Repository interface {
	// Search executes a plain filtered, sorted, paginated query.
	// The returned total is post-filter, pre-pagination.
	Search(ctx context.Context, query CompiledQuery, pagination kernel.PaginationOptions) (*kernel.Paginated[JobPosting], error)

	// SearchScored executes the scored pipeline: pre-filter with the
	// predicate groups, score, drop zero scores, sort by (score desc,
	// requested sort), paginate.
	SearchScored(ctx context.Context, query CompiledQuery, pagination kernel.PaginationOptions) (*kernel.Paginated[ScoredJob], error)

	// Facets aggregates distinct filter values over active+approved
	// postings, ignoring any caller filter.
	Facets(ctx context.Context) (*FacetCounts, error)

	// Latest returns up to limit active postings by recency; used as the
	// fallback result set when a search matches nothing.
	Latest(ctx context.Context, limit int) ([]JobPosting, error)

	// GetByID retrieves a posting by ID
	GetByID(ctx context.Context, id kernel.JobID) (*JobPosting, error)

	// Create stores a new posting
	Create(ctx context.Context, posting *JobPosting) error

	// Update replaces an existing posting
	Update(ctx context.Context, id kernel.JobID, posting *JobPosting) error

	// Delete removes a posting permanently
	Delete(ctx context.Context, id kernel.JobID) error

	// IncrementViews bumps the monotonic view counter
	IncrementViews(ctx context.Context, id kernel.JobID) error

	// Stats computes the admin statistics snapshot
	Stats(ctx context.Context) (*JobStatsResponse, error)
}

// FacetCache holds the facet snapshot between requests. Implementations are
// best effort: a miss or error simply forces recomputation.
type FacetCache interface {
	Get(ctx context.Context) (*FacetCounts, bool)
	Set(ctx context.Context, counts *FacetCounts)
}
