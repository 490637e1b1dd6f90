package jobinfra

import (
	"context"
	"testing"
	"time"

	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func posting(id, title, org, desc, city string, createdAgo time.Duration, mutate func(*job.JobPosting)) *job.JobPosting {
	p := &job.JobPosting{
		ID:                  kernel.NewJobID(id),
		Title:               title,
		Organization:        org,
		Description:         desc,
		Country:             "UAE",
		City:                city,
		Position:            job.CategoryPair{Category: "Teaching"},
		OrganizationType:    job.CategoryPair{Category: "School"},
		Contract:            "Full-Time",
		Experience:          "2-5 years",
		Subject:             "Math",
		IsActive:            true,
		IsApproved:          true,
		CreatedAt:           repoNow.Add(-createdAgo),
		UpdatedAt:           repoNow.Add(-createdAgo),
		ApplicationDeadline: repoNow.Add(30 * 24 * time.Hour),
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func seed(t *testing.T, repo *MemoryJobRepository, postings ...*job.JobPosting) {
	t.Helper()
	for _, p := range postings {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func TestMemorySearch_FilterAndSort(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	seed(t, repo,
		posting("a", "Math Teacher", "Sunrise", "teach math", "Dubai", 3*time.Hour, nil),
		posting("b", "Science Teacher", "Horizon", "teach science", "Doha", 2*time.Hour, func(p *job.JobPosting) {
			p.Country = "Qatar"
		}),
		posting("c", "History Teacher", "Old Town", "teach history", "Dubai", 1*time.Hour, func(p *job.JobPosting) {
			p.IsActive = false
		}),
	)

	q := job.Compile(job.SearchCriteria{Location: "Dubai", SortBy: "createdAt", SortDesc: true}, repoNow)
	page, err := repo.Search(ctx, q, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	// c is in Dubai but inactive, b is in Doha
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Math Teacher", page.Items[0].Title)
	assert.Equal(t, 1, page.Page.Total)
}

func TestMemorySearch_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	for i := 0; i < 25; i++ {
		seed(t, repo, posting(string(rune('a'+i)), "Teacher", "Org", "desc", "Dubai",
			time.Duration(i)*time.Minute, nil))
	}

	q := job.Compile(job.SearchCriteria{SortBy: "createdAt", SortDesc: true}, repoNow)
	page, err := repo.Search(ctx, q, kernel.PaginationOptions{Page: 3, PageSize: 10})
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 25, page.Page.Total)
	assert.Equal(t, 3, page.Page.Pages)

	beyond, err := repo.Search(ctx, q, kernel.PaginationOptions{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.True(t, beyond.Empty)
	assert.Equal(t, 25, beyond.Page.Total)
}

func TestMemorySearchScored(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	seed(t, repo,
		posting("title-hit", "Math Teacher", "Sunrise", "teach algebra", "Dubai", 3*time.Hour, nil),
		posting("org-hit", "Science Teacher", "Math Wizards", "teach science", "Dubai", 2*time.Hour, nil),
		posting("desc-hit", "Physics Teacher", "Horizon", "strong math background wanted", "Dubai", 1*time.Hour, nil),
		posting("no-hit", "Art Teacher", "Palette", "teach drawing", "Dubai", 30*time.Minute, nil),
		posting("inactive-hit", "Math Lead", "Sunrise", "math everywhere", "Dubai", 4*time.Hour, func(p *job.JobPosting) {
			p.IsActive = false
		}),
	)

	q := job.Compile(job.SearchCriteria{Search: "math", SortBy: "createdAt", SortDesc: true}, repoNow)
	page, err := repo.SearchScored(ctx, q, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	// Zero scores and inactive postings are gone; order is score descending
	require.Len(t, page.Items, 3)
	assert.Equal(t, "title-hit", page.Items[0].ID.String())
	assert.Equal(t, 10, page.Items[0].Score)
	assert.Equal(t, "org-hit", page.Items[1].ID.String())
	assert.Equal(t, 5, page.Items[1].Score)
	assert.Equal(t, "desc-hit", page.Items[2].ID.String())
	assert.Equal(t, 1, page.Items[2].Score)

	for i := 1; i < len(page.Items); i++ {
		assert.GreaterOrEqual(t, page.Items[i-1].Score, page.Items[i].Score)
	}
}

func TestMemorySearchScored_TieBreakByRequestedSort(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	seed(t, repo,
		posting("older", "Math Teacher", "A", "x", "Dubai", 5*time.Hour, nil),
		posting("newer", "Math Teacher", "B", "y", "Dubai", 1*time.Hour, nil),
	)

	q := job.Compile(job.SearchCriteria{Search: "math", SortBy: "createdAt", SortDesc: true}, repoNow)
	page, err := repo.SearchScored(ctx, q, kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "newer", page.Items[0].ID.String())
	assert.Equal(t, "older", page.Items[1].ID.String())
}

func TestMemorySearchScored_RequiresScoringSpec(t *testing.T) {
	repo := NewMemoryJobRepository()
	q := job.Compile(job.SearchCriteria{}, repoNow)
	_, err := repo.SearchScored(context.Background(), q, kernel.PaginationOptions{Page: 1, PageSize: 10})
	assert.Error(t, err)
}

func TestMemoryFacets(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	seed(t, repo,
		posting("a", "Math Teacher", "Sunrise", "x", "Dubai", 3*time.Hour, nil),
		posting("b", "Science Teacher", "Horizon", "y", "Doha", 2*time.Hour, func(p *job.JobPosting) {
			p.Country = "Qatar"
			p.Subject = "Science"
			p.Contract = "Part-Time"
		}),
		posting("c", "Art Teacher", "Palette", "z", "Dubai", 1*time.Hour, func(p *job.JobPosting) {
			p.IsApproved = false
			p.Subject = "Art"
		}),
	)

	counts, err := repo.Facets(ctx)
	require.NoError(t, err)

	// c is unapproved: it contributes to nothing
	assert.Equal(t, 2, counts.TotalJobs)
	assert.ElementsMatch(t, []string{"Math", "Science"}, counts.Subjects)
	assert.ElementsMatch(t, []string{"Full-Time", "Part-Time"}, counts.ContractTypes)
	assert.ElementsMatch(t, []string{"UAE", "Qatar"}, counts.Countries)
	assert.ElementsMatch(t, []string{"Dubai", "Doha"}, counts.Cities)
}

func TestMemoryLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	for i := 0; i < 8; i++ {
		active := i%2 == 0
		seed(t, repo, posting(string(rune('a'+i)), "Teacher", "Org", "d", "Dubai",
			time.Duration(i)*time.Hour, func(p *job.JobPosting) { p.IsActive = active }))
	}

	latest, err := repo.Latest(ctx, 3)
	require.NoError(t, err)

	require.Len(t, latest, 3)
	for i := range latest {
		assert.True(t, latest[i].IsActive)
		if i > 0 {
			assert.False(t, latest[i-1].CreatedAt.Before(latest[i].CreatedAt))
		}
	}
}

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	p := posting("a", "Math Teacher", "Sunrise", "x", "Dubai", time.Hour, func(p *job.JobPosting) {
		p.SalaryMinimum = intPtr(4000)
	})

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, p))
		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Title, got.Title)

		// Stored copy is isolated from the caller's pointer
		*got.SalaryMinimum = 1
		again, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 4000, *again.SalaryMinimum)
	})

	t.Run("duplicate create conflicts", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, p))
	})

	t.Run("update", func(t *testing.T) {
		updated := *p
		updated.Title = "Senior Math Teacher"
		require.NoError(t, repo.Update(ctx, p.ID, &updated))
		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Senior Math Teacher", got.Title)
	})

	t.Run("increment views", func(t *testing.T) {
		require.NoError(t, repo.IncrementViews(ctx, p.ID))
		require.NoError(t, repo.IncrementViews(ctx, p.ID))
		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Views)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, p.ID))
		_, err := repo.GetByID(ctx, p.ID)
		assert.Error(t, err)
		assert.Error(t, repo.Delete(ctx, p.ID))
	})

	t.Run("missing id errors", func(t *testing.T) {
		_, err := repo.GetByID(ctx, kernel.NewJobID("ghost"))
		assert.Error(t, err)
		assert.Error(t, repo.IncrementViews(ctx, kernel.NewJobID("ghost")))
		assert.Error(t, repo.Update(ctx, kernel.NewJobID("ghost"), p))
	})
}

func TestMemoryDelete_CompactsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()

	// Repeated create/delete cycles of the same ID must not accumulate
	// entries in the insertion order
	for i := 0; i < 5; i++ {
		p := posting("cycle", "T", "O", "d", "Dubai", time.Hour, nil)
		require.NoError(t, repo.Create(ctx, p))
		require.NoError(t, repo.Delete(ctx, p.ID))
	}
	assert.Empty(t, repo.order)

	keep := posting("keep", "T", "O", "d", "Dubai", time.Hour, nil)
	gone := posting("gone", "T", "O", "d", "Dubai", 2*time.Hour, nil)
	seed(t, repo, keep, gone)
	require.NoError(t, repo.Delete(ctx, gone.ID))
	assert.Equal(t, []kernel.JobID{keep.ID}, repo.order)
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	seed(t, repo,
		posting("a", "T1", "O", "d", "Dubai", time.Hour, func(p *job.JobPosting) {
			p.Views = 10
			p.CreatorType = job.CreatorTypeSchool
		}),
		posting("b", "T2", "O", "d", "Dubai", time.Hour, func(p *job.JobPosting) {
			p.IsApproved = false
			p.Views = 5
			p.Contract = "Part-Time"
			p.CreatorType = job.CreatorTypeSchool
		}),
		posting("c", "T3", "O", "d", "Dubai", time.Hour, func(p *job.JobPosting) {
			p.IsActive = false
			p.CreatorType = job.CreatorTypeAdmin
		}),
	)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Overview.TotalJobs)
	assert.Equal(t, 2, stats.Overview.ApprovedJobs)
	assert.Equal(t, 1, stats.Overview.PendingJobs)
	assert.Equal(t, 2, stats.Overview.ActiveJobs)
	assert.Equal(t, 15, stats.Overview.TotalViews)

	require.NotEmpty(t, stats.ContractDistribution)
	assert.Equal(t, "Full-Time", stats.ContractDistribution[0].Value)
	assert.Equal(t, 2, stats.ContractDistribution[0].Count)

	require.Len(t, stats.CreatorDistribution, 2)
	assert.Equal(t, string(job.CreatorTypeSchool), stats.CreatorDistribution[0].Value)
}
