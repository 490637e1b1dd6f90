package jobsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/listings/job/jobinfra"
	"github.com/chalkhire/chalkboard/listings/school"
	"github.com/chalkhire/chalkboard/listings/school/schoolinfra"
	"github.com/chalkhire/chalkboard/pkg/iam/auth"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticFacetCache is a FacetCache test double recording hits and misses
type staticFacetCache struct {
	counts *job.FacetCounts
	sets   int
}

func (c *staticFacetCache) Get(ctx context.Context) (*job.FacetCounts, bool) {
	if c.counts == nil {
		return nil, false
	}
	return c.counts, true
}

func (c *staticFacetCache) Set(ctx context.Context, counts *job.FacetCounts) {
	c.counts = counts
	c.sets++
}

func intPtr(v int) *int { return &v }

func fixture(t *testing.T) (*JobService, *jobinfra.MemoryJobRepository, *schoolinfra.MemorySchoolRepository) {
	t.Helper()
	jobRepo := jobinfra.NewMemoryJobRepository()
	schoolRepo := schoolinfra.NewMemorySchoolRepository()
	svc := NewJobService(jobRepo, schoolRepo, nil, nil)
	return svc, jobRepo, schoolRepo
}

func seedPosting(t *testing.T, repo *jobinfra.MemoryJobRepository, id, title, org, desc, country, city string, mutate func(*job.JobPosting)) *job.JobPosting {
	t.Helper()
	p := &job.JobPosting{
		ID:                  kernel.NewJobID(id),
		Title:               title,
		Organization:        org,
		Description:         desc,
		Country:             country,
		City:                city,
		Position:            job.CategoryPair{Category: "Teaching"},
		OrganizationType:    job.CategoryPair{Category: "School"},
		Contract:            "Full-Time",
		Experience:          "2-5 years",
		Subject:             "Math",
		IsActive:            true,
		IsApproved:          true,
		CreatedBy:           kernel.NewUserID("user-" + id),
		CreatedAt:           time.Now().Add(-time.Hour),
		UpdatedAt:           time.Now().Add(-time.Hour),
		ApplicationDeadline: time.Now().Add(30 * 24 * time.Hour),
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestSearchJobs_ScoredOrdering(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "algebra", "UAE", "Dubai", nil)
	seedPosting(t, jobRepo, "b", "Science Teacher", "Horizon", "physics", "Qatar", "Doha", nil)
	seedPosting(t, jobRepo, "c", "Math Lead", "Sunrise", "math curriculum", "UAE", "Dubai", func(p *job.JobPosting) {
		p.IsActive = false
	})

	resp, err := svc.SearchJobs(ctx, map[string][]string{"search": {"math"}})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Math Teacher", resp.Data[0].Title)
	assert.Equal(t, 10, resp.Data[0].SearchScore)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Empty(t, resp.Message)

	t.Run("scores never increase down the page", func(t *testing.T) {
		seedPosting(t, jobRepo, "d", "Assistant", "Math House", "x", "UAE", "Dubai", nil)
		seedPosting(t, jobRepo, "e", "Tutor", "Y", "loves math", "UAE", "Dubai", nil)

		resp, err := svc.SearchJobs(ctx, map[string][]string{"search": {"math"}})
		require.NoError(t, err)
		require.Len(t, resp.Data, 3)
		for i := 1; i < len(resp.Data); i++ {
			assert.GreaterOrEqual(t, resp.Data[i-1].SearchScore, resp.Data[i].SearchScore)
		}
	})
}

func TestSearchJobs_FilterConjunction(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	seedPosting(t, jobRepo, "dubai-math", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", nil)
	seedPosting(t, jobRepo, "doha-math", "Math Teacher", "Horizon", "x", "Qatar", "Doha", nil)
	seedPosting(t, jobRepo, "dubai-art", "Art Teacher", "Palette", "x", "UAE", "Dubai", func(p *job.JobPosting) {
		p.Subject = "Art"
	})

	resp, err := svc.SearchJobs(ctx, map[string][]string{
		"location": {"Dubai"},
		"subjects": {"Math"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "dubai-math", resp.Data[0].ID.String())
}

func TestSearchJobs_SalaryBounds(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	seedPosting(t, jobRepo, "affordable", "Teacher", "A", "x", "UAE", "Dubai", func(p *job.JobPosting) {
		p.SalaryMinimum = intPtr(4000)
		p.SalaryMaximum = intPtr(7000)
	})
	seedPosting(t, jobRepo, "premium", "Teacher", "B", "x", "UAE", "Dubai", func(p *job.JobPosting) {
		p.SalaryMinimum = intPtr(9000)
		p.SalaryMaximum = intPtr(12000)
	})

	resp, err := svc.SearchJobs(ctx, map[string][]string{
		"salaryMin": {"3000"},
		"salaryMax": {"8000"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "affordable", resp.Data[0].ID.String())
}

func TestSearchJobs_Fallback(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	for i := 0; i < 8; i++ {
		seedPosting(t, jobRepo, string(rune('a'+i)), "Teacher", "Org", "x", "UAE", "Dubai", nil)
	}

	resp, err := svc.SearchJobs(ctx, map[string][]string{"location": {"Atlantis"}})
	require.NoError(t, err)

	// Total stays zero so the fallback is distinguishable from a result set
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 0, resp.TotalPages)
	assert.Equal(t, FallbackMessage, resp.Message)
	assert.LessOrEqual(t, len(resp.Data), job.FallbackMaxRows)
	assert.Equal(t, len(resp.Data), resp.Count)
	for _, view := range resp.Data {
		assert.True(t, view.IsActive)
	}
}

func TestSearchJobs_Pagination(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	for i := 0; i < 25; i++ {
		seedPosting(t, jobRepo, string(rune('a'+i)), "Teacher", "Org", "x", "UAE", "Dubai", nil)
	}

	resp, err := svc.SearchJobs(ctx, map[string][]string{"page": {"3"}, "limit": {"10"}})
	require.NoError(t, err)

	assert.Equal(t, 25, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 3, resp.CurrentPage)
	assert.Equal(t, 5, resp.Count)
}

func TestSearchJobs_FacetsIgnoreFilters(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", nil)
	seedPosting(t, jobRepo, "b", "Science Teacher", "Horizon", "x", "Qatar", "Doha", func(p *job.JobPosting) {
		p.Subject = "Science"
	})

	resp, err := svc.SearchJobs(ctx, map[string][]string{"subjects": {"Math"}})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Aggregations)
	// Aggregations still cover the full approved board
	assert.Equal(t, 2, resp.Aggregations.TotalJobs)
	assert.ElementsMatch(t, []string{"Math", "Science"}, resp.Aggregations.Subjects)
}

// facetFailingRepo simulates a store whose facet aggregation is down while
// everything else works
type facetFailingRepo struct {
	*jobinfra.MemoryJobRepository
}

func (r *facetFailingRepo) Facets(ctx context.Context) (*job.FacetCounts, error) {
	return nil, errors.New("aggregate failed")
}

func TestSearchJobs_FacetFailureFailsSearch(t *testing.T) {
	ctx := context.Background()
	jobRepo := jobinfra.NewMemoryJobRepository()
	schoolRepo := schoolinfra.NewMemorySchoolRepository()
	svc := NewJobService(&facetFailingRepo{jobRepo}, schoolRepo, nil, nil)

	seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", nil)

	// A store failure in the aggregation is a server error, not a response
	// with aggregations silently missing
	resp, err := svc.SearchJobs(ctx, map[string][]string{})
	require.Error(t, err)
	assert.Nil(t, resp)

	t.Run("cache hit sidesteps the store", func(t *testing.T) {
		cache := &staticFacetCache{counts: &job.FacetCounts{TotalJobs: 1}}
		cached := NewJobService(&facetFailingRepo{jobRepo}, schoolRepo, cache, nil)

		resp, err := cached.SearchJobs(ctx, map[string][]string{})
		require.NoError(t, err)
		require.NotNil(t, resp.Aggregations)
		assert.Equal(t, 1, resp.Aggregations.TotalJobs)
	})
}

func TestSearchJobs_FacetCache(t *testing.T) {
	ctx := context.Background()
	jobRepo := jobinfra.NewMemoryJobRepository()
	schoolRepo := schoolinfra.NewMemorySchoolRepository()
	cache := &staticFacetCache{}
	svc := NewJobService(jobRepo, schoolRepo, cache, nil)

	seedPosting(t, jobRepo, "a", "Teacher", "Org", "x", "UAE", "Dubai", nil)

	_, err := svc.SearchJobs(ctx, map[string][]string{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Second request is served from the cache, not recomputed
	_, err = svc.SearchJobs(ctx, map[string][]string{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}

func TestSearchJobs_Enrichment(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, schoolRepo := fixture(t)

	owner := kernel.NewUserID("user-a")
	require.NoError(t, schoolRepo.Upsert(ctx, &school.School{
		ID:      kernel.NewSchoolID("school-a"),
		UserID:  owner,
		Name:    "Sunrise International School",
		City:    "Dubai",
		Country: "UAE",
		LogoURL: "https://cdn.example.com/sunrise.png",
	}))

	seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", nil)
	seedPosting(t, jobRepo, "orphan", "Art Teacher", "Palette", "x", "UAE", "Dubai", nil)

	resp, err := svc.SearchJobs(ctx, map[string][]string{"sortOrder": {"asc"}})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)

	withSchool := resp.Data[0]
	require.NotNil(t, withSchool.School)
	assert.Equal(t, "Sunrise International School", withSchool.School.Name)
	assert.Equal(t, "https://cdn.example.com/sunrise.png", withSchool.School.Logo)

	// Postings whose owner has no profile ship without a summary
	assert.Nil(t, resp.Data[1].School)
}

func TestSearchJobs_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", nil)
	seedPosting(t, jobRepo, "b", "Math Tutor", "Horizon", "math", "UAE", "Dubai", nil)

	params := map[string][]string{"search": {"math"}, "location": {"Dubai"}}
	first, err := svc.SearchJobs(ctx, params)
	require.NoError(t, err)
	second, err := svc.SearchJobs(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	require.Equal(t, len(first.Data), len(second.Data))
	for i := range first.Data {
		assert.Equal(t, first.Data[i].ID, second.Data[i].ID)
		assert.Equal(t, first.Data[i].SearchScore, second.Data[i].SearchScore)
	}
}

func TestGetJob(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, schoolRepo := fixture(t)

	p := seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", nil)
	require.NoError(t, schoolRepo.Upsert(ctx, &school.School{
		ID:     kernel.NewSchoolID("school-a"),
		UserID: p.CreatedBy,
		Name:   "Sunrise",
	}))

	resp, err := svc.GetJob(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Data.Views)
	require.NotNil(t, resp.Data.School)

	resp, err = svc.GetJob(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Data.Views)

	t.Run("missing job", func(t *testing.T) {
		_, err := svc.GetJob(ctx, kernel.NewJobID("ghost"))
		assert.Error(t, err)
	})
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := fixture(t)

	schoolCtx := &auth.AuthContext{UserID: kernel.NewUserID("user-1"), Role: auth.RoleSchool}
	req := job.CreateJobRequest{
		Title:               "Math Teacher",
		Organization:        "Sunrise",
		Description:         "Teach math",
		Country:             "UAE",
		City:                "Dubai",
		ApplicationDeadline: time.Now().Add(14 * 24 * time.Hour),
	}

	t.Run("defaults applied", func(t *testing.T) {
		created, err := svc.CreateJob(ctx, req, schoolCtx)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID.String())
		assert.True(t, created.IsActive)
		assert.True(t, created.IsNewPosting)
		assert.False(t, created.IsApproved)
		assert.Equal(t, job.CreatorTypeSchool, created.CreatorType)
		assert.Equal(t, schoolCtx.UserID, created.CreatedBy)
	})

	t.Run("teacher role cannot post", func(t *testing.T) {
		_, err := svc.CreateJob(ctx, req, &auth.AuthContext{
			UserID: kernel.NewUserID("user-2"), Role: auth.RoleTeacher,
		})
		assert.Error(t, err)
	})

	t.Run("past deadline rejected", func(t *testing.T) {
		bad := req
		bad.ApplicationDeadline = time.Now().Add(-time.Hour)
		_, err := svc.CreateJob(ctx, bad, schoolCtx)
		assert.Error(t, err)
	})

	t.Run("inverted salary rejected", func(t *testing.T) {
		bad := req
		bad.SalaryMinimum = intPtr(9000)
		bad.SalaryMaximum = intPtr(5000)
		_, err := svc.CreateJob(ctx, bad, schoolCtx)
		assert.Error(t, err)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		bad := req
		bad.Title = "  "
		_, err := svc.CreateJob(ctx, bad, schoolCtx)
		assert.Error(t, err)
	})
}

func TestUpdateAndDeleteJob_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	p := seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", nil)
	owner := &auth.AuthContext{UserID: p.CreatedBy, Role: auth.RoleSchool}
	stranger := &auth.AuthContext{UserID: kernel.NewUserID("someone-else"), Role: auth.RoleSchool}
	admin := &auth.AuthContext{UserID: kernel.NewUserID("admin-1"), Role: auth.RoleAdmin}

	newTitle := "Senior Math Teacher"

	t.Run("stranger cannot update", func(t *testing.T) {
		_, err := svc.UpdateJob(ctx, p.ID, job.UpdateJobRequest{Title: &newTitle}, stranger)
		assert.Error(t, err)
	})

	t.Run("owner updates", func(t *testing.T) {
		updated, err := svc.UpdateJob(ctx, p.ID, job.UpdateJobRequest{Title: &newTitle}, owner)
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
	})

	t.Run("admin updates anyone's posting", func(t *testing.T) {
		other := "Lead Math Teacher"
		updated, err := svc.UpdateJob(ctx, p.ID, job.UpdateJobRequest{Title: &other}, admin)
		require.NoError(t, err)
		assert.Equal(t, other, updated.Title)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		assert.Error(t, svc.DeleteJob(ctx, p.ID, stranger))
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteJob(ctx, p.ID, owner))
		_, err := jobRepo.GetByID(ctx, p.ID)
		assert.Error(t, err)
	})
}

func TestApproveJob(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	p := seedPosting(t, jobRepo, "a", "Math Teacher", "Sunrise", "x", "UAE", "Dubai", func(p *job.JobPosting) {
		p.IsApproved = false
	})

	approved, err := svc.ApproveJob(ctx, p.ID, job.ApproveJobRequest{IsApproved: true})
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	revoked, err := svc.ApproveJob(ctx, p.ID, job.ApproveJobRequest{IsApproved: false})
	require.NoError(t, err)
	assert.False(t, revoked.IsApproved)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, jobRepo, _ := fixture(t)

	seedPosting(t, jobRepo, "a", "T", "O", "d", "UAE", "Dubai", func(p *job.JobPosting) { p.Views = 7 })
	seedPosting(t, jobRepo, "b", "T", "O", "d", "UAE", "Dubai", func(p *job.JobPosting) { p.IsApproved = false })

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Overview.TotalJobs)
	assert.Equal(t, 1, stats.Overview.ApprovedJobs)
	assert.Equal(t, 7, stats.Overview.TotalViews)
}
