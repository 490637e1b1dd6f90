package jobsrv

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/listings/school"
	"github.com/chalkhire/chalkboard/pkg/errx"
	"github.com/chalkhire/chalkboard/pkg/iam/auth"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/chalkhire/chalkboard/pkg/logx"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// FallbackMessage is returned when a search matches nothing and the latest
// active postings are served instead
const FallbackMessage = "No jobs found, showing latest active jobs."

// JobService provides business operations for job postings
type JobService struct {
	jobRepo    job.Repository
	schoolRepo school.Repository
	facetCache job.FacetCache
	pool       *ants.Pool
}

// NewJobService creates a new instance of the job service. facetCache and
// pool may be nil: facets are then recomputed per request and enrichment
// runs inline.
func NewJobService(
	jobRepo job.Repository,
	schoolRepo school.Repository,
	facetCache job.FacetCache,
	pool *ants.Pool,
) *JobService {
	return &JobService{
		jobRepo:    jobRepo,
		schoolRepo: schoolRepo,
		facetCache: facetCache,
		pool:       pool,
	}
}

// SearchJobs runs one search request end to end: normalize the raw query
// parameters, compile them into a predicate query, execute the filtered or
// scored pipeline, fall back to the latest postings on an empty result, and
// enrich the page with school summaries.
func (s *JobService) SearchJobs(ctx context.Context, params map[string][]string) (*job.ListJobsResponse, error) {
	criteria := job.NormalizeCriteria(params)
	query := job.Compile(criteria, time.Now())
	pagination := kernel.PaginationOptions{
		Page:     criteria.Page,
		PageSize: criteria.Limit,
	}

	// Facets are independent of the caller's filter; compute them while the
	// main query runs.
	facetCh := make(chan facetResult, 1)
	go func() {
		counts, err := s.loadFacets(ctx)
		facetCh <- facetResult{counts: counts, err: err}
	}()

	var (
		views []job.JobView
		total int
	)
	if query.IsScored() {
		page, err := s.jobRepo.SearchScored(ctx, query, pagination)
		if err != nil {
			return nil, errx.Wrap(err, "failed to search jobs", errx.TypeInternal)
		}
		total = page.Page.Total
		views = make([]job.JobView, 0, len(page.Items))
		for _, hit := range page.Items {
			views = append(views, job.JobView{JobPosting: hit.JobPosting, SearchScore: hit.Score})
		}
	} else {
		page, err := s.jobRepo.Search(ctx, query, pagination)
		if err != nil {
			return nil, errx.Wrap(err, "failed to search jobs", errx.TypeInternal)
		}
		total = page.Page.Total
		views = make([]job.JobView, 0, len(page.Items))
		for _, posting := range page.Items {
			views = append(views, job.JobView{JobPosting: posting})
		}
	}

	facets := <-facetCh
	if facets.err != nil {
		return nil, facets.err
	}

	resp := &job.ListJobsResponse{
		Success:      true,
		Total:        total,
		TotalPages:   kernel.TotalPages(total, criteria.Limit),
		CurrentPage:  criteria.Page,
		Aggregations: facets.counts,
	}

	if total == 0 {
		// Nothing matched: serve the most recent active postings so the
		// board is never empty. Total stays 0 so clients can tell the
		// fallback apart from a real result set.
		latest, err := s.jobRepo.Latest(ctx, job.FallbackMaxRows)
		if err != nil {
			return nil, errx.Wrap(err, "failed to load fallback jobs", errx.TypeInternal)
		}
		views = make([]job.JobView, 0, len(latest))
		for _, posting := range latest {
			views = append(views, job.JobView{JobPosting: posting})
		}
		resp.TotalPages = 0
		resp.Message = FallbackMessage
	} else {
		s.enrich(ctx, views)
	}

	resp.Count = len(views)
	resp.Data = views
	return resp, nil
}

// GetJob retrieves a single posting, bumps its view counter and attaches the
// owning school's summary
func (s *JobService) GetJob(ctx context.Context, jobID kernel.JobID) (*job.GetJobResponse, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.IncrementViews(ctx, jobID); err != nil {
		logx.Warnf("failed to increment views for job %s: %v", jobID.String(), err)
	} else {
		posting.RecordView()
	}

	view := job.JobView{JobPosting: *posting}
	view.School = s.schoolSummary(ctx, posting.CreatedBy)

	return &job.GetJobResponse{
		Success: true,
		Data:    view,
	}, nil
}

// CreateJob creates a new job posting owned by the authenticated user
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest, authCtx *auth.AuthContext) (*job.JobPosting, error) {
	if !authCtx.Role.CanManageJobs() {
		return nil, job.ErrInsufficientPermissions().WithDetail("role", string(authCtx.Role))
	}

	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	if !req.ApplicationDeadline.After(now) {
		return nil, job.ErrDeadlinePassed().
			WithDetail("applicationDeadline", req.ApplicationDeadline.Format(time.RFC3339))
	}

	creator := req.CreatorType
	if creator == "" {
		creator = creatorForRole(authCtx.Role)
	}

	salaryDisclosed := true
	if req.SalaryDisclosed != nil {
		salaryDisclosed = *req.SalaryDisclosed
	}

	posting := &job.JobPosting{
		ID:               kernel.NewJobID(uuid.NewString()),
		Title:            req.Title,
		Organization:     req.Organization,
		Description:      req.Description,
		Country:          req.Country,
		City:             req.City,
		Position:         req.Position,
		OrganizationType: req.OrganizationType,
		Contract:         req.Contract,
		Experience:       req.Experience,
		EducationLevel:   req.EducationLevel,
		Subject:          req.Subject,
		Benefits:         req.Benefits,
		SalaryMinimum:    req.SalaryMinimum,
		SalaryMaximum:    req.SalaryMaximum,
		SalaryCurrency:   req.SalaryCurrency,
		SalaryDisclosed:  salaryDisclosed,
		QuickApply:       req.QuickApply,
		VisaSponsorship:  req.VisaSponsorship,
		IsNewPosting:     true,
		IsActive:         true,
		Location:         req.Location,

		ApplicationDeadline: req.ApplicationDeadline,
		CreatorType:         creator,
		CreatedBy:           authCtx.UserID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := posting.ValidateSalaryRange(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, posting); err != nil {
		return nil, err
	}

	return posting, nil
}

// UpdateJob applies a partial update to a posting owned by the caller
func (s *JobService) UpdateJob(ctx context.Context, jobID kernel.JobID, req job.UpdateJobRequest, authCtx *auth.AuthContext) (*job.JobPosting, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if !posting.CanBeModifiedBy(authCtx.UserID, authCtx.Role) {
		return nil, job.ErrUnauthorizedUpdate().WithDetail("job_id", jobID.String())
	}

	applyUpdate(posting, req)
	posting.UpdatedAt = time.Now()

	if err := posting.ValidateSalaryRange(); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, jobID, posting); err != nil {
		return nil, err
	}

	return posting, nil
}

// DeleteJob removes a posting owned by the caller
func (s *JobService) DeleteJob(ctx context.Context, jobID kernel.JobID, authCtx *auth.AuthContext) error {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if !posting.CanBeModifiedBy(authCtx.UserID, authCtx.Role) {
		return job.ErrUnauthorizedUpdate().WithDetail("job_id", jobID.String())
	}

	return s.jobRepo.Delete(ctx, jobID)
}

// ApproveJob toggles the admin approval flag
func (s *JobService) ApproveJob(ctx context.Context, jobID kernel.JobID, req job.ApproveJobRequest) (*job.JobPosting, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	posting.Approve(req.IsApproved)

	if err := s.jobRepo.Update(ctx, jobID, posting); err != nil {
		return nil, err
	}

	return posting, nil
}

// Stats computes the admin statistics snapshot
func (s *JobService) Stats(ctx context.Context) (*job.JobStatsResponse, error) {
	stats, err := s.jobRepo.Stats(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute job stats", errx.TypeInternal)
	}
	return stats, nil
}

// ============================================================================
// Internals
// ============================================================================

// facetResult carries the concurrent facet computation back to the request
type facetResult struct {
	counts *job.FacetCounts
	err    error
}

// loadFacets returns the facet snapshot, from cache when available. A store
// failure propagates and fails the whole search; only the cache layer is
// best effort.
func (s *JobService) loadFacets(ctx context.Context) (*job.FacetCounts, error) {
	if s.facetCache != nil {
		if counts, ok := s.facetCache.Get(ctx); ok {
			return counts, nil
		}
	}

	counts, err := s.jobRepo.Facets(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to aggregate facets", errx.TypeInternal)
	}

	if s.facetCache != nil {
		s.facetCache.Set(ctx, counts)
	}
	return counts, nil
}

// enrich attaches school summaries to a page of results. Lookups fan out on
// the worker pool, one per distinct owner, and failures leave the summary
// absent.
func (s *JobService) enrich(ctx context.Context, views []job.JobView) {
	owners := make(map[kernel.UserID][]int)
	for i := range views {
		owner := views[i].CreatedBy
		if owner.IsEmpty() {
			continue
		}
		owners[owner] = append(owners[owner], i)
	}
	if len(owners) == 0 {
		return
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for owner, indexes := range owners {
		owner, indexes := owner, indexes
		wg.Add(1)
		task := func() {
			defer wg.Done()
			summary := s.schoolSummary(ctx, owner)
			if summary == nil {
				return
			}
			mu.Lock()
			for _, i := range indexes {
				views[i].School = summary
			}
			mu.Unlock()
		}
		if s.pool == nil {
			task()
			continue
		}
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
}

func (s *JobService) schoolSummary(ctx context.Context, owner kernel.UserID) *job.SchoolSummary {
	if owner.IsEmpty() {
		return nil
	}
	profile, err := s.schoolRepo.GetByUserID(ctx, owner)
	if err != nil {
		return nil
	}
	return &job.SchoolSummary{
		Name:    profile.Name,
		City:    profile.City,
		Country: profile.Country,
		Logo:    profile.LogoURL,
	}
}

func validateCreate(req job.CreateJobRequest) error {
	missing := []string{}
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "jobTitle")
	}
	if strings.TrimSpace(req.Organization) == "" {
		missing = append(missing, "organization")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(req.Country) == "" {
		missing = append(missing, "country")
	}
	if strings.TrimSpace(req.City) == "" {
		missing = append(missing, "city")
	}
	if req.ApplicationDeadline.IsZero() {
		missing = append(missing, "applicationDeadline")
	}
	if len(missing) > 0 {
		return job.ErrInvalidRequest().WithDetail("missing_fields", strings.Join(missing, ", "))
	}
	return nil
}

func applyUpdate(posting *job.JobPosting, req job.UpdateJobRequest) {
	if req.Title != nil {
		posting.Title = *req.Title
	}
	if req.Organization != nil {
		posting.Organization = *req.Organization
	}
	if req.Description != nil {
		posting.Description = *req.Description
	}
	if req.Country != nil {
		posting.Country = *req.Country
	}
	if req.City != nil {
		posting.City = *req.City
	}
	if req.Position != nil {
		posting.Position = *req.Position
	}
	if req.OrganizationType != nil {
		posting.OrganizationType = *req.OrganizationType
	}
	if req.Contract != nil {
		posting.Contract = *req.Contract
	}
	if req.Experience != nil {
		posting.Experience = *req.Experience
	}
	if req.EducationLevel != nil {
		posting.EducationLevel = *req.EducationLevel
	}
	if req.Subject != nil {
		posting.Subject = *req.Subject
	}
	if req.Benefits != nil {
		posting.Benefits = *req.Benefits
	}
	if req.SalaryMinimum != nil {
		posting.SalaryMinimum = req.SalaryMinimum
	}
	if req.SalaryMaximum != nil {
		posting.SalaryMaximum = req.SalaryMaximum
	}
	if req.SalaryCurrency != nil {
		posting.SalaryCurrency = *req.SalaryCurrency
	}
	if req.SalaryDisclosed != nil {
		posting.SalaryDisclosed = *req.SalaryDisclosed
	}
	if req.QuickApply != nil {
		posting.QuickApply = *req.QuickApply
	}
	if req.VisaSponsorship != nil {
		posting.VisaSponsorship = *req.VisaSponsorship
	}
	if req.IsActive != nil {
		posting.IsActive = *req.IsActive
	}
	if req.Location != nil {
		posting.Location = req.Location
	}
	if req.ApplicationDeadline != nil {
		posting.ApplicationDeadline = *req.ApplicationDeadline
	}
}

func creatorForRole(role auth.Role) job.CreatorType {
	switch role {
	case auth.RoleAdmin:
		return job.CreatorTypeAdmin
	case auth.RoleSupplier:
		return job.CreatorTypeSupplier
	default:
		return job.CreatorTypeSchool
	}
}
