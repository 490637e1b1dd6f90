package jobinfra

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/pkg/kernel"
)

// MemoryJobRepository implements job.Repository in memory. It evaluates the
// same predicate trees the Postgres adapter translates to SQL, which lets
// the engine be exercised without a database.
type MemoryJobRepository struct {
	mu    sync.RWMutex
	jobs  map[kernel.JobID]*job.JobPosting
	order []kernel.JobID
}

// NewMemoryJobRepository creates an empty in-memory repository
func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{
		jobs: make(map[kernel.JobID]*job.JobPosting),
	}
}

func clone(j *job.JobPosting) *job.JobPosting {
	copied := *j
	if j.Benefits != nil {
		copied.Benefits = append([]string(nil), j.Benefits...)
	}
	if j.Location != nil {
		point := *j.Location
		copied.Location = &point
	}
	if j.SalaryMinimum != nil {
		v := *j.SalaryMinimum
		copied.SalaryMinimum = &v
	}
	if j.SalaryMaximum != nil {
		v := *j.SalaryMaximum
		copied.SalaryMaximum = &v
	}
	return &copied
}

// snapshot returns postings in insertion order
func (r *MemoryJobRepository) snapshot() []*job.JobPosting {
	out := make([]*job.JobPosting, 0, len(r.order))
	for _, id := range r.order {
		if posting, ok := r.jobs[id]; ok {
			out = append(out, posting)
		}
	}
	return out
}

// sortKey extracts the comparable value for the requested sort field
func sortKey(j *job.JobPosting, by string) any {
	switch by {
	case "views":
		return j.Views
	case "jobTitle":
		return j.Title
	case "updatedAt":
		return j.UpdatedAt
	case "applicationDeadline":
		return j.ApplicationDeadline
	case "salaryMinimum":
		if j.SalaryMinimum == nil {
			return 0
		}
		return *j.SalaryMinimum
	case "salaryMaximum":
		if j.SalaryMaximum == nil {
			return 0
		}
		return *j.SalaryMaximum
	default:
		return j.CreatedAt
	}
}

// less compares two sort keys of the same field
func less(a, b any) bool {
	switch av := a.(type) {
	case int:
		return av < b.(int)
	case string:
		return strings.Compare(av, b.(string)) < 0
	case time.Time:
		return av.Before(b.(time.Time))
	}
	return false
}

func sortPostings(postings []*job.JobPosting, spec job.SortSpec) {
	sort.SliceStable(postings, func(i, k int) bool {
		a := sortKey(postings[i], spec.By)
		b := sortKey(postings[k], spec.By)
		if spec.Descending {
			return less(b, a)
		}
		return less(a, b)
	})
}

func paginate[T any](items []T, pagination kernel.PaginationOptions) []T {
	start := pagination.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + pagination.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Search executes a plain filtered query
func (r *MemoryJobRepository) Search(ctx context.Context, query job.CompiledQuery, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobPosting], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*job.JobPosting
	for _, posting := range r.snapshot() {
		if query.MatchesFilter(posting) {
			matched = append(matched, posting)
		}
	}
	sortPostings(matched, query.Sort)

	total := len(matched)
	page := paginate(matched, pagination)

	items := make([]job.JobPosting, 0, len(page))
	for _, posting := range page {
		items = append(items, *clone(posting))
	}

	return &kernel.Paginated[job.JobPosting]{
		Items: items,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  kernel.TotalPages(total, pagination.PageSize),
		},
		Empty: len(items) == 0,
	}, nil
}

// SearchScored executes the scored pipeline: pre-filter, score, drop zeros,
// sort score-first with the requested sort as tie-break
func (r *MemoryJobRepository) SearchScored(ctx context.Context, query job.CompiledQuery, pagination kernel.PaginationOptions) (*kernel.Paginated[job.ScoredJob], error) {
	if query.Scoring == nil {
		return nil, job.ErrInvalidRequest().WithDetail("scoring", "missing scoring spec")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*job.JobPosting
	for _, posting := range r.snapshot() {
		if query.MatchesFilter(posting) {
			filtered = append(filtered, posting)
		}
	}
	sortPostings(filtered, query.Sort)

	var hits []job.ScoredJob
	for _, posting := range filtered {
		if score := query.Scoring.Score(posting); score > 0 {
			hits = append(hits, job.ScoredJob{JobPosting: *clone(posting), Score: score})
		}
	}
	// score is always the primary key; the requested sort only breaks ties
	sort.SliceStable(hits, func(i, k int) bool {
		return hits[i].Score > hits[k].Score
	})

	total := len(hits)
	page := paginate(hits, pagination)

	return &kernel.Paginated[job.ScoredJob]{
		Items: page,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  kernel.TotalPages(total, pagination.PageSize),
		},
		Empty: len(page) == 0,
	}, nil
}

func appendDistinct(set map[string]struct{}, values *[]string, value string) {
	if value == "" {
		return
	}
	if _, seen := set[value]; seen {
		return
	}
	set[value] = struct{}{}
	*values = append(*values, value)
}

// Facets aggregates distinct filter values over active+approved postings,
// ignoring any caller filter
func (r *MemoryJobRepository) Facets(ctx context.Context) (*job.FacetCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := &job.FacetCounts{
		ContractTypes:     []string{},
		Subjects:          []string{},
		OrganizationTypes: []string{},
		Countries:         []string{},
		Cities:            []string{},
		ExperienceLevels:  []string{},
		EducationLevels:   []string{},
	}
	sets := map[string]map[string]struct{}{
		"contract":   {},
		"subject":    {},
		"orgType":    {},
		"country":    {},
		"city":       {},
		"experience": {},
		"education":  {},
	}

	for _, posting := range r.snapshot() {
		if !posting.IsActive || !posting.IsApproved {
			continue
		}
		counts.TotalJobs++
		appendDistinct(sets["contract"], &counts.ContractTypes, posting.Contract)
		appendDistinct(sets["subject"], &counts.Subjects, posting.Subject)
		appendDistinct(sets["orgType"], &counts.OrganizationTypes, posting.OrganizationType.Category)
		appendDistinct(sets["country"], &counts.Countries, posting.Country)
		appendDistinct(sets["city"], &counts.Cities, posting.City)
		appendDistinct(sets["experience"], &counts.ExperienceLevels, posting.Experience)
		appendDistinct(sets["education"], &counts.EducationLevels, posting.EducationLevel)
	}

	return counts, nil
}

// Latest returns active postings by recency, capped at limit
func (r *MemoryJobRepository) Latest(ctx context.Context, limit int) ([]job.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []*job.JobPosting
	for _, posting := range r.snapshot() {
		if posting.IsActive {
			active = append(active, posting)
		}
	}
	sortPostings(active, job.SortSpec{By: "createdAt", Descending: true})

	if len(active) > limit {
		active = active[:limit]
	}
	out := make([]job.JobPosting, 0, len(active))
	for _, posting := range active {
		out = append(out, *clone(posting))
	}
	return out, nil
}

// GetByID retrieves a posting by ID
func (r *MemoryJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posting, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return clone(posting), nil
}

// Create stores a new posting
func (r *MemoryJobRepository) Create(ctx context.Context, posting *job.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[posting.ID]; exists {
		return job.ErrJobAlreadyExists()
	}
	r.jobs[posting.ID] = clone(posting)
	r.order = append(r.order, posting.ID)
	return nil
}

// Update replaces an existing posting
func (r *MemoryJobRepository) Update(ctx context.Context, id kernel.JobID, posting *job.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[id]; !exists {
		return job.ErrJobNotFound()
	}
	updated := clone(posting)
	updated.ID = id
	r.jobs[id] = updated
	return nil
}

// Delete removes a posting permanently
func (r *MemoryJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[id]; !exists {
		return job.ErrJobNotFound()
	}
	delete(r.jobs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// IncrementViews bumps the view counter
func (r *MemoryJobRepository) IncrementViews(ctx context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posting, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound()
	}
	posting.Views++
	return nil
}

// Stats computes the admin statistics snapshot
func (r *MemoryJobRepository) Stats(ctx context.Context) (*job.JobStatsResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &job.JobStatsResponse{}
	contracts := map[string]int{}
	experience := map[string]int{}
	creators := map[string]int{}

	for _, posting := range r.snapshot() {
		stats.Overview.TotalJobs++
		if posting.IsApproved {
			stats.Overview.ApprovedJobs++
		} else {
			stats.Overview.PendingJobs++
		}
		if posting.IsActive {
			stats.Overview.ActiveJobs++
		}
		stats.Overview.TotalViews += posting.Views
		contracts[posting.Contract]++
		experience[posting.Experience]++
		creators[string(posting.CreatorType)]++
	}

	toEntries := func(counts map[string]int) []job.DistributionEntry {
		entries := make([]job.DistributionEntry, 0, len(counts))
		for value, count := range counts {
			entries = append(entries, job.DistributionEntry{Value: value, Count: count})
		}
		sort.Slice(entries, func(i, k int) bool {
			if entries[i].Count != entries[k].Count {
				return entries[i].Count > entries[k].Count
			}
			return entries[i].Value < entries[k].Value
		})
		return entries
	}

	stats.ContractDistribution = toEntries(contracts)
	stats.ExperienceDistribution = toEntries(experience)
	stats.CreatorDistribution = toEntries(creators)
	return stats, nil
}
