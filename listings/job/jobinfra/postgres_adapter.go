package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL.
// Geospatial filtering relies on the earthdistance extension.
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

const jobColumns = `
	id, job_title, organization, description, country, city,
	position_category, position_sub_category,
	org_type_category, org_type_sub_category,
	contract, experience, education_level, subject, benefits,
	salary_minimum, salary_maximum, salary_currency, salary_disclosed,
	quick_apply, visa_sponsorship, is_new_posting, is_expiry_soon,
	is_active, is_approved, latitude, longitude,
	application_deadline, creator_type, created_by, views,
	created_at, updated_at`

type jobModel struct {
	ID                  string         `db:"id"`
	JobTitle            string         `db:"job_title"`
	Organization        string         `db:"organization"`
	Description         string         `db:"description"`
	Country             string         `db:"country"`
	City                string         `db:"city"`
	PositionCategory    string         `db:"position_category"`
	PositionSubCategory string         `db:"position_sub_category"`
	OrgTypeCategory     string         `db:"org_type_category"`
	OrgTypeSubCategory  string         `db:"org_type_sub_category"`
	Contract            string         `db:"contract"`
	Experience          string         `db:"experience"`
	EducationLevel      string         `db:"education_level"`
	Subject             string         `db:"subject"`
	Benefits            pq.StringArray `db:"benefits"`
	SalaryMinimum       *int           `db:"salary_minimum"`
	SalaryMaximum       *int           `db:"salary_maximum"`
	SalaryCurrency      string         `db:"salary_currency"`
	SalaryDisclosed     bool           `db:"salary_disclosed"`
	QuickApply          bool           `db:"quick_apply"`
	VisaSponsorship     bool           `db:"visa_sponsorship"`
	IsNewPosting        bool           `db:"is_new_posting"`
	IsExpirySoon        bool           `db:"is_expiry_soon"`
	IsActive            bool           `db:"is_active"`
	IsApproved          bool           `db:"is_approved"`
	Latitude            *float64       `db:"latitude"`
	Longitude           *float64       `db:"longitude"`
	ApplicationDeadline time.Time      `db:"application_deadline"`
	CreatorType         string         `db:"creator_type"`
	CreatedBy           string         `db:"created_by"`
	Views               int            `db:"views"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type scoredJobModel struct {
	jobModel
	SearchScore int `db:"search_score"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.JobPosting {
	posting := &job.JobPosting{
		ID:           kernel.JobID(m.ID),
		Title:        m.JobTitle,
		Organization: m.Organization,
		Description:  m.Description,
		Country:      m.Country,
		City:         m.City,
		Position: job.CategoryPair{
			Category:    m.PositionCategory,
			SubCategory: m.PositionSubCategory,
		},
		OrganizationType: job.CategoryPair{
			Category:    m.OrgTypeCategory,
			SubCategory: m.OrgTypeSubCategory,
		},
		Contract:            m.Contract,
		Experience:          m.Experience,
		EducationLevel:      m.EducationLevel,
		Subject:             m.Subject,
		Benefits:            []string(m.Benefits),
		SalaryMinimum:       m.SalaryMinimum,
		SalaryMaximum:       m.SalaryMaximum,
		SalaryCurrency:      m.SalaryCurrency,
		SalaryDisclosed:     m.SalaryDisclosed,
		QuickApply:          m.QuickApply,
		VisaSponsorship:     m.VisaSponsorship,
		IsNewPosting:        m.IsNewPosting,
		IsExpirySoon:        m.IsExpirySoon,
		IsActive:            m.IsActive,
		IsApproved:          m.IsApproved,
		ApplicationDeadline: m.ApplicationDeadline,
		CreatorType:         job.CreatorType(m.CreatorType),
		CreatedBy:           kernel.UserID(m.CreatedBy),
		Views:               m.Views,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.Latitude != nil && m.Longitude != nil {
		posting.Location = &kernel.GeoPoint{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}
	return posting
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.JobPosting) *jobModel {
	m := &jobModel{
		ID:                  string(j.ID),
		JobTitle:            j.Title,
		Organization:        j.Organization,
		Description:         j.Description,
		Country:             j.Country,
		City:                j.City,
		PositionCategory:    j.Position.Category,
		PositionSubCategory: j.Position.SubCategory,
		OrgTypeCategory:     j.OrganizationType.Category,
		OrgTypeSubCategory:  j.OrganizationType.SubCategory,
		Contract:            j.Contract,
		Experience:          j.Experience,
		EducationLevel:      j.EducationLevel,
		Subject:             j.Subject,
		Benefits:            pq.StringArray(j.Benefits),
		SalaryMinimum:       j.SalaryMinimum,
		SalaryMaximum:       j.SalaryMaximum,
		SalaryCurrency:      j.SalaryCurrency,
		SalaryDisclosed:     j.SalaryDisclosed,
		QuickApply:          j.QuickApply,
		VisaSponsorship:     j.VisaSponsorship,
		IsNewPosting:        j.IsNewPosting,
		IsExpirySoon:        j.IsExpirySoon,
		IsActive:            j.IsActive,
		IsApproved:          j.IsApproved,
		ApplicationDeadline: j.ApplicationDeadline,
		CreatorType:         string(j.CreatorType),
		CreatedBy:           string(j.CreatedBy),
		Views:               j.Views,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
	if j.Location != nil {
		m.Latitude = &j.Location.Latitude
		m.Longitude = &j.Location.Longitude
	}
	return m
}

// ============================================================================
// Query Translation
// ============================================================================

var fieldColumns = map[job.Field]string{
	job.FieldIsActive:            "is_active",
	job.FieldIsApproved:          "is_approved",
	job.FieldCountry:             "country",
	job.FieldCity:                "city",
	job.FieldPositionCategory:    "position_category",
	job.FieldPositionSubCategory: "position_sub_category",
	job.FieldOrgTypeCategory:     "org_type_category",
	job.FieldOrgTypeSubCategory:  "org_type_sub_category",
	job.FieldSubject:             "subject",
	job.FieldContract:            "contract",
	job.FieldExperience:          "experience",
	job.FieldEducationLevel:      "education_level",
	job.FieldBenefits:            "benefits",
	job.FieldSalaryMinimum:       "salary_minimum",
	job.FieldSalaryMaximum:       "salary_maximum",
	job.FieldSalaryCurrency:      "salary_currency",
	job.FieldVisaSponsorship:     "visa_sponsorship",
	job.FieldQuickApply:          "quick_apply",
	job.FieldSalaryDisclosed:     "salary_disclosed",
	job.FieldIsNewPosting:        "is_new_posting",
	job.FieldIsExpirySoon:        "is_expiry_soon",
	job.FieldCreatedAt:           "created_at",
	job.FieldApplicationDeadline: "application_deadline",
	job.FieldCreatorType:         "creator_type",
	job.FieldTitle:               "job_title",
	job.FieldOrganization:        "organization",
	job.FieldDescription:         "description",
}

// sortColumns whitelists user-supplied sort keys; anything else falls back
// to created_at
var sortColumns = map[string]string{
	"createdAt":           "created_at",
	"updatedAt":           "updated_at",
	"views":               "views",
	"jobTitle":            "job_title",
	"salaryMinimum":       "salary_minimum",
	"salaryMaximum":       "salary_maximum",
	"applicationDeadline": "application_deadline",
}

// queryBuilder accumulates WHERE fragments and positional args
type queryBuilder struct {
	args []interface{}
}

func (b *queryBuilder) bind(value interface{}) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// condition renders one predicate as a SQL fragment
func (b *queryBuilder) condition(c job.Condition) string {
	if c.Op == job.OpWithinRadius {
		radius := c.Value.(job.Radius)
		return fmt.Sprintf(
			"(latitude IS NOT NULL AND longitude IS NOT NULL AND earth_distance(ll_to_earth(latitude, longitude), ll_to_earth(%s, %s)) <= %s)",
			b.bind(radius.Center.Latitude), b.bind(radius.Center.Longitude), b.bind(radius.Meters),
		)
	}

	column := fieldColumns[c.Field]

	switch c.Op {
	case job.OpEquals:
		return fmt.Sprintf("%s = %s", column, b.bind(c.Value))

	case job.OpContains:
		return fmt.Sprintf("%s ILIKE %s", column, b.bind(likePattern(c.Value.(string))))

	case job.OpInFold:
		patterns := make([]string, 0, len(c.Value.([]string)))
		for _, term := range c.Value.([]string) {
			patterns = append(patterns, likePattern(term))
		}
		if c.Field == job.FieldBenefits {
			// benefits is an array column; any element may match any term
			return fmt.Sprintf(
				"EXISTS (SELECT 1 FROM unnest(benefits) AS benefit WHERE benefit ILIKE ANY(%s))",
				b.bind(pq.Array(patterns)),
			)
		}
		return fmt.Sprintf("%s ILIKE ANY(%s)", column, b.bind(pq.Array(patterns)))

	case job.OpGTE:
		return fmt.Sprintf("%s >= %s", column, b.bind(c.Value))

	case job.OpLTE:
		return fmt.Sprintf("%s <= %s", column, b.bind(c.Value))
	}

	// unreachable for well-formed queries; match nothing rather than all
	return "FALSE"
}

// whereClause renders the AND-of-ORs predicate groups. Each group becomes a
// parenthesized OR; groups are conjoined with AND and never flattened.
func (b *queryBuilder) whereClause(groups []job.Group) string {
	if len(groups) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(groups))
	for _, group := range groups {
		parts := make([]string, 0, len(group.Any))
		for _, condition := range group.Any {
			parts = append(parts, b.condition(condition))
		}
		rendered = append(rendered, "("+strings.Join(parts, " OR ")+")")
	}
	return "WHERE " + strings.Join(rendered, " AND ")
}

// scoreExpression renders the weighted relevance sum as a SQL expression
func (b *queryBuilder) scoreExpression(spec *job.ScoringSpec) string {
	terms := make([]string, 0, len(spec.Weights))
	for _, fw := range spec.Weights {
		terms = append(terms, fmt.Sprintf(
			"CASE WHEN %s ILIKE %s THEN %d ELSE 0 END",
			fieldColumns[fw.Field], b.bind(likePattern(spec.Term)), fw.Weight,
		))
	}
	return "(" + strings.Join(terms, " + ") + ")"
}

func orderClause(sort job.SortSpec, scored bool) string {
	column, ok := sortColumns[sort.By]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if !sort.Descending {
		direction = "ASC"
	}
	// id tie-break keeps pagination deterministic under equal sort keys
	if scored {
		return fmt.Sprintf("ORDER BY search_score DESC, %s %s, id ASC", column, direction)
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}

func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Search executes a plain filtered query with count-then-select pagination
func (r *PostgresJobRepository) Search(ctx context.Context, query job.CompiledQuery, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobPosting], error) {
	builder := &queryBuilder{}
	where := builder.whereClause(query.Groups)

	// Count total
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, builder.args...); err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}

	// Get paginated results
	selectQuery := fmt.Sprintf(
		"SELECT %s FROM jobs %s %s LIMIT %s OFFSET %s",
		jobColumns, where, orderClause(query.Sort, false),
		builder.bind(pagination.PageSize), builder.bind(pagination.Offset()),
	)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, selectQuery, builder.args...); err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	entities := make([]job.JobPosting, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[job.JobPosting]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  kernel.TotalPages(total, pagination.PageSize),
		},
		Empty: len(entities) == 0,
	}, nil
}

// SearchScored executes the scored pipeline: the predicate groups pre-filter,
// the score expression ranks, zero scores are discarded
func (r *PostgresJobRepository) SearchScored(ctx context.Context, query job.CompiledQuery, pagination kernel.PaginationOptions) (*kernel.Paginated[job.ScoredJob], error) {
	if query.Scoring == nil {
		return nil, fmt.Errorf("scored search requires a scoring spec")
	}

	builder := &queryBuilder{}
	where := builder.whereClause(query.Groups)
	score := builder.scoreExpression(query.Scoring)

	inner := fmt.Sprintf(
		"SELECT %s, %s AS search_score FROM jobs %s",
		jobColumns, score, where,
	)

	// Count total matches with a positive score
	var total int
	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM (%s) scored WHERE search_score > 0", inner,
	)
	if err := r.db.GetContext(ctx, &total, countQuery, builder.args...); err != nil {
		return nil, fmt.Errorf("failed to count scored results: %w", err)
	}

	selectQuery := fmt.Sprintf(
		"SELECT * FROM (%s) scored WHERE search_score > 0 %s LIMIT %s OFFSET %s",
		inner, orderClause(query.Sort, true),
		builder.bind(pagination.PageSize), builder.bind(pagination.Offset()),
	)

	var models []scoredJobModel
	if err := r.db.SelectContext(ctx, &models, selectQuery, builder.args...); err != nil {
		return nil, fmt.Errorf("failed to search scored jobs: %w", err)
	}

	entities := make([]job.ScoredJob, 0, len(models))
	for _, model := range models {
		entities = append(entities, job.ScoredJob{
			JobPosting: *model.toEntity(),
			Score:      model.SearchScore,
		})
	}

	return &kernel.Paginated[job.ScoredJob]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  kernel.TotalPages(total, pagination.PageSize),
		},
		Empty: len(entities) == 0,
	}, nil
}

type facetModel struct {
	TotalJobs         int            `db:"total_jobs"`
	ContractTypes     pq.StringArray `db:"contract_types"`
	Subjects          pq.StringArray `db:"subjects"`
	OrganizationTypes pq.StringArray `db:"organization_types"`
	Countries         pq.StringArray `db:"countries"`
	Cities            pq.StringArray `db:"cities"`
	ExperienceLevels  pq.StringArray `db:"experience_levels"`
	EducationLevels   pq.StringArray `db:"education_levels"`
}

// Facets aggregates distinct filter values over the active+approved universe
func (r *PostgresJobRepository) Facets(ctx context.Context) (*job.FacetCounts, error) {
	query := `
		SELECT
			COUNT(*) AS total_jobs,
			COALESCE(array_remove(array_agg(DISTINCT NULLIF(contract, '')), NULL), '{}') AS contract_types,
			COALESCE(array_remove(array_agg(DISTINCT NULLIF(subject, '')), NULL), '{}') AS subjects,
			COALESCE(array_remove(array_agg(DISTINCT NULLIF(org_type_category, '')), NULL), '{}') AS organization_types,
			COALESCE(array_remove(array_agg(DISTINCT NULLIF(country, '')), NULL), '{}') AS countries,
			COALESCE(array_remove(array_agg(DISTINCT NULLIF(city, '')), NULL), '{}') AS cities,
			COALESCE(array_remove(array_agg(DISTINCT NULLIF(experience, '')), NULL), '{}') AS experience_levels,
			COALESCE(array_remove(array_agg(DISTINCT NULLIF(education_level, '')), NULL), '{}') AS education_levels
		FROM jobs
		WHERE is_active = TRUE AND is_approved = TRUE
	`

	var model facetModel
	if err := r.db.GetContext(ctx, &model, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate facets: %w", err)
	}

	return &job.FacetCounts{
		TotalJobs:         model.TotalJobs,
		ContractTypes:     []string(model.ContractTypes),
		Subjects:          []string(model.Subjects),
		OrganizationTypes: []string(model.OrganizationTypes),
		Countries:         []string(model.Countries),
		Cities:            []string(model.Cities),
		ExperienceLevels:  []string(model.ExperienceLevels),
		EducationLevels:   []string(model.EducationLevels),
	}, nil
}

// Latest returns active postings by recency, capped at limit
func (r *PostgresJobRepository) Latest(ctx context.Context, limit int) ([]job.JobPosting, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`, jobColumns)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get latest jobs: %w", err)
	}

	entities := make([]job.JobPosting, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}
	return entities, nil
}

// GetByID retrieves a posting by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.JobPosting, error) {
	query := fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1", jobColumns)

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity(), nil
}

// Create stores a new posting
func (r *PostgresJobRepository) Create(ctx context.Context, posting *job.JobPosting) error {
	model := fromEntity(posting)

	query := `
		INSERT INTO jobs (
			id, job_title, organization, description, country, city,
			position_category, position_sub_category,
			org_type_category, org_type_sub_category,
			contract, experience, education_level, subject, benefits,
			salary_minimum, salary_maximum, salary_currency, salary_disclosed,
			quick_apply, visa_sponsorship, is_new_posting, is_expiry_soon,
			is_active, is_approved, latitude, longitude,
			application_deadline, creator_type, created_by, views,
			created_at, updated_at
		) VALUES (
			:id, :job_title, :organization, :description, :country, :city,
			:position_category, :position_sub_category,
			:org_type_category, :org_type_sub_category,
			:contract, :experience, :education_level, :subject, :benefits,
			:salary_minimum, :salary_maximum, :salary_currency, :salary_disclosed,
			:quick_apply, :visa_sponsorship, :is_new_posting, :is_expiry_soon,
			:is_active, :is_approved, :latitude, :longitude,
			:application_deadline, :creator_type, :created_by, :views,
			:created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return job.ErrJobAlreadyExists()
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// Update replaces an existing posting
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, posting *job.JobPosting) error {
	model := fromEntity(posting)
	model.ID = string(id)

	query := `
		UPDATE jobs SET
			job_title = :job_title,
			organization = :organization,
			description = :description,
			country = :country,
			city = :city,
			position_category = :position_category,
			position_sub_category = :position_sub_category,
			org_type_category = :org_type_category,
			org_type_sub_category = :org_type_sub_category,
			contract = :contract,
			experience = :experience,
			education_level = :education_level,
			subject = :subject,
			benefits = :benefits,
			salary_minimum = :salary_minimum,
			salary_maximum = :salary_maximum,
			salary_currency = :salary_currency,
			salary_disclosed = :salary_disclosed,
			quick_apply = :quick_apply,
			visa_sponsorship = :visa_sponsorship,
			is_new_posting = :is_new_posting,
			is_expiry_soon = :is_expiry_soon,
			is_active = :is_active,
			is_approved = :is_approved,
			latitude = :latitude,
			longitude = :longitude,
			application_deadline = :application_deadline,
			creator_type = :creator_type,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// Delete removes a posting permanently
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// IncrementViews bumps the view counter
func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

type statsOverviewModel struct {
	TotalJobs    int `db:"total_jobs"`
	ApprovedJobs int `db:"approved_jobs"`
	PendingJobs  int `db:"pending_jobs"`
	ActiveJobs   int `db:"active_jobs"`
	TotalViews   int `db:"total_views"`
}

type distributionModel struct {
	Value string `db:"value"`
	Count int    `db:"count"`
}

// Stats computes the admin statistics snapshot
func (r *PostgresJobRepository) Stats(ctx context.Context) (*job.JobStatsResponse, error) {
	var overview statsOverviewModel
	overviewQuery := `
		SELECT
			COUNT(*) AS total_jobs,
			COUNT(*) FILTER (WHERE is_approved) AS approved_jobs,
			COUNT(*) FILTER (WHERE NOT is_approved) AS pending_jobs,
			COUNT(*) FILTER (WHERE is_active) AS active_jobs,
			COALESCE(SUM(views), 0) AS total_views
		FROM jobs
	`
	if err := r.db.GetContext(ctx, &overview, overviewQuery); err != nil {
		return nil, fmt.Errorf("failed to compute job stats: %w", err)
	}

	distribution := func(column string) ([]job.DistributionEntry, error) {
		query := fmt.Sprintf(
			"SELECT %s AS value, COUNT(*) AS count FROM jobs GROUP BY %s ORDER BY count DESC",
			column, column,
		)
		var models []distributionModel
		if err := r.db.SelectContext(ctx, &models, query); err != nil {
			return nil, fmt.Errorf("failed to compute %s distribution: %w", column, err)
		}
		entries := make([]job.DistributionEntry, 0, len(models))
		for _, m := range models {
			entries = append(entries, job.DistributionEntry{Value: m.Value, Count: m.Count})
		}
		return entries, nil
	}

	contracts, err := distribution("contract")
	if err != nil {
		return nil, err
	}
	experience, err := distribution("experience")
	if err != nil {
		return nil, err
	}
	creators, err := distribution("creator_type")
	if err != nil {
		return nil, err
	}

	return &job.JobStatsResponse{
		Overview: job.StatsOverview{
			TotalJobs:    overview.TotalJobs,
			ApprovedJobs: overview.ApprovedJobs,
			PendingJobs:  overview.PendingJobs,
			ActiveJobs:   overview.ActiveJobs,
			TotalViews:   overview.TotalViews,
		},
		ContractDistribution:   contracts,
		ExperienceDistribution: experience,
		CreatorDistribution:    creators,
	}, nil
}
