package job

import (
	"time"

	"github.com/chalkhire/chalkboard/pkg/kernel"
)

// CreateJobRequest - DTO for creating a new job posting
type CreateJobRequest struct {
	Title            string           `json:"jobTitle" validate:"required"`
	Organization     string           `json:"organization" validate:"required"`
	Description      string           `json:"description" validate:"required"`
	Country          string           `json:"country" validate:"required"`
	City             string           `json:"city" validate:"required"`
	Position         CategoryPair     `json:"positions" validate:"required"`
	OrganizationType CategoryPair     `json:"organizationTypes" validate:"required"`
	Contract         string           `json:"contracts"`
	Experience       string           `json:"experience"`
	EducationLevel   string           `json:"educationLevels,omitempty"`
	Subject          string           `json:"subjects,omitempty"`
	Benefits         []string         `json:"benefits,omitempty"`
	SalaryMinimum    *int             `json:"salaryMinimum,omitempty"`
	SalaryMaximum    *int             `json:"salaryMaximum,omitempty"`
	SalaryCurrency   string           `json:"salaryCurrency,omitempty"`
	SalaryDisclosed  *bool            `json:"salaryDisclosed,omitempty"`
	QuickApply       bool             `json:"quickApply,omitempty"`
	VisaSponsorship  bool             `json:"visaSponsorship,omitempty"`
	Location         *kernel.GeoPoint `json:"location,omitempty"`

	ApplicationDeadline time.Time   `json:"applicationDeadline" validate:"required"`
	CreatorType         CreatorType `json:"jobCreatedBy,omitempty"`
}

// UpdateJobRequest - DTO for updating an existing posting; nil leaves a field unchanged
type UpdateJobRequest struct {
	Title            *string          `json:"jobTitle,omitempty"`
	Organization     *string          `json:"organization,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Country          *string          `json:"country,omitempty"`
	City             *string          `json:"city,omitempty"`
	Position         *CategoryPair    `json:"positions,omitempty"`
	OrganizationType *CategoryPair    `json:"organizationTypes,omitempty"`
	Contract         *string          `json:"contracts,omitempty"`
	Experience       *string          `json:"experience,omitempty"`
	EducationLevel   *string          `json:"educationLevels,omitempty"`
	Subject          *string          `json:"subjects,omitempty"`
	Benefits         *[]string        `json:"benefits,omitempty"`
	SalaryMinimum    *int             `json:"salaryMinimum,omitempty"`
	SalaryMaximum    *int             `json:"salaryMaximum,omitempty"`
	SalaryCurrency   *string          `json:"salaryCurrency,omitempty"`
	SalaryDisclosed  *bool            `json:"salaryDisclosed,omitempty"`
	QuickApply       *bool            `json:"quickApply,omitempty"`
	VisaSponsorship  *bool            `json:"visaSponsorship,omitempty"`
	IsActive         *bool            `json:"isActive,omitempty"`
	Location         *kernel.GeoPoint `json:"location,omitempty"`

	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

// ApproveJobRequest - DTO for the admin approval toggle
type ApproveJobRequest struct {
	IsApproved bool `json:"isApproved"`
}

// SchoolSummary is the denormalized owning-organization block attached to
// search results. Best effort: absent when the owner has no profile.
type SchoolSummary struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
	Logo    string `json:"logo,omitempty"`
}

// JobView is one enriched search result
type JobView struct {
	JobPosting
	School      *SchoolSummary `json:"school,omitempty"`
	SearchScore int            `json:"searchScore,omitempty"`
}

// FacetCounts is the aggregate snapshot feeding filter widgets. It is
// computed over active+approved postings only, independent of the caller's
// filter, so the UI always shows the full option space.
type FacetCounts struct {
	TotalJobs         int      `json:"totalJobs"`
	ContractTypes     []string `json:"contractTypes"`
	Subjects          []string `json:"subjects"`
	OrganizationTypes []string `json:"organizationTypes"`
	Countries         []string `json:"countries"`
	Cities            []string `json:"cities"`
	ExperienceLevels  []string `json:"experienceLevels"`
	EducationLevels   []string `json:"educationLevels"`
}

// ListJobsResponse is the search response envelope
type ListJobsResponse struct {
	Success      bool         `json:"success"`
	Count        int          `json:"count"`
	Total        int          `json:"total"`
	TotalPages   int          `json:"totalPages"`
	CurrentPage  int          `json:"currentPage"`
	Data         []JobView    `json:"data"`
	Aggregations *FacetCounts `json:"aggregations,omitempty"`
	Message      string       `json:"message,omitempty"`
}

// GetJobResponse is the single-job envelope
type GetJobResponse struct {
	Success bool    `json:"success"`
	Data    JobView `json:"data"`
}

// DistributionEntry is one bucket of a grouped count
type DistributionEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// StatsOverview summarizes the whole board for admins
type StatsOverview struct {
	TotalJobs    int `json:"totalJobs"`
	ApprovedJobs int `json:"approvedJobs"`
	PendingJobs  int `json:"pendingJobs"`
	ActiveJobs   int `json:"activeJobs"`
	TotalViews   int `json:"totalViews"`
}

// JobStatsResponse - admin statistics
type JobStatsResponse struct {
	Overview               StatsOverview       `json:"overview"`
	ContractDistribution   []DistributionEntry `json:"contractDistribution"`
	ExperienceDistribution []DistributionEntry `json:"experienceDistribution"`
	CreatorDistribution    []DistributionEntry `json:"creatorDistribution"`
}
