package job

import (
	"time"

	"github.com/chalkhire/chalkboard/pkg/iam/auth"
	"github.com/chalkhire/chalkboard/pkg/kernel"
)

// CreatorType records what kind of organization posted the job
type CreatorType string

const (
	CreatorTypeSchool   CreatorType = "School"
	CreatorTypeSupplier CreatorType = "Supplier"
	CreatorTypeAdmin    CreatorType = "Admin"
)

// CategoryPair is a category with an optional sub-category, used for both
// teaching positions and organization types
type CategoryPair struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory,omitempty"`
}

// JobPosting is the searchable job advertisement
type JobPosting struct {
	ID               kernel.JobID     `json:"id"`
	Title            string           `json:"jobTitle"`
	Organization     string           `json:"organization"`
	Description      string           `json:"description"`
	Country          string           `json:"country"`
	City             string           `json:"city"`
	Position         CategoryPair     `json:"positions"`
	OrganizationType CategoryPair     `json:"organizationTypes"`
	Contract         string           `json:"contracts"`
	Experience       string           `json:"experience"`
	EducationLevel   string           `json:"educationLevels,omitempty"`
	Subject          string           `json:"subjects,omitempty"`
	Benefits         []string         `json:"benefits,omitempty"`
	SalaryMinimum    *int             `json:"salaryMinimum,omitempty"`
	SalaryMaximum    *int             `json:"salaryMaximum,omitempty"`
	SalaryCurrency   string           `json:"salaryCurrency"`
	SalaryDisclosed  bool             `json:"salaryDisclosed"`
	QuickApply       bool             `json:"quickApply"`
	VisaSponsorship  bool             `json:"visaSponsorship"`
	IsNewPosting     bool             `json:"isNewJob"`
	IsExpirySoon     bool             `json:"isExpirySoon"`
	IsActive         bool             `json:"isActive"`
	IsApproved       bool             `json:"isApproved"`
	Location         *kernel.GeoPoint `json:"location,omitempty"`

	ApplicationDeadline time.Time     `json:"applicationDeadline"`
	CreatorType         CreatorType   `json:"jobCreatedBy"`
	CreatedBy           kernel.UserID `json:"createdBy"`
	Views               int           `json:"views"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsSearchable checks whether the posting participates in public search
func (j *JobPosting) IsSearchable() bool {
	return j.IsActive
}

// CanBeModifiedBy checks whether the caller may update or delete the posting
func (j *JobPosting) CanBeModifiedBy(userID kernel.UserID, role auth.Role) bool {
	return j.CreatedBy == userID || role.IsAdmin()
}

// ValidateSalaryRange enforces salaryMinimum <= salaryMaximum at write time.
// Search assumes the invariant and never re-checks it.
func (j *JobPosting) ValidateSalaryRange() error {
	if j.SalaryMinimum != nil && j.SalaryMaximum != nil && *j.SalaryMinimum > *j.SalaryMaximum {
		return ErrInvalidSalaryRange().
			WithDetail("salaryMinimum", *j.SalaryMinimum).
			WithDetail("salaryMaximum", *j.SalaryMaximum)
	}
	return nil
}

// Approve marks the posting as admin approved
func (j *JobPosting) Approve(approved bool) {
	j.IsApproved = approved
	j.UpdatedAt = time.Now()
}

// Deactivate scopes the posting out of search without deleting it
func (j *JobPosting) Deactivate() {
	j.IsActive = false
	j.UpdatedAt = time.Now()
}

// RecordView increments the monotonic view counter
func (j *JobPosting) RecordView() {
	j.Views++
}
