package job

import (
	"time"

	"github.com/chalkhire/chalkboard/pkg/kernel"
)

// Field names a filterable attribute of a JobPosting
type Field string

const (
	FieldIsActive            Field = "isActive"
	FieldIsApproved          Field = "isApproved"
	FieldCountry             Field = "country"
	FieldCity                Field = "city"
	FieldPositionCategory    Field = "positions.category"
	FieldPositionSubCategory Field = "positions.subCategory"
	FieldOrgTypeCategory     Field = "organizationTypes.category"
	FieldOrgTypeSubCategory  Field = "organizationTypes.subCategory"
	FieldSubject             Field = "subjects"
	FieldContract            Field = "contracts"
	FieldExperience          Field = "experience"
	FieldEducationLevel      Field = "educationLevels"
	FieldBenefits            Field = "benefits"
	FieldSalaryMinimum       Field = "salaryMinimum"
	FieldSalaryMaximum       Field = "salaryMaximum"
	FieldSalaryCurrency      Field = "salaryCurrency"
	FieldVisaSponsorship     Field = "visaSponsorship"
	FieldQuickApply          Field = "quickApply"
	FieldSalaryDisclosed     Field = "salaryDisclosed"
	FieldIsNewPosting        Field = "isNewJob"
	FieldIsExpirySoon        Field = "isExpirySoon"
	FieldCreatedAt           Field = "createdAt"
	FieldApplicationDeadline Field = "applicationDeadline"
	FieldCreatorType         Field = "jobCreatedBy"
	FieldGeoLocation         Field = "location"
	FieldTitle               Field = "jobTitle"
	FieldOrganization        Field = "organization"
	FieldDescription         Field = "description"
)

// Op is a comparison operator applied to a Field
type Op string

const (
	// OpEquals is exact equality
	OpEquals Op = "eq"
	// OpContains is case-insensitive substring match
	OpContains Op = "contains"
	// OpInFold matches when the field contains any of a list of terms,
	// case-insensitively. On multi-valued fields any element may match.
	OpInFold Op = "in_fold"
	// OpGTE / OpLTE are ordered comparisons (numbers and times)
	OpGTE Op = "gte"
	OpLTE Op = "lte"
	// OpWithinRadius matches points within Radius of the query center
	OpWithinRadius Op = "within_radius"
)

// Condition is a single field comparison
type Condition struct {
	Field Field
	Op    Op
	Value any
}

// Radius is the value carried by an OpWithinRadius condition
type Radius struct {
	Center kernel.GeoPoint
	Meters float64
}

// Group is a set of conditions combined with OR: one filter dimension
type Group struct {
	Any []Condition
}

// SortSpec is the requested result ordering
type SortSpec struct {
	By         string
	Descending bool
}

// FieldWeight assigns a relevance weight to one scored field
type FieldWeight struct {
	Field  Field
	Weight int
}

// ScoringSpec activates scoring mode: records are ranked by the summed
// weights of fields containing Term, and zero-score records are dropped.
// Predicate groups act as a pre-filter before scoring, never after.
type ScoringSpec struct {
	Term    string
	Weights []FieldWeight
}

// Relevance weights: a title hit outranks any combination of the others
var defaultWeights = []FieldWeight{
	{Field: FieldTitle, Weight: 10},
	{Field: FieldOrganization, Weight: 5},
	{Field: FieldDescription, Weight: 1},
}

// CompiledQuery is the executable form of a search request: an AND over
// OR-groups, a sort, and an optional scoring spec. The two execution modes
// (plain filter vs scored pipeline) are distinguished by Scoring being nil.
type CompiledQuery struct {
	Groups  []Group
	Sort    SortSpec
	Scoring *ScoringSpec
}

// IsScored reports whether the scored pipeline must be used
func (q CompiledQuery) IsScored() bool {
	return q.Scoring != nil
}

func equals(field Field, value any) Group {
	return Group{Any: []Condition{{Field: field, Op: OpEquals, Value: value}}}
}

func single(field Field, op Op, value any) Group {
	return Group{Any: []Condition{{Field: field, Op: op, Value: value}}}
}

// Compile turns SearchCriteria into a CompiledQuery. Independent filter
// dimensions combine with AND; values within one dimension combine with OR.
// Each dimension contributes its own group; groups are conjoined once, so
// adding a third or fourth OR-dimension cannot disturb the ones before it.
// now is injected so date windows are deterministic under test.
func Compile(c SearchCriteria, now time.Time) CompiledQuery {
	q := CompiledQuery{
		Sort: SortSpec{By: c.SortBy, Descending: c.SortDesc},
	}

	// 1. Base: inactive postings never surface
	q.Groups = append(q.Groups, equals(FieldIsActive, true))

	// 2. A free-text term switches to scoring mode instead of hard-filtering
	// title/organization/description
	if c.Search != "" {
		q.Scoring = &ScoringSpec{Term: c.Search, Weights: defaultWeights}
	}

	// 3. Location: the single term may match either country or city
	if c.Location != "" {
		q.Groups = append(q.Groups, Group{Any: []Condition{
			{Field: FieldCountry, Op: OpContains, Value: c.Location},
			{Field: FieldCity, Op: OpContains, Value: c.Location},
		}})
	}

	// 4. Positions: any listed term against category or sub-category
	if len(c.Positions) > 0 {
		q.Groups = append(q.Groups, Group{Any: []Condition{
			{Field: FieldPositionCategory, Op: OpInFold, Value: c.Positions},
			{Field: FieldPositionSubCategory, Op: OpInFold, Value: c.Positions},
		}})
	}

	// 5. Organization types: same shape as positions
	if len(c.OrganizationTypes) > 0 {
		q.Groups = append(q.Groups, Group{Any: []Condition{
			{Field: FieldOrgTypeCategory, Op: OpInFold, Value: c.OrganizationTypes},
			{Field: FieldOrgTypeSubCategory, Op: OpInFold, Value: c.OrganizationTypes},
		}})
	}

	// 6. Direct IN filters
	if len(c.Subjects) > 0 {
		q.Groups = append(q.Groups, single(FieldSubject, OpInFold, c.Subjects))
	}
	if len(c.Contracts) > 0 {
		q.Groups = append(q.Groups, single(FieldContract, OpInFold, c.Contracts))
	}
	if len(c.Experience) > 0 {
		q.Groups = append(q.Groups, single(FieldExperience, OpInFold, c.Experience))
	}
	if len(c.EducationLevels) > 0 {
		q.Groups = append(q.Groups, single(FieldEducationLevel, OpInFold, c.EducationLevels))
	}
	if len(c.Benefits) > 0 {
		q.Groups = append(q.Groups, single(FieldBenefits, OpInFold, c.Benefits))
	}

	// 7. Salary bounds & currency
	if c.SalaryMin != nil {
		q.Groups = append(q.Groups, single(FieldSalaryMinimum, OpGTE, *c.SalaryMin))
	}
	if c.SalaryMax != nil {
		q.Groups = append(q.Groups, single(FieldSalaryMaximum, OpLTE, *c.SalaryMax))
	}
	if c.SalaryCurrency != "" {
		q.Groups = append(q.Groups, single(FieldSalaryCurrency, OpContains, c.SalaryCurrency))
	}

	// 8. Boolean flags, present only when the request literal was "true"
	if c.VisaSponsorship {
		q.Groups = append(q.Groups, equals(FieldVisaSponsorship, true))
	}
	if c.QuickApply {
		q.Groups = append(q.Groups, equals(FieldQuickApply, true))
	}
	if c.SalaryDisclosed {
		q.Groups = append(q.Groups, equals(FieldSalaryDisclosed, true))
	}
	if c.IsNew {
		q.Groups = append(q.Groups, equals(FieldIsNewPosting, true))
	}
	if c.IsExpirySoon {
		q.Groups = append(q.Groups, equals(FieldIsExpirySoon, true))
	}

	// 9. Date windows
	if cutoff, ok := datePostedCutoff(c.DatePosted, now); ok {
		q.Groups = append(q.Groups, single(FieldCreatedAt, OpGTE, cutoff))
	}
	if from, to, ok := deadlineWindow(c.ApplicationDeadline, now); ok {
		q.Groups = append(q.Groups,
			single(FieldApplicationDeadline, OpGTE, from),
			single(FieldApplicationDeadline, OpLTE, to),
		)
	}

	// 10. Approval & creator type
	if c.IsApproved != nil {
		q.Groups = append(q.Groups, equals(FieldIsApproved, *c.IsApproved))
	}
	if c.JobCreatedBy != "" {
		q.Groups = append(q.Groups, equals(FieldCreatorType, c.JobCreatedBy))
	}

	// 11. Geospatial radius; pre-filters but never reorders scored results
	if c.HasGeoFilter() {
		q.Groups = append(q.Groups, single(FieldGeoLocation, OpWithinRadius, Radius{
			Center: kernel.GeoPoint{Latitude: *c.Latitude, Longitude: *c.Longitude},
			Meters: float64(*c.DistanceKM) * 1000,
		}))
	}

	return q
}

// datePostedCutoff maps the datePosted keyword to a createdAt lower bound
func datePostedCutoff(keyword string, now time.Time) (time.Time, bool) {
	switch keyword {
	case "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.Add(-7 * 24 * time.Hour), true
	case "month":
		return now.Add(-30 * 24 * time.Hour), true
	case "3months":
		return now.Add(-90 * 24 * time.Hour), true
	}
	return time.Time{}, false
}

// deadlineWindow maps the applicationDeadline keyword to an absolute window
func deadlineWindow(keyword string, now time.Time) (time.Time, time.Time, bool) {
	switch keyword {
	case "today":
		year, month, day := now.Date()
		start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		return start, start.Add(24*time.Hour - time.Nanosecond), true
	case "week":
		return now, now.Add(7 * 24 * time.Hour), true
	case "month":
		return now, now.Add(30 * 24 * time.Hour), true
	}
	return time.Time{}, time.Time{}, false
}
