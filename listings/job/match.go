package job

import (
	"strings"
	"time"
)

// fieldValues returns the comparable values a posting exposes for a field.
// Multi-valued fields (benefits) return every element; absent optional
// fields return nil so no operator can match them.
func (j *JobPosting) fieldValues(field Field) []any {
	switch field {
	case FieldIsActive:
		return []any{j.IsActive}
	case FieldIsApproved:
		return []any{j.IsApproved}
	case FieldCountry:
		return []any{j.Country}
	case FieldCity:
		return []any{j.City}
	case FieldPositionCategory:
		return []any{j.Position.Category}
	case FieldPositionSubCategory:
		return []any{j.Position.SubCategory}
	case FieldOrgTypeCategory:
		return []any{j.OrganizationType.Category}
	case FieldOrgTypeSubCategory:
		return []any{j.OrganizationType.SubCategory}
	case FieldSubject:
		return []any{j.Subject}
	case FieldContract:
		return []any{j.Contract}
	case FieldExperience:
		return []any{j.Experience}
	case FieldEducationLevel:
		return []any{j.EducationLevel}
	case FieldBenefits:
		values := make([]any, 0, len(j.Benefits))
		for _, b := range j.Benefits {
			values = append(values, b)
		}
		return values
	case FieldSalaryMinimum:
		if j.SalaryMinimum == nil {
			return nil
		}
		return []any{*j.SalaryMinimum}
	case FieldSalaryMaximum:
		if j.SalaryMaximum == nil {
			return nil
		}
		return []any{*j.SalaryMaximum}
	case FieldSalaryCurrency:
		return []any{j.SalaryCurrency}
	case FieldVisaSponsorship:
		return []any{j.VisaSponsorship}
	case FieldQuickApply:
		return []any{j.QuickApply}
	case FieldSalaryDisclosed:
		return []any{j.SalaryDisclosed}
	case FieldIsNewPosting:
		return []any{j.IsNewPosting}
	case FieldIsExpirySoon:
		return []any{j.IsExpirySoon}
	case FieldCreatedAt:
		return []any{j.CreatedAt}
	case FieldApplicationDeadline:
		return []any{j.ApplicationDeadline}
	case FieldCreatorType:
		return []any{string(j.CreatorType)}
	case FieldTitle:
		return []any{j.Title}
	case FieldOrganization:
		return []any{j.Organization}
	case FieldDescription:
		return []any{j.Description}
	}
	return nil
}

// Matches evaluates one condition against a posting
func (c Condition) Matches(j *JobPosting) bool {
	if c.Op == OpWithinRadius {
		radius, ok := c.Value.(Radius)
		if !ok || j.Location == nil {
			return false
		}
		return j.Location.DistanceMeters(radius.Center) <= radius.Meters
	}

	for _, value := range j.fieldValues(c.Field) {
		if compare(value, c.Op, c.Value) {
			return true
		}
	}
	return false
}

func compare(fieldValue any, op Op, queryValue any) bool {
	switch op {
	case OpEquals:
		if s, ok := fieldValue.(string); ok {
			if qs, ok := queryValue.(string); ok {
				return s == qs
			}
		}
		return fieldValue == queryValue

	case OpContains:
		s, ok1 := fieldValue.(string)
		term, ok2 := queryValue.(string)
		return ok1 && ok2 && containsFold(s, term)

	case OpInFold:
		s, ok := fieldValue.(string)
		terms, ok2 := queryValue.([]string)
		if !ok || !ok2 {
			return false
		}
		for _, term := range terms {
			if containsFold(s, term) {
				return true
			}
		}
		return false

	case OpGTE:
		return ordered(fieldValue, queryValue, false)

	case OpLTE:
		return ordered(fieldValue, queryValue, true)
	}
	return false
}

// ordered compares numbers or times; lte flips the direction
func ordered(fieldValue, queryValue any, lte bool) bool {
	if ft, ok := fieldValue.(time.Time); ok {
		qt, ok := queryValue.(time.Time)
		if !ok {
			return false
		}
		if lte {
			return !ft.After(qt)
		}
		return !ft.Before(qt)
	}

	fn, ok1 := asInt(fieldValue)
	qn, ok2 := asInt(queryValue)
	if !ok1 || !ok2 {
		return false
	}
	if lte {
		return fn <= qn
	}
	return fn >= qn
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Matches evaluates the OR-group: at least one condition must hold.
// An empty group matches nothing.
func (g Group) Matches(j *JobPosting) bool {
	for _, condition := range g.Any {
		if condition.Matches(j) {
			return true
		}
	}
	return false
}

// MatchesFilter evaluates the conjunction of all predicate groups. For a
// scored query this is the pre-filter applied before scoring.
func (q CompiledQuery) MatchesFilter(j *JobPosting) bool {
	for _, group := range q.Groups {
		if !group.Matches(j) {
			return false
		}
	}
	return true
}

// Score computes the weighted relevance of a posting for the search term:
// the sum of weights of fields containing the term, case-insensitively.
// Zero means the posting is not a search result at all.
func (s *ScoringSpec) Score(j *JobPosting) int {
	score := 0
	for _, fw := range s.Weights {
		for _, value := range j.fieldValues(fw.Field) {
			if text, ok := value.(string); ok && containsFold(text, s.Term) {
				score += fw.Weight
				break
			}
		}
	}
	return score
}
