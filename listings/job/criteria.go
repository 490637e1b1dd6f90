package job

import (
	"strconv"
	"strings"
)

// Sort defaults applied when the caller supplies nothing usable
const (
	DefaultPage     = 1
	DefaultLimit    = 10
	DefaultSortBy   = "createdAt"
	FallbackMaxRows = 5
)

// SearchCriteria is the canonical, typed form of one search request. Every
// field is optional; construction never fails, malformed values are dropped.
type SearchCriteria struct {
	Search   string
	Location string

	Positions         []string
	OrganizationTypes []string
	Subjects          []string
	Contracts         []string
	Experience        []string
	EducationLevels   []string
	Benefits          []string

	SalaryMin      *int
	SalaryMax      *int
	SalaryCurrency string

	VisaSponsorship bool
	QuickApply      bool
	SalaryDisclosed bool
	IsNew           bool
	IsExpirySoon    bool

	DatePosted          string // today | week | month | 3months
	ApplicationDeadline string // today | week | month

	IsApproved   *bool
	JobCreatedBy string

	Latitude   *float64
	Longitude  *float64
	DistanceKM *int

	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}

// NormalizeCriteria converts raw query parameters (name -> one or more string
// values) into SearchCriteria. Unknown parameters are ignored and unparseable
// values treated as absent, so this function cannot fail.
func NormalizeCriteria(params map[string][]string) SearchCriteria {
	c := SearchCriteria{
		Page:     DefaultPage,
		Limit:    DefaultLimit,
		SortBy:   DefaultSortBy,
		SortDesc: true,
	}

	c.Search = cleanValue(first(params, "search"))
	c.Location = cleanValue(first(params, "location"))
	c.SalaryCurrency = cleanValue(first(params, "salaryCurrency"))
	c.JobCreatedBy = cleanValue(first(params, "jobCreatedBy"))
	c.DatePosted = cleanValue(first(params, "datePosted"))
	c.ApplicationDeadline = cleanValue(first(params, "applicationDeadline"))

	c.Positions = normalizeList(params["positions"])
	c.OrganizationTypes = normalizeList(params["organizationTypes"])
	c.Subjects = normalizeList(params["subjects"])
	c.Contracts = normalizeList(params["contracts"])
	c.Experience = normalizeList(params["experience"])
	c.EducationLevels = normalizeList(params["educationLevels"])
	c.Benefits = normalizeList(params["benefits"])

	c.SalaryMin = parseIntValue(first(params, "salaryMin"))
	c.SalaryMax = parseIntValue(first(params, "salaryMax"))
	c.DistanceKM = parseIntValue(first(params, "distance"))
	c.Latitude = parseFloatValue(first(params, "latitude"))
	c.Longitude = parseFloatValue(first(params, "longitude"))

	// Flags only filter when the literal string "true" is supplied
	c.VisaSponsorship = first(params, "visaSponsorship") == "true"
	c.QuickApply = first(params, "quickApply") == "true"
	c.SalaryDisclosed = first(params, "salaryDisclosed") == "true"
	c.IsNew = first(params, "isNew") == "true"
	c.IsExpirySoon = first(params, "isExpirySoon") == "true"

	if raw := first(params, "isApproved"); raw != "" {
		approved := raw == "true"
		c.IsApproved = &approved
	}

	if p := parseIntValue(first(params, "page")); p != nil && *p > 0 {
		c.Page = *p
	}
	if l := parseIntValue(first(params, "limit")); l != nil && *l > 0 {
		c.Limit = *l
	}
	if sortBy := cleanValue(first(params, "sortBy")); sortBy != "" {
		c.SortBy = sortBy
	}
	// "asc" is the only value that flips direction
	c.SortDesc = first(params, "sortOrder") != "asc"

	return c
}

// HasGeoFilter reports whether all three geospatial parameters were supplied
func (c SearchCriteria) HasGeoFilter() bool {
	return c.Latitude != nil && c.Longitude != nil && c.DistanceKM != nil
}

func first(params map[string][]string, key string) string {
	values := params[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// cleanValue strips surrounding quote characters and outer whitespace
func cleanValue(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)
	return strings.TrimSpace(value)
}

// normalizeList accepts a repeated-key array or a single comma-separated
// string and returns an ordered sequence of cleaned values
func normalizeList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if cleaned := cleanValue(part); cleaned != "" {
				out = append(out, cleaned)
			}
		}
	}
	return out
}

func parseIntValue(raw string) *int {
	raw = cleanValue(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatValue(raw string) *float64 {
	raw = cleanValue(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
