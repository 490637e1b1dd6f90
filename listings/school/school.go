package school

import (
	"time"

	"github.com/chalkhire/chalkboard/pkg/kernel"
)

// SchoolType categorizes the student body
type SchoolType string

const (
	SchoolTypeGirls SchoolType = "girls"
	SchoolTypeBoys  SchoolType = "boys"
	SchoolTypeMixed SchoolType = "mix"
)

// AgeGroup is the range of student ages the school serves
type AgeGroup struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// School is the organization profile behind job postings. Search enrichment
// reads the denormalized summary (name, location, logo) from here.
type School struct {
	ID               kernel.SchoolID  `json:"id"`
	UserID           kernel.UserID    `json:"userId"`
	Name             string           `json:"fullName"`
	Address          string           `json:"address"`
	StreetName       string           `json:"streetName"`
	AreaName         string           `json:"areaName"`
	City             string           `json:"city"`
	Country          string           `json:"country"`
	Email            string           `json:"schoolEmail"`
	ContactNumber    string           `json:"contactNumber"`
	Website          string           `json:"website,omitempty"`
	MapLocation      *kernel.GeoPoint `json:"mapLocation,omitempty"`
	CurriculumTaught string           `json:"curriculumTaught"`
	Type             SchoolType       `json:"schoolType"`
	AgeGroup         AgeGroup         `json:"ageGroup"`
	Description      string           `json:"description,omitempty"`
	Branches         int              `json:"branches"`
	LogoURL          string           `json:"logo,omitempty"`
	IsAdminVerified  bool             `json:"isAdminVerified"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}
