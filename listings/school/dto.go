package school

import "github.com/chalkhire/chalkboard/pkg/kernel"

// UpsertSchoolRequest - DTO for creating or replacing the caller's profile
type UpsertSchoolRequest struct {
	Name             string           `json:"fullName" validate:"required"`
	Address          string           `json:"address" validate:"required"`
	StreetName       string           `json:"streetName"`
	AreaName         string           `json:"areaName"`
	City             string           `json:"city" validate:"required"`
	Country          string           `json:"country" validate:"required"`
	Email            string           `json:"schoolEmail" validate:"required,email"`
	ContactNumber    string           `json:"contactNumber" validate:"required"`
	Website          string           `json:"website,omitempty"`
	MapLocation      *kernel.GeoPoint `json:"mapLocation,omitempty"`
	CurriculumTaught string           `json:"curriculumTaught"`
	Type             SchoolType       `json:"schoolType"`
	AgeGroup         AgeGroup         `json:"ageGroup"`
	Description      string           `json:"description,omitempty"`
	Branches         int              `json:"branches"`
}

// SchoolResponse is the profile envelope
type SchoolResponse struct {
	Success bool    `json:"success"`
	Data    *School `json:"data"`
}
