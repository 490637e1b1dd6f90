package school

import (
	"net/http"

	"github.com/chalkhire/chalkboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SCHOOL")

// Error codes
var (
	CodeSchoolNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "School profile not found")
	CodeInvalidProfile = ErrRegistry.Register("INVALID_PROFILE", errx.TypeValidation, http.StatusBadRequest, "Invalid school profile")
	CodeLogoUpload     = ErrRegistry.Register("LOGO_UPLOAD", errx.TypeExternal, http.StatusBadGateway, "Failed to store school logo")
)

// Helper functions
func ErrSchoolNotFound() *errx.Error {
	return ErrRegistry.New(CodeSchoolNotFound)
}

func ErrInvalidProfile() *errx.Error {
	return ErrRegistry.New(CodeInvalidProfile)
}

func ErrLogoUpload() *errx.Error {
	return ErrRegistry.New(CodeLogoUpload)
}
