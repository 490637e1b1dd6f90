package schoolsrv

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/chalkhire/chalkboard/listings/school"
	"github.com/chalkhire/chalkboard/pkg/errx"
	"github.com/chalkhire/chalkboard/pkg/fsx"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/google/uuid"
)

// SchoolService provides business operations for school profiles
type SchoolService struct {
	schoolRepo school.Repository
	fileSystem fsx.FileSystem
}

// NewSchoolService creates a new instance of the school service
func NewSchoolService(schoolRepo school.Repository, fileSystem fsx.FileSystem) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		fileSystem: fileSystem,
	}
}

// GetProfile retrieves the profile owned by the authenticated user
func (s *SchoolService) GetProfile(ctx context.Context, userID kernel.UserID) (*school.SchoolResponse, error) {
	profile, err := s.schoolRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &school.SchoolResponse{
		Success: true,
		Data:    profile,
	}, nil
}

// GetByID retrieves a school profile by its own ID
func (s *SchoolService) GetByID(ctx context.Context, id kernel.SchoolID) (*school.SchoolResponse, error) {
	profile, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &school.SchoolResponse{
		Success: true,
		Data:    profile,
	}, nil
}

// UpsertProfile creates or replaces the profile owned by the authenticated user
func (s *SchoolService) UpsertProfile(ctx context.Context, userID kernel.UserID, req school.UpsertSchoolRequest) (*school.SchoolResponse, error) {
	if err := validateProfile(req); err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &school.School{
		ID:               kernel.NewSchoolID(uuid.NewString()),
		UserID:           userID,
		Name:             req.Name,
		Address:          req.Address,
		StreetName:       req.StreetName,
		AreaName:         req.AreaName,
		City:             req.City,
		Country:          req.Country,
		Email:            req.Email,
		ContactNumber:    req.ContactNumber,
		Website:          req.Website,
		MapLocation:      req.MapLocation,
		CurriculumTaught: req.CurriculumTaught,
		Type:             req.Type,
		AgeGroup:         req.AgeGroup,
		Description:      req.Description,
		Branches:         req.Branches,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Existing profiles keep their ID, logo and verification flag; the
	// repository upsert carries those columns over on conflict.
	if existing, err := s.schoolRepo.GetByUserID(ctx, userID); err == nil {
		profile.ID = existing.ID
		profile.LogoURL = existing.LogoURL
		profile.IsAdminVerified = existing.IsAdminVerified
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.schoolRepo.Upsert(ctx, profile); err != nil {
		return nil, errx.Wrap(err, "failed to save school profile", errx.TypeInternal)
	}

	return &school.SchoolResponse{
		Success: true,
		Data:    profile,
	}, nil
}

// UploadLogo stores a logo image and records its public URL on the profile
func (s *SchoolService) UploadLogo(ctx context.Context, userID kernel.UserID, filename string, contentType string, content io.Reader) (*school.SchoolResponse, error) {
	profile, err := s.schoolRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".svg":
	default:
		return nil, school.ErrInvalidProfile().WithDetail("logo", "unsupported file type "+ext)
	}

	key := fmt.Sprintf("logos/%s%s", profile.ID.String(), ext)
	url, err := s.fileSystem.Upload(ctx, key, content, contentType)
	if err != nil {
		return nil, school.ErrLogoUpload().WithCause(err)
	}

	if err := s.schoolRepo.UpdateLogo(ctx, profile.ID, url); err != nil {
		return nil, err
	}
	profile.LogoURL = url

	return &school.SchoolResponse{
		Success: true,
		Data:    profile,
	}, nil
}

func validateProfile(req school.UpsertSchoolRequest) error {
	missing := []string{}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(req.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(req.Country) == "" {
		missing = append(missing, "country")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "schoolEmail")
	}
	if len(missing) > 0 {
		return school.ErrInvalidProfile().WithDetail("missing_fields", strings.Join(missing, ", "))
	}

	switch req.Type {
	case "", school.SchoolTypeGirls, school.SchoolTypeBoys, school.SchoolTypeMixed:
	default:
		return school.ErrInvalidProfile().WithDetail("schoolType", string(req.Type))
	}

	if req.AgeGroup.From < 0 || (req.AgeGroup.To != 0 && req.AgeGroup.To < req.AgeGroup.From) {
		return school.ErrInvalidProfile().WithDetail("ageGroup", "invalid range")
	}

	return nil
}
