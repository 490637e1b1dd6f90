package schoolinfra

import (
	"context"
	"sync"

	"github.com/chalkhire/chalkboard/listings/school"
	"github.com/chalkhire/chalkboard/pkg/kernel"
)

// MemorySchoolRepository implements school.Repository in memory for tests
type MemorySchoolRepository struct {
	mu     sync.RWMutex
	byUser map[kernel.UserID]*school.School
	byID   map[kernel.SchoolID]*school.School
}

// NewMemorySchoolRepository creates an empty in-memory repository
func NewMemorySchoolRepository() *MemorySchoolRepository {
	return &MemorySchoolRepository{
		byUser: make(map[kernel.UserID]*school.School),
		byID:   make(map[kernel.SchoolID]*school.School),
	}
}

func cloneSchool(s *school.School) *school.School {
	copied := *s
	if s.MapLocation != nil {
		point := *s.MapLocation
		copied.MapLocation = &point
	}
	return &copied
}

// GetByUserID retrieves the profile owned by a user
func (r *MemorySchoolRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*school.School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byUser[userID]
	if !ok {
		return nil, school.ErrSchoolNotFound()
	}
	return cloneSchool(profile), nil
}

// GetByID retrieves a profile by its own ID
func (r *MemorySchoolRepository) GetByID(ctx context.Context, id kernel.SchoolID) (*school.School, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byID[id]
	if !ok {
		return nil, school.ErrSchoolNotFound()
	}
	return cloneSchool(profile), nil
}

// Upsert creates or replaces the profile owned by profile.UserID
func (r *MemorySchoolRepository) Upsert(ctx context.Context, profile *school.School) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneSchool(profile)
	if existing, ok := r.byUser[profile.UserID]; ok {
		stored.ID = existing.ID
		delete(r.byID, existing.ID)
	}
	r.byUser[stored.UserID] = stored
	r.byID[stored.ID] = stored
	return nil
}

// UpdateLogo sets the stored logo URL
func (r *MemorySchoolRepository) UpdateLogo(ctx context.Context, id kernel.SchoolID, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.byID[id]
	if !ok {
		return school.ErrSchoolNotFound()
	}
	profile.LogoURL = logoURL
	return nil
}
