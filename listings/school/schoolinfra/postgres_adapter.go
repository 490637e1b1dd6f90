package schoolinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chalkhire/chalkboard/listings/school"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

// PostgresSchoolRepository implements school.Repository using PostgreSQL
type PostgresSchoolRepository struct {
	db *sqlx.DB
}

// NewPostgresSchoolRepository creates a new PostgreSQL school repository
func NewPostgresSchoolRepository(db *sqlx.DB) *PostgresSchoolRepository {
	return &PostgresSchoolRepository{
		db: db,
	}
}

type schoolModel struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	Name             string    `db:"full_name"`
	Address          string    `db:"address"`
	StreetName       string    `db:"street_name"`
	AreaName         string    `db:"area_name"`
	City             string    `db:"city"`
	Country          string    `db:"country"`
	Email            string    `db:"school_email"`
	ContactNumber    string    `db:"contact_number"`
	Website          string    `db:"website"`
	Latitude         *float64  `db:"latitude"`
	Longitude        *float64  `db:"longitude"`
	CurriculumTaught string    `db:"curriculum_taught"`
	SchoolType       string    `db:"school_type"`
	AgeFrom          int       `db:"age_from"`
	AgeTo            int       `db:"age_to"`
	Description      string    `db:"description"`
	Branches         int       `db:"branches"`
	LogoURL          string    `db:"logo_url"`
	IsAdminVerified  bool      `db:"is_admin_verified"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

const schoolColumns = `
	id, user_id, full_name, address, street_name, area_name, city, country,
	school_email, contact_number, website, latitude, longitude,
	curriculum_taught, school_type, age_from, age_to, description, branches,
	logo_url, is_admin_verified, created_at, updated_at`

func (m *schoolModel) toEntity() *school.School {
	entity := &school.School{
		ID:               kernel.SchoolID(m.ID),
		UserID:           kernel.UserID(m.UserID),
		Name:             m.Name,
		Address:          m.Address,
		StreetName:       m.StreetName,
		AreaName:         m.AreaName,
		City:             m.City,
		Country:          m.Country,
		Email:            m.Email,
		ContactNumber:    m.ContactNumber,
		Website:          m.Website,
		CurriculumTaught: m.CurriculumTaught,
		Type:             school.SchoolType(m.SchoolType),
		AgeGroup:         school.AgeGroup{From: m.AgeFrom, To: m.AgeTo},
		Description:      m.Description,
		Branches:         m.Branches,
		LogoURL:          m.LogoURL,
		IsAdminVerified:  m.IsAdminVerified,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Latitude != nil && m.Longitude != nil {
		entity.MapLocation = &kernel.GeoPoint{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}
	return entity
}

func fromEntity(s *school.School) *schoolModel {
	m := &schoolModel{
		ID:               string(s.ID),
		UserID:           string(s.UserID),
		Name:             s.Name,
		Address:          s.Address,
		StreetName:       s.StreetName,
		AreaName:         s.AreaName,
		City:             s.City,
		Country:          s.Country,
		Email:            s.Email,
		ContactNumber:    s.ContactNumber,
		Website:          s.Website,
		CurriculumTaught: s.CurriculumTaught,
		SchoolType:       string(s.Type),
		AgeFrom:          s.AgeGroup.From,
		AgeTo:            s.AgeGroup.To,
		Description:      s.Description,
		Branches:         s.Branches,
		LogoURL:          s.LogoURL,
		IsAdminVerified:  s.IsAdminVerified,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if s.MapLocation != nil {
		m.Latitude = &s.MapLocation.Latitude
		m.Longitude = &s.MapLocation.Longitude
	}
	return m
}

// GetByUserID retrieves the profile owned by a user
func (r *PostgresSchoolRepository) GetByUserID(ctx context.Context, userID kernel.UserID) (*school.School, error) {
	query := fmt.Sprintf("SELECT %s FROM schools WHERE user_id = $1", schoolColumns)

	var model schoolModel
	if err := r.db.GetContext(ctx, &model, query, string(userID)); err != nil {
		if err == sql.ErrNoRows {
			return nil, school.ErrSchoolNotFound()
		}
		return nil, fmt.Errorf("failed to get school by user id: %w", err)
	}
	return model.toEntity(), nil
}

// GetByID retrieves a profile by its own ID
func (r *PostgresSchoolRepository) GetByID(ctx context.Context, id kernel.SchoolID) (*school.School, error) {
	query := fmt.Sprintf("SELECT %s FROM schools WHERE id = $1", schoolColumns)

	var model schoolModel
	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if err == sql.ErrNoRows {
			return nil, school.ErrSchoolNotFound()
		}
		return nil, fmt.Errorf("failed to get school by id: %w", err)
	}
	return model.toEntity(), nil
}

// Upsert creates or replaces the profile owned by profile.UserID
func (r *PostgresSchoolRepository) Upsert(ctx context.Context, profile *school.School) error {
	model := fromEntity(profile)

	query := `
		INSERT INTO schools (
			id, user_id, full_name, address, street_name, area_name, city,
			country, school_email, contact_number, website, latitude,
			longitude, curriculum_taught, school_type, age_from, age_to,
			description, branches, logo_url, is_admin_verified,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :full_name, :address, :street_name, :area_name,
			:city, :country, :school_email, :contact_number, :website,
			:latitude, :longitude, :curriculum_taught, :school_type,
			:age_from, :age_to, :description, :branches, :logo_url,
			:is_admin_verified, :created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			address = EXCLUDED.address,
			street_name = EXCLUDED.street_name,
			area_name = EXCLUDED.area_name,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			school_email = EXCLUDED.school_email,
			contact_number = EXCLUDED.contact_number,
			website = EXCLUDED.website,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			curriculum_taught = EXCLUDED.curriculum_taught,
			school_type = EXCLUDED.school_type,
			age_from = EXCLUDED.age_from,
			age_to = EXCLUDED.age_to,
			description = EXCLUDED.description,
			branches = EXCLUDED.branches,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to upsert school: %w", err)
	}
	return nil
}

// UpdateLogo sets the stored logo URL
func (r *PostgresSchoolRepository) UpdateLogo(ctx context.Context, id kernel.SchoolID, logoURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE schools SET logo_url = $1, updated_at = $2 WHERE id = $3`,
		logoURL, time.Now(), string(id),
	)
	if err != nil {
		return fmt.Errorf("failed to update school logo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return school.ErrSchoolNotFound()
	}
	return nil
}
