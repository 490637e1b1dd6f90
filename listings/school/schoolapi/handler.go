package schoolapi

import (
	"github.com/chalkhire/chalkboard/listings/school"
	"github.com/chalkhire/chalkboard/listings/school/schoolsrv"
	"github.com/chalkhire/chalkboard/pkg/iam/auth"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for school profile operations
type Handlers struct {
	service *schoolsrv.SchoolService
}

// NewHandlers creates a new school handlers instance
func NewHandlers(service *schoolsrv.SchoolService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetProfile retrieves the authenticated user's school profile
// GET /api/schools/me
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	resp, err := h.service.GetProfile(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetSchoolByID retrieves a school profile by ID
// GET /api/schools/:id
func (h *Handlers) GetSchoolByID(c *fiber.Ctx) error {
	schoolID := kernel.SchoolID(c.Params("id"))
	if schoolID.IsEmpty() {
		return school.ErrSchoolNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetByID(c.Context(), schoolID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpsertProfile creates or replaces the authenticated user's school profile
// PUT /api/schools/me
func (h *Handlers) UpsertProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req school.UpsertSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return school.ErrInvalidProfile().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.UpsertProfile(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UploadLogo stores a logo image for the authenticated user's school
// POST /api/schools/me/logo
func (h *Handlers) UploadLogo(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return school.ErrInvalidProfile().WithDetail("logo", "missing multipart file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return school.ErrLogoUpload().WithCause(err)
	}
	defer file.Close()

	resp, err := h.service.UploadLogo(
		c.Context(),
		authContext.UserID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes registers all school routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/schools")

	api.Get("/me",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleSchool, auth.RoleAdmin),
		handlers.GetProfile,
	)

	api.Put("/me",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleSchool, auth.RoleAdmin),
		handlers.UpsertProfile,
	)

	api.Post("/me/logo",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleSchool, auth.RoleAdmin),
		handlers.UploadLogo,
	)

	api.Get("/:id", handlers.GetSchoolByID)
}
