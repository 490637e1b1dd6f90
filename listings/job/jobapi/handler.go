package jobapi

import (
	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/listings/job/jobsrv"
	"github.com/chalkhire/chalkboard/pkg/iam/auth"
	"github.com/chalkhire/chalkboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchJobs lists and searches job postings
// GET /api/jobs
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	resp, err := h.service.SearchJobs(c.Context(), queryParams(c))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetJobByID retrieves a single posting and records the view
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// CreateJob creates a new job posting
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	newJob, err := h.service.CreateJob(c.Context(), req, authContext)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// UpdateJob applies a partial update to an existing posting
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updatedJob, err := h.service.UpdateJob(c.Context(), jobID, req, authContext)
	if err != nil {
		return err
	}

	return c.JSON(updatedJob)
}

// DeleteJob removes a posting
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteJob(c.Context(), jobID, authContext); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// ApproveJob toggles the admin approval flag
// PATCH /api/jobs/:id/approve
func (h *Handlers) ApproveJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.ApproveJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	approvedJob, err := h.service.ApproveJob(c.Context(), jobID, req)
	if err != nil {
		return err
	}

	return c.JSON(approvedJob)
}

// GetJobStats retrieves the board-wide statistics snapshot
// GET /api/jobs/stats
func (h *Handlers) GetJobStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// queryParams collects the raw query string, preserving repeated keys so
// filters like ?subjects=Math&subjects=Science arrive as arrays
func queryParams(c *fiber.Ctx) map[string][]string {
	params := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		params[k] = append(params[k], string(value))
	})
	return params
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/jobs")

	// Public read routes. /stats must be registered before /:id so the
	// literal path wins.
	api.Get("/", handlers.SearchJobs)

	api.Get("/stats",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.GetJobStats,
	)

	api.Get("/:id", handlers.GetJobByID)

	// Write routes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleSchool, auth.RoleSupplier, auth.RoleAdmin),
		handlers.CreateJob,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleSchool, auth.RoleSupplier, auth.RoleAdmin),
		handlers.UpdateJob,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleSchool, auth.RoleSupplier, auth.RoleAdmin),
		handlers.DeleteJob,
	)

	api.Patch("/:id/approve",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(auth.RoleAdmin),
		handlers.ApproveJob,
	)
}
