package schema

import (
	"errors"

	"schemadiff/core/catalog"
	"schemadiff/core/diff"
	"schemadiff/core/logger"
	"schemadiff/core/omf"
	"schemadiff/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for schema snapshots.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the schema routes. Static routes come first so
// "snapshots" is never taken for a schema name.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/schema")
	group.Get("/snapshots", h.HandleListSnapshots)
	group.Get("/snapshots/diff", h.HandleDiffSnapshots)
	group.Post("/:name/snapshots/:snapshot", h.HandleCapture)
	group.Get("/:name/diff", h.HandleDiffLive)
}

// HandleListSnapshots lists stored snapshots.
// @Summary List Snapshots
// @Description List the names of all stored schema snapshots.
// @Tags schema
// @Produce json
// @Success 200 {array} string "Snapshot names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /schema/snapshots [get]
func (h *Handler) HandleListSnapshots(c *fiber.Ctx) error {
	names, err := h.service.Snapshots(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(names)
}

// HandleCapture stores the live schema as a snapshot.
// @Summary Capture Snapshot
// @Description Read the live schema from information_schema and store it as a named snapshot.
// @Tags schema
// @Produce json
// @Param name path string true "Schema name"
// @Param snapshot path string true "Snapshot name (e.g. 'release-1.4')"
// @Success 201 {object} SnapshotInfo "Captured snapshot"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Schema not found"
// @Failure 503 {object} map[string]string "Database not configured"
// @Security ApiKeyAuth
// @Router /schema/{name}/snapshots/{snapshot} [post]
func (h *Handler) HandleCapture(c *fiber.Ctx) error {
	info, err := h.service.Capture(c.Context(), c.Params("name"), c.Params("snapshot"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleDiffLive diffs a snapshot against the live schema.
// @Summary Diff Live Schema
// @Description Compare a stored snapshot (source) with the live schema (target).
// @Tags schema
// @Produce json
// @Param name path string true "Schema name"
// @Param snapshot query string true "Snapshot name"
// @Param tree query bool false "Include the change tree"
// @Param CaseSensitive query bool false "Compare names case-sensitively"
// @Param maxTableCommentLength query int false "Compare only this many leading characters of table comments"
// @Success 200 {object} preview.Report "Comparison Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Database not configured"
// @Security ApiKeyAuth
// @Router /schema/{name}/diff [get]
func (h *Handler) HandleDiffLive(c *fiber.Ctx) error {
	snapshot := c.Query("snapshot")
	if snapshot == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "snapshot is required"})
	}

	report, err := h.service.DiffLive(c.Context(), c.Params("name"), snapshot, queryOptions(c), c.QueryBool("tree"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// HandleDiffSnapshots diffs two snapshots.
// @Summary Diff Snapshots
// @Description Compare two stored snapshots.
// @Tags schema
// @Produce json
// @Param from query string true "Source snapshot"
// @Param to query string true "Target snapshot"
// @Param tree query bool false "Include the change tree"
// @Success 200 {object} preview.Report "Comparison Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Security ApiKeyAuth
// @Router /schema/snapshots/diff [get]
func (h *Handler) HandleDiffSnapshots(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from and to are required"})
	}

	report, err := h.service.DiffSnapshots(c.Context(), from, to, queryOptions(c), c.QueryBool("tree"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// queryOptions collects comparison options from the query string.
func queryOptions(c *fiber.Ctx) omf.Options {
	opts := omf.Options{}
	for _, key := range omf.Keys() {
		if v := c.Query(key); v != "" {
			opts[key] = v
		}
	}
	return opts
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrInvalidSnapshotName),
		errors.Is(err, omf.ErrInvalidOption),
		errors.Is(err, omf.ErrUnknownOption):
		status = fiber.StatusBadRequest
	case errors.Is(err, storage.ErrSnapshotNotFound), errors.Is(err, catalog.ErrSchemaNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, diff.ErrIdentityMismatch), errors.Is(err, diff.ErrMalformed):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNoDatabase):
		status = fiber.StatusServiceUnavailable
	}

	l := logger.WithRayID(h.service.logger, c)
	if status == fiber.StatusInternalServerError {
		l.Error("Schema request failed", zap.Error(err))
	} else {
		l.Warn("Schema request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
