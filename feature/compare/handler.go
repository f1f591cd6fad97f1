package compare

import (
	"errors"

	"schemadiff/core/diff"
	"schemadiff/core/logger"
	"schemadiff/core/omf"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for document comparison.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/compare", h.HandleCompare)
}

// HandleCompare compares two posted documents.
// @Summary Compare Documents
// @Description Diffs the source document against the target under the given comparison options and returns the list of edits.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body Request true "Documents and options"
// @Success 200 {object} preview.Report "Comparison Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Documents cannot be compared"
// @Security ApiKeyAuth
// @Router /compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	report, err := h.service.Compare(req)
	if err != nil {
		status := statusOf(err)
		if status == fiber.StatusInternalServerError {
			l.Error("Comparison failed", zap.Error(err))
		} else {
			l.Warn("Comparison rejected", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Comparison completed",
		zap.Bool("changed", report.Changed),
		zap.Int("edits", report.Summary.Total()))

	return c.JSON(report)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadDocument),
		errors.Is(err, omf.ErrUnknownOption),
		errors.Is(err, omf.ErrInvalidOption),
		errors.Is(err, omf.ErrConflictingRule):
		return fiber.StatusBadRequest
	case errors.Is(err, diff.ErrIdentityMismatch), errors.Is(err, diff.ErrMalformed):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
