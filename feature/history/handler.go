package history

import (
	"errors"

	"node-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the audit trail.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
	group.Get("/stats", h.HandleStats)
}

// HandleListRuns lists recorded batch runs.
// @Summary List Runs
// @Description Get the most recent recorded batch runs, newest first.
// @Tags history
// @Accept json
// @Produce json
// @Param limit query integer false "Maximum number of runs (default 50)"
// @Success 200 {array} history.Run "Runs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.ListRuns(c.QueryInt("limit", 0))
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(runs)
}

// HandleGetRun returns one run with its per-record outcomes.
// @Summary Get Run
// @Description Get a recorded run including every per-record outcome.
// @Tags history
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} history.Run "Run"
// @Failure 404 {object} map[string]string "Run Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	run, err := h.service.GetRun(id)
	if errors.Is(err, ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "run not found",
			"id":    id,
		})
	}
	if err != nil {
		l.Error("Failed to load run", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(run)
}

// HandleStats returns aggregate audit counts.
// @Summary Audit Stats
// @Description Get aggregate counts over the recorded runs.
// @Tags history
// @Accept json
// @Produce json
// @Success 200 {object} history.Stats "Stats"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /history/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.GetStats()
	if err != nil {
		l.Error("Failed to compute stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stats)
}
