package nodes

import (
	"node-manager/core/etcd"
	"node-manager/core/logger"
	"node-manager/core/reconcile"
	"node-manager/core/utils"

	"github.com/goccy/go-yaml"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for node records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the node routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/nodes")
	group.Get("/:hostname", h.HandleGetNode)
	group.Post("/validate", h.HandleValidate)
}

// HandleGetNode returns the stored document for a single node.
// @Summary Get Node
// @Description Get the stored inventory document for a hostname. Use format=yaml for the raw canonical document.
// @Tags nodes
// @Accept json
// @Produce json
// @Param hostname path string true "Node hostname (e.g. 'gpu-node-17')"
// @Param format query string false "Response format (json or yaml)"
// @Success 200 {object} map[string]interface{} "Node Document"
// @Failure 404 {object} map[string]string "Node Not Found"
// @Failure 502 {object} map[string]string "Store Unreachable"
// @Router /nodes/{hostname} [get]
func (h *Handler) HandleGetNode(c *fiber.Ctx) error {
	hostname := c.Params("hostname")
	l := logger.WithRayID(h.service.logger, c)

	res := h.service.GetNode(c.Context(), hostname)
	switch res.Outcome {
	case etcd.OutcomeOK:
	case etcd.OutcomeNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":    "node not found",
			"hostname": hostname,
		})
	default:
		l.Error("Store lookup failed",
			zap.String("hostname", hostname),
			zap.String("outcome", string(res.Outcome)))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "store lookup failed",
			"outcome": string(res.Outcome),
		})
	}

	if c.Query("format") == "yaml" {
		data, err := yaml.Marshal(res.Document)
		if err != nil {
			l.Error("Failed to render document", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		c.Set(fiber.HeaderContentType, "application/x-yaml")
		return c.Send(data)
	}

	return c.JSON(fiber.Map{
		"hostname": hostname,
		"node":     utils.MapSliceToMap(res.Document),
	})
}

// HandleValidate validates a declared manifest against the store.
// @Summary Validate Manifest
// @Description Compare every node in the posted YAML manifest against the store and classify each as PASS, CONDITIONAL or FAIL.
// @Tags nodes
// @Accept plain
// @Produce json
// @Param strict query boolean false "Also report undeclared stored fields"
// @Param workers query integer false "Bounded concurrent store requests"
// @Success 200 {object} reconcile.ValidateSummary "Validation Summary"
// @Failure 400 {object} map[string]string "Malformed Manifest"
// @Router /nodes/validate [post]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := reconcile.Options{
		Workers: c.QueryInt("workers", 0),
		Strict:  c.Query("strict") == "true",
	}

	summary, err := h.service.ValidateBatch(c.Context(), c.Body(), opts)
	if err != nil {
		l.Warn("Manifest rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Validation batch completed",
		zap.Int("total", summary.Total),
		zap.Int("passed", summary.Passed),
		zap.Int("conditional", summary.Conditional),
		zap.Int("failed", summary.Failed))

	return c.JSON(summary)
}
