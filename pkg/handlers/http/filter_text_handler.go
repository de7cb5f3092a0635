package http

import (
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/response"
	"github.com/NeuralTrust/AgeLock/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type filterTextHandler struct {
	logger   *logrus.Logger
	engine   PolicyEngine
	profiles ProfileSource
}

func NewFilterTextHandler(logger *logrus.Logger, engine PolicyEngine, profiles ProfileSource) Handler {
	return &filterTextHandler{
		logger:   logger,
		engine:   engine,
		profiles: profiles,
	}
}

// Handle @Summary Score page text
// @Tags Content filter
// @Accept json
// @Produce json
// @Param request body request.FilterTextRequest true "Text"
// @Success 200 {object} response.FilterResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/filter/text [post]
func (h *filterTextHandler) Handle(c *fiber.Ctx) error {
	var req request.FilterTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := h.profiles.Current()
	result := h.engine.FilterText(req.Text, profile)
	prometheus.ObserveTextFilter("text", result, profile)

	return c.Status(fiber.StatusOK).JSON(response.FilterResponse{Profile: profile, Result: result})
}
