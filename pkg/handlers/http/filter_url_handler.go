package http

import (
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/response"
	"github.com/NeuralTrust/AgeLock/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type filterURLHandler struct {
	logger   *logrus.Logger
	engine   PolicyEngine
	profiles ProfileSource
}

func NewFilterURLHandler(logger *logrus.Logger, engine PolicyEngine, profiles ProfileSource) Handler {
	return &filterURLHandler{
		logger:   logger,
		engine:   engine,
		profiles: profiles,
	}
}

// Handle @Summary Score a URL's text
// @Tags Content filter
// @Accept json
// @Produce json
// @Param request body request.FilterURLRequest true "URL"
// @Success 200 {object} response.FilterResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/filter/url [post]
func (h *filterURLHandler) Handle(c *fiber.Ctx) error {
	var req request.FilterURLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := h.profiles.Current()
	result := h.engine.FilterURL(req.URL, profile)
	prometheus.ObserveTextFilter("url", result, profile)

	return c.Status(fiber.StatusOK).JSON(response.FilterResponse{Profile: profile, Result: result})
}
