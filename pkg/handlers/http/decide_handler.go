package http

import (
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type decideHandler struct {
	logger   *logrus.Logger
	engine   PolicyEngine
	profiles ProfileSource
}

func NewDecideHandler(logger *logrus.Logger, engine PolicyEngine, profiles ProfileSource) Handler {
	return &decideHandler{
		logger:   logger,
		engine:   engine,
		profiles: profiles,
	}
}

// Handle @Summary Decide a request
// @Description Runs one intercepted request through the policy precedence
// @Tags Decisions
// @Accept json
// @Produce json
// @Param request body request.DecideRequest true "Request descriptor"
// @Success 200 {object} response.DecisionResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/decide [post]
func (h *decideHandler) Handle(c *fiber.Ctx) error {
	var req request.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := h.profiles.Current()
	verdict := h.engine.Decide(req.Descriptor(), profile)

	return c.Status(fiber.StatusOK).JSON(response.DecisionResponse{
		RequestID: requestID(c),
		Profile:   profile,
		Verdict:   verdict,
	})
}
