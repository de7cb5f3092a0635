package http

import (
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type decideBatchHandler struct {
	logger   *logrus.Logger
	engine   PolicyEngine
	profiles ProfileSource
}

func NewDecideBatchHandler(logger *logrus.Logger, engine PolicyEngine, profiles ProfileSource) Handler {
	return &decideBatchHandler{
		logger:   logger,
		engine:   engine,
		profiles: profiles,
	}
}

// Handle @Summary Decide a batch of requests
// @Description Evaluates every request against one profile snapshot. Results keep input order.
// @Tags Decisions
// @Accept json
// @Produce json
// @Param request body request.DecideBatchRequest true "Batch"
// @Success 200 {object} response.BatchDecisionResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/decide/batch [post]
func (h *decideBatchHandler) Handle(c *fiber.Ctx) error {
	var req request.DecideBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := h.profiles.Current()
	descriptors := make([]policy.RequestDescriptor, len(req.Requests))
	for i := range req.Requests {
		descriptors[i] = req.Requests[i].Descriptor()
	}

	verdicts, err := h.engine.DecideAll(c.Context(), descriptors, profile)
	if err != nil {
		h.logger.WithError(err).Error("batch decision failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}

	results := make([]response.BatchItem, len(verdicts))
	for i, v := range verdicts {
		results[i] = response.BatchItem{
			ID:      uuid.NewString(),
			URL:     descriptors[i].URL,
			Verdict: v,
		}
	}
	return c.Status(fiber.StatusOK).JSON(response.BatchDecisionResponse{
		RequestID: requestID(c),
		Profile:   profile,
		Results:   results,
	})
}
