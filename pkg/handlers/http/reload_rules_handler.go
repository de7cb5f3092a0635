package http

import (
	appRules "github.com/NeuralTrust/AgeLock/pkg/app/rules"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	infraCache "github.com/NeuralTrust/AgeLock/pkg/infra/cache"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type reloadRulesHandler struct {
	logger    *logrus.Logger
	instance  string
	reloader  appRules.Reloader
	publisher infraCache.EventPublisher
}

func NewReloadRulesHandler(
	logger *logrus.Logger,
	instance string,
	reloader appRules.Reloader,
	publisher infraCache.EventPublisher,
) Handler {
	return &reloadRulesHandler{
		logger:    logger,
		instance:  instance,
		reloader:  reloader,
		publisher: publisher,
	}
}

// Handle @Summary Reload rules
// @Description Recompiles the rule set with the supplementary lists and asks other instances to do the same
// @Tags Rules
// @Accept json
// @Produce json
// @Param request body request.ReloadRulesRequest false "Reason"
// @Success 204 "Rules reloaded"
// @Failure 500 {object} map[string]interface{} "Reload failed"
// @Failure 401 {object} map[string]interface{} "Missing or invalid admin token"
// @Security BearerAuth
// @Router /api/v1/rules/reload [post]
func (h *reloadRulesHandler) Handle(c *fiber.Ctx) error {
	var req request.ReloadRulesRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
		}
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}

	if err := h.reloader.Reload(c.Context()); err != nil {
		h.logger.WithError(err).Error("failed to reload rules")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	ev := event.ReloadRulesEvent{Origin: h.instance, Reason: req.Reason}
	if err := h.publisher.Publish(c.Context(), ev); err != nil {
		h.logger.WithError(err).Warn("failed to publish rules reload event")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
