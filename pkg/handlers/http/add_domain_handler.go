package http

import (
	"errors"

	appRules "github.com/NeuralTrust/AgeLock/pkg/app/rules"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/response"
	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type addDomainHandler struct {
	logger *logrus.Logger
	adder  appRules.DomainAdder
}

func NewAddDomainHandler(logger *logrus.Logger, adder appRules.DomainAdder) Handler {
	return &addDomainHandler{
		logger: logger,
		adder:  adder,
	}
}

// Handle @Summary Add a domain to a supplementary list
// @Tags Rules
// @Accept json
// @Produce json
// @Param request body request.AddDomainRequest true "Domain"
// @Success 201 {object} response.AddDomainResponse "Domain added"
// @Success 200 {object} response.AddDomainResponse "Domain already listed"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 401 {object} map[string]interface{} "Missing or invalid admin token"
// @Security BearerAuth
// @Router /api/v1/rules/domains [post]
func (h *addDomainHandler) Handle(c *fiber.Ctx) error {
	var req request.AddDomainRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	added, err := h.adder.Add(c.Context(), rulestore.List(req.List), req.Domain)
	if err != nil {
		if errors.Is(err, rulestore.ErrInvalidDomain) || errors.Is(err, rulestore.ErrUnknownList) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).WithField("list", req.List).Error("failed to add domain")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(response.AddDomainResponse{
		List:   req.List,
		Domain: req.Domain,
		Added:  added,
	})
}
