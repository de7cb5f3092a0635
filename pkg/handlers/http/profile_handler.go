package http

import (
	appProfile "github.com/NeuralTrust/AgeLock/pkg/app/profile"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getProfileHandler struct {
	switcher appProfile.Switcher
}

func NewGetProfileHandler(switcher appProfile.Switcher) Handler {
	return &getProfileHandler{switcher: switcher}
}

// Handle @Summary Get the active age profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.ProfileResponse
// @Router /api/v1/profile [get]
func (h *getProfileHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.ProfileResponse{Profile: h.switcher.Current()})
}

type setProfileHandler struct {
	logger   *logrus.Logger
	switcher appProfile.Switcher
}

func NewSetProfileHandler(logger *logrus.Logger, switcher appProfile.Switcher) Handler {
	return &setProfileHandler{
		logger:   logger,
		switcher: switcher,
	}
}

// Handle @Summary Switch the active age profile
// @Description Takes effect for every decision made after the call returns
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request.SetProfileRequest true "Profile"
// @Success 200 {object} response.ProfileResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 401 {object} map[string]interface{} "Missing or invalid admin token"
// @Security BearerAuth
// @Router /api/v1/profile [put]
func (h *setProfileHandler) Handle(c *fiber.Ctx) error {
	var req request.SetProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	next, _ := policy.ParseAgeProfile(req.Profile) //nolint:errcheck
	prev, err := h.switcher.Switch(c.Context(), next)
	if err != nil {
		// The in-memory switch has already happened; only persistence or
		// fan-out failed.
		h.logger.WithError(err).Warn("profile switched locally but not propagated")
	}
	return c.Status(fiber.StatusOK).JSON(response.ProfileResponse{Profile: next, Previous: prev})
}
