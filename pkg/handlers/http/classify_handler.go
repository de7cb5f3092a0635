package http

import (
	"github.com/NeuralTrust/AgeLock/pkg/classifier"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/request"
	"github.com/NeuralTrust/AgeLock/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type classifyHandler struct {
	logger *logrus.Logger
	engine PolicyEngine
}

func NewClassifyHandler(logger *logrus.Logger, engine PolicyEngine) Handler {
	return &classifyHandler{
		logger: logger,
		engine: engine,
	}
}

// Handle @Summary Classify a URL
// @Description Reports every heuristic for a URL without applying policy
// @Tags Decisions
// @Accept json
// @Produce json
// @Param request body request.ClassifyRequest true "URL"
// @Success 200 {object} response.ClassificationResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/classify [post]
func (h *classifyHandler) Handle(c *fiber.Ctx) error {
	var req request.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Unknown resource types classify as Other.
	rt, _ := policy.ParseResourceType(req.ResourceType) //nolint:errcheck
	desc := policy.RequestDescriptor{URL: req.URL, ResourceType: rt, Referrer: req.Referrer}
	cl := h.engine.Classifier()

	out := response.ClassificationResponse{
		URL:            req.URL,
		InternalScheme: cl.IsInternalScheme(req.URL),
		Gambling:       classifier.NotGambling.String(),
	}
	view, ok := cl.View(desc)
	if !ok {
		return c.Status(fiber.StatusOK).JSON(out)
	}

	out.Valid = true
	out.Infrastructure = view.IsInfrastructure()
	out.Gambling = view.Gambling().String()
	out.SearchEngine = view.IsSearchEngine()
	out.SearchResource = view.IsSearchEngineResource()
	out.Whitelisted = view.IsWhitelisted()
	out.Video = view.IsVideo()
	out.ExplicitCategory, _ = view.ExplicitCategory()
	out.Malicious = view.IsMaliciousDomain()
	out.AdOrTracker = view.IsAdOrTracker()
	out.Tracking = view.IsTrackingURL()
	out.ThirdPartyTracker = view.IsThirdPartyTracker()
	out.Suspicious = view.IsSuspiciousURL()
	out.ContentFarm = view.IsContentFarm()
	out.SocialMedia = view.IsSocialMedia()
	out.Gaming = view.IsGamingSite()
	out.RestrictedPlatform = view.IsRestrictedPlatform()
	out.KidsPlatform = view.IsKidsPlatform()
	out.KidFriendly = view.IsKidFriendlyResource()
	if rewritten := h.engine.EnforceSafeSearch(req.URL); rewritten != req.URL {
		out.SafeSearchURL = rewritten
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
