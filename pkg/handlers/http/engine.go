package http

import (
	"context"

	"github.com/NeuralTrust/AgeLock/pkg/classifier"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

// PolicyEngine is the part of *engine.Engine the handlers use.
type PolicyEngine interface {
	Decide(req policy.RequestDescriptor, profile policy.AgeProfile) policy.Verdict
	DecideAll(ctx context.Context, reqs []policy.RequestDescriptor, profile policy.AgeProfile) ([]policy.Verdict, error)
	FilterText(text string, profile policy.AgeProfile) policy.TextFilterResult
	FilterURL(raw string, profile policy.AgeProfile) policy.TextFilterResult
	EnforceSafeSearch(raw string) string
	Classifier() *classifier.Classifier
}

// ProfileSource returns the active profile snapshot.
type ProfileSource interface {
	Current() policy.AgeProfile
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.RequestIDKey).(string)
	return id
}
