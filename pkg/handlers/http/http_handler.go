package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Decisions
	DecideHandler      Handler
	DecideBatchHandler Handler
	ClassifyHandler    Handler

	// Content filter
	FilterTextHandler Handler
	FilterURLHandler  Handler

	// Rules
	ReloadRulesHandler Handler
	AddDomainHandler   Handler

	// Profile
	GetProfileHandler Handler
	SetProfileHandler Handler

	GetVersionHandler Handler
}
