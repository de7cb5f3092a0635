package router

import (
	handlers "github.com/NeuralTrust/AgeLock/pkg/handlers/http"
	"github.com/NeuralTrust/AgeLock/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	adminAuth           middleware.Middleware
	handlerTransport    handlers.HandlerTransport
}

// NewAPIRouter mounts the API. Routes that change rule lists or the age
// profile additionally pass through adminAuth.
func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	adminAuth middleware.Middleware,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		adminAuth:           adminAuth,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	admin := r.adminAuth.Middleware()

	v1 := router.Group("/api/v1")
	{
		if mws := r.middlewareTransport.GetMiddlewares(); mws != nil {
			v1.Use(mws...)
		}

		v1.Get("/version", h.GetVersionHandler.Handle)

		v1.Post("/decide", h.DecideHandler.Handle)
		v1.Post("/decide/batch", h.DecideBatchHandler.Handle)
		v1.Post("/classify", h.ClassifyHandler.Handle)

		filter := v1.Group("/filter")
		{
			filter.Post("/text", h.FilterTextHandler.Handle)
			filter.Post("/url", h.FilterURLHandler.Handle)
		}

		rules := v1.Group("/rules", admin)
		{
			rules.Post("/reload", h.ReloadRulesHandler.Handle)
			rules.Post("/domains", h.AddDomainHandler.Handle)
		}

		v1.Get("/profile", h.GetProfileHandler.Handle)
		v1.Put("/profile", admin, h.SetProfileHandler.Handle)
	}
	return nil
}
