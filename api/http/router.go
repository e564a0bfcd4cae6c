package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careerpilot/careerpilot/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	recs *handlers.RecommendationHandler,
	reports *handlers.ReportHandler,
	resumes *handlers.ResumeHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/google", auth.Google)
	a.Get("/me", authMW, auth.Me)

	v1.Post("/recommendations", authMW, recs.Generate)
	v1.Post("/resume/skills", authMW, resumes.Skills)

	rg := v1.Group("/reports", authMW)
	rg.Get("/", reports.List)
	rg.Post("/", reports.Create)
	rg.Get("/:id", reports.Get)
	rg.Delete("/:id", reports.Delete)
}
