package handler

import (
	"quiz-master/internal/middleware"
	"quiz-master/internal/service"
	"quiz-master/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything RegisterRoutes needs.
type Handlers struct {
	Catalog   *CatalogHandler
	Session   *SessionHandler
	Tokens    service.TokenIssuer
	Validator *validation.Validator
}

// RegisterRoutes mounts the catalog and session API under /api.
func RegisterRoutes(app *fiber.App, h Handlers) {
	vm := middleware.NewValidationMiddleware(h.Validator)
	api := app.Group("/api")

	api.Get("/categories", h.Catalog.ListCategories)
	api.Get("/quizzes", h.Catalog.ListQuizzes)
	api.Get("/quizzes/slug/:slug", vm.ValidateSlug(), h.Catalog.GetQuizBySlug)
	api.Get("/quizzes/id/:id", vm.ValidateQuizID(), h.Catalog.GetQuizByID)

	api.Post("/sessions", h.Session.CreateSession)

	sessions := api.Group("/sessions/:id", vm.ValidateSessionID(), middleware.SessionAuth(h.Tokens))
	sessions.Get("", h.Session.GetSession)
	sessions.Delete("", h.Session.CloseSession)
	sessions.Post("/start", h.Session.StartSession)
	sessions.Post("/answers", h.Session.SubmitAnswer)
	sessions.Post("/advance", h.Session.Advance)
	sessions.Post("/restart", h.Session.Restart)
	sessions.Get("/summary", h.Session.GetSummary)
	sessions.Get("/review", h.Session.GetReview)
}
