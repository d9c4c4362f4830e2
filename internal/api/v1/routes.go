package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/routinely/internal/auth"
)

// Routes mounts every v1 endpoint on router. Identify runs first so that
// handlers always see the caller, anonymous or not.
func Routes(router fiber.Router, h *Handler) {
	opt := auth.Options{DB: h.DB, Tokens: h.Tokens, Revoker: h.Revoker, Logger: h.Logger}
	v1 := router.Group("/v1", auth.Identify(opt))
	private := auth.RequireAuth()

	v1.Post("/register", h.Register)
	v1.Post("/login", h.Login)
	v1.Post("/logout", private, h.Logout)

	v1.Get("/users", h.ListUsers)
	v1.Get("/users/:id", h.UserJournal)

	routines := v1.Group("/routines")
	routines.Get("/", h.Index)
	routines.Get("/top", h.Top)
	routines.Get("/trending", h.Trending)
	routines.Post("/", private, h.CreateRoutine)
	routines.Get("/:id", h.Detail)
	routines.Put("/:id", private, h.EditRoutine)
	routines.Delete("/:id", private, h.DeleteRoutine)
	routines.Post("/:id/customize", private, h.Customize)
	routines.Post("/:id/exercises", private, h.AddExercises)
	routines.Post("/:id/like", private, h.ToggleLike)
	routines.Post("/:id/comments", private, h.AddComment)
	routines.Post("/:id/journal", private, h.AddToJournal)

	journal := v1.Group("/journal", private)
	journal.Get("/", h.Journal)
	journal.Post("/:entryID/complete", h.MarkComplete)
	journal.Delete("/:entryID", h.RemoveJournalEntry)
}
