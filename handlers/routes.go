package handlers

import (
	"hackhub-backend/middleware"
	"hackhub-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires every REST endpoint. Routes declare their access
// level here; ownership checks run inside the handlers where the
// resource's owner is known.
func SetupRoutes(
	app *fiber.App,
	eventService *services.EventService,
	registrationService *services.RegistrationService,
	leaderboardService *services.LeaderboardService,
	userService *services.UserService,
	statsService *services.StatsService,
) {
	api := app.Group("/api", middleware.UserContextMiddleware())

	// Public routes
	api.Get("/events", eventService.GetEvents)
	api.Get("/events/slug/:slug", eventService.GetEventBySlug)
	api.Get("/events/:id", eventService.GetEvent)
	api.Get("/events/:id/leaderboard", leaderboardService.GetEventLeaderboard)
	api.Get("/stats", statsService.GetStats)

	// Authenticated routes
	secured := api.Group("/", middleware.RequireAuthenticated())

	secured.Get("/auth/user", userService.GetCurrentUser)
	secured.Patch("/auth/user", userService.UpdateProfile)

	// Event management (organizer/admin; ownership-checked in handlers)
	secured.Post("/events", eventService.CreateEvent)
	secured.Patch("/events/:id", eventService.UpdateEvent)
	secured.Delete("/events/:id", eventService.DeleteEvent)
	secured.Get("/events/:id/registrations", eventService.GetEventRegistrations)

	// Registration workflow
	secured.Post("/events/:id/register", registrationService.RegisterForEvent)
	secured.Delete("/registrations/:id", registrationService.CancelRegistration)
	secured.Patch("/registrations/:id", registrationService.UpdateSubmission)
	secured.Get("/users/:id/registrations", registrationService.GetUserRegistrations)

	// Leaderboard judging (event owner/admin)
	secured.Post("/events/:id/leaderboard", leaderboardService.CreateEntry)
	secured.Patch("/leaderboard/:id", leaderboardService.UpdateEntry)

	// Admin
	secured.Patch("/users/:id/role", userService.UpdateUserRole)
}
