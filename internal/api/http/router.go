package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tutors         *handlers.TutorsHandler
	Courses        *handlers.CoursesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	bearer := cfg.AuthMiddleware.Handle

	tutors := app.Group("/tutors")
	tutors.Get("/", cfg.Tutors.ListTutors)
	tutors.Post("/profile", bearer, auth.RequireRole(domain.RoleTutor), cfg.Tutors.CreateProfile)
	tutors.Put("/profile", bearer, cfg.Tutors.UpdateProfile)
	tutors.Get("/:id", cfg.Tutors.GetTutor)
	tutors.Get("/:id/reviews", cfg.Tutors.ListReviews)
	tutors.Post("/:id/reviews", bearer, auth.RequireRole(domain.RoleStudent), cfg.Tutors.CreateReview)

	courses := app.Group("/courses")
	courses.Get("/", cfg.Courses.ListCourses)
	courses.Get("/mine", bearer, cfg.Courses.ListMyCourses)
	courses.Post("/", bearer, cfg.Courses.CreateCourse)
	courses.Get("/:id", cfg.Courses.GetCourse)
	courses.Put("/:id", bearer, cfg.Courses.UpdateCourse)
	courses.Delete("/:id", bearer, cfg.Courses.DeleteCourse)
}
