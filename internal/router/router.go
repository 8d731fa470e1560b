package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/cinofilo-api/internal/config"
	"github.com/noah-isme/cinofilo-api/internal/handler"
	"github.com/noah-isme/cinofilo-api/internal/middleware"
	"github.com/noah-isme/cinofilo-api/internal/models"
	"github.com/noah-isme/cinofilo-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	StudentHandler    *handler.StudentHandler
	CourseHandler     *handler.CourseHandler
	CategoryHandler   *handler.CategoryHandler
	MaterialHandler   *handler.MaterialHandler
	ClassHandler      *handler.ClassHandler
	LessonHandler     *handler.LessonHandler
	QuizHandler       *handler.QuizHandler
	CaseStudyHandler  *handler.CaseStudyHandler
	EvaluationHandler *handler.EvaluationHandler
	DashboardHandler  *handler.DashboardHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/api/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	requireStaff := middleware.RequireRole(models.RoleTutor, models.RoleAdmin)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	if deps.AuthHandler != nil {
		public := app.Group("/api/auth")
		deps.AuthHandler.RegisterPublic(public)

		protected := app.Group("/api/auth", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	api := app.Group("/api", jwtMiddleware)
	staff := app.Group("/api/staff", jwtMiddleware, requireStaff)

	if deps.StudentHandler != nil {
		deps.StudentHandler.RegisterSelf(api.Group("/me"))

		admin := app.Group("/api/admin/students", jwtMiddleware, requireAdmin)
		deps.StudentHandler.RegisterAdmin(admin)
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(api.Group("/courses"))
		deps.CourseHandler.RegisterStaff(staff.Group("/courses"))
	}

	if deps.CategoryHandler != nil {
		deps.CategoryHandler.Register(api)
		deps.CategoryHandler.RegisterStaff(staff)
	}

	if deps.MaterialHandler != nil {
		deps.MaterialHandler.Register(api)
		deps.MaterialHandler.RegisterStaff(staff)
	}

	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api)
		deps.ClassHandler.RegisterStaff(staff)
	}

	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(api)
		deps.LessonHandler.RegisterStaff(staff)
	}

	if deps.QuizHandler != nil {
		deps.QuizHandler.Register(api)
		deps.QuizHandler.RegisterStaff(staff)
	}

	if deps.CaseStudyHandler != nil {
		deps.CaseStudyHandler.Register(api)
		deps.CaseStudyHandler.RegisterStaff(staff)
	}

	if deps.EvaluationHandler != nil {
		evaluate := app.Group("/api", jwtMiddleware, middleware.RateLimit("evaluate", 10, time.Minute))
		deps.EvaluationHandler.Register(evaluate)
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api)
	}
}
