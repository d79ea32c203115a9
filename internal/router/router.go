package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edupath-ng/edupath-go-api/internal/config"
	"github.com/edupath-ng/edupath-go-api/internal/handler"
	"github.com/edupath-ng/edupath-go-api/internal/middleware"
	"github.com/edupath-ng/edupath-go-api/internal/observability"
	"github.com/edupath-ng/edupath-go-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler      *handler.StudentHandler
	AdminHandler        *handler.AdminHandler
	BlogHandler         *handler.BlogHandler
	TestimonialHandler  *handler.TestimonialHandler
	SuccessStoryHandler *handler.SuccessStoryHandler
	UploadHandler       *handler.UploadHandler
}

// Register wires the HTTP routes into the fiber application. Student
// registration, both logins, the external testimonial form and the public
// content listings are open; everything else requires an admin session.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	adminOnly := middleware.JWTProtected(cfg.AdminJWTSecret, service.TokenAudienceAdmin)
	loginLimiter := middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow)

	if deps.StudentHandler != nil {
		students := api.Group("/students")
		students.Use("/login", loginLimiter)
		deps.StudentHandler.RegisterPublic(students)
		deps.StudentHandler.RegisterProtected(students.Group("", adminOnly))
	}

	if deps.AdminHandler != nil {
		admins := api.Group("/admin")
		admins.Use("/login", loginLimiter)
		deps.AdminHandler.RegisterPublic(admins)
		deps.AdminHandler.RegisterProtected(admins.Group("", adminOnly))
	}

	if deps.BlogHandler != nil {
		blogs := api.Group("/blogs")
		deps.BlogHandler.RegisterPublic(blogs)
		deps.BlogHandler.RegisterProtected(blogs.Group("", adminOnly))
	}

	if deps.TestimonialHandler != nil {
		testimonials := api.Group("/testimonials")
		deps.TestimonialHandler.RegisterPublic(testimonials)
		deps.TestimonialHandler.RegisterProtected(testimonials.Group("", adminOnly))
	}

	if deps.SuccessStoryHandler != nil {
		stories := api.Group("/success-stories")
		deps.SuccessStoryHandler.RegisterPublic(stories)
		deps.SuccessStoryHandler.RegisterProtected(stories.Group("", adminOnly))
	}

	if deps.UploadHandler != nil {
		uploads := api.Group("/uploads", adminOnly)
		deps.UploadHandler.Register(uploads)
	}
}
