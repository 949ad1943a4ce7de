package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"conference-webapp/config"
	"conference-webapp/handlers"
	"conference-webapp/middleware"
)

const fallbackMessage = "Something broke!"

// New builds the application with its middleware chain and routes.
func New(h *handlers.Handler, cfg config.Config, log *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestId())
	app.Use(middleware.Cors(cfg.CORSOrigin))

	SetupRoutes(app, h, cfg)

	return app
}

// errorHandler answers every error no handler dealt with. Unknown routes
// keep their status; anything else is a plain-text 500.
func errorHandler(log *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && isRoutingError(fiberErr.Code) {
			return c.Status(fiberErr.Code).SendString(fiberErr.Message)
		}

		log.Errorw("unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"requestid", c.Locals(middleware.RequestIdKey),
			"error", err)
		return c.Status(fiber.StatusInternalServerError).SendString(fallbackMessage)
	}
}

func isRoutingError(code int) bool {
	return code == fiber.StatusNotFound || code == fiber.StatusMethodNotAllowed
}

func SetupRoutes(app *fiber.App, h *handlers.Handler, cfg config.Config) {
	api := app.Group("/", logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	api.Get("/health", h.Health)

	//Public
	api.Get("/conferences", h.GetConferences)
	api.Post("/conference", h.CreateNewConference)
	api.Post("/register", h.Register)
	api.Post("/feedback", h.SubmitFeedback)

	//Admin
	var admin fiber.Router
	if cfg.AdminAuth {
		api.Post("/login", h.Login)
		admin = api.Group("/admin", middleware.Authorize(cfg.Sign), middleware.RequireAdmin())
	} else {
		admin = api.Group("/admin")
	}
	admin.Post("/conference", h.CreateNewConference)
	admin.Put("/conference/:id", h.UpdateConference)
	admin.Delete("/conference/:id", h.DeleteConference)
	admin.Get("/registrations", h.GetRegistrations)
	admin.Delete("/registration/:id", h.DeleteRegistration)
}
