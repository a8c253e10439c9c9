package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	yall "yall.in"

	"github.com/HttpRafa/Bibliothek/internal/resolver"
	"github.com/HttpRafa/Bibliothek/internal/server/handlers"
)

// New builds the fiber app: error envelope, request logging, the v1
// read routes, and the docs redirect.
func New(api *handlers.API, log *yall.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ServerHeader:          "Bibliothek",
		AppName:               "Bibliothek",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	if log != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.SetUserContext(yall.InContext(c.UserContext(), log))
			return c.Next()
		})
	}

	RegisterRoutes(app, api)
	return app
}

// RegisterRoutes attaches every endpoint to app.
func RegisterRoutes(app *fiber.App, api *handlers.API) {
	app.Get("/", api.Root)
	app.Get("/docs", api.Root)

	v1 := app.Group("/v1")
	v1.Get("/projects", api.Projects)
	v1.Get("/projects/:project", api.Project)
	v1.Get("/projects/:project/group/:group", api.Group)
	v1.Get("/projects/:project/versions/:version", api.Version)
	v1.Get("/projects/:project/versions/:version/builds", api.Builds)
	v1.Get("/projects/:project/versions/:version/builds/:build", api.Build)
	v1.Get("/projects/:project/versions/:version/builds/:build/downloads/:download", api.Download)
}

// errorHandler renders every failure as the uniform one-field
// envelope. Typed resolution and transfer errors carry their own
// status and message; anything unrecognized becomes a bare 500.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var apiErr *resolver.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
		message = apiErr.Message
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
