package handlers

import "github.com/gofiber/fiber/v2"

// Root redirects / and /docs to the hosted API documentation.
func (a *API) Root(c *fiber.Ctx) error {
	return c.Redirect("docs/", fiber.StatusFound)
}
