// Package handlers shapes resolved entities into the v1 read
// endpoints' response bodies. Handlers validate path segments against
// the name grammar before anything touches the store; a segment that
// does not match its pattern is treated as a route that does not
// exist. Internal ids never appear in a response: project_id carries
// the project's name and project_name its friendly name, matching the
// published wire format.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HttpRafa/Bibliothek/internal/resolver"
	"github.com/HttpRafa/Bibliothek/internal/storage"
)

// API bundles what every handler needs: the resolver chain, the
// artifact locator, and the default cache policy for read responses.
type API struct {
	Resolver *resolver.Resolver
	Locator  *storage.Locator
	Cache    string
}

func (a *API) cached(c *fiber.Ctx, body any) error {
	c.Set(fiber.HeaderCacheControl, a.Cache)
	return c.JSON(body)
}
