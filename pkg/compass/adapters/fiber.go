package adapters

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/toyz/compass/pkg/compass"
)

// RegisterFiber mounts deep-link navigation for the controller on a Fiber
// router. Routes match RegisterEcho.
func RegisterFiber(r fiber.Router, prefix string, c *compass.Controller) {
	g := r.Group(prefix)

	g.Post("/back", func(ctx *fiber.Ctx) error {
		status, body := serveBack(c)
		return ctx.Status(status).JSON(body)
	})

	g.Get("/*", func(ctx *fiber.Ctx) error {
		// OriginalURL keeps the path escaped, which path-form routes rely on
		path, rawQuery, _ := strings.Cut(ctx.OriginalURL(), "?")
		route := routeFromRequest(prefix, path, rawQuery)
		status, body := serveDeepLink(c, route)
		return ctx.Status(status).JSON(body)
	})
}
