package adapters

import (
	"github.com/labstack/echo/v4"
	"github.com/toyz/compass/pkg/compass"
)

// RegisterEcho mounts deep-link navigation for the controller on an Echo
// instance: GET <prefix>/<route> navigates, GET <prefix>/ reports the current
// entry and POST <prefix>/back navigates up.
func RegisterEcho(e *echo.Echo, prefix string, c *compass.Controller) {
	g := e.Group(prefix)

	g.POST("/back", func(ctx echo.Context) error {
		status, body := serveBack(c)
		return ctx.JSON(status, body)
	})

	g.GET("/*", func(ctx echo.Context) error {
		req := ctx.Request()
		route := routeFromRequest(prefix, req.URL.EscapedPath(), req.URL.RawQuery)
		status, body := serveDeepLink(c, route)
		return ctx.JSON(status, body)
	})
}
