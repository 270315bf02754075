package adapters

import (
	"github.com/gin-gonic/gin"
	"github.com/toyz/compass/pkg/compass"
)

// RegisterGin mounts deep-link navigation for the controller on a Gin router.
// Routes match RegisterEcho.
func RegisterGin(r gin.IRouter, prefix string, c *compass.Controller) {
	g := r.Group(prefix)

	g.POST("/back", func(ctx *gin.Context) {
		status, body := serveBack(c)
		ctx.JSON(status, body)
	})

	g.GET("/*route", func(ctx *gin.Context) {
		route := routeFromRequest(prefix, ctx.Request.URL.EscapedPath(), ctx.Request.URL.RawQuery)
		status, body := serveDeepLink(c, route)
		ctx.JSON(status, body)
	})
}
