package router

import (
	"github.com/labstack/echo/v4"
	"github.com/magnetco/enthusiastauto-sub003/internal/handler"
)

// registerSystemRoutes registers health, docs and static assets outside the
// versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
