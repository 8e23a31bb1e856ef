package router

import (
	"github.com/labstack/echo/v4"

	"reserva-admin/internal/handler"
	"reserva-admin/internal/middleware"
)

// AdminHandlers bundles the handlers mounted on the staff-facing /v1
// surface so RegisterAdmin stays a single call site in main.
type AdminHandlers struct {
	Restaurantes *handler.RestauranteHandler
	Eventos      *handler.EventoHandler
	Reservas     *handler.ReservaHandler
	Marcacoes    *handler.MarcacaoHandler
	Dashboard    *handler.DashboardHandler
	Regras       *handler.RegraHandler
}

// RegisterAdmin mounts the entity CRUD, the association endpoints, the
// dashboard and the rule toggles under /v1. Every route requires a valid
// JWT with the ADMIN or STAFF role; extra middleware (rate limiting,
// response caching) is appended via mw.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		append([]echo.MiddlewareFunc{
			middleware.JWTAuth(jwtSecret),
			middleware.RequireRole("ADMIN", "STAFF"),
		}, mw...)...,
	)

	g.GET("/restaurantes", h.Restaurantes.List)
	g.POST("/restaurantes", h.Restaurantes.Create)
	g.GET("/restaurantes/:id", h.Restaurantes.Get)
	g.PUT("/restaurantes/:id", h.Restaurantes.Update)
	g.DELETE("/restaurantes/:id", h.Restaurantes.Delete)

	g.GET("/eventos", h.Eventos.List)
	g.POST("/eventos", h.Eventos.Create)
	g.GET("/eventos/:id", h.Eventos.Get)
	g.PUT("/eventos/:id", h.Eventos.Update)
	g.DELETE("/eventos/:id", h.Eventos.Delete)
	// Nested association surface: runs the validation pipeline.
	g.POST("/eventos/:id/reservas", h.Eventos.Associar)
	g.DELETE("/eventos/:id/reservas/:reservaId", h.Eventos.Desassociar)

	g.GET("/reservas", h.Reservas.List)
	g.POST("/reservas", h.Reservas.Create)
	g.GET("/reservas/:id", h.Reservas.Get)
	g.PUT("/reservas/:id", h.Reservas.Update)
	g.DELETE("/reservas/:id", h.Reservas.Delete)

	// Flat association surface keyed by the (evento, reserva) pair. Create
	// goes through the same pipeline as POST /eventos/:id/reservas but
	// accepts informacoes, quantidade and status.
	g.GET("/eventos-reservas", h.Marcacoes.List)
	g.POST("/eventos-reservas", h.Marcacoes.Create)
	g.GET("/eventos-reservas/:eventoId/:reservaId", h.Marcacoes.Get)
	g.PUT("/eventos-reservas/:eventoId/:reservaId", h.Marcacoes.Update)
	g.DELETE("/eventos-reservas/:eventoId/:reservaId", h.Marcacoes.Delete)

	g.GET("/dashboard", h.Dashboard.Stats)

	g.GET("/regras", h.Regras.List)
	g.PUT("/regras/:id", h.Regras.Update)
}
