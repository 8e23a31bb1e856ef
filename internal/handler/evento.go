package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"reserva-admin/internal/model"
	"reserva-admin/internal/repository"
	"reserva-admin/internal/service"
)

// Associador is the slice of the association pipeline the handlers need.
// Satisfied by *service.AssociacaoService; tests plug in stubs.
type Associador interface {
	Associar(ctx context.Context, eventoID, reservaID uint64, in service.AssociacaoInput) (*model.Marcacao, error)
	Desassociar(ctx context.Context, eventoID, reservaID uint64) error
}

// EventoHandler serves the /eventos CRUD plus the nested association
// endpoints that tie reservas to an event.
type EventoHandler struct {
	Repo       *repository.EventoRepo
	Associacao Associador
}

func NewEventoHandler(r *repository.EventoRepo, a Associador) *EventoHandler {
	return &EventoHandler{Repo: r, Associacao: a}
}

type eventoCreateReq struct {
	RestauranteID uint64 `json:"restaurante_id"`
	Nome          string `json:"nome"`
	DataEvento    string `json:"data_evento"`
	Horario       string `json:"horario"`
}

type eventoUpdateReq struct {
	RestauranteID *uint64 `json:"restaurante_id"`
	Nome          *string `json:"nome"`
	DataEvento    *string `json:"data_evento"`
	Horario       *string `json:"horario"`
}

type associarReq struct {
	ReservaID uint64 `json:"reservaId"`
}

// List: GET /eventos?page=&limit=
func (h *EventoHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	items, total, err := h.Repo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// Get: GET /eventos/:id
func (h *EventoHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	ev, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrEventoNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "evento not found", "code": "EVENTO_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Create: POST /eventos
func (h *EventoHandler) Create(c echo.Context) error {
	var req eventoCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	req.Nome = strings.TrimSpace(req.Nome)
	switch {
	case req.RestauranteID == 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurante_id is required", "code": "MISSING_RESTAURANTE_ID"})
	case req.Nome == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome is required", "code": "MISSING_NOME"})
	case !isValidDate(req.DataEvento):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "data_evento must be YYYY-MM-DD", "code": "INVALID_DATA"})
	case !isValidTime(req.Horario):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "horario must be HH:MM", "code": "INVALID_HORARIO"})
	}
	ev := &model.Evento{
		RestauranteID: req.RestauranteID,
		Nome:          req.Nome,
		DataEvento:    req.DataEvento,
		Horario:       req.Horario,
	}
	if err := h.Repo.Create(c.Request().Context(), ev); err != nil {
		if err == repository.ErrRestauranteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurante not found", "code": "RESTAURANTE_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

// Update: PUT /eventos/:id (partial, at least one field)
func (h *EventoHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req eventoUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	if req.RestauranteID == nil && req.Nome == nil && req.DataEvento == nil && req.Horario == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update", "code": "NO_FIELDS_TO_UPDATE"})
	}
	if req.RestauranteID != nil && *req.RestauranteID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurante_id is invalid", "code": "MISSING_RESTAURANTE_ID"})
	}
	if req.Nome != nil && strings.TrimSpace(*req.Nome) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome cannot be empty", "code": "MISSING_NOME"})
	}
	if req.DataEvento != nil && !isValidDate(*req.DataEvento) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "data_evento must be YYYY-MM-DD", "code": "INVALID_DATA"})
	}
	if req.Horario != nil && !isValidTime(*req.Horario) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "horario must be HH:MM", "code": "INVALID_HORARIO"})
	}
	err := h.Repo.Update(c.Request().Context(), id, req.RestauranteID, req.Nome, req.DataEvento, req.Horario)
	if err != nil {
		switch err {
		case repository.ErrEventoNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "evento not found", "code": "EVENTO_NOT_FOUND"})
		case repository.ErrRestauranteNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurante not found", "code": "RESTAURANTE_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	ev, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete: DELETE /eventos/:id. Refused with 409 while marcações still
// reference the event.
func (h *EventoHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	err := h.Repo.Delete(c.Request().Context(), id)
	if err != nil {
		switch err {
		case repository.ErrEventoNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "evento not found", "code": "EVENTO_NOT_FOUND"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "evento has marcações", "code": "EVENTO_COM_MARCACOES"})
		}
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Associar: POST /eventos/:id/reservas {"reservaId": N}. Runs the full
// pipeline and answers 201 with the created marcação.
func (h *EventoHandler) Associar(c echo.Context) error {
	eventoID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req associarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	if req.ReservaID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservaId is required", "code": "MISSING_RESERVA_ID"})
	}
	m, err := h.Associacao.Associar(c.Request().Context(), eventoID, req.ReservaID, service.AssociacaoInput{})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Desassociar: DELETE /eventos/:id/reservas/:reservaId
func (h *EventoHandler) Desassociar(c echo.Context) error {
	eventoID, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	reservaID, ok := pathID(c, "reservaId")
	if !ok {
		return invalidID(c)
	}
	if err := h.Associacao.Desassociar(c.Request().Context(), eventoID, reservaID); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
