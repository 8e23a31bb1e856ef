package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reserva-admin/internal/apperr"
	"reserva-admin/internal/model"
	"reserva-admin/internal/repository"
	"reserva-admin/internal/service"
)

// MarcacaoHandler serves the flat /eventos-reservas surface over the
// association rows. Creation goes through the same pipeline as the nested
// endpoint; only this surface accepts informacoes/quantidade/status.
type MarcacaoHandler struct {
	Repo       *repository.MarcacaoRepo
	Associacao Associador
}

func NewMarcacaoHandler(r *repository.MarcacaoRepo, a Associador) *MarcacaoHandler {
	return &MarcacaoHandler{Repo: r, Associacao: a}
}

type marcacaoCreateReq struct {
	EventoID    uint64  `json:"evento_id"`
	ReservaID   uint64  `json:"reserva_id"`
	Informacoes *string `json:"informacoes"`
	Quantidade  *int    `json:"quantidade"`
	Status      *string `json:"status"`
}

type marcacaoUpdateReq struct {
	Informacoes *string `json:"informacoes"`
	Quantidade  *int    `json:"quantidade"`
	Status      *string `json:"status"`
}

// List: GET /eventos-reservas
func (h *MarcacaoHandler) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

// Get: GET /eventos-reservas/:eventoId/:reservaId
func (h *MarcacaoHandler) Get(c echo.Context) error {
	eventoID, ok := pathID(c, "eventoId")
	if !ok {
		return invalidID(c)
	}
	reservaID, ok := pathID(c, "reservaId")
	if !ok {
		return invalidID(c)
	}
	m, err := h.Repo.Get(c.Request().Context(), eventoID, reservaID)
	if err != nil {
		if err == repository.ErrMarcacaoNotFound {
			return writeErr(c, apperr.ErrMarcacaoNotFound)
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Create: POST /eventos-reservas. Runs the full pipeline with the extra
// fields of this surface.
func (h *MarcacaoHandler) Create(c echo.Context) error {
	var req marcacaoCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	if req.EventoID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "evento_id is required", "code": "MISSING_EVENTO_ID"})
	}
	if req.ReservaID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reserva_id is required", "code": "MISSING_RESERVA_ID"})
	}
	if req.Quantidade != nil && *req.Quantidade <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantidade must be positive", "code": "INVALID_QUANTIDADE"})
	}
	in := service.AssociacaoInput{
		Informacoes: req.Informacoes,
		Quantidade:  req.Quantidade,
	}
	if req.Status != nil {
		in.Status = *req.Status
	} else {
		in.Status = model.StatusAtiva
	}
	m, err := h.Associacao.Associar(c.Request().Context(), req.EventoID, req.ReservaID, in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Update: PUT /eventos-reservas/:eventoId/:reservaId (partial). Updates
// never rerun the pipeline: occupancy sums the reservas headcount, so
// editing a marcação cannot break the capacity invariant.
func (h *MarcacaoHandler) Update(c echo.Context) error {
	eventoID, ok := pathID(c, "eventoId")
	if !ok {
		return invalidID(c)
	}
	reservaID, ok := pathID(c, "reservaId")
	if !ok {
		return invalidID(c)
	}
	var req marcacaoUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	if req.Informacoes == nil && req.Quantidade == nil && req.Status == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update", "code": "NO_FIELDS_TO_UPDATE"})
	}
	if req.Quantidade != nil && *req.Quantidade <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantidade must be positive", "code": "INVALID_QUANTIDADE"})
	}
	err := h.Repo.Update(c.Request().Context(), eventoID, reservaID, req.Informacoes, req.Status, req.Quantidade)
	if err != nil {
		if err == repository.ErrMarcacaoNotFound {
			return writeErr(c, apperr.ErrMarcacaoNotFound)
		}
		return writeErr(c, err)
	}
	m, err := h.Repo.Get(c.Request().Context(), eventoID, reservaID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete: DELETE /eventos-reservas/:eventoId/:reservaId
func (h *MarcacaoHandler) Delete(c echo.Context) error {
	eventoID, ok := pathID(c, "eventoId")
	if !ok {
		return invalidID(c)
	}
	reservaID, ok := pathID(c, "reservaId")
	if !ok {
		return invalidID(c)
	}
	err := h.Repo.Delete(c.Request().Context(), eventoID, reservaID)
	if err != nil {
		if err == repository.ErrMarcacaoNotFound {
			return writeErr(c, apperr.ErrMarcacaoNotFound)
		}
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
