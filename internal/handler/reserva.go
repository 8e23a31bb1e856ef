package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"reserva-admin/internal/model"
	"reserva-admin/internal/repository"
)

// ReservaHandler serves the /reservas CRUD.
type ReservaHandler struct {
	Repo *repository.ReservaRepo
}

func NewReservaHandler(r *repository.ReservaRepo) *ReservaHandler {
	return &ReservaHandler{Repo: r}
}

type reservaCreateReq struct {
	NomeHospede  string `json:"nome_hospede"`
	DataCheckin  string `json:"data_checkin"`
	DataCheckout string `json:"data_checkout"`
	QtdHospedes  int    `json:"qtd_hospedes"`
}

type reservaUpdateReq struct {
	NomeHospede  *string `json:"nome_hospede"`
	DataCheckin  *string `json:"data_checkin"`
	DataCheckout *string `json:"data_checkout"`
	QtdHospedes  *int    `json:"qtd_hospedes"`
}

// List: GET /reservas?page=&limit=
func (h *ReservaHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	items, total, err := h.Repo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// Get: GET /reservas/:id
func (h *ReservaHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	res, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrReservaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found", "code": "RESERVA_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create: POST /reservas. The stay window must be a valid date pair with
// checkout on or after checkin.
func (h *ReservaHandler) Create(c echo.Context) error {
	var req reservaCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	req.NomeHospede = strings.TrimSpace(req.NomeHospede)
	switch {
	case req.NomeHospede == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome_hospede is required", "code": "MISSING_NOME_HOSPEDE"})
	case !isValidDate(req.DataCheckin) || !isValidDate(req.DataCheckout):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD", "code": "INVALID_DATA"})
	case req.QtdHospedes <= 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "qtd_hospedes must be positive", "code": "INVALID_QTD_HOSPEDES"})
	}
	if !windowOK(req.DataCheckin, req.DataCheckout) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "data_checkout must not precede data_checkin", "code": "INVALID_PERIODO"})
	}
	res := &model.Reserva{
		NomeHospede:  req.NomeHospede,
		DataCheckin:  req.DataCheckin,
		DataCheckout: req.DataCheckout,
		QtdHospedes:  req.QtdHospedes,
	}
	if err := h.Repo.Create(c.Request().Context(), res); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Update: PUT /reservas/:id (partial). When only one end of the stay
// window changes, the stored other end is fetched so the combined window
// is still validated.
func (h *ReservaHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req reservaUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	if req.NomeHospede == nil && req.DataCheckin == nil && req.DataCheckout == nil && req.QtdHospedes == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update", "code": "NO_FIELDS_TO_UPDATE"})
	}
	if req.NomeHospede != nil && strings.TrimSpace(*req.NomeHospede) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome_hospede cannot be empty", "code": "MISSING_NOME_HOSPEDE"})
	}
	if req.DataCheckin != nil && !isValidDate(*req.DataCheckin) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "data_checkin must be YYYY-MM-DD", "code": "INVALID_DATA"})
	}
	if req.DataCheckout != nil && !isValidDate(*req.DataCheckout) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "data_checkout must be YYYY-MM-DD", "code": "INVALID_DATA"})
	}
	if req.QtdHospedes != nil && *req.QtdHospedes <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "qtd_hospedes must be positive", "code": "INVALID_QTD_HOSPEDES"})
	}

	if req.DataCheckin != nil || req.DataCheckout != nil {
		current, err := h.Repo.GetByID(c.Request().Context(), id)
		if err != nil {
			if err == repository.ErrReservaNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found", "code": "RESERVA_NOT_FOUND"})
			}
			return writeErr(c, err)
		}
		checkin := current.DataCheckin
		checkout := current.DataCheckout
		if req.DataCheckin != nil {
			checkin = *req.DataCheckin
		}
		if req.DataCheckout != nil {
			checkout = *req.DataCheckout
		}
		if !windowOK(checkin, checkout) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "data_checkout must not precede data_checkin", "code": "INVALID_PERIODO"})
		}
	}

	err := h.Repo.Update(c.Request().Context(), id, req.NomeHospede, req.DataCheckin, req.DataCheckout, req.QtdHospedes)
	if err != nil {
		if err == repository.ErrReservaNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found", "code": "RESERVA_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	res, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete: DELETE /reservas/:id. Refused with 409 while marcações still
// reference the reserva.
func (h *ReservaHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	err := h.Repo.Delete(c.Request().Context(), id)
	if err != nil {
		switch err {
		case repository.ErrReservaNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva not found", "code": "RESERVA_NOT_FOUND"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "reserva has marcações", "code": "RESERVA_COM_MARCACOES"})
		}
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// windowOK reports whether checkout is on or after checkin. Both strings
// are already known to be valid dates.
func windowOK(checkin, checkout string) bool {
	in, _ := time.Parse("2006-01-02", checkin)
	out, _ := time.Parse("2006-01-02", checkout)
	return !out.Before(in)
}
