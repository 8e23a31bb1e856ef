package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"reserva-admin/internal/model"
	"reserva-admin/internal/repository"
)

// RestauranteHandler serves the /restaurantes CRUD.
type RestauranteHandler struct {
	Repo *repository.RestauranteRepo
}

func NewRestauranteHandler(r *repository.RestauranteRepo) *RestauranteHandler {
	return &RestauranteHandler{Repo: r}
}

type restauranteCreateReq struct {
	Nome       string `json:"nome"`
	Capacidade int    `json:"capacidade"`
}

type restauranteUpdateReq struct {
	Nome       *string `json:"nome"`
	Capacidade *int    `json:"capacidade"`
}

// List: GET /restaurantes?page=&limit=
func (h *RestauranteHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	items, total, err := h.Repo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// Get: GET /restaurantes/:id
func (h *RestauranteHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	rest, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRestauranteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurante not found", "code": "RESTAURANTE_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rest)
}

// Create: POST /restaurantes
func (h *RestauranteHandler) Create(c echo.Context) error {
	var req restauranteCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome is required", "code": "MISSING_NOME"})
	}
	if req.Capacidade <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacidade must be positive", "code": "INVALID_CAPACIDADE"})
	}
	rest := &model.Restaurante{Nome: req.Nome, Capacidade: req.Capacidade}
	if err := h.Repo.Create(c.Request().Context(), rest); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, rest)
}

// Update: PUT /restaurantes/:id (partial, at least one field)
func (h *RestauranteHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req restauranteUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	if req.Nome == nil && req.Capacidade == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update", "code": "NO_FIELDS_TO_UPDATE"})
	}
	if req.Nome != nil && strings.TrimSpace(*req.Nome) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nome cannot be empty", "code": "MISSING_NOME"})
	}
	if req.Capacidade != nil && *req.Capacidade <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacidade must be positive", "code": "INVALID_CAPACIDADE"})
	}
	err := h.Repo.Update(c.Request().Context(), id, req.Nome, req.Capacidade)
	if err != nil {
		if err == repository.ErrRestauranteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurante not found", "code": "RESTAURANTE_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	rest, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rest)
}

// Delete: DELETE /restaurantes/:id. Refused with 409 while eventos still
// reference the restaurant.
func (h *RestauranteHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	err := h.Repo.Delete(c.Request().Context(), id)
	if err != nil {
		switch err {
		case repository.ErrRestauranteNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurante not found", "code": "RESTAURANTE_NOT_FOUND"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "restaurante has eventos", "code": "RESTAURANTE_COM_EVENTOS"})
		}
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
