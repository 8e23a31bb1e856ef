package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reserva-admin/internal/repository"
)

// RegraHandler exposes the validation-rule kill switches consulted by the
// association pipeline.
type RegraHandler struct {
	Repo *repository.RegraRepo
}

func NewRegraHandler(r *repository.RegraRepo) *RegraHandler {
	return &RegraHandler{Repo: r}
}

type regraUpdateReq struct {
	Ativo *bool `json:"ativo"`
}

// List: GET /regras
func (h *RegraHandler) List(c echo.Context) error {
	items, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Update: PUT /regras/:id {"ativo": bool}
func (h *RegraHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var req regraUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "code": "INVALID_BODY"})
	}
	if req.Ativo == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ativo is required", "code": "MISSING_ATIVO"})
	}
	err := h.Repo.SetAtivo(c.Request().Context(), id, *req.Ativo)
	if err != nil {
		if err == repository.ErrRegraNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "regra not found", "code": "REGRA_NOT_FOUND"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "ativo": *req.Ativo})
}
