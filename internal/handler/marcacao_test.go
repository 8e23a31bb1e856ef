package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserva-admin/internal/model"
	"reserva-admin/internal/repository"
)

func TestMarcacaoCreate(t *testing.T) {
	t.Run("forwards extra fields to the pipeline", func(t *testing.T) {
		stub := &stubAssociador{marcacao: &model.Marcacao{
			EventoID: 2, ReservaID: 5, Quantidade: 3, Status: "Pendente",
		}}
		h := NewMarcacaoHandler(nil, stub)
		c, rec := newJSONContext(t, http.MethodPost, "/v1/eventos-reservas",
			`{"evento_id":2,"reserva_id":5,"informacoes":"mesa perto da janela","quantidade":3,"status":"Pendente"}`)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, uint64(2), stub.gotEvento)
		assert.Equal(t, uint64(5), stub.gotReserva)
		require.NotNil(t, stub.gotInput.Informacoes)
		assert.Equal(t, "mesa perto da janela", *stub.gotInput.Informacoes)
		require.NotNil(t, stub.gotInput.Quantidade)
		assert.Equal(t, 3, *stub.gotInput.Quantidade)
		assert.Equal(t, "Pendente", stub.gotInput.Status)
	})

	t.Run("defaults status to Ativa", func(t *testing.T) {
		stub := &stubAssociador{marcacao: &model.Marcacao{EventoID: 2, ReservaID: 5}}
		h := NewMarcacaoHandler(nil, stub)
		c, rec := newJSONContext(t, http.MethodPost, "/v1/eventos-reservas", `{"evento_id":2,"reserva_id":5}`)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, model.StatusAtiva, stub.gotInput.Status)
		assert.Nil(t, stub.gotInput.Quantidade)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name     string
			body     string
			wantCode string
		}{
			{"missing evento_id", `{"reserva_id":5}`, "MISSING_EVENTO_ID"},
			{"missing reserva_id", `{"evento_id":2}`, "MISSING_RESERVA_ID"},
			{"zero quantidade", `{"evento_id":2,"reserva_id":5,"quantidade":0}`, "INVALID_QUANTIDADE"},
			{"negative quantidade", `{"evento_id":2,"reserva_id":5,"quantidade":-1}`, "INVALID_QUANTIDADE"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := NewMarcacaoHandler(nil, &stubAssociador{})
				c, rec := newJSONContext(t, http.MethodPost, "/v1/eventos-reservas", tt.body)

				require.NoError(t, h.Create(c))
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
			})
		}
	})
}

func TestMarcacaoDeleteUnknownPair(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectExec(`DELETE FROM eventos_reservas WHERE evento_id = \? AND reserva_id = \?`).
		WithArgs(int64(2), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	h := NewMarcacaoHandler(repository.NewMarcacaoRepo(db), &stubAssociador{})
	c, rec := newJSONContext(t, http.MethodDelete, "/v1/eventos-reservas/2/5", "")
	c.SetParamNames("eventoId", "reservaId")
	c.SetParamValues("2", "5")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "MARCACAO_NOT_FOUND", decodeBody(t, rec)["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarcacaoUpdateValidation(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		h := NewMarcacaoHandler(nil, &stubAssociador{})
		c, rec := newJSONContext(t, http.MethodPut, "/v1/eventos-reservas/2/5", `{}`)
		c.SetParamNames("eventoId", "reservaId")
		c.SetParamValues("2", "5")

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "NO_FIELDS_TO_UPDATE", decodeBody(t, rec)["code"])
	})

	t.Run("non positive quantidade", func(t *testing.T) {
		h := NewMarcacaoHandler(nil, &stubAssociador{})
		c, rec := newJSONContext(t, http.MethodPut, "/v1/eventos-reservas/2/5", `{"quantidade":0}`)
		c.SetParamNames("eventoId", "reservaId")
		c.SetParamValues("2", "5")

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_QUANTIDADE", decodeBody(t, rec)["code"])
	})

	t.Run("malformed pair ids", func(t *testing.T) {
		h := NewMarcacaoHandler(nil, &stubAssociador{})
		c, rec := newJSONContext(t, http.MethodPut, "/v1/eventos-reservas/x/5", `{"quantidade":2}`)
		c.SetParamNames("eventoId", "reservaId")
		c.SetParamValues("x", "5")

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ID", decodeBody(t, rec)["code"])
	})
}
