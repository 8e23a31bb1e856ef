package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservaCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing nome_hospede", `{"data_checkin":"2026-09-10","data_checkout":"2026-09-12","qtd_hospedes":2}`, "MISSING_NOME_HOSPEDE"},
		{"bad checkin format", `{"nome_hospede":"Ana","data_checkin":"10-09-2026","data_checkout":"2026-09-12","qtd_hospedes":2}`, "INVALID_DATA"},
		{"bad checkout format", `{"nome_hospede":"Ana","data_checkin":"2026-09-10","data_checkout":"soon","qtd_hospedes":2}`, "INVALID_DATA"},
		{"zero guests", `{"nome_hospede":"Ana","data_checkin":"2026-09-10","data_checkout":"2026-09-12","qtd_hospedes":0}`, "INVALID_QTD_HOSPEDES"},
		{"checkout before checkin", `{"nome_hospede":"Ana","data_checkin":"2026-09-12","data_checkout":"2026-09-10","qtd_hospedes":2}`, "INVALID_PERIODO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReservaHandler(nil)
			c, rec := newJSONContext(t, http.MethodPost, "/v1/reservas", tt.body)

			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
		})
	}
}

func TestReservaUpdateValidation(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		h := NewReservaHandler(nil)
		c, rec := newJSONContext(t, http.MethodPut, "/v1/reservas/4", `{}`)
		c.SetParamNames("id")
		c.SetParamValues("4")

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "NO_FIELDS_TO_UPDATE", decodeBody(t, rec)["code"])
	})

	t.Run("invalid date format fails before any lookup", func(t *testing.T) {
		h := NewReservaHandler(nil)
		c, rec := newJSONContext(t, http.MethodPut, "/v1/reservas/4", `{"data_checkin":"next week"}`)
		c.SetParamNames("id")
		c.SetParamValues("4")

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_DATA", decodeBody(t, rec)["code"])
	})

	t.Run("malformed id", func(t *testing.T) {
		h := NewReservaHandler(nil)
		c, rec := newJSONContext(t, http.MethodPut, "/v1/reservas/zero", `{"qtd_hospedes":3}`)
		c.SetParamNames("id")
		c.SetParamValues("zero")

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_ID", decodeBody(t, rec)["code"])
	})
}

func TestWindowOK(t *testing.T) {
	assert.True(t, windowOK("2026-09-10", "2026-09-10"))
	assert.True(t, windowOK("2026-09-10", "2026-09-11"))
	assert.False(t, windowOK("2026-09-11", "2026-09-10"))
}
