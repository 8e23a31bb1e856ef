package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	limit, offset := pagination(newCtx("/v1/eventos"))
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pagination(newCtx("/v1/eventos?page=3&limit=25"))
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)

	// garbage falls back to the defaults
	limit, offset = pagination(newCtx("/v1/eventos?page=-1&limit=abc"))
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)
}

func TestPathID(t *testing.T) {
	e := echo.New()
	newCtx := func(val string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(val)
		return c
	}

	id, ok := pathID(newCtx("42"), "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	_, ok = pathID(newCtx("0"), "id")
	assert.False(t, ok)
	_, ok = pathID(newCtx("abc"), "id")
	assert.False(t, ok)
	_, ok = pathID(newCtx("-5"), "id")
	assert.False(t, ok)
}

func TestDateAndTimeValidators(t *testing.T) {
	assert.True(t, isValidDate("2026-09-01"))
	assert.False(t, isValidDate("01/09/2026"))
	assert.False(t, isValidDate("2026-13-40"))

	assert.True(t, isValidTime("19:30"))
	assert.False(t, isValidTime("7:30 PM"))
	assert.False(t, isValidTime("25:00"))
}
