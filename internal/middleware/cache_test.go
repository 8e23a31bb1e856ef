package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserva-admin/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"items":[],"total":0}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)
	// header length pointing past the buffer
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 99, 'x'})
	assert.False(t, ok)
}

func TestCacheKeyFromStrategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	e := echo.New()

	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/eventos")
		return c
	}

	base := cacheKeyFrom(cfg, newCtx("/v1/eventos"))
	withQuery := cacheKeyFrom(cfg, newCtx("/v1/eventos?page=2"))
	assert.NotEqual(t, base, withQuery)

	// The "route" strategy ignores the query string entirely.
	cfg.KeyStrategy = "route"
	assert.Equal(t,
		cacheKeyFrom(cfg, newCtx("/v1/eventos")),
		cacheKeyFrom(cfg, newCtx("/v1/eventos?page=2")),
	)
}

func TestBuildRateKey(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reservas", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/reservas")
	c.Set("user_id", uint64(7))

	assert.Equal(t, "rl:user:7:route:GET /v1/reservas", buildRateKey(cfg, c))
}

func TestCurrentUserIDFallsBackToAnon(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", currentUserID(c))
	c.Set("user_id", uint64(12))
	assert.Equal(t, "12", currentUserID(c))
}
