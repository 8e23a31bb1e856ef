package handler // handler defines the HTTP handlers of the admin API

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"reserva-admin/internal/apperr"
)

// pathID parses a numeric path parameter. A zero or malformed id is
// reported as ok=false; the caller responds with 400 INVALID_ID.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// invalidID is the shared 400 response for malformed path ids.
func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id", "code": "INVALID_ID"})
}

// writeErr translates an error into the API's JSON error shape. Typed
// apperr values keep their status and machine code; anything else is a
// store failure reported as 500 DB_ERROR.
func writeErr(c echo.Context, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return c.JSON(ae.Status, echo.Map{"error": ae.Message, "code": ae.Code})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error", "code": "DB_ERROR"})
}

// isValidDate reports whether s is a plain "YYYY-MM-DD" calendar date.
func isValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// isValidTime reports whether s is an "HH:MM" clock time.
func isValidTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// pagination reads the page/limit query parameters with the defaults the
// UI expects (page 1, 10 rows).
func pagination(c echo.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	return limit, (page - 1) * limit
}
