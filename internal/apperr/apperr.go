// Package apperr defines the API error type shared by services and
// handlers. Every rejection carries a stable machine-readable code next to
// the HTTP status so clients can branch on the exact rule that failed
// instead of parsing messages.
package apperr

import "net/http"

// Error is a typed API failure. Status is the HTTP status to respond with,
// Code the stable machine code, Message a human-readable summary.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds an Error with an arbitrary status.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// BadRequest builds a 400-class Error (validation or invariant failure).
func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

// NotFound builds a 404-class Error.
func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

// Conflict builds a 409-class Error (duplicate pair, dependent rows).
func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

// Internal builds a 500-class Error for store failures.
func Internal(code, message string) *Error {
	return New(http.StatusInternalServerError, code, message)
}

// Failures produced by the association pipeline and the entity lookups.
// The codes are part of the API contract and must not change.
var (
	ErrEventoNotFound      = NotFound("EVENTO_NOT_FOUND", "evento not found")
	ErrReservaNotFound     = NotFound("RESERVA_NOT_FOUND", "reserva not found")
	ErrRestauranteNotFound = NotFound("RESTAURANTE_NOT_FOUND", "restaurante not found")
	ErrAssociacaoNotFound  = NotFound("ASSOCIACAO_NAO_ENCONTRADA", "association not found")
	ErrMarcacaoNotFound    = NotFound("MARCACAO_NOT_FOUND", "marcação not found")

	ErrCapacidadeExcedida = BadRequest("CAPACIDADE_EXCEDIDA", "restaurant capacity exceeded")
	ErrReservaConflito    = BadRequest("RESERVA_CONFLITO", "reserva already tied to another restaurant's event within its stay")
	ErrLimiteEventos      = BadRequest("LIMITE_EVENTOS", "maximum number of event associations reached for this reserva")

	ErrMarcacaoDuplicada = Conflict("MARCACAO_DUPLICADA", "evento/reserva pair already associated")
)
