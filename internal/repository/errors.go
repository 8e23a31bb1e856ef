// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as services
// and handlers to distinguish between failure scenarios: a missing row is a
// recoverable condition the caller turns into a 404, while ErrConflict
// signals that an operation cannot proceed because dependent records exist
// (e.g. deleting an evento that still has marcações).
package repository

import "errors"

// Not-found sentinels, one per entity. Repositories translate
// sql.ErrNoRows into these so callers never match on driver errors.
var (
	ErrRestauranteNotFound = errors.New("restaurante not found")
	ErrEventoNotFound      = errors.New("evento not found")
	ErrReservaNotFound     = errors.New("reserva not found")
	ErrMarcacaoNotFound    = errors.New("marcação not found")
	ErrRegraNotFound       = errors.New("regra not found")
)

// ErrConflict is returned when a delete cannot be performed because of
// dependent rows, such as removing a restaurante that still has eventos.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrMarcacaoDuplicada is returned when inserting an (evento, reserva)
// pair that already exists. The pair is the table's primary key, so the
// database reports a uniqueness violation which the repository maps here.
var ErrMarcacaoDuplicada = errors.New("marcação already exists")
