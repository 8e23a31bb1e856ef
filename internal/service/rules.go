package service

import (
	"math"
	"time"

	"reserva-admin/internal/apperr"
)

// StayDays returns the association limit for a stay: the calendar-day
// difference between checkout and checkin rounded up, floored at 1. A
// same-day stay therefore still permits exactly one association.
func StayDays(checkin, checkout time.Time) int {
	dias := int(math.Ceil(checkout.Sub(checkin).Hours() / 24))
	if dias < 1 {
		dias = 1
	}
	return dias
}

// CheckCapacidade rejects an association that would push the event's
// occupancy past the restaurant capacity. The candidate contributes the
// reserva's total headcount; per-marcação overrides exist only after
// creation.
func CheckCapacidade(capacidade, ocupacao, qtdHospedes int) error {
	if ocupacao+qtdHospedes > capacidade {
		return apperr.ErrCapacidadeExcedida
	}
	return nil
}

// CheckLimite caps the number of marcações of a reserva at its stay
// length in days.
func CheckLimite(existentes, dias int) error {
	if existentes >= dias {
		return apperr.ErrLimiteEventos
	}
	return nil
}
