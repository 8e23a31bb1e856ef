package model

import "time"

// Reserva is a guest's booked stay. The stay spans the inclusive date
// range [DataCheckin, DataCheckout] and QtdHospedes is the total headcount
// travelling under the booking. Corresponds to a row in `reservas`.
type Reserva struct {
	ID           uint64    `json:"id"`            // reservas.id
	NomeHospede  string    `json:"nome_hospede"`  // reservas.nome_hospede
	DataCheckin  string    `json:"data_checkin"`  // reservas.data_checkin (DATE, "YYYY-MM-DD")
	DataCheckout string    `json:"data_checkout"` // reservas.data_checkout (DATE, checkout >= checkin)
	QtdHospedes  int       `json:"qtd_hospedes"`  // reservas.qtd_hospedes (positive)
	CreatedAt    time.Time `json:"created_at"`    // reservas.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // reservas.updated_at
}
