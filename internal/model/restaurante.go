package model

import "time"

// Restaurante is a venue owning events and a seating capacity.
// Capacidade bounds the summed headcount of the reservas associated with
// any one of its events. Corresponds to a row in the `restaurantes` table.
type Restaurante struct {
	ID         uint64    `json:"id"`         // restaurantes.id
	Nome       string    `json:"nome"`       // restaurantes.nome
	Capacidade int       `json:"capacidade"` // restaurantes.capacidade
	CreatedAt  time.Time `json:"created_at"` // restaurantes.created_at
	UpdatedAt  time.Time `json:"updated_at"` // restaurantes.updated_at
}
