package model

import "time"

// Evento is a scheduled happening at one restaurant on one calendar date.
// DataEvento is the plain date ("YYYY-MM-DD") and Horario the "HH:MM"
// start time, mirroring the `eventos` table.
type Evento struct {
	ID            uint64    `json:"id"`             // eventos.id
	RestauranteID uint64    `json:"restaurante_id"` // eventos.restaurante_id (FK)
	Nome          string    `json:"nome"`           // eventos.nome
	DataEvento    string    `json:"data_evento"`    // eventos.data_evento (DATE, "YYYY-MM-DD")
	Horario       string    `json:"horario"`        // eventos.horario ("HH:MM")
	CreatedAt     time.Time `json:"created_at"`     // eventos.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // eventos.updated_at
}
