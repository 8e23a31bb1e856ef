// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// MarcacaoCriadaEvent is published when a reserva is successfully linked
// to an evento. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type MarcacaoCriadaEvent struct {
	EventoID      uint64 `json:"evento_id"`
	ReservaID     uint64 `json:"reserva_id"`
	RestauranteID uint64 `json:"restaurante_id"`
	DataEvento    string `json:"data_evento"`
	Quantidade    int    `json:"quantidade"`
	CriadoEm      string `json:"criado_em"`
}
