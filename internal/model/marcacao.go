package model

// StatusAtiva is the default status assigned to a new marcação.
const StatusAtiva = "Ativa"

// Marcacao links a reserva to an evento. The (EventoID, ReservaID) pair is
// the primary key of `eventos_reservas`; Quantidade is the headcount
// attending this particular event, which may differ from the reserva's
// total, and Informacoes carries optional free-text notes.
type Marcacao struct {
	EventoID    uint64  `json:"evento_id"`   // eventos_reservas.evento_id
	ReservaID   uint64  `json:"reserva_id"`  // eventos_reservas.reserva_id
	Informacoes *string `json:"informacoes"` // eventos_reservas.informacoes (nullable)
	Quantidade  int     `json:"quantidade"`  // eventos_reservas.quantidade
	Status      string  `json:"status"`      // eventos_reservas.status (default "Ativa")
}
