package repository

import (
	"context"
	"database/sql"
	"time"
)

// DashboardRepo computes the aggregates shown on the admin dashboard.
// Everything is derived from current rows; nothing is cached.
type DashboardRepo struct {
	db *sql.DB
}

// NewDashboardRepo constructs a DashboardRepo with the given DB handle.
func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// EventoOcupacao pairs an evento with its live occupancy versus the owning
// restaurante's capacity.
type EventoOcupacao struct {
	EventoID   uint64 `json:"evento_id"`
	Nome       string `json:"nome"`
	DataEvento string `json:"data_evento"`
	Capacidade int    `json:"capacidade"`
	Ocupacao   int    `json:"ocupacao"`
}

// DashboardStats is the payload of GET /v1/dashboard.
type DashboardStats struct {
	TotalRestaurantes int              `json:"total_restaurantes"`
	TotalEventos      int              `json:"total_eventos"`
	TotalReservas     int              `json:"total_reservas"`
	TotalMarcacoes    int              `json:"total_marcacoes"`
	Ocupacao          []EventoOcupacao `json:"ocupacao"`
}

// Stats gathers the table counts and the per-evento occupancy summary.
func (r *DashboardRepo) Stats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM restaurantes`, &s.TotalRestaurantes},
		{`SELECT COUNT(*) FROM eventos`, &s.TotalEventos},
		{`SELECT COUNT(*) FROM reservas`, &s.TotalReservas},
		{`SELECT COUNT(*) FROM eventos_reservas`, &s.TotalMarcacoes},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, err
		}
	}
	const q = `SELECT ev.id, ev.nome, ev.data_evento, rest.capacidade,
	                  COALESCE(SUM(res.qtd_hospedes), 0) AS ocupacao
	           FROM eventos ev
	           JOIN restaurantes rest ON rest.id = ev.restaurante_id
	           LEFT JOIN eventos_reservas er ON er.evento_id = ev.id
	           LEFT JOIN reservas res ON res.id = er.reserva_id
	           GROUP BY ev.id, ev.nome, ev.data_evento, rest.capacidade
	           ORDER BY ev.data_evento, ev.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	s.Ocupacao = make([]EventoOcupacao, 0)
	for rows.Next() {
		var o EventoOcupacao
		var data time.Time
		if err := rows.Scan(&o.EventoID, &o.Nome, &data, &o.Capacidade, &o.Ocupacao); err != nil {
			return nil, err
		}
		o.DataEvento = data.Format(dateLayout)
		s.Ocupacao = append(s.Ocupacao, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}
