package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"reserva-admin/internal/model"
)

// MarcacaoRepo manages persistence for eventos_reservas, the link table
// between eventos and reservas. The (evento_id, reserva_id) pair is the
// primary key; occupancy and per-reserva counts are always computed live
// from current rows, never kept as denormalized counters.
type MarcacaoRepo struct {
	db *sql.DB
}

// NewMarcacaoRepo constructs a MarcacaoRepo with the given DB handle.
func NewMarcacaoRepo(db *sql.DB) *MarcacaoRepo { return &MarcacaoRepo{db: db} }

// List returns every marcação.
func (r *MarcacaoRepo) List(ctx context.Context) ([]model.Marcacao, error) {
	const q = `SELECT evento_id, reserva_id, informacoes, quantidade, status FROM eventos_reservas ORDER BY evento_id, reserva_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Marcacao, 0)
	for rows.Next() {
		var m model.Marcacao
		var info sql.NullString
		if err := rows.Scan(&m.EventoID, &m.ReservaID, &info, &m.Quantidade, &m.Status); err != nil {
			return nil, err
		}
		if info.Valid {
			s := info.String
			m.Informacoes = &s
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Get returns one marcação by its (evento, reserva) pair, or
// ErrMarcacaoNotFound.
func (r *MarcacaoRepo) Get(ctx context.Context, eventoID, reservaID uint64) (*model.Marcacao, error) {
	const q = `SELECT evento_id, reserva_id, informacoes, quantidade, status FROM eventos_reservas WHERE evento_id = ? AND reserva_id = ?`
	var m model.Marcacao
	var info sql.NullString
	err := r.db.QueryRowContext(ctx, q, eventoID, reservaID).Scan(
		&m.EventoID, &m.ReservaID, &info, &m.Quantidade, &m.Status,
	)
	if err == sql.ErrNoRows {
		return nil, ErrMarcacaoNotFound
	}
	if err != nil {
		return nil, err
	}
	if info.Valid {
		s := info.String
		m.Informacoes = &s
	}
	return &m, nil
}

// CreateTx inserts a marcação within the caller's transaction. A
// primary-key violation on the pair is mapped to ErrMarcacaoDuplicada.
func (r *MarcacaoRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.Marcacao) error {
	if m.Status == "" {
		m.Status = model.StatusAtiva
	}
	const q = `INSERT INTO eventos_reservas (evento_id, reserva_id, informacoes, quantidade, status) VALUES (?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, m.EventoID, m.ReservaID, m.Informacoes, m.Quantidade, m.Status)
	if err != nil {
		// MySQL error 1062: duplicate entry for the primary key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrMarcacaoDuplicada
		}
		return err
	}
	return nil
}

// Update changes only the supplied fields (informacoes, quantidade,
// status). It returns ErrMarcacaoNotFound when the pair does not exist.
func (r *MarcacaoRepo) Update(ctx context.Context, eventoID, reservaID uint64, informacoes, status *string, quantidade *int) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)
	if informacoes != nil {
		sets = append(sets, "informacoes = ?")
		args = append(args, *informacoes)
	}
	if quantidade != nil {
		sets = append(sets, "quantidade = ?")
		args = append(args, *quantidade)
	}
	if status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *status)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, eventoID, reservaID)
	q := `UPDATE eventos_reservas SET ` + strings.Join(sets, ", ") + ` WHERE evento_id = ? AND reserva_id = ?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM eventos_reservas WHERE evento_id = ? AND reserva_id = ?`,
			eventoID, reservaID).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrMarcacaoNotFound
		}
		return err
	}
	return nil
}

// Delete removes a marcação by its pair. Deleting a non-existent pair
// returns ErrMarcacaoNotFound, never a silent success.
func (r *MarcacaoRepo) Delete(ctx context.Context, eventoID, reservaID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM eventos_reservas WHERE evento_id = ? AND reserva_id = ?`, eventoID, reservaID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMarcacaoNotFound
	}
	return nil
}

// OcupacaoEventoTx sums the total headcount of all reservas currently
// associated with an evento, inside the caller's transaction. The sum joins
// through to reservas.qtd_hospedes so deletions are reflected immediately.
func (r *MarcacaoRepo) OcupacaoEventoTx(ctx context.Context, tx *sql.Tx, eventoID uint64) (int, error) {
	const q = `SELECT COALESCE(SUM(res.qtd_hospedes), 0)
	           FROM eventos_reservas er
	           JOIN reservas res ON er.reserva_id = res.id
	           WHERE er.evento_id = ?`
	var total int
	if err := tx.QueryRowContext(ctx, q, eventoID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ConflitoRestauranteTx reports whether the reserva is already linked to an
// evento of a different restaurante whose date falls inside the stay
// window [checkin, checkout].
func (r *MarcacaoRepo) ConflitoRestauranteTx(ctx context.Context, tx *sql.Tx, reservaID, restauranteID uint64, checkin, checkout time.Time) (bool, error) {
	const q = `SELECT 1
	           FROM eventos_reservas er
	           JOIN eventos ev ON er.evento_id = ev.id
	           WHERE er.reserva_id = ?
	             AND ev.restaurante_id <> ?
	             AND ev.data_evento BETWEEN ? AND ?
	           LIMIT 1`
	var one int
	err := tx.QueryRowContext(ctx, q, reservaID, restauranteID,
		checkin.Format(dateLayout), checkout.Format(dateLayout)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByReservaTx counts the marcações of a reserva across all eventos,
// inside the caller's transaction.
func (r *MarcacaoRepo) CountByReservaTx(ctx context.Context, tx *sql.Tx, reservaID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM eventos_reservas WHERE reserva_id = ?`, reservaID).Scan(&n)
	return n, err
}
