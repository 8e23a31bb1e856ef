package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"reserva-admin/internal/model"
)

// dateLayout is the wire and storage format for plain calendar dates.
const dateLayout = "2006-01-02"

// EventoRepo manages persistence for eventos. Dates are stored in DATE
// columns; with parseTime enabled the driver hands them back as time.Time,
// which this repo formats to "YYYY-MM-DD" strings for the API types.
type EventoRepo struct {
	db *sql.DB
}

// NewEventoRepo constructs an EventoRepo with the given DB handle.
func NewEventoRepo(db *sql.DB) *EventoRepo { return &EventoRepo{db: db} }

// EventoInfo carries the fields of an evento the association pipeline
// needs: the owning restaurante and the calendar date.
type EventoInfo struct {
	ID            uint64
	RestauranteID uint64
	DataEvento    time.Time
}

// Create inserts a new evento and populates generated fields on the struct.
func (r *EventoRepo) Create(ctx context.Context, ev *model.Evento) error {
	const q = `INSERT INTO eventos (restaurante_id, nome, data_evento, horario) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, ev.RestauranteID, ev.Nome, ev.DataEvento, ev.Horario)
	if err != nil {
		// MySQL error 1452: foreign key constraint fails (unknown restaurante).
		if strings.Contains(strings.ToLower(err.Error()), "1452") {
			return ErrRestauranteNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	got, err := r.GetByID(ctx, ev.ID)
	if err != nil {
		return err
	}
	*ev = *got
	return nil
}

// GetByID retrieves an evento by primary key, returning ErrEventoNotFound
// when absent.
func (r *EventoRepo) GetByID(ctx context.Context, id uint64) (*model.Evento, error) {
	const q = `SELECT id, restaurante_id, nome, data_evento, horario, created_at, updated_at FROM eventos WHERE id = ?`
	var ev model.Evento
	var data time.Time
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&ev.ID, &ev.RestauranteID, &ev.Nome, &data, &ev.Horario, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEventoNotFound
	}
	if err != nil {
		return nil, err
	}
	ev.DataEvento = data.Format(dateLayout)
	return &ev, nil
}

// List returns a page of eventos plus the total row count, newest date first.
func (r *EventoRepo) List(ctx context.Context, limit, offset int) ([]model.Evento, int, error) {
	const q = `SELECT id, restaurante_id, nome, data_evento, horario, created_at, updated_at
	           FROM eventos ORDER BY data_evento DESC, id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]model.Evento, 0)
	for rows.Next() {
		var ev model.Evento
		var data time.Time
		if err := rows.Scan(&ev.ID, &ev.RestauranteID, &ev.Nome, &data, &ev.Horario, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, 0, err
		}
		ev.DataEvento = data.Format(dateLayout)
		items = append(items, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM eventos`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update changes only the supplied fields. It returns ErrEventoNotFound
// when the row does not exist.
func (r *EventoRepo) Update(ctx context.Context, id uint64, restauranteID *uint64, nome, dataEvento, horario *string) error {
	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	if restauranteID != nil {
		sets = append(sets, "restaurante_id = ?")
		args = append(args, *restauranteID)
	}
	if nome != nil {
		sets = append(sets, "nome = ?")
		args = append(args, *nome)
	}
	if dataEvento != nil {
		sets = append(sets, "data_evento = ?")
		args = append(args, *dataEvento)
	}
	if horario != nil {
		sets = append(sets, "horario = ?")
		args = append(args, *horario)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := `UPDATE eventos SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1452") {
			return ErrRestauranteNotFound
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM eventos WHERE id = ?`, id).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrEventoNotFound
		}
		return err
	}
	return nil
}

// Delete removes an evento. Deletion is refused with ErrConflict while
// marcações still reference it; aggregates are always recomputed live so
// no other cleanup is needed.
func (r *EventoRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM eventos_reservas WHERE evento_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM eventos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventoNotFound
	}
	return nil
}

// InfoTx fetches the pipeline lookup fields for an evento inside the given
// transaction. Returns ErrEventoNotFound when the id is unknown.
func (r *EventoRepo) InfoTx(ctx context.Context, tx *sql.Tx, id uint64) (*EventoInfo, error) {
	const q = `SELECT id, restaurante_id, data_evento FROM eventos WHERE id = ?`
	var info EventoInfo
	err := tx.QueryRowContext(ctx, q, id).Scan(&info.ID, &info.RestauranteID, &info.DataEvento)
	if err == sql.ErrNoRows {
		return nil, ErrEventoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}
