package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"reserva-admin/internal/model"
)

// ReservaRepo manages persistence for reservas (guest stays).
type ReservaRepo struct {
	db *sql.DB
}

// NewReservaRepo constructs a ReservaRepo with the given DB handle.
func NewReservaRepo(db *sql.DB) *ReservaRepo { return &ReservaRepo{db: db} }

// ReservaInfo carries the fields of a reserva the association pipeline
// needs: the stay window and the total headcount.
type ReservaInfo struct {
	ID          uint64
	Checkin     time.Time
	Checkout    time.Time
	QtdHospedes int
}

// Create inserts a new reserva and populates generated fields on the struct.
func (r *ReservaRepo) Create(ctx context.Context, res *model.Reserva) error {
	const q = `INSERT INTO reservas (nome_hospede, data_checkin, data_checkout, qtd_hospedes) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, res.NomeHospede, res.DataCheckin, res.DataCheckout, res.QtdHospedes)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	got, err := r.GetByID(ctx, res.ID)
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// GetByID retrieves a reserva by primary key, returning ErrReservaNotFound
// when absent.
func (r *ReservaRepo) GetByID(ctx context.Context, id uint64) (*model.Reserva, error) {
	const q = `SELECT id, nome_hospede, data_checkin, data_checkout, qtd_hospedes, created_at, updated_at FROM reservas WHERE id = ?`
	var res model.Reserva
	var checkin, checkout time.Time
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.NomeHospede, &checkin, &checkout, &res.QtdHospedes, &res.CreatedAt, &res.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReservaNotFound
	}
	if err != nil {
		return nil, err
	}
	res.DataCheckin = checkin.Format(dateLayout)
	res.DataCheckout = checkout.Format(dateLayout)
	return &res, nil
}

// List returns a page of reservas plus the total row count.
func (r *ReservaRepo) List(ctx context.Context, limit, offset int) ([]model.Reserva, int, error) {
	const q = `SELECT id, nome_hospede, data_checkin, data_checkout, qtd_hospedes, created_at, updated_at
	           FROM reservas ORDER BY data_checkin DESC, id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]model.Reserva, 0)
	for rows.Next() {
		var res model.Reserva
		var checkin, checkout time.Time
		if err := rows.Scan(&res.ID, &res.NomeHospede, &checkin, &checkout, &res.QtdHospedes, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, 0, err
		}
		res.DataCheckin = checkin.Format(dateLayout)
		res.DataCheckout = checkout.Format(dateLayout)
		items = append(items, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservas`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update changes only the supplied fields. It returns ErrReservaNotFound
// when the row does not exist.
func (r *ReservaRepo) Update(ctx context.Context, id uint64, nomeHospede, dataCheckin, dataCheckout *string, qtdHospedes *int) error {
	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	if nomeHospede != nil {
		sets = append(sets, "nome_hospede = ?")
		args = append(args, *nomeHospede)
	}
	if dataCheckin != nil {
		sets = append(sets, "data_checkin = ?")
		args = append(args, *dataCheckin)
	}
	if dataCheckout != nil {
		sets = append(sets, "data_checkout = ?")
		args = append(args, *dataCheckout)
	}
	if qtdHospedes != nil {
		sets = append(sets, "qtd_hospedes = ?")
		args = append(args, *qtdHospedes)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := `UPDATE reservas SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
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
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reservas WHERE id = ?`, id).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrReservaNotFound
		}
		return err
	}
	return nil
}

// Delete removes a reserva, refusing with ErrConflict while marcações
// still reference it.
func (r *ReservaRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM eventos_reservas WHERE reserva_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReservaNotFound
	}
	return nil
}

// InfoTx fetches the pipeline lookup fields for a reserva inside the given
// transaction, taking a row lock. The lock serializes concurrent pipelines
// for the same reserva even when their eventos belong to different
// restaurantes, so the conflict and stay-limit checks cannot both pass in
// parallel. Returns ErrReservaNotFound when the id is unknown.
func (r *ReservaRepo) InfoTx(ctx context.Context, tx *sql.Tx, id uint64) (*ReservaInfo, error) {
	const q = `SELECT id, data_checkin, data_checkout, qtd_hospedes FROM reservas WHERE id = ? FOR UPDATE`
	var info ReservaInfo
	err := tx.QueryRowContext(ctx, q, id).Scan(&info.ID, &info.Checkin, &info.Checkout, &info.QtdHospedes)
	if err == sql.ErrNoRows {
		return nil, ErrReservaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}
