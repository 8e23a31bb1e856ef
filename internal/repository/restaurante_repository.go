package repository

import (
	"context"
	"database/sql"
	"strings"

	"reserva-admin/internal/model"
)

// RestauranteRepo manages persistence for restaurantes. The capacidade
// column is read by the association pipeline under a row lock, so writes
// here serialize against in-flight association checks.
type RestauranteRepo struct {
	db *sql.DB
}

// NewRestauranteRepo constructs a RestauranteRepo with the given DB handle.
func NewRestauranteRepo(db *sql.DB) *RestauranteRepo { return &RestauranteRepo{db: db} }

// Create inserts a new restaurante and populates the generated ID and
// timestamp defaults on the given struct.
func (r *RestauranteRepo) Create(ctx context.Context, rest *model.Restaurante) error {
	const q = `INSERT INTO restaurantes (nome, capacidade) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, rest.Nome, rest.Capacidade)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)
	const sel = `SELECT id, nome, capacidade, created_at, updated_at FROM restaurantes WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, rest.ID).Scan(
		&rest.ID, &rest.Nome, &rest.Capacidade, &rest.CreatedAt, &rest.UpdatedAt,
	)
}

// GetByID retrieves a restaurante by primary key. It returns
// ErrRestauranteNotFound when no matching row exists.
func (r *RestauranteRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurante, error) {
	const q = `SELECT id, nome, capacidade, created_at, updated_at FROM restaurantes WHERE id = ?`
	var rest model.Restaurante
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rest.ID, &rest.Nome, &rest.Capacidade, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRestauranteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// List returns a page of restaurantes plus the total row count.
func (r *RestauranteRepo) List(ctx context.Context, limit, offset int) ([]model.Restaurante, int, error) {
	const q = `SELECT id, nome, capacidade, created_at, updated_at FROM restaurantes ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]model.Restaurante, 0)
	for rows.Next() {
		var rest model.Restaurante
		if err := rows.Scan(&rest.ID, &rest.Nome, &rest.Capacidade, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurantes`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update changes only the supplied fields. Nil pointers leave the column
// untouched. It returns ErrRestauranteNotFound when the row does not exist.
func (r *RestauranteRepo) Update(ctx context.Context, id uint64, nome *string, capacidade *int) error {
	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if nome != nil {
		sets = append(sets, "nome = ?")
		args = append(args, *nome)
	}
	if capacidade != nil {
		sets = append(sets, "capacidade = ?")
		args = append(args, *capacidade)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := `UPDATE restaurantes SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 affected rows both for missing rows and for
		// updates that set the current values; disambiguate.
		return r.exists(ctx, id)
	}
	return nil
}

// Delete removes a restaurante. It refuses with ErrConflict while eventos
// still reference the row, and returns ErrRestauranteNotFound when the id
// is unknown.
func (r *RestauranteRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM eventos WHERE restaurante_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM restaurantes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRestauranteNotFound
	}
	return nil
}

// CapacidadeForUpdateTx reads the capacity of a restaurante inside the
// given transaction, taking a row lock. The lock serializes concurrent
// association pipelines targeting the same restaurante so two requests
// cannot both pass the capacity check before either commits.
func (r *RestauranteRepo) CapacidadeForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (int, error) {
	const q = `SELECT capacidade FROM restaurantes WHERE id = ? FOR UPDATE`
	var capacidade int
	err := tx.QueryRowContext(ctx, q, id).Scan(&capacidade)
	if err == sql.ErrNoRows {
		return 0, ErrRestauranteNotFound
	}
	if err != nil {
		return 0, err
	}
	return capacidade, nil
}

func (r *RestauranteRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM restaurantes WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrRestauranteNotFound
	}
	return err
}
