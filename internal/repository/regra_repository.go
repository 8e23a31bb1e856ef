package repository

import (
	"context"
	"database/sql"

	"reserva-admin/internal/model"
)

// RegraRepo reads and toggles the validation-rule flags in
// regras_validacao. The association pipeline consults the flags at check
// time, so toggling a rule takes effect on the next request.
type RegraRepo struct {
	db *sql.DB
}

// NewRegraRepo constructs a RegraRepo with the given DB handle.
func NewRegraRepo(db *sql.DB) *RegraRepo { return &RegraRepo{db: db} }

// List returns all rule flags ordered by id.
func (r *RegraRepo) List(ctx context.Context) ([]model.Regra, error) {
	const q = `SELECT id, chave, descricao, ativo FROM regras_validacao ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Regra, 0)
	for rows.Next() {
		var reg model.Regra
		if err := rows.Scan(&reg.ID, &reg.Chave, &reg.Descricao, &reg.Ativo); err != nil {
			return nil, err
		}
		items = append(items, reg)
	}
	return items, rows.Err()
}

// SetAtivo toggles one rule. Returns ErrRegraNotFound for unknown ids.
func (r *RegraRepo) SetAtivo(ctx context.Context, id uint64, ativo bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE regras_validacao SET ativo = ? WHERE id = ?`, ativo, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM regras_validacao WHERE id = ?`, id).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrRegraNotFound
		}
		return err
	}
	return nil
}

// FlagsTx loads the chave -> ativo map inside the caller's transaction.
// Callers treat a missing key as an active rule.
func (r *RegraRepo) FlagsTx(ctx context.Context, tx *sql.Tx) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT chave, ativo FROM regras_validacao`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	flags := make(map[string]bool)
	for rows.Next() {
		var chave string
		var ativo bool
		if err := rows.Scan(&chave, &ativo); err != nil {
			return nil, err
		}
		flags[chave] = ativo
	}
	return flags, rows.Err()
}
