// Package service holds the association pipeline, the one piece of this
// system with real domain rules. Everything else is thin CRUD.
package service

import (
	"context"
	"database/sql"
	"time"

	"reserva-admin/internal/apperr"
	"reserva-admin/internal/model"
	"reserva-admin/internal/queue"
	"reserva-admin/internal/repository"
)

// AssociacaoInput carries the optional marcação payload accepted by the
// direct create endpoint. The plain pipeline endpoint leaves all fields
// unset, in which case Quantidade defaults to the reserva's headcount and
// Status to "Ativa".
type AssociacaoInput struct {
	Informacoes *string
	Quantidade  *int
	Status      string
}

// AssociacaoService runs the validated pipeline that links reservas to
// eventos: existence -> capacity -> restaurant conflict -> duration limit
// -> insert, short-circuiting on the first failure. The whole sequence
// executes in one transaction holding a row lock on the restaurante, so
// two concurrent requests against the same restaurant cannot both pass the
// capacity check.
type AssociacaoService struct {
	db           *sql.DB
	marcacoes    *repository.MarcacaoRepo
	eventos      *repository.EventoRepo
	reservas     *repository.ReservaRepo
	restaurantes *repository.RestauranteRepo
	regras       *repository.RegraRepo
	publish      func(ctx context.Context, ev queue.MarcacaoCriadaEvent) error
}

// NewAssociacaoService constructs the pipeline service. regras may be nil
// (all rules active); publish may be nil (no domain events emitted).
func NewAssociacaoService(
	db *sql.DB,
	marcacoes *repository.MarcacaoRepo,
	eventos *repository.EventoRepo,
	reservas *repository.ReservaRepo,
	restaurantes *repository.RestauranteRepo,
	regras *repository.RegraRepo,
	publish func(ctx context.Context, ev queue.MarcacaoCriadaEvent) error,
) *AssociacaoService {
	if db == nil || marcacoes == nil || eventos == nil || reservas == nil || restaurantes == nil {
		panic("nil dependency passed to NewAssociacaoService")
	}
	return &AssociacaoService{
		db:           db,
		marcacoes:    marcacoes,
		eventos:      eventos,
		reservas:     reservas,
		restaurantes: restaurantes,
		regras:       regras,
		publish:      publish,
	}
}

// Associar links a reserva to an evento after running all checks. On
// success it returns the created marcação; on rejection an *apperr.Error
// naming the violated rule.
func (s *AssociacaoService) Associar(ctx context.Context, eventoID, reservaID uint64, in AssociacaoInput) (*model.Marcacao, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Existence checks, each mapped to its own 404 code.
	ev, err := s.eventos.InfoTx(ctx, tx, eventoID)
	if err != nil {
		if err == repository.ErrEventoNotFound {
			return nil, apperr.ErrEventoNotFound
		}
		return nil, err
	}
	res, err := s.reservas.InfoTx(ctx, tx, reservaID)
	if err != nil {
		if err == repository.ErrReservaNotFound {
			return nil, apperr.ErrReservaNotFound
		}
		return nil, err
	}
	// The FOR UPDATE lock on the restaurante row serializes concurrent
	// pipelines for the same restaurant until commit.
	capacidade, err := s.restaurantes.CapacidadeForUpdateTx(ctx, tx, ev.RestauranteID)
	if err != nil {
		if err == repository.ErrRestauranteNotFound {
			return nil, apperr.ErrRestauranteNotFound
		}
		return nil, err
	}

	flags, err := s.ruleFlags(ctx, tx)
	if err != nil {
		return nil, err
	}

	if flags(model.RegraCapacidade) {
		ocupacao, err := s.marcacoes.OcupacaoEventoTx(ctx, tx, eventoID)
		if err != nil {
			return nil, err
		}
		if err := CheckCapacidade(capacidade, ocupacao, res.QtdHospedes); err != nil {
			return nil, err
		}
	}

	if flags(model.RegraConflito) {
		conflito, err := s.marcacoes.ConflitoRestauranteTx(ctx, tx, reservaID, ev.RestauranteID, res.Checkin, res.Checkout)
		if err != nil {
			return nil, err
		}
		if conflito {
			return nil, apperr.ErrReservaConflito
		}
	}

	if flags(model.RegraLimite) {
		existentes, err := s.marcacoes.CountByReservaTx(ctx, tx, reservaID)
		if err != nil {
			return nil, err
		}
		if err := CheckLimite(existentes, StayDays(res.Checkin, res.Checkout)); err != nil {
			return nil, err
		}
	}

	m := &model.Marcacao{
		EventoID:    eventoID,
		ReservaID:   reservaID,
		Informacoes: in.Informacoes,
		Quantidade:  res.QtdHospedes,
		Status:      in.Status,
	}
	if in.Quantidade != nil {
		m.Quantidade = *in.Quantidade
	}
	if err := s.marcacoes.CreateTx(ctx, tx, m); err != nil {
		if err == repository.ErrMarcacaoDuplicada {
			return nil, apperr.ErrMarcacaoDuplicada
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	if s.publish != nil {
		event := queue.MarcacaoCriadaEvent{
			EventoID:      eventoID,
			ReservaID:     reservaID,
			RestauranteID: ev.RestauranteID,
			DataEvento:    ev.DataEvento.Format("2006-01-02"),
			Quantidade:    m.Quantidade,
			CriadoEm:      time.Now().UTC().Format(time.RFC3339),
		}
		// Fire and forget; the request must not fail on broker trouble.
		go func() { _ = s.publish(context.Background(), event) }()
	}
	return m, nil
}

// Desassociar removes the marcação for the given pair. It returns
// apperr.ErrAssociacaoNotFound when no such link exists.
func (s *AssociacaoService) Desassociar(ctx context.Context, eventoID, reservaID uint64) error {
	err := s.marcacoes.Delete(ctx, eventoID, reservaID)
	if err == repository.ErrMarcacaoNotFound {
		return apperr.ErrAssociacaoNotFound
	}
	return err
}

// ruleFlags loads the regras_validacao flags and returns a lookup where a
// missing key means the rule is active. When no RegraRepo is configured or
// the table cannot be read, every rule stays on.
func (s *AssociacaoService) ruleFlags(ctx context.Context, tx *sql.Tx) (func(string) bool, error) {
	if s.regras == nil {
		return func(string) bool { return true }, nil
	}
	flags, err := s.regras.FlagsTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return func(chave string) bool {
		ativo, ok := flags[chave]
		if !ok {
			return true
		}
		return ativo
	}, nil
}
