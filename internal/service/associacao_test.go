package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserva-admin/internal/apperr"
	"reserva-admin/internal/repository"
)

const (
	eventoInfoQ     = `SELECT id, restaurante_id, data_evento FROM eventos WHERE id = \?`
	reservaInfoQ    = `SELECT id, data_checkin, data_checkout, qtd_hospedes FROM reservas WHERE id = \? FOR UPDATE`
	capacidadeQ     = `SELECT capacidade FROM restaurantes WHERE id = \? FOR UPDATE`
	regrasQ         = `SELECT chave, ativo FROM regras_validacao`
	ocupacaoQ       = `SELECT COALESCE\(SUM\(res\.qtd_hospedes\), 0\)`
	conflitoQ       = `ev\.restaurante_id <> \?`
	countByReservaQ = `SELECT COUNT\(\*\) FROM eventos_reservas WHERE reserva_id = \?`
	insertQ         = `INSERT INTO eventos_reservas`
)

// newPipeline wires an AssociacaoService over a sqlmock database so the
// whole transaction can be asserted query by query.
func newPipeline(t *testing.T) (*AssociacaoService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := NewAssociacaoService(
		db,
		repository.NewMarcacaoRepo(db),
		repository.NewEventoRepo(db),
		repository.NewReservaRepo(db),
		repository.NewRestauranteRepo(db),
		repository.NewRegraRepo(db),
		nil,
	)
	return svc, mock
}

func dt(s string) time.Time {
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return v
}

// expectLookups queues the existence lookups shared by every pipeline run:
// the evento (restaurante 1, 2026-09-10), a three-night stay for four
// guests, and a capacity of 10 read under the row lock.
func expectLookups(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(eventoInfoQ).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurante_id", "data_evento"}).
			AddRow(int64(3), int64(1), dt("2026-09-10")))
	mock.ExpectQuery(reservaInfoQ).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_checkin", "data_checkout", "qtd_hospedes"}).
			AddRow(int64(7), dt("2026-09-09"), dt("2026-09-12"), 4))
	mock.ExpectQuery(capacidadeQ).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"capacidade"}).AddRow(10))
}

func regrasRows(capacidade, conflito, limite bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"chave", "ativo"}).
		AddRow("capacidade", capacidade).
		AddRow("conflito", conflito).
		AddRow("limite", limite)
}

func TestAssociarRunsChecksInOrderAndInserts(t *testing.T) {
	svc, mock := newPipeline(t)

	mock.ExpectBegin()
	expectLookups(mock)
	mock.ExpectQuery(regrasQ).WillReturnRows(regrasRows(true, true, true))
	mock.ExpectQuery(ocupacaoQ).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(5))
	mock.ExpectQuery(conflitoQ).WithArgs(int64(7), int64(1), "2026-09-09", "2026-09-12").
		WillReturnRows(sqlmock.NewRows([]string{"1"})) // no conflicting row
	mock.ExpectQuery(countByReservaQ).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec(insertQ).WithArgs(int64(3), int64(7), nil, 4, "Ativa").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := svc.Associar(context.Background(), 3, 7, AssociacaoInput{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), m.EventoID)
	assert.Equal(t, uint64(7), m.ReservaID)
	assert.Equal(t, 4, m.Quantidade) // defaults to the reserva headcount
	assert.Equal(t, "Ativa", m.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociarRejectsCapacityOverflow(t *testing.T) {
	svc, mock := newPipeline(t)

	mock.ExpectBegin()
	expectLookups(mock)
	mock.ExpectQuery(regrasQ).WillReturnRows(regrasRows(true, true, true))
	// 7 already seated + 4 joining > capacity 10
	mock.ExpectQuery(ocupacaoQ).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(7))
	mock.ExpectRollback()

	_, err := svc.Associar(context.Background(), 3, 7, AssociacaoInput{})
	assert.ErrorIs(t, err, apperr.ErrCapacidadeExcedida)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociarRejectsCrossRestaurantConflict(t *testing.T) {
	svc, mock := newPipeline(t)

	mock.ExpectBegin()
	expectLookups(mock)
	mock.ExpectQuery(regrasQ).WillReturnRows(regrasRows(true, true, true))
	mock.ExpectQuery(ocupacaoQ).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))
	// The reserva is already tied to another restaurant's evento inside
	// its stay window.
	mock.ExpectQuery(conflitoQ).WithArgs(int64(7), int64(1), "2026-09-09", "2026-09-12").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Associar(context.Background(), 3, 7, AssociacaoInput{})
	assert.ErrorIs(t, err, apperr.ErrReservaConflito)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociarRejectsStayLimit(t *testing.T) {
	svc, mock := newPipeline(t)

	mock.ExpectBegin()
	expectLookups(mock)
	mock.ExpectQuery(regrasQ).WillReturnRows(regrasRows(true, true, true))
	mock.ExpectQuery(ocupacaoQ).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))
	mock.ExpectQuery(conflitoQ).WithArgs(int64(7), int64(1), "2026-09-09", "2026-09-12").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	// Three-day stay, already three marcações.
	mock.ExpectQuery(countByReservaQ).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
	mock.ExpectRollback()

	_, err := svc.Associar(context.Background(), 3, 7, AssociacaoInput{})
	assert.ErrorIs(t, err, apperr.ErrLimiteEventos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociarMapsDuplicatePair(t *testing.T) {
	svc, mock := newPipeline(t)

	mock.ExpectBegin()
	expectLookups(mock)
	mock.ExpectQuery(regrasQ).WillReturnRows(regrasRows(true, true, true))
	mock.ExpectQuery(ocupacaoQ).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))
	mock.ExpectQuery(conflitoQ).WithArgs(int64(7), int64(1), "2026-09-09", "2026-09-12").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectQuery(countByReservaQ).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(insertQ).WithArgs(int64(3), int64(7), nil, 4, "Ativa").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '3-7' for key 'eventos_reservas.PRIMARY'"))
	mock.ExpectRollback()

	_, err := svc.Associar(context.Background(), 3, 7, AssociacaoInput{})
	assert.ErrorIs(t, err, apperr.ErrMarcacaoDuplicada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociarSkipsDisabledRules(t *testing.T) {
	svc, mock := newPipeline(t)

	// capacidade off: the occupancy query must not run; conflito and
	// limite stay active.
	mock.ExpectBegin()
	expectLookups(mock)
	mock.ExpectQuery(regrasQ).WillReturnRows(regrasRows(false, true, true))
	mock.ExpectQuery(conflitoQ).WithArgs(int64(7), int64(1), "2026-09-09", "2026-09-12").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectQuery(countByReservaQ).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(insertQ).WithArgs(int64(3), int64(7), nil, 4, "Ativa").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.Associar(context.Background(), 3, 7, AssociacaoInput{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociarMissingEvento(t *testing.T) {
	svc, mock := newPipeline(t)

	mock.ExpectBegin()
	mock.ExpectQuery(eventoInfoQ).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurante_id", "data_evento"}))
	mock.ExpectRollback()

	_, err := svc.Associar(context.Background(), 99, 7, AssociacaoInput{})
	assert.ErrorIs(t, err, apperr.ErrEventoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
