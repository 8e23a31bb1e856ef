package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserva-admin/internal/apperr"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStayDays(t *testing.T) {
	tests := []struct {
		name     string
		checkin  string
		checkout string
		want     int
	}{
		{"same day counts as one", "2026-09-10", "2026-09-10", 1},
		{"one night spans one day", "2026-09-10", "2026-09-11", 1},
		{"two nights span two days", "2026-09-10", "2026-09-12", 2},
		{"week long stay", "2026-09-01", "2026-09-08", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StayDays(day(tt.checkin), day(tt.checkout)))
		})
	}
}

func TestCheckCapacidade(t *testing.T) {
	t.Run("fits exactly", func(t *testing.T) {
		assert.NoError(t, CheckCapacidade(10, 4, 6))
	})
	t.Run("overflow by one rejected", func(t *testing.T) {
		err := CheckCapacidade(10, 6, 5)
		require.Error(t, err)
		var ae *apperr.Error
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "CAPACIDADE_EXCEDIDA", ae.Code)
		assert.Equal(t, 400, ae.Status)
	})
	t.Run("empty event accepts up to capacity", func(t *testing.T) {
		assert.NoError(t, CheckCapacidade(10, 0, 10))
	})
}

func TestCheckLimite(t *testing.T) {
	t.Run("below limit passes", func(t *testing.T) {
		assert.NoError(t, CheckLimite(1, 2))
	})
	t.Run("at limit rejected", func(t *testing.T) {
		err := CheckLimite(2, 2)
		require.Error(t, err)
		var ae *apperr.Error
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "LIMITE_EVENTOS", ae.Code)
	})
	t.Run("single day stay allows one association", func(t *testing.T) {
		assert.NoError(t, CheckLimite(0, 1))
		assert.Error(t, CheckLimite(1, 1))
	})
}
