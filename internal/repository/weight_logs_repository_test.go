package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/internal/repository"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestUpsertWeight(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewWeightLogsRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO weight_logs (user_id, log_date, weight_kg) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, log_date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg;`)
	t.Run("inserted", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(uid, "2026-08-30", 71.4).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Upsert(ctx, uid, &entity.WeightLog{Date: "2026-08-30", WeightKG: 71.4})
		assert.NoError(t, err)
	})
	t.Run("same date replaces", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(uid, "2026-08-30", 70.9).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.Upsert(ctx, uid, &entity.WeightLog{Date: "2026-08-30", WeightKG: 70.9})
		assert.NoError(t, err)
	})
	t.Run("FK violation", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(uid, "2026-08-30", 71.4).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		err := repo.Upsert(ctx, uid, &entity.WeightLog{Date: "2026-08-30", WeightKG: 71.4})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(uid, "2026-08-30", 71.4).
			WillReturnError(errors.New("db error"))
		err := repo.Upsert(ctx, uid, &entity.WeightLog{Date: "2026-08-30", WeightKG: 71.4})
		assert.Error(t, err)
	})
}

func TestGetWeightsByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewWeightLogsRepoWithConn(mock)
	uid := uuid.New()
	query := regexp.QuoteMeta(`SELECT log_date, weight_kg FROM weight_logs WHERE user_id = $1 ORDER BY log_date DESC;`)
	mock.ExpectQuery(query).
		WithArgs(uid).
		WillReturnRows(pgxmock.NewRows([]string{"log_date", "weight_kg"}).
			AddRow(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), 70.9).
			AddRow(time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), 72.1))
	logs, err := repo.GetByUser(context.Background(), uid)
	assert.NoError(t, err)
	assert.Equal(t, []entity.WeightLog{
		{Date: "2026-08-30", WeightKG: 70.9},
		{Date: "2026-08-23", WeightKG: 72.1},
	}, logs)
}
