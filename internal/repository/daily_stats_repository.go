package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/pkg/cleanup"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

type DailyStatsRepository struct {
	conn PgConnection
}

func NewDailyStatsRepo(cfg DBConfig) *DailyStatsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for dailyStatsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for dailyStatsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &DailyStatsRepository{
		conn: pool,
	}
}

func NewDailyStatsRepoWithConn(conn PgConnection) *DailyStatsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for dailyStatsRepo: " + err.Error())
	}
	return &DailyStatsRepository{
		conn: conn,
	}
}

// Get never reports a missing row: per-date stats exist lazily, a date that
// was never written reads as all zeroes.
func (dr *DailyStatsRepository) Get(ctx context.Context, uid uuid.UUID, date string) (*entity.DailyStat, error) {
	var (
		stat     entity.DailyStat
		statDate time.Time
	)
	row := dr.conn.QueryRow(ctx, `SELECT stat_date, water_glasses, tip, ai_interactions FROM daily_stats WHERE user_id = $1 AND stat_date = $2;`, uid, date)
	err := row.Scan(&statDate, &stat.WaterGlasses, &stat.Tip, &stat.AIInteractions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.DailyStat{Date: date}, nil
		}
		return nil, errors.New("getting daily stat error: " + err.Error())
	}
	stat.Date = statDate.Format(entity.DateLayout)
	return &stat, nil
}

func (dr *DailyStatsRepository) SetWater(ctx context.Context, uid uuid.UUID, date string, glasses int) error {
	_, err := dr.conn.Exec(ctx, `INSERT INTO daily_stats (user_id, stat_date, water_glasses) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, stat_date) DO UPDATE SET water_glasses = EXCLUDED.water_glasses;`,
		uid,
		date,
		glasses,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("setting water counter error: " + err.Error())
	}
	return nil
}

func (dr *DailyStatsRepository) SetTip(ctx context.Context, uid uuid.UUID, date string, tip string) error {
	_, err := dr.conn.Exec(ctx, `INSERT INTO daily_stats (user_id, stat_date, tip) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, stat_date) DO UPDATE SET tip = EXCLUDED.tip;`,
		uid,
		date,
		tip,
	)
	if err != nil {
		return errors.New("setting daily tip error: " + err.Error())
	}
	return nil
}

// TryConsumeAIInteraction is the quota gate. The increment and the limit
// check happen in a single statement, so concurrent sessions can't both
// slip past the last slot.
func (dr *DailyStatsRepository) TryConsumeAIInteraction(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
	var count int
	row := dr.conn.QueryRow(ctx, `INSERT INTO daily_stats (user_id, stat_date, ai_interactions) VALUES ($1, $2, 1)
		ON CONFLICT (user_id, stat_date) DO UPDATE SET ai_interactions = daily_stats.ai_interactions + 1
		WHERE daily_stats.ai_interactions < $3
		RETURNING ai_interactions;`,
		uid,
		date,
		limit,
	)
	err := row.Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Condition didn't hold: quota already spent
			return false, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, errorvalues.ErrUserNotFound
		}
		return false, errors.New("consuming ai interaction error: " + err.Error())
	}
	return count <= limit, nil
}

func (dr *DailyStatsRepository) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	_, err := dr.conn.Exec(ctx, `DELETE FROM daily_stats WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("deleting daily stats error: " + err.Error())
	}
	return nil
}
