package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/pkg/cleanup"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

type WeightLogsRepository struct {
	conn PgConnection
}

func NewWeightLogsRepo(cfg DBConfig) *WeightLogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for weightLogsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for weightLogsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &WeightLogsRepository{
		conn: pool,
	}
}

func NewWeightLogsRepoWithConn(conn PgConnection) *WeightLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for weightLogsRepo: " + err.Error())
	}
	return &WeightLogsRepository{
		conn: conn,
	}
}

// Upsert keeps the one-row-per-date invariant in the database itself: a
// second weight for the same day overwrites the first.
func (wr *WeightLogsRepository) Upsert(ctx context.Context, uid uuid.UUID, weightLog *entity.WeightLog) error {
	if weightLog == nil {
		return errors.New("weight log is nil")
	}
	_, err := wr.conn.Exec(ctx, `INSERT INTO weight_logs (user_id, log_date, weight_kg) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, log_date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg;`,
		uid,
		weightLog.Date,
		weightLog.WeightKG,
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
		return errors.New("upserting weight log error: " + err.Error())
	}
	return nil
}

func (wr *WeightLogsRepository) GetByUser(ctx context.Context, uid uuid.UUID) ([]entity.WeightLog, error) {
	logs := make([]entity.WeightLog, 0)
	rows, err := wr.conn.Query(ctx, `SELECT log_date, weight_kg FROM weight_logs WHERE user_id = $1 ORDER BY log_date DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting weight logs error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var (
			weightLog entity.WeightLog
			logDate   time.Time
		)
		err = rows.Scan(&logDate, &weightLog.WeightKG)
		if err != nil {
			return nil, errors.New("scanning weight log row error: " + err.Error())
		}
		weightLog.Date = logDate.Format(entity.DateLayout)
		logs = append(logs, weightLog)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("iterating weight log rows error: " + err.Error())
	}
	return logs, nil
}

func (wr *WeightLogsRepository) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	_, err := wr.conn.Exec(ctx, `DELETE FROM weight_logs WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("deleting weight logs error: " + err.Error())
	}
	return nil
}
