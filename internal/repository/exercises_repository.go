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

type ExercisesRepository struct {
	conn PgConnection
}

func NewExercisesRepo(cfg DBConfig) *ExercisesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for exercisesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for exercisesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ExercisesRepository{
		conn: pool,
	}
}

func NewExercisesRepoWithConn(conn PgConnection) *ExercisesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for exercisesRepo: " + err.Error())
	}
	return &ExercisesRepository{
		conn: conn,
	}
}

func (er *ExercisesRepository) Create(ctx context.Context, ex *entity.ExerciseRecord) error {
	if ex == nil {
		return errors.New("exercise is nil")
	}
	_, err := er.conn.Exec(ctx, `INSERT INTO exercises (id, user_id, entry_date, description, calories_burned) VALUES ($1, $2, $3, $4, $5);`,
		ex.ID,
		ex.UserID,
		ex.Date,
		ex.Description,
		ex.CaloriesBurned,
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
		return errors.New("creating exercise db error: " + err.Error())
	}
	return nil
}

func (er *ExercisesRepository) GetByUserAndDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.ExerciseRecord, error) {
	exercises := make([]*entity.ExerciseRecord, 0)
	rows, err := er.conn.Query(ctx, `SELECT id, entry_date, description, calories_burned, created_at
		FROM exercises WHERE user_id = $1 AND entry_date = $2 ORDER BY created_at;`, uid, date)
	if err != nil {
		return nil, errors.New("getting exercises by date error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var (
			ex        entity.ExerciseRecord
			entryDate time.Time
		)
		ex.UserID = uid
		err = rows.Scan(&ex.ID, &entryDate, &ex.Description, &ex.CaloriesBurned, &ex.CreatedAt)
		if err != nil {
			return nil, errors.New("scanning exercise row error: " + err.Error())
		}
		ex.Date = entryDate.Format(entity.DateLayout)
		exercises = append(exercises, &ex)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("iterating exercise rows error: " + err.Error())
	}
	return exercises, nil
}

func (er *ExercisesRepository) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	_, err := er.conn.Exec(ctx, `DELETE FROM exercises WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("deleting exercises error: " + err.Error())
	}
	return nil
}
