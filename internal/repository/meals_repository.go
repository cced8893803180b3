package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/pkg/cleanup"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

type MealsRepository struct {
	conn PgConnection
}

func NewMealsRepo(cfg DBConfig) *MealsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for mealsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for mealsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &MealsRepository{
		conn: pool,
	}
}

func NewMealsRepoWithConn(conn PgConnection) *MealsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for mealsRepo: " + err.Error())
	}
	return &MealsRepository{
		conn: conn,
	}
}

func (mr *MealsRepository) Create(ctx context.Context, meal *entity.MealRecord) error {
	if meal == nil {
		return errors.New("meal is nil")
	}
	items, err := sonic.ConfigDefault.Marshal(meal.Items)
	if err != nil {
		return errors.New("encoding meal items error: " + err.Error())
	}
	_, err = mr.conn.Exec(ctx, `INSERT INTO meals (id, user_id, entry_date, slot, description, feedback, status, calories, items) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		meal.ID,
		meal.UserID,
		meal.Date,
		meal.Slot,
		meal.Description,
		meal.Feedback,
		meal.Status,
		meal.Calories,
		items,
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
		return errors.New("creating meal db error: " + err.Error())
	}
	return nil
}

func (mr *MealsRepository) GetByUserAndDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.MealRecord, error) {
	meals := make([]*entity.MealRecord, 0)
	rows, err := mr.conn.Query(ctx, `SELECT id, entry_date, slot, description, feedback, status, calories, items, created_at
		FROM meals WHERE user_id = $1 AND entry_date = $2 ORDER BY created_at;`, uid, date)
	if err != nil {
		return nil, errors.New("getting meals by date error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var (
			meal      entity.MealRecord
			entryDate time.Time
			rawItems  []byte
		)
		meal.UserID = uid
		err = rows.Scan(&meal.ID, &entryDate, &meal.Slot, &meal.Description, &meal.Feedback, &meal.Status, &meal.Calories, &rawItems, &meal.CreatedAt)
		if err != nil {
			return nil, errors.New("scanning meal row error: " + err.Error())
		}
		meal.Date = entryDate.Format(entity.DateLayout)
		if len(rawItems) > 0 {
			if err := sonic.ConfigDefault.Unmarshal(rawItems, &meal.Items); err != nil {
				return nil, errors.New("decoding meal items error: " + err.Error())
			}
		}
		meals = append(meals, &meal)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.New("iterating meal rows error: " + err.Error())
	}
	return meals, nil
}

func (mr *MealsRepository) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	_, err := mr.conn.Exec(ctx, `DELETE FROM meals WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("deleting meals error: " + err.Error())
	}
	return nil
}
