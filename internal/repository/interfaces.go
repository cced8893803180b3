package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Overwrites the biometric profile and the computed calorie goal
	UpdateProfile(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type MealsRepositoryI interface {
	// Inserts a confirmed meal record. Records are immutable after creation
	Create(ctx context.Context, meal *entity.MealRecord) error
	// Lists meals of uid for one day, in insertion order
	GetByUserAndDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.MealRecord, error)
	// Removes all meals of uid (full data reset only)
	DeleteByUser(ctx context.Context, uid uuid.UUID) error
}

type ExercisesRepositoryI interface {
	// Inserts a confirmed exercise record
	Create(ctx context.Context, ex *entity.ExerciseRecord) error
	// Lists exercises of uid for one day, in insertion order
	GetByUserAndDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.ExerciseRecord, error)
	// Removes all exercises of uid (full data reset only)
	DeleteByUser(ctx context.Context, uid uuid.UUID) error
}

type WeightLogsRepositoryI interface {
	// Inserts or replaces the weight for one date (one row per date)
	Upsert(ctx context.Context, uid uuid.UUID, log *entity.WeightLog) error
	// Lists all weights of uid, newest date first
	GetByUser(ctx context.Context, uid uuid.UUID) ([]entity.WeightLog, error)
	// Removes all weights of uid (full data reset only)
	DeleteByUser(ctx context.Context, uid uuid.UUID) error
}

type DailyStatsRepositoryI interface {
	// Returns the stat row for a date, or a zero-valued one when the row
	// doesn't exist yet (lazy creation happens on first write)
	Get(ctx context.Context, uid uuid.UUID, date string) (*entity.DailyStat, error)
	// Sets the water counter for a date, creating the row when needed
	SetWater(ctx context.Context, uid uuid.UUID, date string, glasses int) error
	// Stores the generated tip of the day
	SetTip(ctx context.Context, uid uuid.UUID, date string, tip string) error
	// Atomically bumps the AI interaction counter for a date; returns false
	// without changing anything when the counter already reached limit
	TryConsumeAIInteraction(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error)
	// Removes all stat rows of uid (full data reset only)
	DeleteByUser(ctx context.Context, uid uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
