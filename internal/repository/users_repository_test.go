package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/internal/repository"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO users (name, password_hash) VALUES ($1, $2);`)
	t.Run("created", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("maria", "hash").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Create(ctx, &entity.User{Name: "maria", PasswordHash: "hash"})
		assert.NoError(t, err)
	})
	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs("maria", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})
		err := repo.Create(ctx, &entity.User{Name: "maria", PasswordHash: "hash"})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
}

func TestFindUserByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	uid := uuid.New()
	columns := []string{"id", "name", "password_hash", "birth_date", "gender", "weight_kg", "height_cm", "goal", "activity_level", "calorie_goal", "onboarding_complete"}
	query := regexp.QuoteMeta(`SELECT id, name, password_hash, birth_date, gender, weight_kg, height_cm, goal, activity_level, calorie_goal, onboarding_complete FROM users WHERE id = $1;`)
	ctx := context.Background()
	t.Run("found with profile", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(uid, "maria", "hash", "1994-02-11", "female", 70.0, 168.0, entity.GoalReduce, entity.ActivityModerate, 2387, true))
		user, err := repo.FindByID(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 2387, user.CalorieGoal)
		assert.Equal(t, entity.GoalReduce, user.Goal)
		assert.True(t, user.OnboardingComplete)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(uid).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepoWithConn(mock)
	user := &entity.User{
		ID:                 uuid.New(),
		BirthDate:          "1994-02-11",
		Gender:             "female",
		WeightKG:           70,
		HeightCM:           168,
		Goal:               entity.GoalReduce,
		ActivityLevel:      entity.ActivityModerate,
		CalorieGoal:        2387,
		OnboardingComplete: true,
	}
	query := regexp.QuoteMeta(`UPDATE users SET birth_date = $1, gender = $2, weight_kg = $3, height_cm = $4, goal = $5, activity_level = $6, calorie_goal = $7, onboarding_complete = $8 WHERE id = $9;`)
	ctx := context.Background()
	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.BirthDate, user.Gender, user.WeightKG, user.HeightCM, user.Goal, user.ActivityLevel, user.CalorieGoal, user.OnboardingComplete, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.UpdateProfile(ctx, user))
	})
	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.BirthDate, user.Gender, user.WeightKG, user.HeightCM, user.Goal, user.ActivityLevel, user.CalorieGoal, user.OnboardingComplete, user.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.UpdateProfile(ctx, user), errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.BirthDate, user.Gender, user.WeightKG, user.HeightCM, user.Goal, user.ActivityLevel, user.CalorieGoal, user.OnboardingComplete, user.ID).
			WillReturnError(errors.New("db error"))
		assert.Error(t, repo.UpdateProfile(ctx, user))
	})
}
