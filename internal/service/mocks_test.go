package service_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/nutriamiga/nutriamiga/internal/service"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	os.Exit(m.Run())
}

type mockUsersRepo struct {
	CreateFunc        func(ctx context.Context, user *entity.User) error
	FindByNameFunc    func(ctx context.Context, name string) (*entity.User, error)
	FindByIDFunc      func(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	UpdateProfileFunc func(ctx context.Context, user *entity.User) error
	DeleteFunc        func(ctx context.Context, uid uuid.UUID) error
}

func (m *mockUsersRepo) Create(ctx context.Context, user *entity.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUsersRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	return m.FindByNameFunc(ctx, name)
}

func (m *mockUsersRepo) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	return m.FindByIDFunc(ctx, uid)
}

func (m *mockUsersRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	return m.UpdateProfileFunc(ctx, user)
}

func (m *mockUsersRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	return m.DeleteFunc(ctx, uid)
}

type mockMealsRepo struct {
	CreateFunc           func(ctx context.Context, meal *entity.MealRecord) error
	GetByUserAndDateFunc func(ctx context.Context, uid uuid.UUID, date string) ([]*entity.MealRecord, error)
	DeleteByUserFunc     func(ctx context.Context, uid uuid.UUID) error
}

func (m *mockMealsRepo) Create(ctx context.Context, meal *entity.MealRecord) error {
	return m.CreateFunc(ctx, meal)
}

func (m *mockMealsRepo) GetByUserAndDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.MealRecord, error) {
	return m.GetByUserAndDateFunc(ctx, uid, date)
}

func (m *mockMealsRepo) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	return m.DeleteByUserFunc(ctx, uid)
}

type mockExercisesRepo struct {
	CreateFunc           func(ctx context.Context, ex *entity.ExerciseRecord) error
	GetByUserAndDateFunc func(ctx context.Context, uid uuid.UUID, date string) ([]*entity.ExerciseRecord, error)
	DeleteByUserFunc     func(ctx context.Context, uid uuid.UUID) error
}

func (m *mockExercisesRepo) Create(ctx context.Context, ex *entity.ExerciseRecord) error {
	return m.CreateFunc(ctx, ex)
}

func (m *mockExercisesRepo) GetByUserAndDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.ExerciseRecord, error) {
	return m.GetByUserAndDateFunc(ctx, uid, date)
}

func (m *mockExercisesRepo) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	return m.DeleteByUserFunc(ctx, uid)
}

type mockWeightLogsRepo struct {
	UpsertFunc       func(ctx context.Context, uid uuid.UUID, log *entity.WeightLog) error
	GetByUserFunc    func(ctx context.Context, uid uuid.UUID) ([]entity.WeightLog, error)
	DeleteByUserFunc func(ctx context.Context, uid uuid.UUID) error
}

func (m *mockWeightLogsRepo) Upsert(ctx context.Context, uid uuid.UUID, log *entity.WeightLog) error {
	return m.UpsertFunc(ctx, uid, log)
}

func (m *mockWeightLogsRepo) GetByUser(ctx context.Context, uid uuid.UUID) ([]entity.WeightLog, error) {
	return m.GetByUserFunc(ctx, uid)
}

func (m *mockWeightLogsRepo) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	return m.DeleteByUserFunc(ctx, uid)
}

type mockDailyStatsRepo struct {
	GetFunc                     func(ctx context.Context, uid uuid.UUID, date string) (*entity.DailyStat, error)
	SetWaterFunc                func(ctx context.Context, uid uuid.UUID, date string, glasses int) error
	SetTipFunc                  func(ctx context.Context, uid uuid.UUID, date string, tip string) error
	TryConsumeAIInteractionFunc func(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error)
	DeleteByUserFunc            func(ctx context.Context, uid uuid.UUID) error
}

func (m *mockDailyStatsRepo) Get(ctx context.Context, uid uuid.UUID, date string) (*entity.DailyStat, error) {
	return m.GetFunc(ctx, uid, date)
}

func (m *mockDailyStatsRepo) SetWater(ctx context.Context, uid uuid.UUID, date string, glasses int) error {
	return m.SetWaterFunc(ctx, uid, date, glasses)
}

func (m *mockDailyStatsRepo) SetTip(ctx context.Context, uid uuid.UUID, date string, tip string) error {
	return m.SetTipFunc(ctx, uid, date, tip)
}

func (m *mockDailyStatsRepo) TryConsumeAIInteraction(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
	return m.TryConsumeAIInteractionFunc(ctx, uid, date, limit)
}

func (m *mockDailyStatsRepo) DeleteByUser(ctx context.Context, uid uuid.UUID) error {
	return m.DeleteByUserFunc(ctx, uid)
}

type mockCompletionClient struct {
	GenerateFunc     func(ctx context.Context, prompt string) (string, error)
	GenerateChatFunc func(ctx context.Context, history []entity.ChatMessage, message string) (string, error)
	calls            int
}

func (m *mockCompletionClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.GenerateFunc(ctx, prompt)
}

func (m *mockCompletionClient) GenerateChat(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	m.calls++
	return m.GenerateChatFunc(ctx, history, message)
}

// profileUsers returns a users repo whose every lookup finds a finished
// profile.
func profileUsers() *mockUsersRepo {
	return &mockUsersRepo{
		FindByIDFunc: func(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
			return &entity.User{
				ID:                 uid,
				Name:               "maria",
				WeightKG:           70,
				CalorieGoal:        2387,
				OnboardingComplete: true,
			}, nil
		},
	}
}

// allowingStats grants every quota request.
func allowingStats() *mockDailyStatsRepo {
	return &mockDailyStatsRepo{
		TryConsumeAIInteractionFunc: func(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
			return true, nil
		},
	}
}
