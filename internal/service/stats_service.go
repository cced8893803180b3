package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nutriamiga/nutriamiga/internal/ai"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/internal/repository"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

// DefaultCalorieGoal applies before onboarding sets a personal one.
const DefaultCalorieGoal = 2000

type StatsService struct {
	users      repository.UsersRepositoryI
	meals      repository.MealsRepositoryI
	exercises  repository.ExercisesRepositoryI
	weights    repository.WeightLogsRepositoryI
	stats      repository.DailyStatsRepositoryI
	client     CompletionClientI
	dailyLimit int
}

func NewStatsService(
	usersRepo repository.UsersRepositoryI,
	mealsRepo repository.MealsRepositoryI,
	exercisesRepo repository.ExercisesRepositoryI,
	weightsRepo repository.WeightLogsRepositoryI,
	statsRepo repository.DailyStatsRepositoryI,
	client CompletionClientI,
	dailyLimit int,
) *StatsService {
	if usersRepo == nil || mealsRepo == nil || exercisesRepo == nil || weightsRepo == nil || statsRepo == nil || client == nil {
		log.Fatal("provided nil dependency to stats service")
	}
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyAILimit
	}
	return &StatsService{
		users:      usersRepo,
		meals:      mealsRepo,
		exercises:  exercisesRepo,
		weights:    weightsRepo,
		stats:      statsRepo,
		client:     client,
		dailyLimit: dailyLimit,
	}
}

// DailySummary aggregates everything the dashboard shows for one date.
// Exercise raises the effective budget: remaining = goal + burned - consumed,
// floored at zero.
func (ss *StatsService) DailySummary(ctx context.Context, uid uuid.UUID, date string) (*DailySummary, error) {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, errorvalues.ErrInvalidDate
	}
	user, err := ss.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	goal := user.CalorieGoal
	if goal <= 0 {
		goal = DefaultCalorieGoal
	}
	meals, err := ss.meals.GetByUserAndDate(ctx, uid, date)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	exercises, err := ss.exercises.GetByUserAndDate(ctx, uid, date)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	stat, err := ss.stats.Get(ctx, uid, date)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	consumed := 0
	for _, meal := range meals {
		consumed += meal.Calories
	}
	burned := 0
	for _, exercise := range exercises {
		burned += exercise.CaloriesBurned
	}
	remaining := goal + burned - consumed
	if remaining < 0 {
		remaining = 0
	}
	progress := float64(consumed) / float64(goal+burned)
	if progress > 1 {
		progress = 1
	}
	return &DailySummary{
		Date:         date,
		Goal:         goal,
		Consumed:     consumed,
		Burned:       burned,
		Net:          consumed - burned,
		Remaining:    remaining,
		Progress:     progress,
		WaterGlasses: stat.WaterGlasses,
		Meals:        meals,
		Exercises:    exercises,
	}, nil
}

func (ss *StatsService) SetWater(ctx context.Context, uid uuid.UUID, date string, glasses int) error {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return errorvalues.ErrInvalidDate
	}
	if glasses < 0 {
		glasses = 0
	}
	err := ss.stats.SetWater(ctx, uid, date, glasses)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

func (ss *StatsService) LogWeight(ctx context.Context, uid uuid.UUID, date string, weightKG float64) error {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return errorvalues.ErrInvalidDate
	}
	if weightKG <= 0 || weightKG >= 500 {
		return errors.New("validation error: weight out of range")
	}
	err := ss.weights.Upsert(ctx, uid, &entity.WeightLog{Date: date, WeightKG: weightKG})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

func (ss *StatsService) WeightHistory(ctx context.Context, uid uuid.UUID) ([]entity.WeightLog, error) {
	logs, err := ss.weights.GetByUser(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return logs, nil
}

// DailyTip returns the motivational tip for the date, generating it at most
// once. The generated tip is cached on the daily stat row, so only the first
// request of the day spends quota.
func (ss *StatsService) DailyTip(ctx context.Context, uid uuid.UUID, date string) (string, error) {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return "", errorvalues.ErrInvalidDate
	}
	stat, err := ss.stats.Get(ctx, uid, date)
	if err != nil {
		return "", errors.New("repository error: " + err.Error())
	}
	if stat.Tip != "" {
		return stat.Tip, nil
	}
	allowed, err := ss.stats.TryConsumeAIInteraction(ctx, uid, date, ss.dailyLimit)
	if err != nil {
		return "", errors.New("repository error: " + err.Error())
	}
	if !allowed {
		return "", errorvalues.ErrQuotaExceeded
	}
	raw, err := ss.client.Generate(ctx, ai.TipPrompt)
	if err != nil {
		if errors.Is(err, errorvalues.ErrServiceUnavailable) {
			return "", errorvalues.ErrServiceUnavailable
		}
		return "", err
	}
	// Strip any stray tags the model might emit anyway.
	tip := ai.Parse(raw).Feedback
	if tip == "" {
		tip = raw
	}
	if err := ss.stats.SetTip(ctx, uid, date, tip); err != nil {
		return "", errors.New("repository error: " + err.Error())
	}
	return tip, nil
}
