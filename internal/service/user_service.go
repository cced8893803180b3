package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/google/uuid"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/internal/repository"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

// activityFactors approximates the standard sedentary-to-very-active scale.
var activityFactors = map[entity.ActivityLevel]float64{
	entity.ActivitySedentary: 1.2,
	entity.ActivityLight:     1.375,
	entity.ActivityModerate:  1.55,
	entity.ActivityIntense:   1.725,
}

// goalBaseFactors is the kcal-per-kg base by objective: lower for weight
// reduction, higher for muscle gain.
var goalBaseFactors = map[entity.Goal]float64{
	entity.GoalReduce:   22,
	entity.GoalMaintain: 25,
	entity.GoalGain:     28,
}

// CalorieGoal derives the daily calorie target from biometrics. Computed at
// onboarding completion and stored; never recomputed automatically.
func CalorieGoal(weightKG float64, goal entity.Goal, level entity.ActivityLevel) int {
	base, ok := goalBaseFactors[goal]
	if !ok {
		return 0
	}
	factor, ok := activityFactors[level]
	if !ok {
		return 0
	}
	return int(math.Round(weightKG * base * factor))
}

type UserService struct {
	repo      repository.UsersRepositoryI
	meals     repository.MealsRepositoryI
	exercises repository.ExercisesRepositoryI
	weights   repository.WeightLogsRepositoryI
	stats     repository.DailyStatsRepositoryI
}

func NewUserService(
	usersRepo repository.UsersRepositoryI,
	mealsRepo repository.MealsRepositoryI,
	exercisesRepo repository.ExercisesRepositoryI,
	weightsRepo repository.WeightLogsRepositoryI,
	statsRepo repository.DailyStatsRepositoryI,
) *UserService {
	if usersRepo == nil || mealsRepo == nil || exercisesRepo == nil || weightsRepo == nil || statsRepo == nil {
		log.Fatal("provided nil repo to user service")
	}
	return &UserService{
		repo:      usersRepo,
		meals:     mealsRepo,
		exercises: exercisesRepo,
		weights:   weightsRepo,
		stats:     statsRepo,
	}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	err := validateRequest(*req)
	if err != nil {
		return nil, err
	}
	passwordHash, err := Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	err = us.repo.Create(ctx, &entity.User{
		Name:         req.Name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, errorvalues.ErrUserExists
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user, err := us.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, name, password string) (*entity.User, error) {
	user, err := us.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) CompleteOnboarding(ctx context.Context, id uuid.UUID, req *OnboardingRequest) (*entity.User, error) {
	err := validateRequest(*req)
	if err != nil {
		return nil, err
	}
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	user.BirthDate = req.BirthDate
	user.Gender = req.Gender
	user.WeightKG = req.WeightKG
	user.HeightCM = req.HeightCM
	user.Goal = req.Goal
	user.ActivityLevel = req.ActivityLevel
	user.CalorieGoal = CalorieGoal(req.WeightKG, req.Goal, req.ActivityLevel)
	user.OnboardingComplete = true
	err = us.repo.UpdateProfile(ctx, user)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository updating error: " + err.Error())
	}
	return user, nil
}

// ResetData deletes every per-date record of the user but keeps the account.
// Meal and exercise records are immutable, so there is no per-record delete.
func (us *UserService) ResetData(ctx context.Context, id uuid.UUID) error {
	if _, err := us.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository searching error: " + err.Error())
	}
	if err := us.meals.DeleteByUser(ctx, id); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	if err := us.exercises.DeleteByUser(ctx, id); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	if err := us.weights.DeleteByUser(ctx, id); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	if err := us.stats.DeleteByUser(ctx, id); err != nil {
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

// DeleteAccount removes the user row entirely. Per-date records go with it
// through the cascading foreign keys. Requires the current password.
func (us *UserService) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return errorvalues.ErrWrongCredentials
	}
	if err = us.repo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository deletion error: " + err.Error())
	}
	return nil
}

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
