package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type OnboardingRequest struct {
	BirthDate     string               `validate:"omitempty,isodate"`
	Gender        string               `validate:"omitempty,max=30"`
	WeightKG      float64              `validate:"required,gt=0,lt=500"`
	HeightCM      float64              `validate:"required,gt=0,lt=300"`
	Goal          entity.Goal          `validate:"required,oneof=reduce maintain gain"`
	ActivityLevel entity.ActivityLevel `validate:"required,oneof=sedentary light moderate intense"`
}

type RegisterMealRequest struct {
	Date        string `validate:"required,isodate"`
	Slot        string `validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Description string `validate:"required,max=2000"`
}

type RegisterExerciseRequest struct {
	Date        string `validate:"required,isodate"`
	Description string `validate:"required,max=2000"`
}

type SuggestMealRequest struct {
	Slot        string `validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Ingredients string `validate:"required,max=2000"`
}

type ConfirmSuggestionRequest struct {
	Date        string            `validate:"required,isodate"`
	Slot        string            `validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Description string            `validate:"required,max=2000"`
	Feedback    string            `validate:"max=4000"`
	Status      entity.MealStatus `validate:"omitempty,oneof=good moderate exception"`
	Calories    int               `validate:"gte=0"`
	Items       []entity.FoodItem
}

type ChatRequest struct {
	Message string `validate:"required,max=2000"`
	History []entity.ChatMessage
}

type RegisterMealResult struct {
	Meal *entity.MealRecord
	// Analyzed is false when the record was stored with fallback values
	Analyzed      bool
	QuotaExceeded bool
}

type RegisterExerciseResult struct {
	Exercise      *entity.ExerciseRecord
	Feedback      string
	Analyzed      bool
	QuotaExceeded bool
}

// SuggestionResult is an analysis preview. Nothing is persisted until the
// user confirms it.
type SuggestionResult struct {
	Slot        string            `json:"slot"`
	Ingredients string            `json:"ingredients"`
	Feedback    string            `json:"feedback"`
	Items       []entity.FoodItem `json:"items"`
	Calories    int               `json:"calories"`
	Status      entity.MealStatus `json:"status"`
}

type ChatResult struct {
	Reply         string `json:"reply"`
	QuotaExceeded bool   `json:"quota_exceeded"`
}

// DailySummary is the dashboard aggregate for one date.
type DailySummary struct {
	Date         string                   `json:"date"`
	Goal         int                      `json:"goal"`
	Consumed     int                      `json:"consumed"`
	Burned       int                      `json:"burned"`
	Net          int                      `json:"net"`
	Remaining    int                      `json:"remaining"`
	Progress     float64                  `json:"progress"`
	WaterGlasses int                      `json:"water_glasses"`
	Meals        []*entity.MealRecord     `json:"meals"`
	Exercises    []*entity.ExerciseRecord `json:"exercises"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Stores the biometric profile and derives the calorie goal once.
	// Redoing onboarding is the only way the goal is recomputed
	CompleteOnboarding(ctx context.Context, id uuid.UUID, req *OnboardingRequest) (*entity.User, error)
	// Wipes every record of the user: meals, exercises, weights, daily stats
	ResetData(ctx context.Context, id uuid.UUID) error
	// Deletes the account itself after confirming the password
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type EntryServiceI interface {
	// Analyzes and immediately persists a meal entry
	RegisterMeal(ctx context.Context, uid uuid.UUID, req *RegisterMealRequest) (*RegisterMealResult, error)
	// Analyzes and immediately persists an exercise entry
	RegisterExercise(ctx context.Context, uid uuid.UUID, req *RegisterExerciseRequest) (*RegisterExerciseResult, error)
	// Analyzes a recipe suggestion without persisting anything
	SuggestMeal(ctx context.Context, uid uuid.UUID, req *SuggestMealRequest) (*SuggestionResult, error)
	// Persists a previously returned suggestion as a meal record
	ConfirmSuggestion(ctx context.Context, uid uuid.UUID, req *ConfirmSuggestionRequest) (*entity.MealRecord, error)
	// One turn of the conversational flow
	Chat(ctx context.Context, uid uuid.UUID, req *ChatRequest) (*ChatResult, error)
}

type StatsServiceI interface {
	DailySummary(ctx context.Context, uid uuid.UUID, date string) (*DailySummary, error)
	SetWater(ctx context.Context, uid uuid.UUID, date string, glasses int) error
	LogWeight(ctx context.Context, uid uuid.UUID, date string, weightKG float64) error
	WeightHistory(ctx context.Context, uid uuid.UUID) ([]entity.WeightLog, error)
	DailyTip(ctx context.Context, uid uuid.UUID, date string) (string, error)
}

// CompletionClientI is the boundary to the external text-generation service.
type CompletionClientI interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateChat(ctx context.Context, history []entity.ChatMessage, message string) (string, error)
}
