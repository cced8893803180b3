package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nutriamiga/nutriamiga/internal/ai"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/internal/repository"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
)

const (
	// DefaultDailyAILimit caps generation calls per user per day.
	DefaultDailyAILimit = 15

	// FallbackFeedback is stored when the analysis call fails. The entry is
	// persisted anyway so user input is never lost.
	FallbackFeedback = "I saved your entry! I couldn't run a detailed analysis right now, but it's all noted. 💪"

	// QuotaMessage replaces the analysis once the daily limit is spent.
	QuotaMessage = "You've reached today's AI analysis limit. Your entry was saved and the limit resets tomorrow. 🌙"

	fallbackMealCalories = 300
	fallbackExerciseBurn = 200
)

type EntryService struct {
	users      repository.UsersRepositoryI
	meals      repository.MealsRepositoryI
	exercises  repository.ExercisesRepositoryI
	stats      repository.DailyStatsRepositoryI
	client     CompletionClientI
	dailyLimit int
}

func NewEntryService(
	usersRepo repository.UsersRepositoryI,
	mealsRepo repository.MealsRepositoryI,
	exercisesRepo repository.ExercisesRepositoryI,
	statsRepo repository.DailyStatsRepositoryI,
	client CompletionClientI,
	dailyLimit int,
) *EntryService {
	if usersRepo == nil || mealsRepo == nil || exercisesRepo == nil || statsRepo == nil || client == nil {
		log.Fatal("provided nil dependency to entry service")
	}
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyAILimit
	}
	return &EntryService{
		users:      usersRepo,
		meals:      mealsRepo,
		exercises:  exercisesRepo,
		stats:      statsRepo,
		client:     client,
		dailyLimit: dailyLimit,
	}
}

// analyze spends one quota slot and runs the generation call. The bool is
// false when the quota for the date is already spent; in that case no call
// is made at all.
func (es *EntryService) analyze(ctx context.Context, uid uuid.UUID, date, prompt string) (ai.Analysis, bool, error) {
	allowed, err := es.stats.TryConsumeAIInteraction(ctx, uid, date, es.dailyLimit)
	if err != nil {
		return ai.Analysis{}, false, errors.New("repository error: " + err.Error())
	}
	if !allowed {
		return ai.Analysis{}, false, nil
	}
	raw, err := es.client.Generate(ctx, prompt)
	if err != nil {
		return ai.Analysis{}, true, err
	}
	return ai.Parse(raw), true, nil
}

func (es *EntryService) RegisterMeal(ctx context.Context, uid uuid.UUID, req *RegisterMealRequest) (*RegisterMealResult, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	prompt, err := ai.BuildPrompt(ai.ModeMealLog, req.Description, ai.PromptContext{Slot: req.Slot})
	if err != nil {
		return nil, err
	}
	slot := req.Slot
	if slot == "" {
		slot = entity.SlotSnack
	}
	meal := &entity.MealRecord{
		ID:          uuid.New(),
		UserID:      uid,
		Date:        req.Date,
		Slot:        slot,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	result := &RegisterMealResult{Meal: meal}
	analysis, allowed, err := es.analyze(ctx, uid, req.Date, prompt)
	switch {
	case !allowed && err != nil:
		return nil, err
	case !allowed:
		result.QuotaExceeded = true
		meal.Feedback = QuotaMessage
		meal.Status = entity.StatusModerate
		meal.Calories = fallbackMealCalories
	case err != nil:
		if !errors.Is(err, errorvalues.ErrServiceUnavailable) {
			return nil, err
		}
		slog.WarnContext(ctx, "meal analysis unavailable, storing fallback", slog.String("user_id", uid.String()))
		meal.Feedback = FallbackFeedback
		meal.Status = entity.StatusModerate
		meal.Calories = fallbackMealCalories
	default:
		result.Analyzed = true
		meal.Feedback = analysis.Feedback
		meal.Status = analysis.Status
		meal.Items = analysis.Items
		meal.Calories = analysis.TotalCalories
		if meal.Calories == 0 {
			meal.Calories = fallbackMealCalories
		}
	}
	if err := es.meals.Create(ctx, meal); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	return result, nil
}

func (es *EntryService) RegisterExercise(ctx context.Context, uid uuid.UUID, req *RegisterExerciseRequest) (*RegisterExerciseResult, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	user, err := es.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	prompt, err := ai.BuildPrompt(ai.ModeExerciseLog, req.Description, ai.PromptContext{WeightKG: user.WeightKG})
	if err != nil {
		return nil, err
	}
	exercise := &entity.ExerciseRecord{
		ID:          uuid.New(),
		UserID:      uid,
		Date:        req.Date,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	result := &RegisterExerciseResult{Exercise: exercise}
	analysis, allowed, err := es.analyze(ctx, uid, req.Date, prompt)
	switch {
	case !allowed && err != nil:
		return nil, err
	case !allowed:
		result.QuotaExceeded = true
		result.Feedback = QuotaMessage
		exercise.CaloriesBurned = fallbackExerciseBurn
	case err != nil:
		if !errors.Is(err, errorvalues.ErrServiceUnavailable) {
			return nil, err
		}
		slog.WarnContext(ctx, "exercise analysis unavailable, storing fallback", slog.String("user_id", uid.String()))
		result.Feedback = FallbackFeedback
		exercise.CaloriesBurned = fallbackExerciseBurn
	default:
		result.Analyzed = true
		result.Feedback = analysis.Feedback
		exercise.CaloriesBurned = analysis.TotalCalories
		if exercise.CaloriesBurned == 0 {
			exercise.CaloriesBurned = fallbackExerciseBurn
		}
	}
	if err := es.exercises.Create(ctx, exercise); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	return result, nil
}

// SuggestMeal runs an analysis preview for a recipe idea. Quota is charged
// against today regardless of when the suggestion might later be logged.
func (es *EntryService) SuggestMeal(ctx context.Context, uid uuid.UUID, req *SuggestMealRequest) (*SuggestionResult, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	prompt, err := ai.BuildPrompt(ai.ModeSuggestion, req.Ingredients, ai.PromptContext{Slot: req.Slot})
	if err != nil {
		return nil, err
	}
	analysis, allowed, err := es.analyze(ctx, uid, today(), prompt)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errorvalues.ErrQuotaExceeded
	}
	calories := analysis.TotalCalories
	if calories == 0 {
		calories = fallbackMealCalories
	}
	return &SuggestionResult{
		Slot:        req.Slot,
		Ingredients: req.Ingredients,
		Feedback:    analysis.Feedback,
		Items:       analysis.Items,
		Calories:    calories,
		Status:      analysis.Status,
	}, nil
}

// ConfirmSuggestion persists a suggestion the client got back from
// SuggestMeal. No generation call happens here, so confirming is free.
func (es *EntryService) ConfirmSuggestion(ctx context.Context, uid uuid.UUID, req *ConfirmSuggestionRequest) (*entity.MealRecord, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	slot := req.Slot
	if slot == "" {
		slot = entity.SlotSnack
	}
	meal := &entity.MealRecord{
		ID:          uuid.New(),
		UserID:      uid,
		Date:        req.Date,
		Slot:        slot,
		Description: req.Description,
		Feedback:    req.Feedback,
		Status:      req.Status,
		Calories:    req.Calories,
		Items:       req.Items,
		CreatedAt:   time.Now(),
	}
	if meal.Status == "" {
		meal.Status = entity.StatusGood
	}
	if meal.Calories == 0 {
		meal.Calories = fallbackMealCalories
	}
	if err := es.meals.Create(ctx, meal); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	return meal, nil
}

func (es *EntryService) Chat(ctx context.Context, uid uuid.UUID, req *ChatRequest) (*ChatResult, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	allowed, err := es.stats.TryConsumeAIInteraction(ctx, uid, today(), es.dailyLimit)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	if !allowed {
		return &ChatResult{Reply: QuotaMessage, QuotaExceeded: true}, nil
	}
	reply, err := es.client.GenerateChat(ctx, req.History, req.Message)
	if err != nil {
		if errors.Is(err, errorvalues.ErrServiceUnavailable) {
			return nil, errorvalues.ErrServiceUnavailable
		}
		return nil, err
	}
	return &ChatResult{Reply: reply}, nil
}

func today() string {
	return time.Now().Format(entity.DateLayout)
}
