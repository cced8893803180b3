package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/internal/service"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analyzedMealResponse = "Great choice! Eggs bring protein and the coffee has basically nothing.\n" +
	"[ITEM: Boiled Eggs | 2 units | 155]\n" +
	"[ITEM: Black Coffee | 1 cup | 2]\n" +
	"[TOTAL_CALORIES: 157]\n" +
	"[STATUS: VERDE]"

func TestRegisterMeal(t *testing.T) {
	uid := uuid.New()
	ctx := context.Background()
	req := &service.RegisterMealRequest{
		Date:        "2026-08-30",
		Slot:        entity.SlotBreakfast,
		Description: "2 boiled eggs and black coffee",
	}
	t.Run("analyzed and persisted", func(t *testing.T) {
		var stored *entity.MealRecord
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			stored = meal
			return nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "2 boiled eggs and black coffee")
			return analyzedMealResponse, nil
		}}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, allowingStats(), client, 15)
		result, err := es.RegisterMeal(ctx, uid, req)
		require.NoError(t, err)
		assert.True(t, result.Analyzed)
		assert.False(t, result.QuotaExceeded)
		require.NotNil(t, stored)
		assert.Equal(t, 157, stored.Calories)
		assert.Equal(t, entity.StatusGood, stored.Status)
		assert.Len(t, stored.Items, 2)
		assert.Equal(t, "Boiled Eggs", stored.Items[0].Name)
		assert.Equal(t, "Great choice! Eggs bring protein and the coffee has basically nothing.", stored.Feedback)
		assert.Equal(t, 1, client.calls)
	})
	t.Run("analysis unavailable stores fallback", func(t *testing.T) {
		var stored *entity.MealRecord
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			stored = meal
			return nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errorvalues.ErrServiceUnavailable
		}}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, allowingStats(), client, 15)
		result, err := es.RegisterMeal(ctx, uid, req)
		require.NoError(t, err)
		assert.False(t, result.Analyzed)
		require.NotNil(t, stored)
		assert.Equal(t, 300, stored.Calories)
		assert.Equal(t, entity.StatusModerate, stored.Status)
		assert.Equal(t, service.FallbackFeedback, stored.Feedback)
	})
	t.Run("quota spent skips the call but keeps the entry", func(t *testing.T) {
		var stored *entity.MealRecord
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			stored = meal
			return nil
		}}
		stats := &mockDailyStatsRepo{TryConsumeAIInteractionFunc: func(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
			assert.Equal(t, req.Date, date)
			return false, nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			t.Fatal("generation must not run once the daily limit is spent")
			return "", nil
		}}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, stats, client, 15)
		result, err := es.RegisterMeal(ctx, uid, req)
		require.NoError(t, err)
		assert.True(t, result.QuotaExceeded)
		assert.Equal(t, 0, client.calls)
		require.NotNil(t, stored)
		assert.Equal(t, service.QuotaMessage, stored.Feedback)
		assert.Equal(t, 300, stored.Calories)
	})
	t.Run("empty slot defaults to snack", func(t *testing.T) {
		var stored *entity.MealRecord
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			stored = meal
			return nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return analyzedMealResponse, nil
		}}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, allowingStats(), client, 15)
		_, err := es.RegisterMeal(ctx, uid, &service.RegisterMealRequest{Date: "2026-08-30", Description: "an apple"})
		require.NoError(t, err)
		assert.Equal(t, entity.SlotSnack, stored.Slot)
	})
	t.Run("validation", func(t *testing.T) {
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, &mockExercisesRepo{}, allowingStats(), &mockCompletionClient{}, 15)
		_, err := es.RegisterMeal(ctx, uid, &service.RegisterMealRequest{Date: "30/08/2026", Description: "an apple"})
		assert.Error(t, err)
		_, err = es.RegisterMeal(ctx, uid, &service.RegisterMealRequest{Date: "2026-08-30", Description: "   "})
		assert.ErrorIs(t, err, errorvalues.ErrEmptyDescription)
	})
}

func TestRegisterExercise(t *testing.T) {
	uid := uuid.New()
	ctx := context.Background()
	req := &service.RegisterExerciseRequest{Date: "2026-08-30", Description: "30 minute run"}
	t.Run("analyzed", func(t *testing.T) {
		var stored *entity.ExerciseRecord
		exercises := &mockExercisesRepo{CreateFunc: func(ctx context.Context, ex *entity.ExerciseRecord) error {
			stored = ex
			return nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Nice pace! That run really counts.\n[TOTAL_CALORIES: 320]", nil
		}}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, exercises, allowingStats(), client, 15)
		result, err := es.RegisterExercise(ctx, uid, req)
		require.NoError(t, err)
		assert.True(t, result.Analyzed)
		assert.Equal(t, "Nice pace! That run really counts.", result.Feedback)
		require.NotNil(t, stored)
		assert.Equal(t, 320, stored.CaloriesBurned)
	})
	t.Run("fallback burn", func(t *testing.T) {
		var stored *entity.ExerciseRecord
		exercises := &mockExercisesRepo{CreateFunc: func(ctx context.Context, ex *entity.ExerciseRecord) error {
			stored = ex
			return nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errorvalues.ErrServiceUnavailable
		}}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, exercises, allowingStats(), client, 15)
		result, err := es.RegisterExercise(ctx, uid, req)
		require.NoError(t, err)
		assert.False(t, result.Analyzed)
		assert.Equal(t, service.FallbackFeedback, result.Feedback)
		assert.Equal(t, 200, stored.CaloriesBurned)
	})
	t.Run("zero calories response falls back", func(t *testing.T) {
		var stored *entity.ExerciseRecord
		exercises := &mockExercisesRepo{CreateFunc: func(ctx context.Context, ex *entity.ExerciseRecord) error {
			stored = ex
			return nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "Good job moving today!", nil
		}}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, exercises, allowingStats(), client, 15)
		_, err := es.RegisterExercise(ctx, uid, req)
		require.NoError(t, err)
		assert.Equal(t, 200, stored.CaloriesBurned)
	})
}

func TestSuggestMeal(t *testing.T) {
	uid := uuid.New()
	ctx := context.Background()
	req := &service.SuggestMealRequest{Slot: entity.SlotLunch, Ingredients: "chicken, rice and broccoli"}
	t.Run("nothing persisted", func(t *testing.T) {
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			t.Fatal("suggestion preview must not persist a record")
			return nil
		}}
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "chicken, rice and broccoli")
			return "How about grilled chicken with steamed broccoli over rice?\n" +
				"[ITEM: Grilled Chicken | 150g | 240]\n" +
				"[ITEM: White Rice | 100g | 130]\n" +
				"[ITEM: Broccoli | 100g | 35]\n" +
				"[TOTAL_CALORIES: 405]\n[STATUS: VERDE]", nil
		}}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, allowingStats(), client, 15)
		result, err := es.SuggestMeal(ctx, uid, req)
		require.NoError(t, err)
		assert.Equal(t, 405, result.Calories)
		assert.Equal(t, entity.StatusGood, result.Status)
		assert.Len(t, result.Items, 3)
		assert.True(t, strings.HasPrefix(result.Feedback, "How about"))
	})
	t.Run("quota spent", func(t *testing.T) {
		stats := &mockDailyStatsRepo{TryConsumeAIInteractionFunc: func(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
			return false, nil
		}}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, &mockExercisesRepo{}, stats, &mockCompletionClient{}, 15)
		_, err := es.SuggestMeal(ctx, uid, req)
		assert.ErrorIs(t, err, errorvalues.ErrQuotaExceeded)
	})
	t.Run("unavailable", func(t *testing.T) {
		client := &mockCompletionClient{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errorvalues.ErrServiceUnavailable
		}}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, &mockExercisesRepo{}, allowingStats(), client, 15)
		_, err := es.SuggestMeal(ctx, uid, req)
		assert.ErrorIs(t, err, errorvalues.ErrServiceUnavailable)
	})
}

func TestConfirmSuggestion(t *testing.T) {
	uid := uuid.New()
	ctx := context.Background()
	t.Run("persists without spending quota", func(t *testing.T) {
		var stored *entity.MealRecord
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			stored = meal
			return nil
		}}
		stats := &mockDailyStatsRepo{TryConsumeAIInteractionFunc: func(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
			t.Fatal("confirming a suggestion must be free")
			return false, nil
		}}
		client := &mockCompletionClient{}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, stats, client, 15)
		meal, err := es.ConfirmSuggestion(ctx, uid, &service.ConfirmSuggestionRequest{
			Date:        "2026-08-30",
			Slot:        entity.SlotLunch,
			Description: "chicken, rice and broccoli",
			Feedback:    "How about grilled chicken with steamed broccoli over rice?",
			Status:      entity.StatusGood,
			Calories:    405,
			Items: []entity.FoodItem{
				{Name: "Grilled Chicken", Quantity: "150g", Calories: 240},
				{Name: "White Rice", Quantity: "100g", Calories: 130},
				{Name: "Broccoli", Quantity: "100g", Calories: 35},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, stored, meal)
		assert.Equal(t, 0, client.calls)
		assert.Equal(t, 405, stored.Calories)
	})
	t.Run("zero calories falls back", func(t *testing.T) {
		var stored *entity.MealRecord
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			stored = meal
			return nil
		}}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, allowingStats(), &mockCompletionClient{}, 15)
		_, err := es.ConfirmSuggestion(ctx, uid, &service.ConfirmSuggestionRequest{
			Date:        "2026-08-30",
			Description: "mystery salad",
		})
		require.NoError(t, err)
		assert.Equal(t, 300, stored.Calories)
		assert.Equal(t, entity.StatusGood, stored.Status)
	})
	t.Run("missing user", func(t *testing.T) {
		meals := &mockMealsRepo{CreateFunc: func(ctx context.Context, meal *entity.MealRecord) error {
			return errorvalues.ErrUserNotFound
		}}
		es := service.NewEntryService(profileUsers(), meals, &mockExercisesRepo{}, allowingStats(), &mockCompletionClient{}, 15)
		_, err := es.ConfirmSuggestion(ctx, uid, &service.ConfirmSuggestionRequest{Date: "2026-08-30", Description: "toast"})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestChat(t *testing.T) {
	uid := uuid.New()
	ctx := context.Background()
	t.Run("one turn", func(t *testing.T) {
		client := &mockCompletionClient{GenerateChatFunc: func(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
			assert.Len(t, history, 2)
			assert.Equal(t, "is pizza ok today?", message)
			return "One slice is fine, just balance the rest of the day.", nil
		}}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, &mockExercisesRepo{}, allowingStats(), client, 15)
		result, err := es.Chat(ctx, uid, &service.ChatRequest{
			Message: "is pizza ok today?",
			History: []entity.ChatMessage{
				{Role: "user", Text: "hi"},
				{Role: "model", Text: "Hello! How can I help?"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "One slice is fine, just balance the rest of the day.", result.Reply)
		assert.False(t, result.QuotaExceeded)
	})
	t.Run("quota spent answers locally", func(t *testing.T) {
		stats := &mockDailyStatsRepo{TryConsumeAIInteractionFunc: func(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
			return false, nil
		}}
		client := &mockCompletionClient{}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, &mockExercisesRepo{}, stats, client, 15)
		result, err := es.Chat(ctx, uid, &service.ChatRequest{Message: "hello"})
		require.NoError(t, err)
		assert.True(t, result.QuotaExceeded)
		assert.Equal(t, service.QuotaMessage, result.Reply)
		assert.Equal(t, 0, client.calls)
	})
	t.Run("quota check error", func(t *testing.T) {
		stats := &mockDailyStatsRepo{TryConsumeAIInteractionFunc: func(ctx context.Context, uid uuid.UUID, date string, limit int) (bool, error) {
			return false, errors.New("db error")
		}}
		es := service.NewEntryService(profileUsers(), &mockMealsRepo{}, &mockExercisesRepo{}, stats, &mockCompletionClient{}, 15)
		_, err := es.Chat(ctx, uid, &service.ChatRequest{Message: "hello"})
		assert.Error(t, err)
	})
}
