package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	errorvalues "github.com/nutriamiga/nutriamiga/internal/error_values"
	"github.com/nutriamiga/nutriamiga/internal/service"
	"github.com/nutriamiga/nutriamiga/pkg/entity"
	"github.com/nutriamiga/nutriamiga/pkg/httputil"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type OnboardingRequest struct {
	BirthDate     string  `json:"birth_date"`
	Gender        string  `json:"gender"`
	WeightKG      float64 `json:"weight_kg"`
	HeightCM      float64 `json:"height_cm"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activity_level"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type RegisterMealRequest struct {
	Date        string `json:"date"`
	Slot        string `json:"slot"`
	Description string `json:"description"`
}

type RegisterExerciseRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

type SuggestMealRequest struct {
	Slot        string `json:"slot"`
	Ingredients string `json:"ingredients"`
}

type ConfirmSuggestionRequest struct {
	Date        string            `json:"date"`
	Slot        string            `json:"slot"`
	Description string            `json:"description"`
	Feedback    string            `json:"feedback"`
	Status      string            `json:"status"`
	Calories    int               `json:"calories"`
	Items       []entity.FoodItem `json:"items"`
}

type SetWaterRequest struct {
	Glasses int `json:"glasses"`
}

type LogWeightRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
}

type ChatRequest struct {
	Message string               `json:"message"`
	History []entity.ChatMessage `json:"history"`
}

type MealEntryResponse struct {
	Meal          *entity.MealRecord `json:"meal"`
	Analyzed      bool               `json:"analyzed"`
	QuotaExceeded bool               `json:"quota_exceeded"`
}

type ExerciseEntryResponse struct {
	Exercise      *entity.ExerciseRecord `json:"exercise"`
	Feedback      string                 `json:"feedback"`
	Analyzed      bool                   `json:"analyzed"`
	QuotaExceeded bool                   `json:"quota_exceeded"`
}

type WeightHistoryResponse struct {
	UserID  string             `json:"uid"`
	Weights []entity.WeightLog `json:"weights"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	err := httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	err := httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":                 user.ID.String(),
		"token":               token,
		"onboarding_complete": user.OnboardingComplete,
	})
	logger.Info("successful login")
}

func (s *Server) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("onboarding error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req OnboardingRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("onboarding error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.CompleteOnboarding(ctx, uid, &service.OnboardingRequest{
		BirthDate:     req.BirthDate,
		Gender:        req.Gender,
		WeightKG:      req.WeightKG,
		HeightCM:      req.HeightCM,
		Goal:          entity.Goal(req.Goal),
		ActivityLevel: entity.ActivityLevel(req.ActivityLevel),
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("onboarding error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("onboarding error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't complete onboarding", err)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
	logger.Info("onboarding completed")
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("get profile error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("get profile error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting profile", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
	logger.Info("profile provided")
}

func (s *Server) ResetData(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("reset error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	err = s.userService.ResetData(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("reset error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("reset error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while resetting data", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("user data wiped")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("delete account error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DeleteAccountRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("delete account error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.DeleteAccount(ctx, uid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("delete account error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("delete account error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "wrong password", nil)
		default:
			logger.Error("delete account error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting account", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("account deleted")
}

func (s *Server) RegisterMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("register meal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req RegisterMealRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("register meal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	// Analysis call may retry, give it more room than plain CRUD
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	result, err := s.entryService.RegisterMeal(ctx, uid, &service.RegisterMealRequest{
		Date:        req.Date,
		Slot:        req.Slot,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEmptyDescription):
			logger.Error("register meal error: empty description")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "description must not be empty", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("register meal error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("register meal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't register meal", err)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, MealEntryResponse{
		Meal:          result.Meal,
		Analyzed:      result.Analyzed,
		QuotaExceeded: result.QuotaExceeded,
	})
	logger.Info("meal registered")
}

func (s *Server) RegisterExercise(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("register exercise error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req RegisterExerciseRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("register exercise error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	result, err := s.entryService.RegisterExercise(ctx, uid, &service.RegisterExerciseRequest{
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEmptyDescription):
			logger.Error("register exercise error: empty description")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "description must not be empty", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("register exercise error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("register exercise error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't register exercise", err)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, ExerciseEntryResponse{
		Exercise:      result.Exercise,
		Feedback:      result.Feedback,
		Analyzed:      result.Analyzed,
		QuotaExceeded: result.QuotaExceeded,
	})
	logger.Info("exercise registered")
}

func (s *Server) SuggestMeal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("suggest meal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SuggestMealRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("suggest meal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	result, err := s.entryService.SuggestMeal(ctx, uid, &service.SuggestMealRequest{
		Slot:        req.Slot,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEmptyDescription):
			logger.Error("suggest meal error: empty ingredients")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "ingredients must not be empty", nil)
		case errors.Is(err, errorvalues.ErrQuotaExceeded):
			logger.Error("suggest meal error: daily limit reached")
			httputil.WriteErrorResponse(w, http.StatusTooManyRequests, "daily AI limit reached", nil)
		case errors.Is(err, errorvalues.ErrServiceUnavailable):
			logger.Error("suggest meal error: analysis unavailable")
			httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "analysis temporarily unavailable", nil)
		default:
			logger.Error("suggest meal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't build suggestion", err)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, result)
	logger.Info("suggestion provided")
}

func (s *Server) ConfirmSuggestion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("confirm suggestion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ConfirmSuggestionRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("confirm suggestion error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	meal, err := s.entryService.ConfirmSuggestion(ctx, uid, &service.ConfirmSuggestionRequest{
		Date:        req.Date,
		Slot:        req.Slot,
		Description: req.Description,
		Feedback:    req.Feedback,
		Status:      entity.MealStatus(req.Status),
		Calories:    req.Calories,
		Items:       req.Items,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("confirm suggestion error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("confirm suggestion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't confirm suggestion", err)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, meal)
	logger.Info("suggestion confirmed")
}

func (s *Server) DailySummary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("daily summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := r.PathValue("date")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	summary, err := s.statsService.DailySummary(ctx, uid, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidDate):
			logger.Error("daily summary error: invalid date in path value")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date in path value", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("daily summary error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("daily summary error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building summary", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("daily summary provided")
}

func (s *Server) SetWater(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("set water error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := r.PathValue("date")
	var req SetWaterRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("set water error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.statsService.SetWater(ctx, uid, date, req.Glasses)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidDate):
			logger.Error("set water error: invalid date in path value")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date in path value", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("set water error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("set water error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while setting water", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("water counter updated")
}

func (s *Server) DailyTip(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("daily tip error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	date := r.PathValue("date")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	tip, err := s.statsService.DailyTip(ctx, uid, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidDate):
			logger.Error("daily tip error: invalid date in path value")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date in path value", nil)
		case errors.Is(err, errorvalues.ErrQuotaExceeded):
			logger.Error("daily tip error: daily limit reached")
			httputil.WriteErrorResponse(w, http.StatusTooManyRequests, "daily AI limit reached", nil)
		case errors.Is(err, errorvalues.ErrServiceUnavailable):
			logger.Error("daily tip error: analysis unavailable")
			httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "tip temporarily unavailable", nil)
		default:
			logger.Error("daily tip error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting tip", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"date": date, "tip": tip})
	logger.Info("daily tip provided")
}

func (s *Server) LogWeight(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log weight error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req LogWeightRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("log weight error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.statsService.LogWeight(ctx, uid, req.Date, req.WeightKG)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidDate):
			logger.Error("log weight error: invalid date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("log weight error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("log weight error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't log weight", err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("weight logged")
}

func (s *Server) WeightHistory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("weight history error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	weights, err := s.statsService.WeightHistory(ctx, uid)
	if err != nil {
		logger.Error("weight history error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting weight history", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WeightHistoryResponse{
		UserID:  uid.String(),
		Weights: weights,
	})
	logger.Info("weight history provided")
}

func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("chat error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ChatRequest
	err = httputil.DecodeJSONBody(r, &req)
	if err != nil {
		logger.Error("chat error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	result, err := s.entryService.Chat(ctx, uid, &service.ChatRequest{
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrServiceUnavailable):
			logger.Error("chat error: generation unavailable")
			httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "chat temporarily unavailable", nil)
		default:
			logger.Error("chat error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't process message", err)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, result)
	logger.Info("chat turn answered")
}
