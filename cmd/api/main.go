// @title NutriAmiga API
// @description API for the AI-assisted nutrition diary "NutriAmiga"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/nutriamiga/nutriamiga/internal/ai"
	"github.com/nutriamiga/nutriamiga/internal/api"
	"github.com/nutriamiga/nutriamiga/internal/repository"
	"github.com/nutriamiga/nutriamiga/internal/service"
	"github.com/nutriamiga/nutriamiga/pkg/cleanup"
	"github.com/nutriamiga/nutriamiga/pkg/config"
	jwtservice "github.com/nutriamiga/nutriamiga/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	mealsRepo := repository.NewMealsRepo(&dbCfg)
	exercisesRepo := repository.NewExercisesRepo(&dbCfg)
	weightsRepo := repository.NewWeightLogsRepo(&dbCfg)
	statsRepo := repository.NewDailyStatsRepo(&dbCfg)
	client := ai.NewClient(ai.ClientConfig{
		APIKey: cfg.GetString("GEMINI_API_KEY"),
		Model:  cfg.GetString("GEMINI_MODEL"),
	})
	dailyLimit := cfg.GetInt("AI_DAILY_LIMIT", service.DefaultDailyAILimit)
	userService := service.NewUserService(usersRepo, mealsRepo, exercisesRepo, weightsRepo, statsRepo)
	entryService := service.NewEntryService(usersRepo, mealsRepo, exercisesRepo, statsRepo, client, dailyLimit)
	statsService := service.NewStatsService(usersRepo, mealsRepo, exercisesRepo, weightsRepo, statsRepo, client, dailyLimit)
	serv := api.New(&api.ServicesList{
		UserService:  userService,
		EntryService: entryService,
		StatsService: statsService,
		JwtService:   jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
