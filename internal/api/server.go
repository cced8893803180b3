package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nutriamiga/nutriamiga/internal/service"
)

type Server struct {
	mx           *chi.Mux
	userService  service.UserServiceI
	entryService service.EntryServiceI
	statsService service.StatsServiceI
	jwtService   JWTServiceI
}

type ServicesList struct {
	UserService  service.UserServiceI
	EntryService service.EntryServiceI
	StatsService service.StatsServiceI
	JwtService   JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:           chi.NewMux(),
		userService:  servicesOptions.UserService,
		entryService: servicesOptions.EntryService,
		statsService: servicesOptions.StatsService,
		jwtService:   servicesOptions.JwtService,
	}
}

func (s *Server) Run(address string) error {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)
			r.Post("/onboarding", s.CompleteOnboarding)
			r.Get("/profile", s.GetProfile)
			r.Post("/profile/reset", s.ResetData)
			r.Delete("/profile", s.DeleteAccount)
			r.Post("/entries/meals", s.RegisterMeal)
			r.Post("/entries/exercises", s.RegisterExercise)
			r.Post("/entries/suggestions", s.SuggestMeal)
			r.Post("/entries/suggestions/confirm", s.ConfirmSuggestion)
			r.Get("/days/{date}/summary", s.DailySummary)
			r.Put("/days/{date}/water", s.SetWater)
			r.Get("/days/{date}/tip", s.DailyTip)
			r.Post("/weights", s.LogWeight)
			r.Get("/weights", s.WeightHistory)
			r.Post("/chat", s.Chat)
		})
	})
	return http.ListenAndServe(address, s.mx)
}
