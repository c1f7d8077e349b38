package app

import (
	"net/http"
	"passreset/internal/app/deps"
	"passreset/internal/app/services"
	"passreset/internal/http/handlers/index"
	confirmhandler "passreset/internal/http/handlers/reset/confirm"
	requesthandler "passreset/internal/http/handlers/reset/request"
	validatehandler "passreset/internal/http/handlers/reset/validate"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Method(http.MethodGet, "/", index.New())
	router.Method(http.MethodGet, "/request", requesthandler.New(s.RequestReset, isTestMode))
	router.Method(http.MethodGet, "/validate", validatehandler.New(s.ValidateToken))
	router.Method(http.MethodPost, "/confirm", confirmhandler.New(s.ConfirmReset))

	staticServer := http.FileServer(http.Dir(deps.Config.StaticDir))
	router.Handle("/static/*", http.StripPrefix("/static/", staticServer))

	return &http.Server{
		Handler:           router,
		Addr:              deps.Config.Address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       5 * time.Second,
	}
}
