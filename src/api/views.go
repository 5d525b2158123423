package api

import (
	"net/http"
	"time"

	handlers "github.com/Deveshu04/expert-succotash/src/api/handlers"
	"github.com/Deveshu04/expert-succotash/src/clients/llm"
	"github.com/Deveshu04/expert-succotash/src/clients/marketdata"
	"github.com/Deveshu04/expert-succotash/src/clients/news"
	"github.com/Deveshu04/expert-succotash/src/config"
	"github.com/Deveshu04/expert-succotash/src/database"
	"github.com/Deveshu04/expert-succotash/src/utils"
	redis_utils "github.com/Deveshu04/expert-succotash/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	logger  *logrus.Logger
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var redisHandler *redis_utils.RedisHandler
	if cfg.Databases.Redis.Host != "" {
		redisHandler, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			// The in-process cache still serves; degrade rather than refuse
			// to start.
			logger.Warn("redis unavailable, using in-process cache: ", err)
			redisHandler = nil
		}
	}

	handler, err := handlers.NewHandler(
		cfg,
		db,
		marketdata.NewClient(cfg),
		news.NewClient(cfg),
		llm.NewClient(cfg),
		redisHandler,
		logger,
	)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		logger:  logger,
	}
	server.InitRoutes(cfg)
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes(cfg *config.Config) {
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.Service.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	s.Router.Use(utils.RequestLogger(s.logger))
	s.Router.Use(utils.Recoverer(s.logger))
	s.Router.Use(corsMiddleware.Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.Handler.Signup)
		r.Post("/auth/login", s.Handler.Login)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.Handler.Auth.TokenAuth()))
			r.Use(s.Handler.Authenticator)

			r.Get("/auth/me", s.Handler.Me)

			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/", s.Handler.GetPortfolio)
				r.Post("/", s.Handler.CreateHolding)
				r.Get("/summary", s.Handler.GetPortfolioSummary)
				r.Get("/export", s.Handler.ExportPortfolio)
				r.Put("/{id}", s.Handler.UpdateHolding)
				r.Delete("/{id}", s.Handler.DeleteHolding)
			})

			r.Route("/market", func(r chi.Router) {
				r.Get("/quotes", s.Handler.GetQuotes)
				r.Get("/quotes/{symbol}", s.Handler.GetQuote)
			})

			r.Get("/news", s.Handler.GetNews)

			r.Route("/insights", func(r chi.Router) {
				r.Post("/analyze", s.Handler.AnalyzeArticle)
				r.Get("/portfolio", s.Handler.GetPortfolioInsights)
			})
		})
	})
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	port := cfg.Service.Port
	if port == "" {
		port = "8000"
	}
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      server,
	}
}
