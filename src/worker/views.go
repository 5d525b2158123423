package worker

import (
	"context"
	"net/http"
	"time"

	"github.com/Deveshu04/expert-succotash/src/clients/marketdata"
	"github.com/Deveshu04/expert-succotash/src/clients/news"
	"github.com/Deveshu04/expert-succotash/src/config"
	"github.com/Deveshu04/expert-succotash/src/database"
	"github.com/Deveshu04/expert-succotash/src/repositories"
	"github.com/Deveshu04/expert-succotash/src/scheduler"
	"github.com/Deveshu04/expert-succotash/src/services"
	redis_utils "github.com/Deveshu04/expert-succotash/src/utils/redis"
	"github.com/Deveshu04/expert-succotash/src/worker/controllers"
	handlers "github.com/Deveshu04/expert-succotash/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Server is the maintenance service: manual refresh endpoints plus the
// cron-scheduled cache refreshes. It is deployed privately and carries no
// auth.
type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	tasks   []*scheduler.ScheduledTask
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
			logger.Warn("redis unavailable, using in-process cache: ", err)
			redisHandler = nil
		}
	}

	holdingRepo := repositories.NewHoldingRepository(db)
	marketService := services.NewMarketService(marketdata.NewClient(cfg), redisHandler, logger)
	newsService := services.NewNewsService(news.NewClient(cfg), redisHandler, logger)
	controller := controllers.NewController(holdingRepo, marketService, newsService, logger)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller),
		logger:  logger,
	}
	server.InitRoutes()
	if err := server.initSchedulers(cfg, controller); err != nil {
		return nil, err
	}
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/refresh", func(r chi.Router) {
		r.Post("/quotes", s.Handler.RefreshQuotes)
		r.Post("/news", s.Handler.RefreshNews)
	})
}

func (s *Server) initSchedulers(cfg *config.Config, controller *controllers.Controller) error {
	if spec := cfg.Scheduler.QuotesCron; spec != "" {
		task, err := scheduler.NewScheduledTask(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if _, err := controller.RefreshQuotes(ctx); err != nil {
				s.logger.Error("scheduled quote refresh failed: ", err)
			}
		})
		if err != nil {
			return err
		}
		s.tasks = append(s.tasks, task)
	}

	if spec := cfg.Scheduler.NewsCron; spec != "" {
		task, err := scheduler.NewScheduledTask(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := controller.RefreshNews(ctx); err != nil {
				s.logger.Error("scheduled news refresh failed: ", err)
			}
		})
		if err != nil {
			return err
		}
		s.tasks = append(s.tasks, task)
	}
	return nil
}

// StopSchedulers cancels every cron task, for shutdown.
func (s *Server) StopSchedulers() {
	for _, task := range s.tasks {
		task.Cancel()
	}
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	port := cfg.Service.Port
	if port == "" {
		port = "8000"
	}
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		Handler:      server,
	}
}
