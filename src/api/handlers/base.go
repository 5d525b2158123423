package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Deveshu04/expert-succotash/src/api/controllers"
	"github.com/Deveshu04/expert-succotash/src/clients/llm"
	"github.com/Deveshu04/expert-succotash/src/clients/marketdata"
	"github.com/Deveshu04/expert-succotash/src/clients/news"
	"github.com/Deveshu04/expert-succotash/src/config"
	"github.com/Deveshu04/expert-succotash/src/repositories"
	"github.com/Deveshu04/expert-succotash/src/services"
	"github.com/Deveshu04/expert-succotash/src/utils"
	redis_utils "github.com/Deveshu04/expert-succotash/src/utils/redis"

	"github.com/go-chi/jwtauth"
	"github.com/lestrrat-go/jwx/jwt"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Auth      controllers.AuthControllerI
	Portfolio controllers.PortfolioControllerI
	Market    controllers.MarketControllerI
	News      controllers.NewsControllerI
	Insights  controllers.InsightsControllerI
}

// NewHandler wires repositories, services and controllers. The database,
// redis handler and provider clients are injectable so tests can swap mocks
// in; redisHandler may be nil, in which case the in-process cache serves.
func NewHandler(
	cfg *config.Config,
	db *gorm.DB,
	marketClient marketdata.MarketDataClientI,
	newsClient news.NewsClientI,
	llmClient llm.LLMClientI,
	redisHandler *redis_utils.RedisHandler,
	logger *logrus.Logger,
) (*Handler, error) {
	userRepo := repositories.NewUserRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.TokenTTL())
	marketService := services.NewMarketService(marketClient, redisHandler, logger)
	portfolioService := services.NewPortfolioService(holdingRepo, marketService)
	newsService := services.NewNewsService(newsClient, redisHandler, logger)
	insightService := services.NewInsightService(llmClient, newsService, holdingRepo, logger)

	return &Handler{
		Auth:      controllers.NewAuthController(authService),
		Portfolio: controllers.NewPortfolioController(portfolioService),
		Market:    controllers.NewMarketController(marketService),
		News:      controllers.NewNewsController(newsService),
		Insights:  controllers.NewInsightsController(insightService),
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// Authenticator guards the protected routes behind jwtauth.Verifier: 401 for
// a missing, tampered or expired token, 403 when the subject is inactive. A
// token whose user row is gone passes through so resource handlers answer
// 404.
func (h *Handler) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil || jwt.Validate(token) != nil {
			utils.WriteError(w, utils.Unauthorized("Invalid or expired token"))
			return
		}

		userID, err := userIDFromRequest(r)
		if err != nil {
			utils.WriteError(w, err)
			return
		}

		user, err := h.Auth.GetUser(r.Context(), userID)
		if err == nil && !user.Active {
			utils.WriteError(w, utils.Forbidden("Account is inactive"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func userIDFromRequest(r *http.Request) (uint, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, utils.Unauthorized("Invalid or expired token")
	}
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, utils.Unauthorized("Invalid or expired token")
	}
	return uint(raw), nil
}
