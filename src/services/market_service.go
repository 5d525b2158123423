package services

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/Deveshu04/expert-succotash/src/clients/marketdata"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/utils"
	redis_utils "github.com/Deveshu04/expert-succotash/src/utils/redis"

	"github.com/sirupsen/logrus"
)

const (
	quoteCacheTTL   = 5 * time.Minute
	MaxBatchSymbols = 25
)

type MarketServiceI interface {
	GetQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error)
	GetQuotes(ctx context.Context, symbols []string) (*schemas.BatchQuotesResponse, error)
}

// MarketService resolves quotes cache-aside: Redis when configured, the
// in-process TTL map otherwise. A provider failure after retries is masked
// with a deterministic locally generated fallback quote.
type MarketService struct {
	client marketdata.MarketDataClientI
	cache  *utils.KeyedCache[schemas.QuoteResponse]
	redis  *redis_utils.RedisHandler
	logger *logrus.Logger
}

func NewMarketService(client marketdata.MarketDataClientI, redisHandler *redis_utils.RedisHandler, logger *logrus.Logger) *MarketService {
	return &MarketService{
		client: client,
		cache:  utils.NewKeyedCache[schemas.QuoteResponse](),
		redis:  redisHandler,
		logger: logger,
	}
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (s *MarketService) GetQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, utils.BadRequest("Symbol is required")
	}

	if cached, ok := s.cachedQuote(ctx, symbol); ok {
		return cached, nil
	}

	quote, err := s.client.GetQuote(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithFields(logrus.Fields{
			"symbol": symbol,
			"error":  err.Error(),
		}).Warn("quote provider failed, serving fallback")
		// Fallback quotes are not cached so the next request retries the
		// provider.
		return FallbackQuote(symbol), nil
	}

	response := &schemas.QuoteResponse{
		Symbol:        quote.Symbol,
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		PreviousClose: quote.PreviousClose,
		Source:        utils.SourceProvider,
		AsOf:          time.Now().UTC(),
	}
	s.storeQuote(ctx, symbol, response)
	return response, nil
}

// GetQuotes resolves a batch one symbol at a time; a bad symbol never fails
// the batch since each miss degrades to a fallback quote.
func (s *MarketService) GetQuotes(ctx context.Context, symbols []string) (*schemas.BatchQuotesResponse, error) {
	if len(symbols) == 0 {
		return nil, utils.BadRequest("At least one symbol is required")
	}
	if len(symbols) > MaxBatchSymbols {
		return nil, utils.BadRequest("At most 25 symbols per request")
	}

	quotes := make([]schemas.QuoteResponse, 0, len(symbols))
	seen := map[string]bool{}
	for _, symbol := range symbols {
		symbol = NormalizeSymbol(symbol)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true

		quote, err := s.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *quote)
	}
	if len(quotes) == 0 {
		return nil, utils.BadRequest("At least one symbol is required")
	}
	return &schemas.BatchQuotesResponse{Quotes: quotes, Count: len(quotes)}, nil
}

func (s *MarketService) cachedQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, bool) {
	if s.redis != nil {
		var quote schemas.QuoteResponse
		found, err := s.redis.Get(ctx, quoteCacheKey(symbol), &quote)
		if err != nil {
			s.logger.WithField("symbol", symbol).Warn("redis quote lookup failed: ", err)
		} else if found {
			return &quote, true
		}
		return nil, false
	}

	quote, found := s.cache.Get(quoteCacheKey(symbol))
	if !found {
		return nil, false
	}
	return &quote, true
}

func (s *MarketService) storeQuote(ctx context.Context, symbol string, quote *schemas.QuoteResponse) {
	if s.redis != nil {
		if err := s.redis.Set(ctx, quoteCacheKey(symbol), quote, quoteCacheTTL); err != nil {
			s.logger.WithField("symbol", symbol).Warn("redis quote store failed: ", err)
		}
		return
	}
	s.cache.Set(quoteCacheKey(symbol), *quote, quoteCacheTTL)
}

func quoteCacheKey(symbol string) string {
	return redis_utils.CacheKey("quote", symbol)
}

// FallbackQuote builds a placeholder quote seeded from the symbol text, so
// repeated failures for the same symbol stay consistent within a session.
func FallbackQuote(symbol string) *schemas.QuoteResponse {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	seed := h.Sum32()

	price := 20 + float64(seed%48000)/100
	changePercent := float64(int32(seed>>16)%500)/100 - 2.5
	change := math.Round(price*changePercent) / 100

	return &schemas.QuoteResponse{
		Symbol:        symbol,
		Price:         math.Round(price*100) / 100,
		Change:        change,
		ChangePercent: changePercent,
		PreviousClose: math.Round((price-change)*100) / 100,
		Source:        utils.SourceFallback,
		AsOf:          time.Now().UTC(),
	}
}
