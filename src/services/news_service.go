package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Deveshu04/expert-succotash/src/clients/news"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/utils"
	redis_utils "github.com/Deveshu04/expert-succotash/src/utils/redis"

	"github.com/sirupsen/logrus"
)

const (
	newsCacheTTL     = 10 * time.Minute
	DefaultNewsLimit = 20
	MaxNewsLimit     = 50

	symbolMentionWeight = 3
)

// newsCategories is the fixed priority order for categorization: the first
// category with a keyword hit wins.
var newsCategories = []string{"earnings", "deals", "regulatory", "macro", "technology", "markets"}

var categoryKeywords = map[string][]string{
	"earnings":   {"earnings", "revenue", "profit", "quarterly results", "guidance", "eps", "forecast"},
	"deals":      {"merger", "acquisition", "acquire", "takeover", "buyout", "deal"},
	"regulatory": {"regulation", "regulator", "sec", "antitrust", "lawsuit", "investigation", "fine"},
	"macro":      {"inflation", "interest rate", "fed", "federal reserve", "gdp", "unemployment", "tariff"},
	"technology": {"ai", "artificial intelligence", "chip", "semiconductor", "software", "cloud"},
	"markets":    {"stock", "shares", "market", "trading", "rally", "selloff", "index", "investors"},
}

type NewsServiceI interface {
	GetNews(ctx context.Context, symbols []string, category string, limit int) (*schemas.NewsResponse, error)
}

type NewsService struct {
	client news.NewsClientI
	cache  *utils.KeyedCache[schemas.NewsResponse]
	redis  *redis_utils.RedisHandler
	logger *logrus.Logger
}

func NewNewsService(client news.NewsClientI, redisHandler *redis_utils.RedisHandler, logger *logrus.Logger) *NewsService {
	return &NewsService{
		client: client,
		cache:  utils.NewKeyedCache[schemas.NewsResponse](),
		redis:  redisHandler,
		logger: logger,
	}
}

// GetNews fetches provider articles for the symbols/category, runs the
// relevance filter and serves a locally generated placeholder feed when the
// provider is unavailable. Results are cached per query.
func (s *NewsService) GetNews(ctx context.Context, symbols []string, category string, limit int) (*schemas.NewsResponse, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	if limit > MaxNewsLimit {
		limit = MaxNewsLimit
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" {
		if _, ok := categoryKeywords[category]; !ok {
			return nil, utils.BadRequest(fmt.Sprintf("Unknown category %q", category))
		}
	}

	normalized := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		if symbol = NormalizeSymbol(symbol); symbol != "" {
			normalized = append(normalized, symbol)
		}
	}

	cacheKey := newsCacheKey(normalized, category, limit)
	if cached, ok := s.cachedNews(ctx, cacheKey); ok {
		return cached, nil
	}

	articles, err := s.client.GetArticles(ctx, strings.Join(normalized, " OR "), category, MaxNewsLimit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithField("error", err.Error()).Warn("news provider failed, serving fallback feed")
		return fallbackFeed(normalized, category, limit), nil
	}

	filtered := FilterArticles(articles, normalized, category)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	response := &schemas.NewsResponse{
		Articles: filtered,
		Count:    len(filtered),
		Source:   utils.SourceProvider,
	}
	s.storeNews(ctx, cacheKey, response)
	return response, nil
}

// FilterArticles applies the heuristic relevance filter: keyword hits decide
// the category (first match in priority order) and the score, with symbol
// mentions weighted higher. Articles scoring zero are dropped; survivors are
// ordered by score, ties broken by recency.
func FilterArticles(articles []news.Article, symbols []string, wantCategory string) []schemas.ArticleResponse {
	filtered := make([]schemas.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Description)

		score := 0
		category := ""
		for _, candidate := range newsCategories {
			hits := 0
			for _, keyword := range categoryKeywords[candidate] {
				if strings.Contains(text, keyword) {
					hits++
				}
			}
			if hits > 0 && category == "" {
				category = candidate
			}
			score += hits
		}

		var mentioned []string
		for _, symbol := range symbols {
			if strings.Contains(text, strings.ToLower(symbol)) {
				mentioned = append(mentioned, symbol)
				score += symbolMentionWeight
			}
		}

		if score == 0 {
			continue
		}
		if wantCategory != "" && category != wantCategory {
			continue
		}

		filtered = append(filtered, schemas.ArticleResponse{
			Title:          article.Title,
			Description:    article.Description,
			Source:         article.Source,
			URL:            article.URL,
			PublishedAt:    article.PublishedAt,
			Category:       category,
			RelevanceScore: score,
			Symbols:        mentioned,
		})
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].RelevanceScore != filtered[j].RelevanceScore {
			return filtered[i].RelevanceScore > filtered[j].RelevanceScore
		}
		return filtered[i].PublishedAt.After(filtered[j].PublishedAt)
	})
	return filtered
}

func (s *NewsService) cachedNews(ctx context.Context, key string) (*schemas.NewsResponse, bool) {
	if s.redis != nil {
		var response schemas.NewsResponse
		found, err := s.redis.Get(ctx, key, &response)
		if err != nil {
			s.logger.Warn("redis news lookup failed: ", err)
		} else if found {
			return &response, true
		}
		return nil, false
	}

	response, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	return &response, true
}

func (s *NewsService) storeNews(ctx context.Context, key string, response *schemas.NewsResponse) {
	if s.redis != nil {
		if err := s.redis.Set(ctx, key, response, newsCacheTTL); err != nil {
			s.logger.Warn("redis news store failed: ", err)
		}
		return
	}
	s.cache.Set(key, *response, newsCacheTTL)
}

func newsCacheKey(symbols []string, category string, limit int) string {
	return redis_utils.CacheKey("news", strings.Join(symbols, ","), category, strconv.Itoa(limit))
}

// fallbackFeed builds a templated placeholder feed over the requested symbols
// when the provider fails or rate-limits.
func fallbackFeed(symbols []string, category string, limit int) *schemas.NewsResponse {
	if len(symbols) == 0 {
		symbols = []string{"the market"}
	}
	if category == "" {
		category = "markets"
	}

	templates := []string{
		"%s sees steady trading as investors await fresh signals",
		"Analysts weigh outlook for %s after recent market moves",
		"%s in focus amid broader sector rotation",
	}

	now := time.Now().UTC()
	articles := make([]schemas.ArticleResponse, 0, limit)
	for i := 0; len(articles) < limit && i < len(templates)*len(symbols); i++ {
		symbol := symbols[i%len(symbols)]
		template := templates[(i/len(symbols))%len(templates)]
		articles = append(articles, schemas.ArticleResponse{
			Title:       fmt.Sprintf(template, symbol),
			Source:      "local",
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
			Category:    category,
			Symbols:     symbolsOrNil(symbol),
		})
	}

	return &schemas.NewsResponse{
		Articles: articles,
		Count:    len(articles),
		Source:   utils.SourceFallback,
	}
}

func symbolsOrNil(symbol string) []string {
	if symbol == "the market" {
		return nil
	}
	return []string{symbol}
}
