package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Deveshu04/expert-succotash/src/clients/llm"
	"github.com/Deveshu04/expert-succotash/src/repositories"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/utils"
	redis_utils "github.com/Deveshu04/expert-succotash/src/utils/redis"

	"github.com/sirupsen/logrus"
)

const (
	analysisCacheTTL    = 30 * time.Minute
	maxInsightArticles  = 5
	insightSystemPrompt = "You are a financial news analyst. Answer only with a JSON object of the form " +
		`{"sentiment":"bullish|bearish|neutral","impact":"high|medium|low","confidence":0.0,"rationale":"..."}. ` +
		"No prose outside the JSON."
)

var bullishKeywords = []string{"beat", "beats", "surge", "rally", "record", "growth", "upgrade", "strong", "gain", "profit", "soar", "outperform"}
var bearishKeywords = []string{"miss", "misses", "plunge", "selloff", "layoff", "downgrade", "weak", "loss", "decline", "lawsuit", "recall", "fall", "drop"}

type InsightServiceI interface {
	AnalyzeArticle(ctx context.Context, req *schemas.AnalyzeArticleRequest) (*schemas.ArticleAnalysis, error)
	PortfolioInsights(ctx context.Context, userID uint) (*schemas.PortfolioInsightsResponse, error)
}

// InsightService derives sentiment/impact commentary from news text: a hosted
// language model when it cooperates, the keyword scorer when it does not.
type InsightService struct {
	llm      llm.LLMClientI
	news     NewsServiceI
	holdings repositories.HoldingRepository
	cache    *utils.KeyedCache[schemas.ArticleAnalysis]
	logger   *logrus.Logger
}

func NewInsightService(llmClient llm.LLMClientI, newsService NewsServiceI, holdings repositories.HoldingRepository, logger *logrus.Logger) *InsightService {
	return &InsightService{
		llm:      llmClient,
		news:     newsService,
		holdings: holdings,
		cache:    utils.NewKeyedCache[schemas.ArticleAnalysis](),
		logger:   logger,
	}
}

func (s *InsightService) AnalyzeArticle(ctx context.Context, req *schemas.AnalyzeArticleRequest) (*schemas.ArticleAnalysis, error) {
	headline := strings.TrimSpace(req.Headline)
	if headline == "" {
		return nil, utils.BadRequest("Headline is required")
	}

	symbols := make([]string, 0, len(req.Symbols))
	for _, symbol := range req.Symbols {
		if symbol = NormalizeSymbol(symbol); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}

	cacheKey := redis_utils.CacheKey("analysis", headline, req.Summary, strings.Join(symbols, ","))
	if cached, found := s.cache.Get(cacheKey); found {
		return &cached, nil
	}

	analysis := s.analyze(ctx, headline, strings.TrimSpace(req.Summary), symbols)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.cache.Set(cacheKey, *analysis, analysisCacheTTL)
	return analysis, nil
}

// PortfolioInsights fetches news for the user's held symbols, analyzes the
// top articles and aggregates the per-article labels.
func (s *InsightService) PortfolioInsights(ctx context.Context, userID uint) (*schemas.PortfolioInsightsResponse, error) {
	holdings, err := s.holdings.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(holdings))
	for _, holding := range holdings {
		symbols = append(symbols, holding.Symbol)
	}
	if len(symbols) == 0 {
		return &schemas.PortfolioInsightsResponse{
			OverallSentiment: utils.SentimentNeutral,
			Articles:         []schemas.ArticleInsight{},
			Symbols:          []string{},
		}, nil
	}

	feed, err := s.news.GetNews(ctx, symbols, "", maxInsightArticles)
	if err != nil {
		return nil, err
	}

	insights := make([]schemas.ArticleInsight, 0, len(feed.Articles))
	for _, article := range feed.Articles {
		analysis, err := s.AnalyzeArticle(ctx, &schemas.AnalyzeArticleRequest{
			Headline: article.Title,
			Summary:  article.Description,
			Symbols:  article.Symbols,
		})
		if err != nil {
			return nil, err
		}
		insights = append(insights, schemas.ArticleInsight{Article: article, Analysis: *analysis})
	}

	return &schemas.PortfolioInsightsResponse{
		OverallSentiment: AggregateSentiment(insights),
		Articles:         insights,
		Symbols:          symbols,
	}, nil
}

func (s *InsightService) analyze(ctx context.Context, headline, summary string, symbols []string) *schemas.ArticleAnalysis {
	prompt := buildPrompt(headline, summary, symbols)

	completion, err := s.llm.CreateChatCompletion(ctx, insightSystemPrompt, prompt)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("llm call failed, using keyword scorer")
		return KeywordAnalysis(headline+" "+summary, symbols)
	}

	analysis, err := ParseAnalysisCompletion(completion)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("unparseable llm completion, using keyword scorer")
		return KeywordAnalysis(headline+" "+summary, symbols)
	}
	return analysis
}

func buildPrompt(headline, summary string, symbols []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Headline: %s\n", headline)
	if summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", summary)
	}
	if len(symbols) > 0 {
		fmt.Fprintf(&b, "Relevant symbols: %s\n", strings.Join(symbols, ", "))
	}
	b.WriteString("Assess the market sentiment and likely impact of this article.")
	return b.String()
}

type rawAnalysis struct {
	Sentiment  string      `json:"sentiment"`
	Impact     string      `json:"impact"`
	Confidence json.Number `json:"confidence"`
	Rationale  string      `json:"rationale"`
}

// ParseAnalysisCompletion extracts the analysis object from a completion,
// tolerating code fences and prose around the JSON.
func ParseAnalysisCompletion(completion string) (*schemas.ArticleAnalysis, error) {
	cleaned := strings.TrimSpace(completion)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
		return nil, err
	}

	sentiment := strings.ToLower(strings.TrimSpace(raw.Sentiment))
	switch sentiment {
	case utils.SentimentBullish, utils.SentimentBearish, utils.SentimentNeutral:
	default:
		return nil, fmt.Errorf("unknown sentiment %q", raw.Sentiment)
	}

	impact := strings.ToLower(strings.TrimSpace(raw.Impact))
	switch impact {
	case utils.ImpactHigh, utils.ImpactMedium, utils.ImpactLow:
	default:
		impact = utils.ImpactMedium
	}

	confidence := 0.5
	if raw.Confidence != "" {
		if value, err := raw.Confidence.Float64(); err == nil {
			confidence = value
		}
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &schemas.ArticleAnalysis{
		Sentiment:  sentiment,
		Impact:     impact,
		Confidence: confidence,
		Rationale:  strings.TrimSpace(raw.Rationale),
		Source:     utils.SourceProvider,
	}, nil
}

// KeywordAnalysis is the fallback scorer: fixed bullish/bearish keyword lists
// over the article text. The net score decides the label, hit density the
// confidence, symbol mentions the impact.
func KeywordAnalysis(text string, symbols []string) *schemas.ArticleAnalysis {
	lowered := strings.ToLower(text)

	score := 0
	hits := 0
	for _, keyword := range bullishKeywords {
		if strings.Contains(lowered, keyword) {
			score++
			hits++
		}
	}
	for _, keyword := range bearishKeywords {
		if strings.Contains(lowered, keyword) {
			score--
			hits++
		}
	}

	sentiment := utils.SentimentNeutral
	if score > 0 {
		sentiment = utils.SentimentBullish
	} else if score < 0 {
		sentiment = utils.SentimentBearish
	}

	confidence := 0.3 + 0.1*float64(hits)
	if confidence > 0.8 {
		confidence = 0.8
	}

	mentions := 0
	for _, symbol := range symbols {
		if strings.Contains(lowered, strings.ToLower(symbol)) {
			mentions++
		}
	}
	impact := utils.ImpactLow
	if mentions >= 2 {
		impact = utils.ImpactHigh
	} else if mentions == 1 {
		impact = utils.ImpactMedium
	}

	return &schemas.ArticleAnalysis{
		Sentiment:  sentiment,
		Impact:     impact,
		Confidence: confidence,
		Rationale:  "Keyword-based estimate",
		Source:     utils.SourceFallback,
	}
}

// AggregateSentiment folds per-article labels into one portfolio label:
// bullish and bearish signals together read as mixed, neither as neutral.
func AggregateSentiment(insights []schemas.ArticleInsight) string {
	bullish := 0
	bearish := 0
	for _, insight := range insights {
		switch insight.Analysis.Sentiment {
		case utils.SentimentBullish:
			bullish++
		case utils.SentimentBearish:
			bearish++
		}
	}

	switch {
	case bullish > 0 && bearish > 0:
		return utils.SentimentMixed
	case bullish > 0:
		return utils.SentimentBullish
	case bearish > 0:
		return utils.SentimentBearish
	default:
		return utils.SentimentNeutral
	}
}
