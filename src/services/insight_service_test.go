package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Deveshu04/expert-succotash/src/models"
	"github.com/Deveshu04/expert-succotash/src/repositories"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/services"
	"github.com/Deveshu04/expert-succotash/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisCompletion(t *testing.T) {
	t.Run("parses a strict JSON completion", func(t *testing.T) {
		analysis, err := services.ParseAnalysisCompletion(
			`{"sentiment":"bullish","impact":"high","confidence":0.9,"rationale":"strong quarter"}`)
		require.NoError(t, err)
		assert.Equal(t, utils.SentimentBullish, analysis.Sentiment)
		assert.Equal(t, utils.ImpactHigh, analysis.Impact)
		assert.Equal(t, 0.9, analysis.Confidence)
		assert.Equal(t, utils.SourceProvider, analysis.Source)
	})

	t.Run("tolerates code fences and surrounding prose", func(t *testing.T) {
		completion := "Here is the analysis:\n```json\n" +
			`{"sentiment":"Bearish","impact":"medium","confidence":0.6}` + "\n```\nHope this helps."
		analysis, err := services.ParseAnalysisCompletion(completion)
		require.NoError(t, err)
		assert.Equal(t, utils.SentimentBearish, analysis.Sentiment)
	})

	t.Run("clamps confidence into range", func(t *testing.T) {
		analysis, err := services.ParseAnalysisCompletion(
			`{"sentiment":"neutral","impact":"low","confidence":7.5}`)
		require.NoError(t, err)
		assert.Equal(t, 1.0, analysis.Confidence)
	})

	t.Run("defaults an unknown impact to medium", func(t *testing.T) {
		analysis, err := services.ParseAnalysisCompletion(
			`{"sentiment":"neutral","impact":"catastrophic","confidence":0.5}`)
		require.NoError(t, err)
		assert.Equal(t, utils.ImpactMedium, analysis.Impact)
	})

	t.Run("rejects completions without JSON or with unknown labels", func(t *testing.T) {
		_, err := services.ParseAnalysisCompletion("the market seems fine")
		assert.Error(t, err)

		_, err = services.ParseAnalysisCompletion(`{"sentiment":"rosy","impact":"low"}`)
		assert.Error(t, err)
	})
}

func TestKeywordAnalysis(t *testing.T) {
	t.Run("bullish keywords win", func(t *testing.T) {
		analysis := services.KeywordAnalysis("Shares surge to record on strong growth", nil)
		assert.Equal(t, utils.SentimentBullish, analysis.Sentiment)
		assert.Equal(t, utils.SourceFallback, analysis.Source)
	})

	t.Run("bearish keywords win", func(t *testing.T) {
		analysis := services.KeywordAnalysis("Stock plunges after earnings miss and layoffs", nil)
		assert.Equal(t, utils.SentimentBearish, analysis.Sentiment)
	})

	t.Run("no hits reads neutral with low confidence", func(t *testing.T) {
		analysis := services.KeywordAnalysis("Company schedules annual meeting", nil)
		assert.Equal(t, utils.SentimentNeutral, analysis.Sentiment)
		assert.InDelta(t, 0.3, analysis.Confidence, 0.001)
	})

	t.Run("impact scales with symbol mentions", func(t *testing.T) {
		text := "AAPL and MSFT rally on upgrade"
		analysis := services.KeywordAnalysis(text, []string{"AAPL", "MSFT"})
		assert.Equal(t, utils.ImpactHigh, analysis.Impact)

		analysis = services.KeywordAnalysis(text, []string{"AAPL"})
		assert.Equal(t, utils.ImpactMedium, analysis.Impact)
	})
}

func TestAggregateSentiment(t *testing.T) {
	build := func(labels ...string) []schemas.ArticleInsight {
		insights := make([]schemas.ArticleInsight, len(labels))
		for i, label := range labels {
			insights[i].Analysis.Sentiment = label
		}
		return insights
	}

	assert.Equal(t, utils.SentimentBullish, services.AggregateSentiment(build("bullish", "neutral")))
	assert.Equal(t, utils.SentimentBearish, services.AggregateSentiment(build("bearish")))
	assert.Equal(t, utils.SentimentMixed, services.AggregateSentiment(build("bullish", "bearish")))
	assert.Equal(t, utils.SentimentNeutral, services.AggregateSentiment(build("neutral", "neutral")))
	assert.Equal(t, utils.SentimentNeutral, services.AggregateSentiment(nil))
}

func TestInsightService(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the model answer when it parses", func(t *testing.T) {
		llmClient := &mockLLMClient{completion: `{"sentiment":"bullish","impact":"high","confidence":0.8}`}
		insightService := services.NewInsightService(llmClient, &stubNewsService{}, nil, testLogger())

		analysis, err := insightService.AnalyzeArticle(ctx, &schemas.AnalyzeArticleRequest{Headline: "AAPL beats"})
		require.NoError(t, err)
		assert.Equal(t, utils.SentimentBullish, analysis.Sentiment)
		assert.Equal(t, utils.SourceProvider, analysis.Source)
	})

	t.Run("garbage completion falls back to the keyword scorer", func(t *testing.T) {
		llmClient := &mockLLMClient{completion: "I cannot answer that"}
		insightService := services.NewInsightService(llmClient, &stubNewsService{}, nil, testLogger())

		analysis, err := insightService.AnalyzeArticle(ctx, &schemas.AnalyzeArticleRequest{
			Headline: "Shares surge on record profit",
		})
		require.NoError(t, err)
		assert.Equal(t, utils.SourceFallback, analysis.Source)
		assert.Equal(t, utils.SentimentBullish, analysis.Sentiment)
	})

	t.Run("provider failure falls back too", func(t *testing.T) {
		insightService := services.NewInsightService(&mockLLMClient{fail: true}, &stubNewsService{}, nil, testLogger())

		analysis, err := insightService.AnalyzeArticle(ctx, &schemas.AnalyzeArticleRequest{
			Headline: "Stock plunges after downgrade",
		})
		require.NoError(t, err)
		assert.Equal(t, utils.SourceFallback, analysis.Source)
		assert.Equal(t, utils.SentimentBearish, analysis.Sentiment)
	})

	t.Run("repeated analyses are served from cache", func(t *testing.T) {
		llmClient := &mockLLMClient{completion: `{"sentiment":"neutral","impact":"low","confidence":0.5}`}
		insightService := services.NewInsightService(llmClient, &stubNewsService{}, nil, testLogger())

		req := &schemas.AnalyzeArticleRequest{Headline: "Quarterly report due"}
		_, err := insightService.AnalyzeArticle(ctx, req)
		require.NoError(t, err)
		_, err = insightService.AnalyzeArticle(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1, llmClient.calls)
	})

	t.Run("missing headline is a bad request", func(t *testing.T) {
		insightService := services.NewInsightService(&mockLLMClient{}, &stubNewsService{}, nil, testLogger())

		_, err := insightService.AnalyzeArticle(ctx, &schemas.AnalyzeArticleRequest{Headline: "  "})
		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("portfolio insights aggregate held symbols", func(t *testing.T) {
		db := setupTestDB(t)
		user := &models.User{Email: "insights@example.com", PasswordHash: "x", Active: true}
		require.NoError(t, db.Create(user).Error)
		holdingRepo := repositories.NewHoldingRepository(db)
		require.NoError(t, holdingRepo.Create(ctx, &models.Holding{UserID: user.ID, Symbol: "AAPL", Quantity: 1, CostBasis: 100}))

		feed := &stubNewsService{response: &schemas.NewsResponse{
			Articles: []schemas.ArticleResponse{
				{Title: "AAPL surges on record earnings", PublishedAt: time.Now(), Symbols: []string{"AAPL"}},
				{Title: "AAPL faces lawsuit, shares fall", PublishedAt: time.Now(), Symbols: []string{"AAPL"}},
			},
			Count:  2,
			Source: utils.SourceProvider,
		}}
		insightService := services.NewInsightService(&mockLLMClient{fail: true}, feed, holdingRepo, testLogger())

		insights, err := insightService.PortfolioInsights(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, utils.SentimentMixed, insights.OverallSentiment)
		assert.Len(t, insights.Articles, 2)
		assert.Equal(t, []string{"AAPL"}, insights.Symbols)
	})

	t.Run("empty portfolio reads neutral without provider calls", func(t *testing.T) {
		db := setupTestDB(t)
		user := &models.User{Email: "empty@example.com", PasswordHash: "x", Active: true}
		require.NoError(t, db.Create(user).Error)

		llmClient := &mockLLMClient{}
		insightService := services.NewInsightService(llmClient, &stubNewsService{}, repositories.NewHoldingRepository(db), testLogger())

		insights, err := insightService.PortfolioInsights(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, utils.SentimentNeutral, insights.OverallSentiment)
		assert.Empty(t, insights.Articles)
		assert.Zero(t, llmClient.calls)
	})
}
