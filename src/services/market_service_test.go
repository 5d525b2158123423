package services_test

import (
	"context"
	"testing"

	"github.com/Deveshu04/expert-succotash/src/clients/marketdata"
	"github.com/Deveshu04/expert-succotash/src/services"
	"github.com/Deveshu04/expert-succotash/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestMarketService(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves and normalizes a quote", func(t *testing.T) {
		client := &mockMarketClient{quotes: map[string]*marketdata.Quote{
			"AAPL": {Symbol: "AAPL", Price: 187.5, Change: 1.2, ChangePercent: 0.64, PreviousClose: 186.3},
		}}
		marketService := services.NewMarketService(client, nil, testLogger())

		quote, err := marketService.GetQuote(ctx, " aapl ")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", quote.Symbol)
		assert.Equal(t, 187.5, quote.Price)
		assert.Equal(t, utils.SourceProvider, quote.Source)
	})

	t.Run("cache hit avoids a second provider call", func(t *testing.T) {
		client := &mockMarketClient{quotes: map[string]*marketdata.Quote{
			"AAPL": {Symbol: "AAPL", Price: 187.5},
		}}
		marketService := services.NewMarketService(client, nil, testLogger())

		_, err := marketService.GetQuote(ctx, "AAPL")
		require.NoError(t, err)
		_, err = marketService.GetQuote(ctx, "AAPL")
		require.NoError(t, err)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("provider failure yields a deterministic fallback", func(t *testing.T) {
		client := &mockMarketClient{fail: true}
		marketService := services.NewMarketService(client, nil, testLogger())

		first, err := marketService.GetQuote(ctx, "TSLA")
		require.NoError(t, err)
		second, err := marketService.GetQuote(ctx, "TSLA")
		require.NoError(t, err)

		assert.Equal(t, utils.SourceFallback, first.Source)
		assert.Equal(t, first.Price, second.Price)
		assert.Greater(t, first.Price, 0.0)
		// Fallbacks are not cached, so the provider was retried.
		assert.Equal(t, 2, client.calls)
	})

	t.Run("empty symbol is a bad request", func(t *testing.T) {
		marketService := services.NewMarketService(&mockMarketClient{}, nil, testLogger())

		_, err := marketService.GetQuote(ctx, "   ")
		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("batch deduplicates and never fails on one bad symbol", func(t *testing.T) {
		client := &mockMarketClient{quotes: map[string]*marketdata.Quote{
			"AAPL": {Symbol: "AAPL", Price: 187.5},
		}}
		marketService := services.NewMarketService(client, nil, testLogger())

		batch, err := marketService.GetQuotes(ctx, []string{"aapl", "AAPL", "UNKNOWN"})
		require.NoError(t, err)
		require.Equal(t, 2, batch.Count)
		assert.Equal(t, utils.SourceProvider, batch.Quotes[0].Source)
		assert.Equal(t, utils.SourceFallback, batch.Quotes[1].Source)
	})

	t.Run("batch enforces the symbol cap", func(t *testing.T) {
		marketService := services.NewMarketService(&mockMarketClient{}, nil, testLogger())

		symbols := make([]string, services.MaxBatchSymbols+1)
		for i := range symbols {
			symbols[i] = "S" + string(rune('A'+i%26)) + string(rune('A'+i/26))
		}
		_, err := marketService.GetQuotes(ctx, symbols)
		assert.Equal(t, 400, httpCode(t, err))

		_, err = marketService.GetQuotes(ctx, nil)
		assert.Equal(t, 400, httpCode(t, err))
	})
}
