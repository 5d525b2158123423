package marketdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Deveshu04/expert-succotash/src/clients/marketdata"
	"github.com/Deveshu04/expert-succotash/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *marketdata.MarketDataClient {
	cfg := &config.Config{}
	cfg.ExternalClients.MarketData.BaseURL = baseURL
	cfg.ExternalClients.MarketData.APIKey = "test-key"
	return marketdata.NewClient(cfg)
}

func TestGetQuote(t *testing.T) {
	t.Run("parses the stringly-typed payload", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
			assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
			assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			_, _ = w.Write([]byte(`{
				"Global Quote": {
					"01. symbol": "AAPL",
					"05. price": "187.5000",
					"08. previous close": "186.3000",
					"09. change": "1.2000",
					"10. change percent": "0.6441%"
				}
			}`))
		}))
		defer ts.Close()

		quote, err := newTestClient(ts.URL).GetQuote(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", quote.Symbol)
		assert.Equal(t, 187.5, quote.Price)
		assert.Equal(t, 186.3, quote.PreviousClose)
		assert.Equal(t, 1.2, quote.Change)
		assert.InDelta(t, 0.6441, quote.ChangePercent, 0.0001)
	})

	t.Run("empty quote means unknown symbol", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Global Quote": {}}`))
		}))
		defer ts.Close()

		_, err := newTestClient(ts.URL).GetQuote(context.Background(), "NOPE")
		assert.ErrorIs(t, err, marketdata.ErrQuoteNotFound)
	})

	t.Run("rate-limit note is surfaced as an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Note": "Thank you for using our API, please slow down"}`))
		}))
		defer ts.Close()

		_, err := newTestClient(ts.URL).GetQuote(context.Background(), "AAPL")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("unparseable price is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"Global Quote": {"05. price": "not-a-number"}}`))
		}))
		defer ts.Close()

		_, err := newTestClient(ts.URL).GetQuote(context.Background(), "AAPL")
		assert.Error(t, err)
	})
}
