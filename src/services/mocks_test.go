package services_test

import (
	"context"
	"errors"

	"github.com/Deveshu04/expert-succotash/src/clients/marketdata"
	"github.com/Deveshu04/expert-succotash/src/clients/news"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/services"
)

var errProviderDown = errors.New("provider unavailable")

type mockMarketClient struct {
	quotes map[string]*marketdata.Quote
	fail   bool
	calls  int
}

func (m *mockMarketClient) GetQuote(_ context.Context, symbol string) (*marketdata.Quote, error) {
	m.calls++
	if m.fail {
		return nil, errProviderDown
	}
	quote, ok := m.quotes[symbol]
	if !ok {
		return nil, marketdata.ErrQuoteNotFound
	}
	return quote, nil
}

type mockNewsClient struct {
	articles []news.Article
	fail     bool
	calls    int
}

func (m *mockNewsClient) GetArticles(_ context.Context, _, _ string, _ int) ([]news.Article, error) {
	m.calls++
	if m.fail {
		return nil, errProviderDown
	}
	return m.articles, nil
}

type mockLLMClient struct {
	completion string
	fail       bool
	calls      int
}

func (m *mockLLMClient) CreateChatCompletion(_ context.Context, _, _ string) (string, error) {
	m.calls++
	if m.fail {
		return "", errProviderDown
	}
	return m.completion, nil
}

// stubNewsService feeds a fixed response to the insight service tests.
type stubNewsService struct {
	response *schemas.NewsResponse
}

func (s *stubNewsService) GetNews(_ context.Context, _ []string, _ string, _ int) (*schemas.NewsResponse, error) {
	return s.response, nil
}

// stubMarketService returns fixed quotes to the portfolio service tests.
type stubMarketService struct {
	quotes map[string]*schemas.QuoteResponse
}

func (s *stubMarketService) GetQuote(_ context.Context, symbol string) (*schemas.QuoteResponse, error) {
	if quote, ok := s.quotes[symbol]; ok {
		return quote, nil
	}
	return services.FallbackQuote(symbol), nil
}

func (s *stubMarketService) GetQuotes(ctx context.Context, symbols []string) (*schemas.BatchQuotesResponse, error) {
	quotes := make([]schemas.QuoteResponse, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := s.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *quote)
	}
	return &schemas.BatchQuotesResponse{Quotes: quotes, Count: len(quotes)}, nil
}
