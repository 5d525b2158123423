package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/Deveshu04/expert-succotash/src/config"
	"github.com/Deveshu04/expert-succotash/src/utils/requests"
)

// ErrQuoteNotFound is returned when the provider answers with an empty quote,
// which is how it signals an unknown symbol.
var ErrQuoteNotFound = errors.New("quote not found")

type MarketDataClientI interface {
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
}

type MarketDataClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	APIKey  string
}

// NewClient creates a new instance of MarketDataClient
func NewClient(cfg *config.Config) *MarketDataClient {
	return &MarketDataClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.MarketData.BaseURL,
		APIKey:  cfg.ExternalClients.MarketData.APIKey,
	}
}

// GetQuote fetches the global quote for a symbol and parses the provider's
// string-valued fields into numbers.
func (c *MarketDataClient) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := fmt.Sprintf("%s/query", c.BaseURL)

	params := url.Values{}
	params.Add("function", "GLOBAL_QUOTE")
	params.Add("symbol", symbol)
	params.Add("apikey", c.APIKey)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var quoteResponse GlobalQuoteResponse
	if err = json.Unmarshal(responseBody, &quoteResponse); err != nil {
		return nil, err
	}

	raw := quoteResponse.GlobalQuote
	if raw.Price == "" {
		// An empty quote body also shows up when the provider rate-limits and
		// answers with a Note instead of data.
		if quoteResponse.Note != "" {
			return nil, fmt.Errorf("provider rate limited: %s", quoteResponse.Note)
		}
		return nil, ErrQuoteNotFound
	}

	price, err := strconv.ParseFloat(raw.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("unparseable price %q: %w", raw.Price, err)
	}

	quote := &Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        parseFloatOrZero(raw.Change),
		ChangePercent: parsePercentOrZero(raw.ChangePercent),
		PreviousClose: parseFloatOrZero(raw.PreviousClose),
	}
	if raw.Symbol != "" {
		quote.Symbol = raw.Symbol
	}
	return quote, nil
}

func parseFloatOrZero(s string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return value
}

// parsePercentOrZero tolerates the trailing "%" the provider appends.
func parsePercentOrZero(s string) float64 {
	return parseFloatOrZero(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}
