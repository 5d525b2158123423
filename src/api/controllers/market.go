package controllers

import (
	"context"

	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/services"
)

type MarketControllerI interface {
	GetQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error)
	GetQuotes(ctx context.Context, symbols []string) (*schemas.BatchQuotesResponse, error)
}

type MarketController struct {
	MarketService services.MarketServiceI
}

func NewMarketController(marketService services.MarketServiceI) *MarketController {
	return &MarketController{MarketService: marketService}
}

func (c *MarketController) GetQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error) {
	return c.MarketService.GetQuote(ctx, symbol)
}

func (c *MarketController) GetQuotes(ctx context.Context, symbols []string) (*schemas.BatchQuotesResponse, error) {
	return c.MarketService.GetQuotes(ctx, symbols)
}
