package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Deveshu04/expert-succotash/src/models"
	"github.com/Deveshu04/expert-succotash/src/repositories"
	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	maxSymbolLength = 12
	maxNotesLength  = 500
)

type PortfolioServiceI interface {
	ListHoldings(ctx context.Context, userID uint) ([]schemas.HoldingResponse, error)
	CreateHolding(ctx context.Context, userID uint, req *schemas.CreateHoldingRequest) (*schemas.HoldingResponse, error)
	UpdateHolding(ctx context.Context, userID, id uint, req *schemas.UpdateHoldingRequest) (*schemas.HoldingResponse, error)
	DeleteHolding(ctx context.Context, userID, id uint) error
	Summary(ctx context.Context, userID uint) (*schemas.PortfolioSummaryResponse, error)
	ExportXLSX(ctx context.Context, userID uint) (*excelize.File, error)
}

type PortfolioService struct {
	holdings repositories.HoldingRepository
	market   MarketServiceI
}

func NewPortfolioService(holdings repositories.HoldingRepository, market MarketServiceI) *PortfolioService {
	return &PortfolioService{holdings: holdings, market: market}
}

func (s *PortfolioService) ListHoldings(ctx context.Context, userID uint) ([]schemas.HoldingResponse, error) {
	holdings, err := s.holdings.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.HoldingResponse, 0, len(holdings))
	for i := range holdings {
		responses = append(responses, *s.enrich(ctx, &holdings[i]))
	}
	return responses, nil
}

func (s *PortfolioService) CreateHolding(ctx context.Context, userID uint, req *schemas.CreateHoldingRequest) (*schemas.HoldingResponse, error) {
	symbol, err := validateSymbol(req.Symbol)
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(req.Quantity, req.CostBasis, req.Notes); err != nil {
		return nil, err
	}

	holding := &models.Holding{
		UserID:    userID,
		Symbol:    symbol,
		Quantity:  req.Quantity,
		CostBasis: req.CostBasis,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if err := s.holdings.Create(ctx, holding); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.Conflict(fmt.Sprintf("Holding for %s already exists", symbol))
		}
		return nil, err
	}
	return s.enrich(ctx, holding), nil
}

func (s *PortfolioService) UpdateHolding(ctx context.Context, userID, id uint, req *schemas.UpdateHoldingRequest) (*schemas.HoldingResponse, error) {
	holding, err := s.holdings.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Holding not found")
		}
		return nil, err
	}

	if req.Quantity != nil {
		holding.Quantity = *req.Quantity
	}
	if req.CostBasis != nil {
		holding.CostBasis = *req.CostBasis
	}
	if req.Notes != nil {
		holding.Notes = strings.TrimSpace(*req.Notes)
	}
	if err := validateAmounts(holding.Quantity, holding.CostBasis, holding.Notes); err != nil {
		return nil, err
	}

	if err := s.holdings.Update(ctx, holding); err != nil {
		return nil, err
	}
	return s.enrich(ctx, holding), nil
}

func (s *PortfolioService) DeleteHolding(ctx context.Context, userID, id uint) error {
	if err := s.holdings.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Holding not found")
		}
		return err
	}
	return nil
}

// Summary aggregates the portfolio valuation with decimal math, rounded to
// 2dp. Holdings whose quotes fail resolve at cost and are excluded from the
// priced count.
func (s *PortfolioService) Summary(ctx context.Context, userID uint) (*schemas.PortfolioSummaryResponse, error) {
	holdings, err := s.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalCost := decimal.Zero
	totalValue := decimal.Zero
	priced := 0
	for _, h := range holdings {
		quantity := decimal.NewFromFloat(h.Quantity)
		cost := quantity.Mul(decimal.NewFromFloat(h.CostBasis))
		totalCost = totalCost.Add(cost)

		if h.Quote != nil && h.Quote.Source == utils.SourceProvider {
			totalValue = totalValue.Add(quantity.Mul(decimal.NewFromFloat(h.Quote.Price)))
			priced++
		} else {
			totalValue = totalValue.Add(cost)
		}
	}

	gainLoss := totalValue.Sub(totalCost)
	gainLossPercent := decimal.Zero
	if !totalCost.IsZero() {
		gainLossPercent = gainLoss.Div(totalCost).Mul(decimal.NewFromInt(100))
	}

	return &schemas.PortfolioSummaryResponse{
		Holdings:        len(holdings),
		PricedHoldings:  priced,
		TotalCost:       totalCost.Round(2).InexactFloat64(),
		TotalValue:      totalValue.Round(2).InexactFloat64(),
		GainLoss:        gainLoss.Round(2).InexactFloat64(),
		GainLossPercent: gainLossPercent.Round(2).InexactFloat64(),
		AsOf:            time.Now().UTC(),
	}, nil
}

func (s *PortfolioService) enrich(ctx context.Context, holding *models.Holding) *schemas.HoldingResponse {
	response := &schemas.HoldingResponse{
		ID:        holding.ID,
		Symbol:    holding.Symbol,
		Quantity:  holding.Quantity,
		CostBasis: holding.CostBasis,
		Notes:     holding.Notes,
		CreatedAt: holding.CreatedAt,
		UpdatedAt: holding.UpdatedAt,
	}

	quote, err := s.market.GetQuote(ctx, holding.Symbol)
	if err != nil {
		return response
	}
	response.Quote = quote

	quantity := decimal.NewFromFloat(holding.Quantity)
	marketValue := quantity.Mul(decimal.NewFromFloat(quote.Price))
	cost := quantity.Mul(decimal.NewFromFloat(holding.CostBasis))
	gainLoss := marketValue.Sub(cost)

	mv := marketValue.Round(2).InexactFloat64()
	gl := gainLoss.Round(2).InexactFloat64()
	response.MarketValue = &mv
	response.GainLoss = &gl
	if !cost.IsZero() {
		glp := gainLoss.Div(cost).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		response.GainLossPercent = &glp
	}
	return response
}

func validateSymbol(symbol string) (string, error) {
	normalized := NormalizeSymbol(symbol)
	if normalized == "" {
		return "", utils.BadRequest("Symbol is required")
	}
	if len(normalized) > maxSymbolLength {
		return "", utils.BadRequest("Symbol must be at most 12 characters")
	}
	return normalized, nil
}

func validateAmounts(quantity, costBasis float64, notes string) error {
	if quantity <= 0 {
		return utils.BadRequest("Quantity must be greater than zero")
	}
	if costBasis < 0 {
		return utils.BadRequest("Cost basis cannot be negative")
	}
	if len(notes) > maxNotesLength {
		return utils.BadRequest("Notes must be at most 500 characters")
	}
	return nil
}
