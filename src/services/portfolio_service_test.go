package services_test

import (
	"bytes"
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
	"github.com/xuri/excelize/v2"
)

func floatPtr(f float64) *float64 { return &f }

func newPortfolioFixture(t *testing.T) (*services.PortfolioService, *models.User, *models.User) {
	db := setupTestDB(t)
	userA := &models.User{Email: "a@example.com", PasswordHash: "x", Active: true}
	userB := &models.User{Email: "b@example.com", PasswordHash: "x", Active: true}
	require.NoError(t, db.Create(userA).Error)
	require.NoError(t, db.Create(userB).Error)

	market := &stubMarketService{quotes: map[string]*schemas.QuoteResponse{
		"AAPL": {Symbol: "AAPL", Price: 200, Source: utils.SourceProvider, AsOf: time.Now()},
		"MSFT": {Symbol: "MSFT", Price: 400, Source: utils.SourceProvider, AsOf: time.Now()},
	}}
	return services.NewPortfolioService(repositories.NewHoldingRepository(db), market), userA, userB
}

func TestPortfolioService(t *testing.T) {
	ctx := context.Background()

	t.Run("create normalizes the symbol and enriches with a quote", func(t *testing.T) {
		portfolioService, userA, _ := newPortfolioFixture(t)

		holding, err := portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{
			Symbol:    " aapl ",
			Quantity:  10,
			CostBasis: 150,
		})
		require.NoError(t, err)
		assert.Equal(t, "AAPL", holding.Symbol)
		require.NotNil(t, holding.Quote)
		require.NotNil(t, holding.MarketValue)
		assert.Equal(t, 2000.0, *holding.MarketValue)
		assert.Equal(t, 500.0, *holding.GainLoss)
		require.NotNil(t, holding.GainLossPercent)
		assert.InDelta(t, 33.33, *holding.GainLossPercent, 0.01)
	})

	t.Run("create validation", func(t *testing.T) {
		portfolioService, userA, _ := newPortfolioFixture(t)

		cases := []schemas.CreateHoldingRequest{
			{Symbol: "", Quantity: 1, CostBasis: 1},
			{Symbol: "WAYTOOLONGSYMBOL", Quantity: 1, CostBasis: 1},
			{Symbol: "AAPL", Quantity: 0, CostBasis: 1},
			{Symbol: "AAPL", Quantity: -2, CostBasis: 1},
			{Symbol: "AAPL", Quantity: 1, CostBasis: -1},
		}
		for _, request := range cases {
			_, err := portfolioService.CreateHolding(ctx, userA.ID, &request)
			assert.Equal(t, 400, httpCode(t, err), "request %+v", request)
		}
	})

	t.Run("duplicate symbol conflicts", func(t *testing.T) {
		portfolioService, userA, _ := newPortfolioFixture(t)

		_, err := portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{Symbol: "AAPL", Quantity: 1, CostBasis: 1})
		require.NoError(t, err)
		_, err = portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{Symbol: "aapl", Quantity: 2, CostBasis: 2})
		assert.Equal(t, 409, httpCode(t, err))
	})

	t.Run("update is partial and ownership-scoped", func(t *testing.T) {
		portfolioService, userA, userB := newPortfolioFixture(t)

		created, err := portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{
			Symbol: "MSFT", Quantity: 5, CostBasis: 300, Notes: "long term",
		})
		require.NoError(t, err)

		updated, err := portfolioService.UpdateHolding(ctx, userA.ID, created.ID, &schemas.UpdateHoldingRequest{
			Quantity: floatPtr(8),
		})
		require.NoError(t, err)
		assert.Equal(t, 8.0, updated.Quantity)
		assert.Equal(t, 300.0, updated.CostBasis)
		assert.Equal(t, "long term", updated.Notes)

		_, err = portfolioService.UpdateHolding(ctx, userB.ID, created.ID, &schemas.UpdateHoldingRequest{Quantity: floatPtr(1)})
		assert.Equal(t, 404, httpCode(t, err))

		_, err = portfolioService.UpdateHolding(ctx, userA.ID, created.ID, &schemas.UpdateHoldingRequest{Quantity: floatPtr(-1)})
		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("delete is ownership-scoped", func(t *testing.T) {
		portfolioService, userA, userB := newPortfolioFixture(t)

		created, err := portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{Symbol: "AAPL", Quantity: 1, CostBasis: 1})
		require.NoError(t, err)

		err = portfolioService.DeleteHolding(ctx, userB.ID, created.ID)
		assert.Equal(t, 404, httpCode(t, err))

		require.NoError(t, portfolioService.DeleteHolding(ctx, userA.ID, created.ID))
		err = portfolioService.DeleteHolding(ctx, userA.ID, created.ID)
		assert.Equal(t, 404, httpCode(t, err))
	})

	t.Run("summary uses decimal math and flags unpriced holdings", func(t *testing.T) {
		portfolioService, userA, _ := newPortfolioFixture(t)

		_, err := portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{Symbol: "AAPL", Quantity: 10, CostBasis: 150})
		require.NoError(t, err)
		_, err = portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{Symbol: "MSFT", Quantity: 2, CostBasis: 350})
		require.NoError(t, err)
		// UNPRICED resolves to a fallback quote, so it is valued at cost.
		_, err = portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{Symbol: "UNPRICED", Quantity: 3, CostBasis: 100})
		require.NoError(t, err)

		summary, err := portfolioService.Summary(ctx, userA.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Holdings)
		assert.Equal(t, 2, summary.PricedHoldings)
		// cost: 10*150 + 2*350 + 3*100 = 2500
		assert.Equal(t, 2500.0, summary.TotalCost)
		// value: 10*200 + 2*400 + 3*100 (at cost) = 3100
		assert.Equal(t, 3100.0, summary.TotalValue)
		assert.Equal(t, 600.0, summary.GainLoss)
		assert.Equal(t, 24.0, summary.GainLossPercent)
	})

	t.Run("empty portfolio summary is all zeros", func(t *testing.T) {
		portfolioService, userA, _ := newPortfolioFixture(t)

		summary, err := portfolioService.Summary(ctx, userA.ID)
		require.NoError(t, err)
		assert.Zero(t, summary.Holdings)
		assert.Zero(t, summary.TotalCost)
		assert.Zero(t, summary.GainLossPercent)
	})

	t.Run("export produces a workbook with holdings, totals and a chart sheet", func(t *testing.T) {
		portfolioService, userA, _ := newPortfolioFixture(t)

		_, err := portfolioService.CreateHolding(ctx, userA.ID, &schemas.CreateHoldingRequest{Symbol: "AAPL", Quantity: 10, CostBasis: 150})
		require.NoError(t, err)

		file, err := portfolioService.ExportXLSX(ctx, userA.ID)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, file.Write(&buf))

		reopened, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		assert.Contains(t, reopened.GetSheetList(), "Holdings")
		assert.Contains(t, reopened.GetSheetList(), "Allocation")

		symbol, err := reopened.GetCellValue("Holdings", "A2")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", symbol)

		total, err := reopened.GetCellValue("Holdings", "A3")
		require.NoError(t, err)
		assert.Equal(t, "TOTAL", total)
	})
}
