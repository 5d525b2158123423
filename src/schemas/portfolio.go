package schemas

import "time"

type CreateHoldingRequest struct {
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"cost_basis"`
	Notes     string  `json:"notes"`
}

// UpdateHoldingRequest carries a partial update: nil fields are left as-is.
type UpdateHoldingRequest struct {
	Quantity  *float64 `json:"quantity"`
	CostBasis *float64 `json:"cost_basis"`
	Notes     *string  `json:"notes"`
}

type HoldingResponse struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	CostBasis float64   `json:"cost_basis"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Quote enrichment, present when a price resolved for the symbol.
	Quote           *QuoteResponse `json:"quote,omitempty"`
	MarketValue     *float64       `json:"market_value,omitempty"`
	GainLoss        *float64       `json:"gain_loss,omitempty"`
	GainLossPercent *float64       `json:"gain_loss_percent,omitempty"`
}

type PortfolioSummaryResponse struct {
	Holdings        int       `json:"holdings"`
	PricedHoldings  int       `json:"priced_holdings"`
	TotalCost       float64   `json:"total_cost"`
	TotalValue      float64   `json:"total_value"`
	GainLoss        float64   `json:"gain_loss"`
	GainLossPercent float64   `json:"gain_loss_percent"`
	AsOf            time.Time `json:"as_of"`
}
