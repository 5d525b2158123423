package schemas

import "time"

type QuoteResponse struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	PreviousClose float64   `json:"previous_close"`
	Source        string    `json:"source"`
	AsOf          time.Time `json:"as_of"`
}

type BatchQuotesResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Count  int             `json:"count"`
}

// RefreshResult reports one worker cache-refresh run.
type RefreshResult struct {
	Total     int `json:"total"`
	Refreshed int `json:"refreshed"`
	Fallbacks int `json:"fallbacks"`
}
