package marketdata

// GlobalQuoteResponse mirrors the provider's stringly-typed quote payload.
type GlobalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		PreviousClose string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note string `json:"Note"`
}

// Quote is the parsed, numeric form handed to the service layer.
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	PreviousClose float64
}
