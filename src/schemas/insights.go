package schemas

type AnalyzeArticleRequest struct {
	Headline string   `json:"headline"`
	Summary  string   `json:"summary"`
	Symbols  []string `json:"symbols"`
}

// ArticleAnalysis is one sentiment/impact reading of an article. Source marks
// whether it came from the model or from the keyword fallback scorer.
type ArticleAnalysis struct {
	Sentiment  string  `json:"sentiment"`
	Impact     string  `json:"impact"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale,omitempty"`
	Source     string  `json:"source"`
}

type ArticleInsight struct {
	Article  ArticleResponse `json:"article"`
	Analysis ArticleAnalysis `json:"analysis"`
}

type PortfolioInsightsResponse struct {
	OverallSentiment string           `json:"overall_sentiment"`
	Articles         []ArticleInsight `json:"articles"`
	Symbols          []string         `json:"symbols"`
}
