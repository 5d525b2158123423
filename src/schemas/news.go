package schemas

import "time"

type ArticleResponse struct {
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Source         string    `json:"source"`
	URL            string    `json:"url,omitempty"`
	PublishedAt    time.Time `json:"published_at"`
	Category       string    `json:"category"`
	RelevanceScore int       `json:"relevance_score"`
	Symbols        []string  `json:"symbols,omitempty"`
}

type NewsResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
	Source   string            `json:"source"`
}
