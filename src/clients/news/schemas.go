package news

import "time"

type articleSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type providerArticle struct {
	Source      articleSource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt time.Time     `json:"publishedAt"`
}

type providerResponse struct {
	Status       string            `json:"status"`
	TotalResults int               `json:"totalResults"`
	Articles     []providerArticle `json:"articles"`
	Code         string            `json:"code"`
	Message      string            `json:"message"`
}

// Article is one provider article in the neutral form handed to the service
// layer.
type Article struct {
	Title       string
	Description string
	Source      string
	URL         string
	PublishedAt time.Time
}
