package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/Deveshu04/expert-succotash/src/config"
	"github.com/Deveshu04/expert-succotash/src/utils/requests"
)

type NewsClientI interface {
	GetArticles(ctx context.Context, query, category string, pageSize int) ([]Article, error)
}

type NewsClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	APIKey  string
}

// NewClient creates a new instance of NewsClient
func NewClient(cfg *config.Config) *NewsClient {
	return &NewsClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.News.BaseURL,
		APIKey:  cfg.ExternalClients.News.APIKey,
	}
}

// GetArticles fetches articles matching the query. An empty query falls back
// to the provider's general business feed.
func (c *NewsClient) GetArticles(ctx context.Context, query, category string, pageSize int) ([]Article, error) {
	endpoint := fmt.Sprintf("%s/v2/everything", c.BaseURL)

	params := url.Values{}
	if query == "" {
		query = "stock market"
	}
	params.Add("q", query)
	if category != "" {
		params.Add("category", category)
	}
	params.Add("pageSize", strconv.Itoa(pageSize))
	params.Add("sortBy", "publishedAt")
	params.Add("apiKey", c.APIKey)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var newsResponse providerResponse
	if err = json.Unmarshal(responseBody, &newsResponse); err != nil {
		return nil, err
	}
	if newsResponse.Status != "ok" {
		return nil, fmt.Errorf("news provider error %s: %s", newsResponse.Code, newsResponse.Message)
	}

	articles := make([]Article, 0, len(newsResponse.Articles))
	for _, a := range newsResponse.Articles {
		if a.Title == "" {
			continue
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
