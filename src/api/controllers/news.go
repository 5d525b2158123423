package controllers

import (
	"context"

	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/services"
)

type NewsControllerI interface {
	GetNews(ctx context.Context, symbols []string, category string, limit int) (*schemas.NewsResponse, error)
}

type NewsController struct {
	NewsService services.NewsServiceI
}

func NewNewsController(newsService services.NewsServiceI) *NewsController {
	return &NewsController{NewsService: newsService}
}

func (c *NewsController) GetNews(ctx context.Context, symbols []string, category string, limit int) (*schemas.NewsResponse, error) {
	return c.NewsService.GetNews(ctx, symbols, category, limit)
}
