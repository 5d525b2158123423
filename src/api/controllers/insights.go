package controllers

import (
	"context"

	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/services"
)

type InsightsControllerI interface {
	AnalyzeArticle(ctx context.Context, req *schemas.AnalyzeArticleRequest) (*schemas.ArticleAnalysis, error)
	PortfolioInsights(ctx context.Context, userID uint) (*schemas.PortfolioInsightsResponse, error)
}

type InsightsController struct {
	InsightService services.InsightServiceI
}

func NewInsightsController(insightService services.InsightServiceI) *InsightsController {
	return &InsightsController{InsightService: insightService}
}

func (c *InsightsController) AnalyzeArticle(ctx context.Context, req *schemas.AnalyzeArticleRequest) (*schemas.ArticleAnalysis, error) {
	return c.InsightService.AnalyzeArticle(ctx, req)
}

func (c *InsightsController) PortfolioInsights(ctx context.Context, userID uint) (*schemas.PortfolioInsightsResponse, error) {
	return c.InsightService.PortfolioInsights(ctx, userID)
}
