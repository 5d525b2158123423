package controllers

import (
	"context"

	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/services"

	"github.com/xuri/excelize/v2"
)

type PortfolioControllerI interface {
	ListHoldings(ctx context.Context, userID uint) ([]schemas.HoldingResponse, error)
	CreateHolding(ctx context.Context, userID uint, req *schemas.CreateHoldingRequest) (*schemas.HoldingResponse, error)
	UpdateHolding(ctx context.Context, userID, id uint, req *schemas.UpdateHoldingRequest) (*schemas.HoldingResponse, error)
	DeleteHolding(ctx context.Context, userID, id uint) error
	Summary(ctx context.Context, userID uint) (*schemas.PortfolioSummaryResponse, error)
	ExportXLSX(ctx context.Context, userID uint) (*excelize.File, error)
}

type PortfolioController struct {
	PortfolioService services.PortfolioServiceI
}

func NewPortfolioController(portfolioService services.PortfolioServiceI) *PortfolioController {
	return &PortfolioController{PortfolioService: portfolioService}
}

func (c *PortfolioController) ListHoldings(ctx context.Context, userID uint) ([]schemas.HoldingResponse, error) {
	return c.PortfolioService.ListHoldings(ctx, userID)
}

func (c *PortfolioController) CreateHolding(ctx context.Context, userID uint, req *schemas.CreateHoldingRequest) (*schemas.HoldingResponse, error) {
	return c.PortfolioService.CreateHolding(ctx, userID, req)
}

func (c *PortfolioController) UpdateHolding(ctx context.Context, userID, id uint, req *schemas.UpdateHoldingRequest) (*schemas.HoldingResponse, error) {
	return c.PortfolioService.UpdateHolding(ctx, userID, id, req)
}

func (c *PortfolioController) DeleteHolding(ctx context.Context, userID, id uint) error {
	return c.PortfolioService.DeleteHolding(ctx, userID, id)
}

func (c *PortfolioController) Summary(ctx context.Context, userID uint) (*schemas.PortfolioSummaryResponse, error) {
	return c.PortfolioService.Summary(ctx, userID)
}

func (c *PortfolioController) ExportXLSX(ctx context.Context, userID uint) (*excelize.File, error) {
	return c.PortfolioService.ExportXLSX(ctx, userID)
}
