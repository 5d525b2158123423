package controllers

import (
	"github.com/Deveshu04/expert-succotash/src/repositories"
	"github.com/Deveshu04/expert-succotash/src/services"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	Holdings repositories.HoldingRepository
	Market   services.MarketServiceI
	News     services.NewsServiceI
	logger   *logrus.Logger
}

func NewController(holdings repositories.HoldingRepository, market services.MarketServiceI, news services.NewsServiceI, logger *logrus.Logger) *Controller {
	return &Controller{Holdings: holdings, Market: market, News: news, logger: logger}
}
