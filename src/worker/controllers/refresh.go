package controllers

import (
	"context"

	"github.com/Deveshu04/expert-succotash/src/schemas"
	"github.com/Deveshu04/expert-succotash/src/utils"

	"github.com/sirupsen/logrus"
)

// RefreshQuotes re-primes the quote cache for every symbol currently held by
// any user. A symbol that degrades to a fallback quote counts as a failure
// but never aborts the run.
func (c *Controller) RefreshQuotes(ctx context.Context) (*schemas.RefreshResult, error) {
	symbols, err := c.Holdings.DistinctSymbols(ctx)
	if err != nil {
		return nil, err
	}

	result := &schemas.RefreshResult{Total: len(symbols)}
	for _, symbol := range symbols {
		quote, err := c.Market.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if quote.Source == utils.SourceFallback {
			result.Fallbacks++
			continue
		}
		result.Refreshed++
	}

	c.logger.WithFields(logrus.Fields{
		"total":     result.Total,
		"refreshed": result.Refreshed,
		"fallbacks": result.Fallbacks,
	}).Info("quote cache refresh finished")
	return result, nil
}

// RefreshNews re-primes the news cache for the default feed and for the
// currently held symbols.
func (c *Controller) RefreshNews(ctx context.Context) (*schemas.RefreshResult, error) {
	symbols, err := c.Holdings.DistinctSymbols(ctx)
	if err != nil {
		return nil, err
	}

	result := &schemas.RefreshResult{Total: 2}
	if feed, err := c.News.GetNews(ctx, nil, "", 0); err == nil && feed.Source == utils.SourceProvider {
		result.Refreshed++
	} else if err != nil {
		return nil, err
	} else {
		result.Fallbacks++
	}

	if len(symbols) > 0 {
		if feed, err := c.News.GetNews(ctx, symbols, "", 0); err == nil && feed.Source == utils.SourceProvider {
			result.Refreshed++
		} else if err != nil {
			return nil, err
		} else {
			result.Fallbacks++
		}
	} else {
		result.Total = 1
	}

	c.logger.WithFields(logrus.Fields{
		"refreshed": result.Refreshed,
		"fallbacks": result.Fallbacks,
	}).Info("news cache refresh finished")
	return result, nil
}
