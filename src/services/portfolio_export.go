package services

import (
	"context"
	"fmt"

	"github.com/Deveshu04/expert-succotash/src/utils"

	"github.com/xuri/excelize/v2"
)

const holdingsSheet = "Holdings"

var exportHeaders = []string{"Symbol", "Quantity", "Cost Basis", "Cost Value", "Price", "Market Value", "Gain/Loss", "Price Source"}

// ExportXLSX renders the portfolio as a workbook: a holdings sheet with a
// totals row plus an allocation chart of market value by symbol.
func (s *PortfolioService) ExportXLSX(ctx context.Context, userID uint) (*excelize.File, error) {
	holdings, err := s.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	index, err := file.NewSheet(holdingsSheet)
	if err != nil {
		return nil, err
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(holdingsSheet, cell, header); err != nil {
			return nil, err
		}
	}

	totalCost := 0.0
	totalValue := 0.0
	for i, h := range holdings {
		row := i + 2
		costValue := h.Quantity * h.CostBasis
		totalCost += costValue

		price := h.CostBasis
		marketValue := costValue
		gainLoss := 0.0
		source := utils.SourceFallback
		if h.Quote != nil {
			price = h.Quote.Price
			source = h.Quote.Source
		}
		if h.MarketValue != nil {
			marketValue = *h.MarketValue
		}
		if h.GainLoss != nil {
			gainLoss = *h.GainLoss
		}
		totalValue += marketValue

		values := []interface{}{h.Symbol, h.Quantity, h.CostBasis, costValue, price, marketValue, gainLoss, source}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(holdingsSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	totalsRow := len(holdings) + 2
	totals := map[string]interface{}{
		fmt.Sprintf("A%d", totalsRow): "TOTAL",
		fmt.Sprintf("D%d", totalsRow): totalCost,
		fmt.Sprintf("F%d", totalsRow): totalValue,
		fmt.Sprintf("G%d", totalsRow): totalValue - totalCost,
	}
	for cell, value := range totals {
		if err := file.SetCellValue(holdingsSheet, cell, value); err != nil {
			return nil, err
		}
	}

	if err := s.applyExportStyles(file, totalsRow); err != nil {
		return nil, err
	}
	if len(holdings) > 0 {
		if err := s.addAllocationChart(file, len(holdings)); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func (s *PortfolioService) applyExportStyles(file *excelize.File, totalsRow int) error {
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{utils.GetChartColor(0)}},
	})
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(holdingsSheet, "A1", "H1", headerStyle); err != nil {
		return err
	}

	totalsStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	start := fmt.Sprintf("A%d", totalsRow)
	end := fmt.Sprintf("H%d", totalsRow)
	if err := file.SetCellStyle(holdingsSheet, start, end, totalsStyle); err != nil {
		return err
	}
	return file.SetColWidth(holdingsSheet, "A", "H", 16)
}

func (s *PortfolioService) addAllocationChart(file *excelize.File, rows int) error {
	const chartSheet = "Allocation"
	if _, err := file.NewSheet(chartSheet); err != nil {
		return err
	}

	chart := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$F$1", holdingsSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", holdingsSheet, rows+1),
				Values:     fmt.Sprintf("%s!$F$2:$F$%d", holdingsSheet, rows+1),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: "Market Value by Symbol"},
		},
	}
	return file.AddChart(chartSheet, "B2", chart)
}
