package dto

import (
	"github.com/guttosm/b3dash/internal/chart"
	"github.com/guttosm/b3dash/internal/domain/models"
)

// CatalogResponse lists the selectable defaults of the dashboard.
type CatalogResponse struct {
	Tickers    []string `json:"tickers" example:"^BVSP,VALE3.SA"`
	Currencies []string `json:"currencies" example:"USD,EUR"`
	Indicators []string `json:"indicators" example:"SELIC,IPCA"`
	Comparison []string `json:"comparison"`
	Start      string   `json:"start" example:"2024-01-01"`
	End        string   `json:"end" example:"2024-06-28"`
}

// MacroResponse carries one line chart per macro indicator.
type MacroResponse struct {
	Selic chart.Figure `json:"selic"`
	IPCA  chart.Figure `json:"ipca"`
}

// ChartResponse wraps a single chart.
type ChartResponse struct {
	Chart chart.Figure `json:"chart"`
}

// PriceVolumeResponse is the price/volume chart of one ticker plus its raw bars.
type PriceVolumeResponse struct {
	Ticker    string       `json:"ticker" example:"PETR4.SA"`
	LastClose string       `json:"last_close" example:"R$38,12"`
	Chart     chart.Figure `json:"chart"`
	Bars      []models.Bar `json:"bars"`
}

// ReturnsResponse is the cumulative-return chart with the table behind it.
type ReturnsResponse struct {
	Chart chart.Figure        `json:"chart"`
	Table models.AlignedTable `json:"table"`
}

// TreemapResponse is the treemap chart with one entry per instrument.
type TreemapResponse struct {
	Chart   chart.Figure          `json:"chart"`
	Entries []models.TreemapEntry `json:"entries"`
}

// InstrumentsResponse lists the tickers ingested into the local B3 store.
type InstrumentsResponse struct {
	Instruments []string `json:"instruments" example:"PETR4.SA,VALE3.SA"`
}
