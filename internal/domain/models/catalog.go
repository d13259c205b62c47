package models

import "strings"

// Indicator names accepted in a Selection.
const (
	IndicatorSELIC = "SELIC"
	IndicatorIPCA  = "IPCA"
)

// SGS series codes at Banco Central do Brasil.
const (
	SGSSelic = 1178 // Selic rate, % per year, base 252
	SGSIPCA  = 433  // IPCA, % change per month
)

// SelicPeriodsPerYear is the business-day count used to de-annualize the Selic rate.
const SelicPeriodsPerYear = 252

var (
	// DefaultTickers is the instrument list offered by the dashboard.
	DefaultTickers = []string{"^BVSP", "VALE3.SA", "PETR4.SA", "PRIO3.SA", "WEGE3.SA"}

	// DefaultCurrencies are the PTAX quotes loaded for the macro view.
	DefaultCurrencies = []string{"USD", "EUR", "GBP", "CHF", "CAD"}

	// DefaultComparison is preselected on the cumulative return chart.
	DefaultComparison = []string{"VALE3.SA", "PETR4.SA"}

	// BluePalette goes from dark to light; tickers take its tail.
	BluePalette = []string{
		"#071D3D", "#102E5E", "#1E4A8A", "#2E63A8", "#3E79C2",
		"#5590D8", "#6FA5E6", "#8AB8EE", "#A9C9F2", "#C5D7F5", "#D9D9D9",
	}
)

var seriesColors = map[string]string{
	IndicatorSELIC: "#AAFF00",
	IndicatorIPCA:  "#8B4513",
	"^BVSP":        BluePalette[len(BluePalette)-5],
	"VALE3.SA":     BluePalette[len(BluePalette)-4],
	"PETR4.SA":     BluePalette[len(BluePalette)-3],
	"PRIO3.SA":     BluePalette[len(BluePalette)-2],
	"WEGE3.SA":     BluePalette[len(BluePalette)-1],
}

// SeriesColor returns the fixed color of a known series, or "" to let the chart pick one.
func SeriesColor(name string) string {
	return seriesColors[name]
}

// IsCurrency reports whether code is one of the PTAX currencies.
func IsCurrency(code string) bool {
	for _, c := range DefaultCurrencies {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// DisplayTicker strips the Yahoo ".SA" suffix used for B3 listings.
func DisplayTicker(ticker string) string {
	return strings.ReplaceAll(ticker, ".SA", "")
}
