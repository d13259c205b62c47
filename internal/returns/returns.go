// Package returns converts raw price and rate series into cumulative percentage
// returns and aligns them on a shared calendar.
//
// Every function in this package is pure: inputs are never modified and calling
// the same function twice with the same inputs yields the same result.
package returns

import (
	"github.com/guttosm/b3dash/internal/domain/models"
)

// NormalizePriceReturn rebases a price series to its first observation:
//
//	out[i] = (price[i] / price[0] - 1) * 100
//
// The baseline is the first point of the supplied series, not a fixed calendar
// date, so instruments that start trading later in the window are rebased to
// their own start.
//
// ok is false when the series is empty or its baseline price is not positive; callers
// must skip the column in that case.
func NormalizePriceReturn(series models.TimeSeries) (out models.ReturnSeries, ok bool) {
	first, ok := series.First()
	if !ok || first.Value <= 0 {
		return models.ReturnSeries{}, false
	}

	pts := make([]models.Point, len(series.Points))
	for i, p := range series.Points {
		pts[i] = models.Point{Date: p.Date, Value: (p.Value/first.Value - 1) * 100}
	}
	return models.ReturnSeries{TimeSeries: models.TimeSeries{Name: series.Name, Points: pts}}, true
}

// NormalizeCompoundingRate accumulates a periodic rate quoted in percent.
//
// Each value is turned into a per-step fraction by dividing by 100 and by
// periodsPerYear (annualized daily rates such as Selic use 252; a value of 1 or
// less means the rate is already per step, as for monthly IPCA). The result is
// the compounded product:
//
//	out[i] = (prod_{k<=i} (1 + r_k) - 1) * 100
//
// A single observation therefore yields that period's own rate.
//
// ok is false when the series is empty.
func NormalizeCompoundingRate(series models.TimeSeries, periodsPerYear int) (out models.ReturnSeries, ok bool) {
	if series.Empty() {
		return models.ReturnSeries{}, false
	}

	divisor := float64(periodsPerYear)
	if periodsPerYear <= 1 {
		divisor = 1
	}

	pts := make([]models.Point, len(series.Points))
	acc := 1.0
	for i, p := range series.Points {
		acc *= 1 + p.Value/100/divisor
		pts[i] = models.Point{Date: p.Date, Value: (acc - 1) * 100}
	}
	return models.ReturnSeries{TimeSeries: models.TimeSeries{Name: series.Name, Points: pts}}, true
}
