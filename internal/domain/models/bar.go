package models

import "time"

// Bar is a daily OHLCV candle for one ticker.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Closes projects the closing prices of bars into a TimeSeries named after ticker.
func Closes(ticker string, bars []Bar) TimeSeries {
	pts := make([]Point, 0, len(bars))
	for _, b := range bars {
		pts = append(pts, Point{Date: b.Date, Value: b.Close})
	}
	return NewTimeSeries(ticker, pts)
}
