// Package yahoo reads daily OHLCV bars from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// DefaultURL is the chart endpoint; the ticker is appended as a path segment.
const DefaultURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		GMTOffset int64 `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// Client implements provider.BarProvider against Yahoo Finance.
type Client struct {
	http    *resty.Client
	baseURL string
}

// New builds a Yahoo client. An empty baseURL uses DefaultURL.
func New(client *resty.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{http: client, baseURL: baseURL}
}

func (c *Client) Name() string { return "yahoo" }

// DailyBars returns split and dividend adjusted daily bars for ticker within w,
// both ends inclusive, sorted by date.
func (c *Client) DailyBars(ctx context.Context, ticker string, w models.Window) ([]models.Bar, error) {
	start := models.DateOnly(w.Start)
	// period2 is exclusive on Yahoo's side.
	end := models.DateOnly(w.End).AddDate(0, 0, 1)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(end.Unix(), 10),
			"events":   "history",
		}).
		Get(c.baseURL + url.PathEscape(ticker))
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, models.ErrNoData
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo %s: status %d", ticker, resp.StatusCode())
	}

	var chart chartResponse
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return nil, fmt.Errorf("yahoo %s: decode: %w", ticker, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, models.ErrNoData
	}

	bars := toBars(chart.Chart.Result[0], start, models.DateOnly(w.End))
	if len(bars) == 0 {
		return nil, models.ErrNoData
	}
	return bars, nil
}

// toBars converts the columnar chart payload into bars. Rows without a close
// are skipped; prices are scaled by adjclose/close when adjclose is present.
func toBars(r chartResult, start, end time.Time) []models.Bar {
	if len(r.Indicators.Quote) == 0 {
		return nil
	}
	q := r.Indicators.Quote[0]
	var adj []*float64
	if len(r.Indicators.AdjClose) > 0 {
		adj = r.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]models.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		closePx := at(q.Close, i)
		if closePx == nil || *closePx == 0 {
			continue
		}
		d := models.DateOnly(time.Unix(ts+r.Meta.GMTOffset, 0).UTC())
		if d.Before(start) || d.After(end) {
			continue
		}

		factor := 1.0
		if a := at(adj, i); a != nil {
			factor = *a / *closePx
		}
		b := models.Bar{
			Date:  d,
			Close: *closePx * factor,
			Open:  value(at(q.Open, i), *closePx) * factor,
			High:  value(at(q.High, i), *closePx) * factor,
			Low:   value(at(q.Low, i), *closePx) * factor,
		}
		if v := at(q.Volume, i); v != nil {
			b.Volume = *v
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	// Intraday rows for the current session can repeat the last date.
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func at(xs []*float64, i int) *float64 {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

func value(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
