// Package bcb fetches indicator series (SGS) and PTAX currency quotes from
// Banco Central do Brasil open data APIs.
package bcb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/guttosm/b3dash/internal/domain/models"
)

const (
	// DefaultSGSURL is the SGS endpoint template; %d is the series code.
	DefaultSGSURL = "https://api.bcb.gov.br/dados/serie/bcdata.sgs.%d/dados"

	sgsDateLayout = "02/01/2006"

	// maxChunkYears is the longest window SGS accepts for daily series.
	maxChunkYears = 10
)

// sgsObservation is one element of the SGS JSON array.
type sgsObservation struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

// SGS reads time series from the Sistema Gerenciador de Séries Temporais.
type SGS struct {
	client *resty.Client
	url    string
	names  map[int]string
}

// NewSGS builds an SGS client. An empty urlTemplate uses DefaultSGSURL.
func NewSGS(client *resty.Client, urlTemplate string) *SGS {
	if urlTemplate == "" {
		urlTemplate = DefaultSGSURL
	}
	return &SGS{
		client: client,
		url:    urlTemplate,
		names: map[int]string{
			models.SGSSelic: models.IndicatorSELIC,
			models.SGSIPCA:  models.IndicatorIPCA,
		},
	}
}

// Series fetches code over w. Windows longer than ten years are split into
// consecutive chunks and concatenated.
func (s *SGS) Series(ctx context.Context, code int, w models.Window) (models.TimeSeries, error) {
	name := s.names[code]
	if name == "" {
		name = strconv.Itoa(code)
	}

	var points []models.Point
	for _, chunk := range splitWindow(w, maxChunkYears) {
		pts, err := s.fetch(ctx, code, chunk)
		if err != nil {
			return models.TimeSeries{Name: name}, err
		}
		points = append(points, pts...)
	}

	ts := models.NewTimeSeries(name, points)
	if ts.Empty() {
		return ts, models.ErrNoData
	}
	return ts, nil
}

func (s *SGS) fetch(ctx context.Context, code int, w models.Window) ([]models.Point, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"formato":     "json",
			"dataInicial": w.Start.Format(sgsDateLayout),
			"dataFinal":   w.End.Format(sgsDateLayout),
		}).
		Get(fmt.Sprintf(s.url, code))
	if err != nil {
		return nil, fmt.Errorf("sgs %d: %w", code, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, nil
	case resp.IsError():
		return nil, fmt.Errorf("sgs %d: status %d: %s", code, resp.StatusCode(), truncate(resp.String(), 200))
	}

	var raw []sgsObservation
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		// SGS answers with an error object instead of an empty array when a
		// window has no observations.
		if strings.HasPrefix(strings.TrimSpace(resp.String()), "{") {
			return nil, nil
		}
		return nil, fmt.Errorf("sgs %d: decode: %w", code, err)
	}

	return parseSGS(raw)
}

func parseSGS(raw []sgsObservation) ([]models.Point, error) {
	out := make([]models.Point, 0, len(raw))
	for _, o := range raw {
		d, err := time.Parse(sgsDateLayout, strings.TrimSpace(o.Data))
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", o.Data, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(o.Valor), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q on %s: %w", o.Valor, o.Data, err)
		}
		out = append(out, models.Point{Date: d, Value: v})
	}
	return out, nil
}

// splitWindow cuts w into consecutive windows no longer than years each.
func splitWindow(w models.Window, years int) []models.Window {
	var out []models.Window
	start := models.DateOnly(w.Start)
	end := models.DateOnly(w.End)
	for !start.After(end) {
		chunkEnd := start.AddDate(years, 0, -1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		out = append(out, models.Window{Start: start, End: chunkEnd})
		start = chunkEnd.AddDate(0, 0, 1)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
