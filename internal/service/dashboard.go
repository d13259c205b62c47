// Package service turns provider data into the dashboard views: macro
// indicators, currency quotes, price/volume, cumulative returns and treemap.
//
// A failing or empty provider call never fails a multi-instrument request;
// the instrument is logged and left out. Only a selection that yields nothing
// at all is reported back as models.ErrNoData.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/b3dash/internal/calendar"
	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/logger"
	"github.com/guttosm/b3dash/internal/provider"
	"github.com/guttosm/b3dash/internal/returns"
)

// DefaultStart is the first day of the default analysis window.
var DefaultStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ErrEmptySelection is returned when neither instruments nor indicators were selected.
var ErrEmptySelection = errors.New("select at least one asset")

// MacroView holds the raw indicator series shown on the macro tab.
type MacroView struct {
	Selic models.TimeSeries
	IPCA  models.TimeSeries
}

// Catalog lists what the dashboard offers by default.
type Catalog struct {
	Tickers       []string
	Currencies    []string
	Indicators    []string
	Comparison    []string
	DefaultWindow models.Window
}

// DashboardService is the read side of the dashboard.
type DashboardService interface {
	Catalog() Catalog
	Macro(ctx context.Context, w models.Window) (MacroView, error)
	Currencies(ctx context.Context, w models.Window, codes []string) ([]models.TimeSeries, error)
	PriceVolume(ctx context.Context, ticker string, w models.Window) ([]models.Bar, error)
	CumulativeReturns(ctx context.Context, sel models.Selection) (models.AlignedTable, error)
	Treemap(ctx context.Context, sel models.Selection) ([]models.TreemapEntry, error)
	LocalInstruments(ctx context.Context) ([]string, error)
}

// Deps are the collaborators of the dashboard service.
type Deps struct {
	Rates      provider.RateProvider
	Currencies provider.CurrencyProvider
	Bars       provider.BarProvider
	// Local lists the instruments of the B3 store; nil when the store is disabled.
	Local provider.InstrumentLister

	Tickers       []string
	CurrencyCodes []string
	DefaultStart  time.Time
	// Now defaults to time.Now.
	Now func() time.Time
}

type dashboardService struct {
	deps Deps
	log  zerolog.Logger
}

func NewDashboardService(deps Deps) DashboardService {
	if len(deps.Tickers) == 0 {
		deps.Tickers = models.DefaultTickers
	}
	if len(deps.CurrencyCodes) == 0 {
		deps.CurrencyCodes = models.DefaultCurrencies
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.DefaultStart.IsZero() {
		deps.DefaultStart = DefaultStart
	}
	return &dashboardService{
		deps: deps,
		log:  logger.L().With().Str("component", "dashboard").Logger(),
	}
}

func (s *dashboardService) Catalog() Catalog {
	return Catalog{
		Tickers:       s.deps.Tickers,
		Currencies:    s.deps.CurrencyCodes,
		Indicators:    []string{models.IndicatorSELIC, models.IndicatorIPCA},
		Comparison:    models.DefaultComparison,
		DefaultWindow: calendar.DefaultWindow(s.deps.DefaultStart, s.deps.Now()),
	}
}

// Macro fetches Selic and IPCA. A missing indicator is left empty; only both
// missing is ErrNoData.
func (s *dashboardService) Macro(ctx context.Context, w models.Window) (MacroView, error) {
	if err := w.Validate(); err != nil {
		return MacroView{}, err
	}

	view := MacroView{
		Selic: s.rate(ctx, models.SGSSelic, models.IndicatorSELIC, w),
		IPCA:  s.rate(ctx, models.SGSIPCA, models.IndicatorIPCA, w),
	}
	if view.Selic.Empty() && view.IPCA.Empty() {
		return view, models.ErrNoData
	}
	return view, nil
}

// Currencies fetches PTAX quotes for codes, or for the configured list when codes is empty.
func (s *dashboardService) Currencies(ctx context.Context, w models.Window, codes []string) ([]models.TimeSeries, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		codes = s.deps.CurrencyCodes
	}

	var out []models.TimeSeries
	for _, code := range codes {
		if ts := s.quotes(ctx, code, w); !ts.Empty() {
			out = append(out, ts)
		}
	}
	if len(out) == 0 {
		return nil, models.ErrNoData
	}
	return out, nil
}

// PriceVolume returns the daily bars of a single ticker.
func (s *dashboardService) PriceVolume(ctx context.Context, ticker string, w models.Window) ([]models.Bar, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, ErrEmptySelection
	}

	bars, err := s.deps.Bars.DailyBars(ctx, ticker, w)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, models.ErrNoData
	}
	return bars, nil
}

// CumulativeReturns builds the comparison table. Instruments come first in
// selection order, then indicators. Price columns set the row calendar; when
// only indicators are selected their own dates are used.
func (s *dashboardService) CumulativeReturns(ctx context.Context, sel models.Selection) (models.AlignedTable, error) {
	if err := sel.Window.Validate(); err != nil {
		return models.AlignedTable{}, err
	}
	instruments := MergeTickers(sel.Instruments, ParseCustomTickers(sel.CustomTickers))
	if len(instruments) == 0 && len(sel.Indicators) == 0 {
		return models.AlignedTable{}, ErrEmptySelection
	}

	var (
		columns     []models.Column
		priceSeries []models.TimeSeries
	)
	add := func(name string, rs models.ReturnSeries, ok bool) {
		if ok {
			columns = append(columns, models.Column{Name: name, Series: rs})
		}
	}

	for _, inst := range instruments {
		prices := s.prices(ctx, inst, sel.Window)
		rs, ok := returns.NormalizePriceReturn(prices)
		if ok {
			priceSeries = append(priceSeries, prices)
		}
		add(inst, rs, ok)
	}

	for _, ind := range sel.Indicators {
		switch strings.ToUpper(strings.TrimSpace(ind)) {
		case models.IndicatorSELIC:
			rs, ok := returns.NormalizeCompoundingRate(s.rate(ctx, models.SGSSelic, models.IndicatorSELIC, sel.Window), models.SelicPeriodsPerYear)
			add(models.IndicatorSELIC, rs, ok)
		case models.IndicatorIPCA:
			rs, ok := returns.NormalizeCompoundingRate(s.rate(ctx, models.SGSIPCA, models.IndicatorIPCA, sel.Window), 1)
			add(models.IndicatorIPCA, rs, ok)
		default:
			s.log.Warn().Str("indicator", ind).Msg("unknown indicator ignored")
		}
	}

	var cal []time.Time
	if len(priceSeries) > 0 {
		cal = returns.UnionCalendar(priceSeries...)
	}

	table := returns.Align(columns, cal)
	if table.Empty() {
		return table, models.ErrNoData
	}
	return table, nil
}

// Treemap summarizes each selected instrument by its return over the window.
func (s *dashboardService) Treemap(ctx context.Context, sel models.Selection) ([]models.TreemapEntry, error) {
	if err := sel.Window.Validate(); err != nil {
		return nil, err
	}
	instruments := MergeTickers(sel.Instruments, ParseCustomTickers(sel.CustomTickers))
	if len(instruments) == 0 {
		return nil, ErrEmptySelection
	}

	var out []models.TreemapEntry
	for _, inst := range instruments {
		prices := s.prices(ctx, inst, sel.Window)
		if prices.Empty() {
			continue
		}
		p0, _ := prices.First()
		pn, _ := prices.Last()
		first, last := p0.Value, pn.Value
		if first <= 0 {
			s.log.Warn().Str("ticker", inst).Float64("start_price", first).Msg("non-positive start price, skipped")
			continue
		}

		ret := roundPct((last/first - 1) * 100)
		out = append(out, models.TreemapEntry{
			Ticker:       inst,
			Label:        models.DisplayTicker(inst),
			StartPrice:   first,
			EndPrice:     last,
			ReturnPct:    ret,
			Size:         models.TreemapSize(ret),
			StartDisplay: FormatBRL(first),
			EndDisplay:   FormatBRL(last),
		})
	}
	if len(out) == 0 {
		return nil, models.ErrNoData
	}
	return out, nil
}

// LocalInstruments lists the tickers held by the B3 store, sorted by code.
// Without a store the list is empty.
func (s *dashboardService) LocalInstruments(ctx context.Context) ([]string, error) {
	if s.deps.Local == nil {
		return []string{}, nil
	}
	return s.deps.Local.Instruments(ctx)
}

// prices routes currency codes to PTAX and everything else to the bar provider.
func (s *dashboardService) prices(ctx context.Context, inst string, w models.Window) models.TimeSeries {
	if models.IsCurrency(inst) {
		return s.quotes(ctx, inst, w)
	}
	return s.closes(ctx, inst, w)
}

func (s *dashboardService) rate(ctx context.Context, code int, name string, w models.Window) models.TimeSeries {
	ts, err := s.deps.Rates.Series(ctx, code, w)
	if err != nil {
		s.logMissing(err, "indicator", name)
		return models.TimeSeries{Name: name}
	}
	ts.Name = name
	return ts.Between(w)
}

func (s *dashboardService) quotes(ctx context.Context, code string, w models.Window) models.TimeSeries {
	code = strings.ToUpper(code)
	ts, err := s.deps.Currencies.Quotes(ctx, code, w)
	if err != nil {
		s.logMissing(err, "currency", code)
		return models.TimeSeries{Name: code}
	}
	ts.Name = code
	return ts.Between(w)
}

func (s *dashboardService) closes(ctx context.Context, ticker string, w models.Window) models.TimeSeries {
	bars, err := s.deps.Bars.DailyBars(ctx, ticker, w)
	if err != nil {
		s.logMissing(err, "ticker", ticker)
		return models.TimeSeries{Name: ticker}
	}
	return models.Closes(ticker, bars).Between(w)
}

func (s *dashboardService) logMissing(err error, kind, name string) {
	ev := s.log.Warn()
	if errors.Is(err, models.ErrNoData) {
		ev = s.log.Info()
	}
	ev.Err(err).Str(kind, name).Msg("no data, column omitted")
}
