package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/b3dash/internal/chart"
	"github.com/guttosm/b3dash/internal/domain/dto"
	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/export"
	"github.com/guttosm/b3dash/internal/middleware"
	"github.com/guttosm/b3dash/internal/service"
)

// Handler maps dashboard queries to service calls and chart payloads.
//
// Responsibilities:
//   - Parse the window and selection from query parameters
//   - Call the dashboard service with the request context
//   - Render chart specs and translate service errors to HTTP status codes
type Handler struct {
	svc service.DashboardService
}

// NewHandler constructs a Handler backed by svc.
func NewHandler(svc service.DashboardService) *Handler {
	return &Handler{svc: svc}
}

// GetCatalog godoc
// @Summary      Dashboard catalog
// @Description  Default tickers, currencies, indicators and analysis window
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/v1/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	cat := h.svc.Catalog()
	c.JSON(http.StatusOK, dto.CatalogResponse{
		Tickers:    cat.Tickers,
		Currencies: cat.Currencies,
		Indicators: cat.Indicators,
		Comparison: cat.Comparison,
		Start:      cat.DefaultWindow.Start.Format(models.DateLayout),
		End:        cat.DefaultWindow.End.Format(models.DateLayout),
	})
}

// GetInstruments godoc
// @Summary      Instruments of the local B3 store
// @Description  Tickers with ingested trades; empty when the store is disabled
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.InstrumentsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/instruments [get]
func (h *Handler) GetInstruments(c *gin.Context) {
	list, err := h.svc.LocalInstruments(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list instruments", err)
		return
	}
	c.JSON(http.StatusOK, dto.InstrumentsResponse{Instruments: list})
}

// GetMacro godoc
// @Summary      SELIC and IPCA charts
// @Tags         dashboard
// @Produce      json
// @Param        start  query     string  false  "Start date YYYY-MM-DD"  example(2024-01-01)
// @Param        end    query     string  false  "End date YYYY-MM-DD"    example(2024-06-28)
// @Success      200    {object}  dto.MacroResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/v1/macro [get]
func (h *Handler) GetMacro(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	view, err := h.svc.Macro(c.Request.Context(), w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MacroResponse{
		Selic: chart.Line(chart.TitleSelic, view.Selic),
		IPCA:  chart.Line(chart.TitleIPCA, view.IPCA),
	})
}

// GetCurrencies godoc
// @Summary      PTAX quotes chart
// @Tags         dashboard
// @Produce      json
// @Param        start  query     string  false  "Start date YYYY-MM-DD"
// @Param        end    query     string  false  "End date YYYY-MM-DD"
// @Param        codes  query     string  false  "Comma separated currency codes"  example(USD,EUR)
// @Success      200    {object}  dto.ChartResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/v1/currencies [get]
func (h *Handler) GetCurrencies(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	series, err := h.svc.Currencies(c.Request.Context(), w, listParam(c, "codes"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChartResponse{Chart: chart.Line(chart.TitleCurrencies, series...)})
}

// GetPriceVolume godoc
// @Summary      Price and volume chart of one ticker
// @Tags         dashboard
// @Produce      json
// @Param        ticker  path      string  true   "Ticker"  example(PETR4.SA)
// @Param        start   query     string  false  "Start date YYYY-MM-DD"
// @Param        end     query     string  false  "End date YYYY-MM-DD"
// @Success      200     {object}  dto.PriceVolumeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/v1/assets/{ticker}/prices [get]
func (h *Handler) GetPriceVolume(c *gin.Context) {
	w, ok := h.window(c)
	if !ok {
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	bars, err := h.svc.PriceVolume(c.Request.Context(), ticker, w)
	if err == nil && len(bars) == 0 {
		err = models.ErrNoData
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PriceVolumeResponse{
		Ticker:    ticker,
		LastClose: service.FormatBRL(bars[len(bars)-1].Close),
		Chart:     chart.PriceVolume(ticker, bars),
		Bars:      bars,
	})
}

// GetReturns godoc
// @Summary      Cumulative returns comparison
// @Description  Without a tickers parameter the default comparison set is used
// @Tags         dashboard
// @Produce      json
// @Param        tickers     query     string  false  "Comma separated instruments"  example(^BVSP,VALE3.SA,USD)
// @Param        indicators  query     string  false  "Comma separated indicators, default SELIC,IPCA"  example(SELIC,IPCA)
// @Param        custom      query     string  false  "Free text extra tickers"
// @Param        start       query     string  false  "Start date YYYY-MM-DD"
// @Param        end         query     string  false  "End date YYYY-MM-DD"
// @Success      200         {object}  dto.ReturnsResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /api/v1/returns [get]
func (h *Handler) GetReturns(c *gin.Context) {
	sel, ok := h.selection(c, h.svc.Catalog().Comparison)
	if !ok {
		return
	}
	table, err := h.svc.CumulativeReturns(c.Request.Context(), sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReturnsResponse{Chart: chart.CumulativeReturns(table), Table: table})
}

// ExportReturns godoc
// @Summary      Cumulative returns as a spreadsheet
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        tickers     query     string  false  "Comma separated instruments"
// @Param        indicators  query     string  false  "Comma separated indicators"
// @Param        custom      query     string  false  "Free text extra tickers"
// @Param        start       query     string  false  "Start date YYYY-MM-DD"
// @Param        end         query     string  false  "End date YYYY-MM-DD"
// @Success      200         {file}    file
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Failure      500         {object}  dto.ErrorResponse
// @Router       /api/v1/returns/export [get]
func (h *Handler) ExportReturns(c *gin.Context) {
	sel, ok := h.selection(c, h.svc.Catalog().Comparison)
	if !ok {
		return
	}
	table, err := h.svc.CumulativeReturns(c.Request.Context(), sel)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, table); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("rentabilidade_%s_%s.xlsx",
		sel.Window.Start.Format(models.DateLayout), sel.Window.End.Format(models.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// GetTreemap godoc
// @Summary      Period return treemap
// @Description  Without a tickers parameter the default ticker list is used
// @Tags         dashboard
// @Produce      json
// @Param        tickers  query     string  false  "Comma separated tickers"
// @Param        custom   query     string  false  "Free text extra tickers"  example(ITUB4.SA, bbdc4.sa)
// @Param        start    query     string  false  "Start date YYYY-MM-DD"
// @Param        end      query     string  false  "End date YYYY-MM-DD"
// @Success      200      {object}  dto.TreemapResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/treemap [get]
func (h *Handler) GetTreemap(c *gin.Context) {
	sel, ok := h.selection(c, h.svc.Catalog().Tickers)
	if !ok {
		return
	}
	entries, err := h.svc.Treemap(c.Request.Context(), sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TreemapResponse{Chart: chart.Treemap(entries), Entries: entries})
}

// window reads start/end, falling back to the default window for missing ends.
// It answers 400 itself and returns false on a malformed date.
func (h *Handler) window(c *gin.Context) (models.Window, bool) {
	w := h.svc.Catalog().DefaultWindow
	for _, p := range []struct {
		key string
		dst *time.Time
	}{{"start", &w.Start}, {"end", &w.End}} {
		s := strings.TrimSpace(c.Query(p.key))
		if s == "" {
			continue
		}
		t, err := time.Parse(models.DateLayout, s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest,
				fmt.Sprintf("invalid %s, expected YYYY-MM-DD", p.key), err)
			return models.Window{}, false
		}
		*p.dst = t
	}
	return models.NewWindow(w.Start, w.End), true
}

// selection builds a Selection from the query. An absent tickers parameter
// falls back to defaults and an absent indicators parameter to the catalog
// indicators; an explicit empty value stays empty.
func (h *Handler) selection(c *gin.Context, defaults []string) (models.Selection, bool) {
	w, ok := h.window(c)
	if !ok {
		return models.Selection{}, false
	}
	return models.Selection{
		Window:        w,
		Instruments:   listParamOr(c, "tickers", defaults),
		Indicators:    listParamOr(c, "indicators", h.svc.Catalog().Indicators),
		CustomTickers: c.Query("custom"),
	}, true
}

func listParamOr(c *gin.Context, key string, def []string) []string {
	if _, present := c.GetQuery(key); !present {
		return def
	}
	return listParam(c, key)
}

// listParam accepts both repeated and comma separated values.
func listParam(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.ToUpper(strings.TrimSpace(part)); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRange):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date range", err)
	case errors.Is(err, service.ErrEmptySelection):
		middleware.AbortWithError(c, http.StatusBadRequest, service.ErrEmptySelection.Error(), nil)
	case errors.Is(err, models.ErrNoData):
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build dashboard view", err)
	}
}
