package chart

import (
	"fmt"

	"github.com/guttosm/b3dash/internal/domain/models"
)

const (
	TitleSelic             = "Taxa de Juros (SELIC)"
	TitleIPCA              = "Variação Mensal do IPCA"
	TitleCurrencies        = "Cotação das Moedas (PTAX)"
	TitleCumulativeReturns = "Rentabilidade Acumulada (%)"
	TitleTreemap           = "Rentabilidade no Período (%)"

	priceVolumeHeight = 700
	treemapHeight     = 600
)

// Treemap diverging scale: losses in dark red, flat in near black, gains in green.
var treemapColorScale = [][2]any{
	{0.0, "#8B0000"},
	{0.5, "#1a1a1a"},
	{1.0, "#AAFF00"},
}

// Line draws one line per series against its own dates.
func Line(title string, series ...models.TimeSeries) Figure {
	fig := Figure{Layout: Layout{Title: title, HoverMode: "x unified"}}
	for _, s := range series {
		if s.Empty() {
			continue
		}
		t := Trace{Type: "scatter", Mode: "lines", Name: s.Name}
		for _, p := range s.Points {
			t.X = append(t.X, p.Date.Format(models.DateLayout))
			t.Y = append(t.Y, ptr(p.Value))
		}
		if c := models.SeriesColor(s.Name); c != "" {
			t.Line = &LineStyle{Color: c}
		}
		fig.Data = append(fig.Data, t)
	}
	return fig
}

// PriceVolume stacks a close price line over a volume bar panel sharing the x axis.
func PriceVolume(ticker string, bars []models.Bar) Figure {
	price := Trace{Type: "scatter", Mode: "lines", Name: "Preço (R$)", XAxis: "x", YAxis: "y"}
	volume := Trace{Type: "bar", Name: "Volume", XAxis: "x2", YAxis: "y2"}
	for _, b := range bars {
		d := b.Date.Format(models.DateLayout)
		price.X = append(price.X, d)
		price.Y = append(price.Y, ptr(b.Close))
		volume.X = append(volume.X, d)
		volume.Y = append(volume.Y, ptr(b.Volume))
	}
	if c := models.SeriesColor(ticker); c != "" {
		price.Line = &LineStyle{Color: c}
		volume.Marker = &Marker{Color: c}
	}

	return Figure{
		Data: []Trace{price, volume},
		Layout: Layout{
			Title:      fmt.Sprintf("%s: Preço e Volume", models.DisplayTicker(ticker)),
			Height:     priceVolumeHeight,
			ShowLegend: ptr(false),
			// rows 0.7 / 0.3 with a small gap
			YAxis:  &Axis{Title: "Preço (R$)", Domain: []float64{0.33, 1}},
			YAxis2: &Axis{Title: "Volume", Domain: []float64{0, 0.27}},
			XAxis:  &Axis{Anchor: "y", ShowTicks: ptr(false)},
			XAxis2: &Axis{Anchor: "y2", Matches: "x"},
		},
	}
}

// CumulativeReturns draws every column of table with a dashed zero reference line.
// Dates where a column has no value become gaps.
func CumulativeReturns(table models.AlignedTable) Figure {
	fig := Figure{
		Layout: Layout{
			Title:     TitleCumulativeReturns,
			HoverMode: "x unified",
			YAxis:     &Axis{Title: "Rentabilidade (%)", TickSuffix: "%"},
			Shapes: []Shape{{
				Type: "line", XRef: "paper", YRef: "y",
				X0: 0, X1: 1, Y0: 0, Y1: 0,
				Line: LineStyle{Color: "gray", Dash: "dash", Width: 1},
			}},
		},
	}

	dates := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		dates[i] = r.Date.Format(models.DateLayout)
	}

	for _, col := range table.Columns {
		t := Trace{Type: "scatter", Mode: "lines", Name: models.DisplayTicker(col), X: dates}
		t.Y = make([]*float64, len(table.Rows))
		for i := range table.Rows {
			if v, ok := table.Value(i, col); ok {
				t.Y[i] = ptr(v)
			}
		}
		if c := models.SeriesColor(col); c != "" {
			t.Line = &LineStyle{Color: c}
		}
		fig.Data = append(fig.Data, t)
	}
	return fig
}

// Treemap sizes tiles by |return| and colors them by signed return around zero.
func Treemap(entries []models.TreemapEntry) Figure {
	t := Trace{
		Type:         "treemap",
		BranchValues: "total",
		TextTemplate: "<b>%{label}</b><br>%{color:.2f}%",
		HoverTmpl:    "<b>%{label}</b><br>Início: %{customdata[0]}<br>Fim: %{customdata[1]}<br>Retorno: %{color:.2f}%<extra></extra>",
	}
	colors := make([]float64, 0, len(entries))
	for _, e := range entries {
		t.Labels = append(t.Labels, e.Label)
		t.Parents = append(t.Parents, "")
		t.Values = append(t.Values, e.Size)
		t.CustomData = append(t.CustomData, []string{e.StartDisplay, e.EndDisplay})
		colors = append(colors, e.ReturnPct)
	}
	t.Marker = &Marker{
		Color:      colors,
		ColorScale: treemapColorScale,
		CMid:       ptr(0.0),
		ShowScale:  true,
		ColorBar:   &ColorBar{Title: "Retorno (%)"},
	}

	return Figure{
		Data:   []Trace{t},
		Layout: Layout{Title: TitleTreemap, Height: treemapHeight},
	}
}
