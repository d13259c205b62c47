// Package chart builds Plotly compatible figure specs from dashboard data.
// Figures are plain structs meant to be serialized as JSON and rendered by the
// front end with Plotly.newPlot(el, fig.data, fig.layout).
package chart

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the dashboard uses.
type Trace struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Mode string `json:"mode,omitempty"`

	X []string   `json:"x,omitempty"`
	Y []*float64 `json:"y,omitempty"`

	XAxis string `json:"xaxis,omitempty"`
	YAxis string `json:"yaxis,omitempty"`

	Line   *LineStyle `json:"line,omitempty"`
	Marker *Marker `json:"marker,omitempty"`

	// treemap
	Labels       []string  `json:"labels,omitempty"`
	Parents      []string  `json:"parents,omitempty"`
	Values       []float64 `json:"values,omitempty"`
	CustomData   []any     `json:"customdata,omitempty"`
	TextTemplate string    `json:"texttemplate,omitempty"`
	HoverTmpl    string    `json:"hovertemplate,omitempty"`
	BranchValues string    `json:"branchvalues,omitempty"`
}

// LineStyle is the stroke of a trace or shape.
type LineStyle struct {
	Color string  `json:"color,omitempty"`
	Dash  string  `json:"dash,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Marker struct {
	Color      any       `json:"color,omitempty"`
	ColorScale [][2]any  `json:"colorscale,omitempty"`
	CMid       *float64  `json:"cmid,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

type ColorBar struct {
	Title string `json:"title,omitempty"`
}

type Layout struct {
	Title      string  `json:"title,omitempty"`
	Height     int     `json:"height,omitempty"`
	ShowLegend *bool   `json:"showlegend,omitempty"`
	XAxis      *Axis   `json:"xaxis,omitempty"`
	XAxis2     *Axis   `json:"xaxis2,omitempty"`
	YAxis      *Axis   `json:"yaxis,omitempty"`
	YAxis2     *Axis   `json:"yaxis2,omitempty"`
	Shapes     []Shape `json:"shapes,omitempty"`
	HoverMode  string  `json:"hovermode,omitempty"`
}

type Axis struct {
	Title      string    `json:"title,omitempty"`
	Domain     []float64 `json:"domain,omitempty"`
	Anchor     string    `json:"anchor,omitempty"`
	Matches    string    `json:"matches,omitempty"`
	ShowTicks  *bool     `json:"showticklabels,omitempty"`
	TickSuffix string    `json:"ticksuffix,omitempty"`
}

// Shape is a layout shape; the dashboard only draws horizontal reference lines.
type Shape struct {
	Type string  `json:"type"`
	XRef string  `json:"xref"`
	YRef string  `json:"yref"`
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Line LineStyle `json:"line"`
}

func ptr[T any](v T) *T { return &v }
