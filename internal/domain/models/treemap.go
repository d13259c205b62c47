package models

// TreemapZeroReturnSize is the tile size used when an instrument's rounded return is
// exactly zero, so it still shows up as a sliver instead of vanishing.
const TreemapZeroReturnSize = 0.1

// TreemapEntry summarizes one instrument over the window.
type TreemapEntry struct {
	Ticker     string  `json:"ticker"`
	Label      string  `json:"label"`
	StartPrice float64 `json:"start_price"`
	EndPrice   float64 `json:"end_price"`
	ReturnPct  float64 `json:"return_pct"`
	Size       float64 `json:"size"`

	// BRL formatted prices, e.g. "R$38,12".
	StartDisplay string `json:"start_display"`
	EndDisplay   string `json:"end_display"`
}

// TreemapSize maps a rounded return to the tile size.
func TreemapSize(returnPct float64) float64 {
	if returnPct == 0 {
		return TreemapZeroReturnSize
	}
	if returnPct < 0 {
		return -returnPct
	}
	return returnPct
}
