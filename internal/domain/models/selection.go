package models

// Selection carries everything a client picked for one dashboard view.
//
// It replaces widget state: callers build a Selection per request and pass it
// explicitly to the service.
type Selection struct {
	Window        Window
	Instruments   []string // tickers and currency codes (USD, EUR...), in selection order
	Indicators    []string // SELIC or IPCA; anything else is ignored
	CustomTickers string   // free text, comma separated
}
