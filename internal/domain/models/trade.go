package models

import "time"

// TradeFileHeader is the exact header of a B3 "Negócios à Vista" daily file.
var TradeFileHeader = []string{
	"DataReferencia",
	"CodigoInstrumento",
	"AcaoAtualizacao",
	"PrecoNegocio",
	"QuantidadeNegociada",
	"HoraFechamento",
	"CodigoIdentificadorNegocio",
	"TipoSessaoPregao",
	"DataNegocio",
	"CodigoParticipanteComprador",
	"CodigoParticipanteVendedor",
}

// Trade is one executed trade of a daily file; fields follow TradeFileHeader.
// Trades are the raw material of the locally served daily Bars.
type Trade struct {
	ReferenceDate  time.Time // DataReferencia
	InstrumentCode string    // ticker without the ".SA" suffix
	UpdateAction   string

	TradePrice    float64
	TradeQuantity int64
	// ClosingTime only carries the clock; the date part is zero.
	ClosingTime time.Time

	TradeIdentifierCode   string
	SessionType           string
	TradeDate             time.Time // the day the bar is grouped on
	BuyerParticipantCode  string
	SellerParticipantCode string
}
