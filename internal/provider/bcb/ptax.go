package bcb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/guttosm/b3dash/internal/domain/models"
)

// DefaultPTAXURL is the Olinda OData function returning PTAX bulletins for a period.
const DefaultPTAXURL = "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata/" +
	"CotacaoMoedaPeriodo(moeda=@moeda,dataInicial=@dataInicial,dataFinalCotacao=@dataFinalCotacao)"

const (
	ptaxQueryDateLayout = "01-02-2006"
	ptaxStampLayout     = "2006-01-02 15:04:05.000"
	closingBulletin     = "Fechamento"
)

type ptaxResponse struct {
	Value []ptaxQuote `json:"value"`
}

type ptaxQuote struct {
	CotacaoCompra   float64 `json:"cotacaoCompra"`
	CotacaoVenda    float64 `json:"cotacaoVenda"`
	DataHoraCotacao string  `json:"dataHoraCotacao"`
	TipoBoletim     string  `json:"tipoBoletim"`
}

// PTAX reads daily closing exchange rates (BRL per unit of foreign currency).
type PTAX struct {
	client *resty.Client
	url    string
}

// NewPTAX builds a PTAX client. An empty url uses DefaultPTAXURL.
func NewPTAX(client *resty.Client, url string) *PTAX {
	if url == "" {
		url = DefaultPTAXURL
	}
	return &PTAX{client: client, url: url}
}

// Quotes returns the closing selling rate of currency for each business day of w.
func (p *PTAX) Quotes(ctx context.Context, currency string, w models.Window) (models.TimeSeries, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"@moeda":            "'" + code + "'",
			"@dataInicial":      "'" + w.Start.Format(ptaxQueryDateLayout) + "'",
			"@dataFinalCotacao": "'" + w.End.Format(ptaxQueryDateLayout) + "'",
			"$format":           "json",
			"$select":           "cotacaoCompra,cotacaoVenda,dataHoraCotacao,tipoBoletim",
		}).
		Get(p.url)
	if err != nil {
		return models.TimeSeries{Name: code}, fmt.Errorf("ptax %s: %w", code, err)
	}
	if resp.IsError() {
		return models.TimeSeries{Name: code}, fmt.Errorf("ptax %s: status %d: %s", code, resp.StatusCode(), truncate(resp.String(), 200))
	}

	var body ptaxResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return models.TimeSeries{Name: code}, fmt.Errorf("ptax %s: decode: %w", code, err)
	}

	points := make([]models.Point, 0, len(body.Value))
	for _, q := range body.Value {
		if q.TipoBoletim != closingBulletin {
			continue
		}
		d, err := parsePTAXStamp(q.DataHoraCotacao)
		if err != nil {
			return models.TimeSeries{Name: code}, fmt.Errorf("ptax %s: %w", code, err)
		}
		points = append(points, models.Point{Date: d, Value: q.CotacaoVenda})
	}

	ts := models.NewTimeSeries(code, points)
	if ts.Empty() {
		return ts, models.ErrNoData
	}
	return ts, nil
}

// parsePTAXStamp accepts the bulletin timestamp with or without milliseconds.
func parsePTAXStamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ptaxStampLayout, "2006-01-02 15:04:05", "2006-01-02"} {
		if len(s) >= len(layout) {
			if t, err := time.Parse(layout, s[:len(layout)]); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("invalid dataHoraCotacao %q", s)
}
