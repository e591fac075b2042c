package resolver

import (
	"github.com/sells-group/catastro-cli/internal/model"
	"github.com/sells-group/catastro-cli/internal/parser"
)

// normalize shapes parsed success records into the final payload. A unique
// match gets full detail; several matches get abbreviated summaries only,
// since full detail for every candidate is rarely useful before the caller
// narrows the choice. Zero records produce the reserved not-found error.
func normalize(resp *parser.Response) model.Payload {
	total := len(resp.Properties) + len(resp.Summaries)
	switch {
	case total == 0:
		return model.NotFound()
	case len(resp.Properties) == 1 && len(resp.Summaries) == 0:
		return &model.SingleResponse{
			TipoRespuesta: model.TipoInmuebleCompleto,
			Inmueble:      resp.Properties[0],
		}
	}

	inmuebles := make([]model.PropertySummary, 0, total)
	for _, p := range resp.Properties {
		inmuebles = append(inmuebles, p.Summary())
	}
	inmuebles = append(inmuebles, resp.Summaries...)

	return &model.ListResponse{
		TipoRespuesta: model.TipoListadoInmuebles,
		Total:         len(inmuebles),
		Inmuebles:     inmuebles,
	}
}
