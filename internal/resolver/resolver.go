// Package resolver orchestrates a cadastral lookup end to end: strategy
// selection, one outbound service call, XML extraction, error/candidate
// mapping and result normalization. Every invocation builds its state fresh;
// nothing is shared across concurrent calls.
package resolver

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/catastro-cli/internal/model"
	"github.com/sells-group/catastro-cli/internal/parser"
	"github.com/sells-group/catastro-cli/internal/query"
	"github.com/sells-group/catastro-cli/pkg/catastro"
)

// Resolver answers cadastral queries through an injected transport client.
type Resolver struct {
	client catastro.Client
	log    *zap.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger overrides the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// New creates a Resolver backed by the given client.
func New(client catastro.Client, opts ...Option) *Resolver {
	r := &Resolver{client: client, log: zap.L()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Consulta performs one lookup: the strategy is chosen from the populated
// fields of p, the service is called once, and the response is normalized.
// Service-reported errors come back as a *model.QueryError payload, not as a
// Go error; only transport and parse faults are returned as errors.
func (r *Resolver) Consulta(ctx context.Context, p query.Params) (model.Payload, error) {
	req, err := query.Build(p)
	if err != nil {
		return nil, err
	}
	return r.execute(ctx, req)
}

// ListStreets enumerates the streets of a municipality, optionally filtered
// by street type and name.
func (r *Resolver) ListStreets(ctx context.Context, provincia, municipio, tipoVia, nombreVia string) (model.Payload, error) {
	req, err := query.BuildStreetListing(provincia, municipio, tipoVia, nombreVia)
	if err != nil {
		return nil, err
	}

	parsed, err := r.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if parsed.Error != nil {
		return r.mapServiceError(parsed), nil
	}

	vias := make([]model.Street, 0, len(parsed.Streets))
	for _, s := range parsed.Streets {
		vias = append(vias, model.Street{CodigoVia: s.Codigo, Tipo: s.Tipo, Nombre: s.Nombre})
	}
	if len(vias) == 0 {
		return model.NotFound(), nil
	}
	return &model.StreetListResponse{
		TipoRespuesta: model.TipoListaVias,
		Total:         len(vias),
		Vias:          vias,
		Sugerencia:    "Usa el codigo_via de la vía deseada para buscar inmuebles con más precisión",
	}, nil
}

// execute runs an already-built request and normalizes the outcome.
func (r *Resolver) execute(ctx context.Context, req *query.Request) (model.Payload, error) {
	parsed, err := r.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if parsed.Error != nil {
		return r.mapServiceError(parsed), nil
	}
	return normalize(parsed), nil
}

// fetch performs the single outbound call and parses the body.
func (r *Resolver) fetch(ctx context.Context, req *query.Request) (*parser.Response, error) {
	var body []byte
	var err error
	if req.Codigos {
		body, err = r.client.CallCodigos(ctx, req.Op, req.Values)
	} else {
		body, err = r.client.Call(ctx, req.Op, req.Values)
	}
	if err != nil {
		return nil, err
	}

	parsed, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		r.log.Error("respuesta ilegible",
			zap.String("operacion", req.Op),
			zap.Error(err),
		)
		return nil, err
	}
	return parsed, nil
}
