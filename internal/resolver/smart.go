package resolver

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/catastro-cli/internal/model"
	"github.com/sells-group/catastro-cli/internal/query"
)

// SmartParams drives the smart address search. Unlike the generic lookup,
// the street number is mandatory: it is what the fallback pivots on.
type SmartParams struct {
	Provincia string
	Municipio string
	TipoVia   string
	NombreVia string
	Numero    string
	Escalera  string
	Planta    string
	Puerta    string
}

// SmartSearch looks a property up by address and, when the exact street
// number does not exist, falls back to the nearest available number reported
// by ConsultaNumero, annotating the payload with the distance and the other
// numbers nearby.
func (r *Resolver) SmartSearch(ctx context.Context, p SmartParams) (model.Payload, error) {
	wanted, err := strconv.Atoi(p.Numero)
	if err != nil {
		return &model.QueryError{
			Error:       true,
			Codigo:      model.CodeInvalidNumber,
			Descripcion: fmt.Sprintf("El número %q no es válido. Debe ser un número entero.", p.Numero),
		}, nil
	}

	payload, err := r.Consulta(ctx, query.Params{
		Provincia: p.Provincia,
		Municipio: p.Municipio,
		TipoVia:   p.TipoVia,
		NombreVia: p.NombreVia,
		Numero:    strconv.Itoa(wanted),
		Escalera:  p.Escalera,
		Planta:    p.Planta,
		Puerta:    p.Puerta,
	})
	if err != nil {
		return nil, err
	}

	qe, failed := payload.(*model.QueryError)
	if !failed {
		annotate(payload, model.SearchMeta{
			NumeroBuscado:    &wanted,
			NumeroEncontrado: &wanted,
			Coincidencia:     model.CoincidenciaExacta,
		})
		return payload, nil
	}
	if !isNumberNotFound(strings.ToUpper(qe.Descripcion)) {
		return qe, nil
	}

	r.log.Info("número no existe, buscando cercanos",
		zap.Int("numero", wanted),
		zap.String("via", p.NombreVia),
	)

	candidates, err := r.nearbyNumbers(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &model.QueryError{
			Error:       true,
			Codigo:      model.CodeNotFound,
			Descripcion: fmt.Sprintf("No se encontró el número %d ni números cercanos en %s %s, %s", wanted, orStreetType(p.TipoVia), p.NombreVia, p.Municipio),
			Sugerencia:  "Prueba con una búsqueda por referencia catastral o verifica la dirección",
		}, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return abs(candidates[i]-wanted) < abs(candidates[j]-wanted)
	})
	nearest := candidates[0]

	payload, err = r.Consulta(ctx, query.Params{
		Provincia: p.Provincia,
		Municipio: p.Municipio,
		TipoVia:   p.TipoVia,
		NombreVia: p.NombreVia,
		Numero:    strconv.Itoa(nearest),
	})
	if err != nil {
		return nil, err
	}

	diff := abs(wanted - nearest)
	annotate(payload, model.SearchMeta{
		NumeroBuscado:    &wanted,
		NumeroEncontrado: &nearest,
		Coincidencia:     model.CoincidenciaCercano,
		Diferencia:       &diff,
		Mensaje:          fmt.Sprintf("El número %d no existe. Se encontró el número más cercano: %d", wanted, nearest),
		OtrosNumeros:     head(candidates, 5),
	})
	return payload, nil
}

// nearbyNumbers queries ConsultaNumero and returns the parseable street
// numbers it reports. Non-numeric entries (duplicates, bis numbers) are
// skipped.
func (r *Resolver) nearbyNumbers(ctx context.Context, p SmartParams) ([]int, error) {
	req, err := query.BuildNumberListing(p.Provincia, p.Municipio, p.TipoVia, p.NombreVia, p.Numero)
	if err != nil {
		return nil, err
	}

	parsed, err := r.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	var numbers []int
	for _, c := range parsed.Numbers {
		n, err := strconv.Atoi(c.Numero)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func annotate(payload model.Payload, meta model.SearchMeta) {
	switch v := payload.(type) {
	case *model.SingleResponse:
		v.SearchMeta = meta
	case *model.ListResponse:
		v.SearchMeta = meta
	}
}

func orStreetType(tv string) string {
	if tv == "" {
		return "CL"
	}
	return tv
}

func head(nums []int, n int) []int {
	if len(nums) < n {
		n = len(nums)
	}
	return append([]int(nil), nums[:n]...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
