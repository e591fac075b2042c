package resolver

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/catastro-cli/internal/model"
	"github.com/sells-group/catastro-cli/internal/parser"
)

// mapServiceError turns a raw service error record into the error payload.
// Soft disambiguation errors carry a candidate list scoped to the failing
// parameter; hard errors carry none and the caller must revise the query.
// The mojibake variants appear when the service double-encodes its accented
// messages; both spellings are matched.
func (r *Resolver) mapServiceError(resp *parser.Response) *model.QueryError {
	qe := &model.QueryError{
		Error:       true,
		Codigo:      resp.Error.Code,
		Descripcion: resp.Error.Description,
	}

	desc := strings.ToUpper(resp.Error.Description)
	switch {
	case strings.Contains(desc, "PROVINCIA NO EXISTE"):
		qe.CandidatosProvincias = resp.Provinces
	case strings.Contains(desc, "MUNICIPIO NO EXISTE"):
		qe.CandidatosMunicipios = resp.Municipalities
	case strings.Contains(desc, "VIA NO EXISTE") || strings.Contains(desc, "VÍA NO EXISTE") || strings.Contains(desc, "VÃA NO EXISTE"):
		qe.CandidatosVias = resp.Streets
	case isNumberNotFound(desc):
		qe.CandidatosNumeros = resp.Numbers
		if len(resp.Numbers) == 0 {
			qe.Sugerencia = "El número especificado no existe. Intenta buscar sin número para ver qué números hay disponibles en esa vía."
		}
	}

	r.log.Info("error del servicio",
		zap.String("codigo", qe.Codigo),
		zap.String("descripcion", qe.Descripcion),
	)

	return qe
}

func isNumberNotFound(upperDesc string) bool {
	return strings.Contains(upperDesc, "NUMERO NO EXISTE") ||
		strings.Contains(upperDesc, "NÚMERO NO EXISTE") ||
		strings.Contains(upperDesc, "NÃšMERO NO EXISTE")
}
