package model

// Response type discriminators, carried in the tipo_respuesta field.
const (
	TipoInmuebleCompleto = "inmueble_completo"
	TipoListadoInmuebles = "listado_inmuebles"
	TipoListaVias        = "lista_vias"
)

// Local error codes, reserved so they can never collide with codes reported
// by the service itself.
const (
	CodeNotFound      = "SIN_RESULTADOS"
	CodeInvalidNumber = "NUMERO_INVALIDO"
)

// Match qualifiers for smart address search.
const (
	CoincidenciaExacta  = "exacta"
	CoincidenciaCercano = "cercano"
)

// Payload is the union of the response shapes a lookup can produce: exactly
// one of SingleResponse, ListResponse, StreetListResponse or QueryError.
type Payload interface {
	payload()
}

// SingleResponse carries the full detail of a unique match.
type SingleResponse struct {
	TipoRespuesta string `json:"tipo_respuesta"`
	SearchMeta
	Inmueble Property `json:"inmueble"`
}

// ListResponse carries abbreviated summaries when several records match.
type ListResponse struct {
	TipoRespuesta string `json:"tipo_respuesta"`
	SearchMeta
	Total     int               `json:"total"`
	Inmuebles []PropertySummary `json:"inmuebles"`
}

// StreetListResponse enumerates the streets of a municipality.
type StreetListResponse struct {
	TipoRespuesta string   `json:"tipo_respuesta"`
	Total         int      `json:"total"`
	Vias          []Street `json:"vias"`
	Sugerencia    string   `json:"sugerencia,omitempty"`
}

// SearchMeta annotates single/listing payloads produced by the smart address
// search. All fields are absent on a plain lookup.
type SearchMeta struct {
	NumeroBuscado    *int   `json:"numero_buscado,omitempty"`
	NumeroEncontrado *int   `json:"numero_encontrado,omitempty"`
	Coincidencia     string `json:"coincidencia,omitempty"`
	Diferencia       *int   `json:"diferencia,omitempty"`
	Mensaje          string `json:"mensaje,omitempty"`
	OtrosNumeros     []int  `json:"otros_numeros_disponibles,omitempty"`
}

// QueryError is a service-reported or locally reserved error, surfaced as
// data rather than as a Go error. At most one candidate list is populated,
// scoped to the parameter that failed to match.
type QueryError struct {
	Error                bool                    `json:"error"`
	Codigo               string                  `json:"codigo"`
	Descripcion          string                  `json:"descripcion"`
	CandidatosProvincias []ProvinceCandidate     `json:"candidatos_provincias,omitempty"`
	CandidatosMunicipios []MunicipalityCandidate `json:"candidatos_municipios,omitempty"`
	CandidatosVias       []StreetCandidate       `json:"candidatos_vias,omitempty"`
	CandidatosNumeros    []NumberCandidate       `json:"candidatos_numeros,omitempty"`
	Sugerencia           string                  `json:"sugerencia,omitempty"`
}

// ProvinceCandidate suggests a province matching a misspelled input.
type ProvinceCandidate struct {
	CodigoINE string `json:"codigo_ine"`
	Nombre    string `json:"nombre"`
}

// MunicipalityCandidate suggests a municipality matching a misspelled input.
type MunicipalityCandidate struct {
	Nombre         string `json:"nombre"`
	CodigoCatastro string `json:"codigo_catastro,omitempty"`
	CodigoINE      string `json:"codigo_ine,omitempty"`
}

// StreetCandidate suggests a street matching a misspelled input.
type StreetCandidate struct {
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo,omitempty"`
	Codigo string `json:"codigo,omitempty"`
}

// NumberCandidate suggests an existing street number near a missing one.
type NumberCandidate struct {
	Numero              string `json:"numero"`
	ReferenciaCatastral string `json:"referencia_catastral,omitempty"`
}

// Street is one entry of a street listing response.
type Street struct {
	CodigoVia string `json:"codigo_via"`
	Tipo      string `json:"tipo,omitempty"`
	Nombre    string `json:"nombre"`
}

func (*SingleResponse) payload()     {}
func (*ListResponse) payload()       {}
func (*StreetListResponse) payload() {}
func (*QueryError) payload()         {}

// NotFound builds the reserved zero-results error payload, distinct from any
// service-reported code.
func NotFound() *QueryError {
	return &QueryError{
		Error:       true,
		Codigo:      CodeNotFound,
		Descripcion: "No se encontraron resultados para los parámetros proporcionados",
	}
}
