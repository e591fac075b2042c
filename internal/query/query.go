// Package query selects the outbound lookup strategy for a loosely-typed
// parameter set and builds the matching service request. Exactly one
// strategy is active per call, chosen by strict precedence:
// reference > denomination > code.
package query

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrInvalidQueryKind is returned when no strategy's minimum fields are
// satisfiable from the input. Reported to the caller, never retried.
var ErrInvalidQueryKind = eris.New("query: no strategy satisfiable from input")

// Kind names the selected strategy.
type Kind string

const (
	KindReference    Kind = "referencia"
	KindDenomination Kind = "denominacion"
	KindCode         Kind = "codigos"
	KindStreets      Kind = "vias"
	KindNumbers      Kind = "numeros"
)

// Service operation names on the Callejero and CallejeroCodigos endpoints.
const (
	OpDNPRC         = "Consulta_DNPRC"
	OpDNPLOC        = "Consulta_DNPLOC"
	OpDNPLOCCodigos = "Consulta_DNPLOC_Codigos"
	OpConsultaVia   = "ConsultaVia"
	OpConsultaNum   = "ConsultaNumero"
)

// StreetTypes maps the official street type abbreviations to their names.
// The service is authoritative on these codes; they pass through unaltered
// and no fuzzy correction is ever attempted.
var StreetTypes = map[string]string{
	"CL": "Calle",
	"AV": "Avenida",
	"PS": "Paseo",
	"PZ": "Plaza",
	"CM": "Camino",
	"CR": "Carretera",
	"TR": "Travesía",
	"UR": "Urbanización",
	"PJ": "Pasaje",
	"GL": "Glorieta",
}

// Params is the loosely-typed parameter set accepted from callers. Any
// subset may be populated; Build picks the strategy.
type Params struct {
	ReferenciaCatastral string `json:"referencia_catastral,omitempty" yaml:"referencia_catastral"`
	Provincia           string `json:"provincia,omitempty" yaml:"provincia"`
	Municipio           string `json:"municipio,omitempty" yaml:"municipio"`
	TipoVia             string `json:"tipo_via,omitempty" yaml:"tipo_via"`
	NombreVia           string `json:"nombre_via,omitempty" yaml:"nombre_via"`
	Numero              string `json:"numero,omitempty" yaml:"numero"`
	Bloque              string `json:"bloque,omitempty" yaml:"bloque"`
	Escalera            string `json:"escalera,omitempty" yaml:"escalera"`
	Planta              string `json:"planta,omitempty" yaml:"planta"`
	Puerta              string `json:"puerta,omitempty" yaml:"puerta"`
	CodigoProvincia     string `json:"codigo_provincia,omitempty" yaml:"codigo_provincia"`
	CodigoMunicipio     string `json:"codigo_municipio,omitempty" yaml:"codigo_municipio"`
	CodigoVia           string `json:"codigo_via,omitempty" yaml:"codigo_via"`
}

// Request is the outbound call to perform: one operation on one of the two
// service hosts, with the exact query parameters.
type Request struct {
	Kind    Kind
	Op      string
	Codigos bool // operation lives on the CallejeroCodigos endpoint
	Values  url.Values
}

// Build selects the strategy for p and constructs the outbound request.
func Build(p Params) (*Request, error) {
	switch {
	case p.ReferenciaCatastral != "":
		return buildReference(p)
	case p.Provincia != "" || p.Municipio != "" || p.NombreVia != "":
		return buildDenomination(p)
	case p.CodigoProvincia != "":
		return buildCode(p)
	}
	return nil, eris.Wrap(ErrInvalidQueryKind, "empty parameter set")
}

func buildReference(p Params) (*Request, error) {
	ref := strings.ToUpper(strings.TrimSpace(p.ReferenciaCatastral))
	if !validReference(ref) {
		return nil, eris.Wrapf(ErrInvalidQueryKind, "referencia catastral %q: se esperan 14, 18 o 20 caracteres alfanuméricos", p.ReferenciaCatastral)
	}
	// Precedence: any denomination or code fields present alongside the
	// reference are ignored entirely.
	v := url.Values{}
	v.Set("RefCat", ref)
	return &Request{Kind: KindReference, Op: OpDNPRC, Values: v}, nil
}

func buildDenomination(p Params) (*Request, error) {
	if p.Provincia == "" || p.Municipio == "" {
		return nil, eris.Wrap(ErrInvalidQueryKind, "la búsqueda por denominación requiere provincia y municipio")
	}
	v := url.Values{}
	v.Set("Provincia", p.Provincia)
	v.Set("Municipio", p.Municipio)
	setOptional(v, "TipoVia", normalizeStreetType(p.TipoVia))
	setOptional(v, "NombreVia", p.NombreVia)
	setOptional(v, "Numero", p.Numero)
	setInternalLocation(v, p)
	return &Request{Kind: KindDenomination, Op: OpDNPLOC, Values: v}, nil
}

func buildCode(p Params) (*Request, error) {
	v := url.Values{}
	v.Set("CodigoProvincia", p.CodigoProvincia)
	setOptional(v, "CodigoMunicipio", p.CodigoMunicipio)
	setOptional(v, "CodigoVia", p.CodigoVia)
	setOptional(v, "Numero", p.Numero)
	setInternalLocation(v, p)
	return &Request{Kind: KindCode, Op: OpDNPLOCCodigos, Codigos: true, Values: v}, nil
}

// BuildStreetListing constructs a ConsultaVia request enumerating the
// streets of a municipality.
func BuildStreetListing(provincia, municipio, tipoVia, nombreVia string) (*Request, error) {
	if provincia == "" || municipio == "" {
		return nil, eris.Wrap(ErrInvalidQueryKind, "el listado de vías requiere provincia y municipio")
	}
	v := url.Values{}
	v.Set("Provincia", provincia)
	v.Set("Municipio", municipio)
	setOptional(v, "TipoVia", normalizeStreetType(tipoVia))
	setOptional(v, "NombreVia", nombreVia)
	return &Request{Kind: KindStreets, Op: OpConsultaVia, Values: v}, nil
}

// BuildNumberListing constructs a ConsultaNumero request; the service
// answers with the numbers available near the requested one.
func BuildNumberListing(provincia, municipio, tipoVia, nombreVia, numero string) (*Request, error) {
	if provincia == "" || municipio == "" || numero == "" {
		return nil, eris.Wrap(ErrInvalidQueryKind, "el listado de números requiere provincia, municipio y número")
	}
	v := url.Values{}
	v.Set("Provincia", provincia)
	v.Set("Municipio", municipio)
	setOptional(v, "TipoVia", normalizeStreetType(tipoVia))
	setOptional(v, "NombreVia", nombreVia)
	v.Set("Numero", numero)
	return &Request{Kind: KindNumbers, Op: OpConsultaNum, Values: v}, nil
}

// validReference accepts the fixed formats: 14 chars (parcel), 18 (parcel +
// charge) or 20 (full reference with control characters), alphanumeric only.
func validReference(ref string) bool {
	switch len(ref) {
	case 14, 18, 20:
	default:
		return false
	}
	for _, r := range ref {
		alnum := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z')
		if !alnum {
			return false
		}
	}
	return true
}

// normalizeStreetType uppercases the abbreviation. Unknown codes are passed
// through untouched; the service decides what it accepts.
func normalizeStreetType(tv string) string {
	return strings.ToUpper(strings.TrimSpace(tv))
}

func setOptional(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setInternalLocation(v url.Values, p Params) {
	setOptional(v, "Bloque", p.Bloque)
	setOptional(v, "Escalera", p.Escalera)
	setOptional(v, "Planta", p.Planta)
	setOptional(v, "Puerta", p.Puerta)
}
