// Package model defines the JSON contract returned to callers. Field names
// are fixed strings that downstream consumers depend on; do not rename them.
package model

// TipoUrbano and TipoRustico are the type codes the service reports in the
// cn node. The type code determines which of UnidadesConstructivas or
// Subparcelas is populated; never both.
const (
	TipoUrbano  = "UR"
	TipoRustico = "RU"
)

// Property is a fully detailed cadastral record.
type Property struct {
	ReferenciaCatastral   string             `json:"referencia_catastral"`
	Tipo                  string             `json:"tipo,omitempty"`
	Direccion             string             `json:"direccion,omitempty"`
	DomicilioCompleto     string             `json:"domicilio_completo,omitempty"`
	Provincia             string             `json:"provincia,omitempty"`
	Municipio             string             `json:"municipio,omitempty"`
	Uso                   string             `json:"uso,omitempty"`
	SuperficieM2          *float64           `json:"superficie_m2,omitempty"`
	CoefParticipacion     *float64           `json:"coef_participacion,omitempty"`
	Antiguedad            *int               `json:"antiguedad,omitempty"`
	LocalizacionInterna   *InternalLocation  `json:"localizacion_interna,omitempty"`
	UnidadesConstructivas []ConstructiveUnit `json:"unidades_constructivas,omitempty"`
	Subparcelas           []SubParcel        `json:"subparcelas,omitempty"`
}

// PropertySummary is the abbreviated per-property entry used in listing
// responses. Full detail is only returned for a unique match.
type PropertySummary struct {
	ReferenciaCatastral string            `json:"referencia_catastral"`
	Direccion           string            `json:"direccion,omitempty"`
	Provincia           string            `json:"provincia,omitempty"`
	Municipio           string            `json:"municipio,omitempty"`
	LocalizacionInterna *InternalLocation `json:"localizacion_interna,omitempty"`
}

// ConstructiveUnit is one building unit of an urban property.
type ConstructiveUnit struct {
	Uso          string            `json:"uso,omitempty"`
	SuperficieM2 *float64          `json:"superficie_m2,omitempty"`
	Tipologia    string            `json:"tipologia,omitempty"`
	Localizacion *InternalLocation `json:"localizacion,omitempty"`
}

// SubParcel is one cultivation subparcel of a rustic property.
type SubParcel struct {
	Codigo               string   `json:"codigo,omitempty"`
	Calificacion         string   `json:"calificacion,omitempty"`
	Cultivo              string   `json:"cultivo,omitempty"`
	IntensidadProductiva string   `json:"intensidad_productiva,omitempty"`
	SuperficieM2         *float64 `json:"superficie_m2,omitempty"`
}

// InternalLocation holds the sub-building qualifiers. An absent field means
// unspecified, not empty; the struct itself is omitted when no qualifier is
// present.
type InternalLocation struct {
	Bloque   string `json:"bloque,omitempty"`
	Escalera string `json:"escalera,omitempty"`
	Planta   string `json:"planta,omitempty"`
	Puerta   string `json:"puerta,omitempty"`
}

// Empty reports whether no qualifier is set.
func (l *InternalLocation) Empty() bool {
	return l == nil || (l.Bloque == "" && l.Escalera == "" && l.Planta == "" && l.Puerta == "")
}

// Summary reduces a full property to its listing entry.
func (p Property) Summary() PropertySummary {
	return PropertySummary{
		ReferenciaCatastral: p.ReferenciaCatastral,
		Direccion:           p.Direccion,
		Provincia:           p.Provincia,
		Municipio:           p.Municipio,
		LocalizacionInterna: p.LocalizacionInterna,
	}
}
