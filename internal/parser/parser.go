// Package parser walks the XML returned by the OVC services and extracts
// typed records. Optional nodes are treated as absent rather than as errors;
// partial data is normal for older or incompletely digitized records.
package parser

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/catastro-cli/internal/decimal"
	"github.com/sells-group/catastro-cli/internal/model"
)

// ErrMalformedResponse marks a body that cannot be parsed as XML at all
// (transport corruption, empty body).
var ErrMalformedResponse = eris.New("parser: malformed response")

// ServiceError is the raw error record reported by the service.
type ServiceError struct {
	Code        string
	Description string
}

// Response holds every record shape a single document can carry. Error and
// the candidate lists coexist (candidates accompany soft errors); the
// property lists are only populated on success documents.
type Response struct {
	Error      *ServiceError
	Properties []model.Property
	Summaries  []model.PropertySummary

	Provinces      []model.ProvinceCandidate
	Municipalities []model.MunicipalityCandidate
	Streets        []model.StreetCandidate
	Numbers        []model.NumberCandidate
}

// Parse decodes one service response body.
func Parse(r io.Reader) (*Response, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "parser: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, eris.Wrapf(ErrMalformedResponse, "decode: %v", err)
	}

	resp := &Response{}

	if len(doc.Errors) > 0 {
		e := doc.Errors[0]
		resp.Error = &ServiceError{Code: orDefault(e.Cod, "UNKNOWN"), Description: orDefault(e.Des, "Error desconocido")}
	}

	if doc.Bico != nil && doc.Bico.Bi != nil {
		p, err := buildProperty(doc.Bico)
		if err != nil {
			return nil, err
		}
		resp.Properties = append(resp.Properties, *p)
	}

	if doc.Listing != nil {
		for _, rc := range doc.Listing.Rcdnp {
			resp.Summaries = append(resp.Summaries, buildSummary(rc))
		}
	}

	resp.Provinces = buildProvinces(doc.Provinciero)
	resp.Municipalities = buildMunicipalities(doc.Municipiero)
	resp.Streets = buildStreetCandidates(doc.Callejero)
	resp.Numbers = buildNumbers(doc.Numerero)

	return resp, nil
}

func buildProperty(bico *bicoNode) (*model.Property, error) {
	bi := bico.Bi
	p := &model.Property{
		ReferenciaCatastral: reference(bi.Idbi.Rc, true),
		Tipo:                bi.Idbi.Cn,
		Provincia:           bi.Dt.Np,
		Municipio:           bi.Dt.Nm,
		DomicilioCompleto:   strings.TrimSpace(bi.Ldt),
	}

	if urb := urbanLocation(bi.Dt.Locs); urb != nil {
		p.Direccion = streetAddress(urb.Dir)
		if !urb.Loint.empty() {
			p.LocalizacionInterna = urb.Loint.toModel()
		}
	}

	if bi.Debi != nil {
		p.Uso = bi.Debi.Luso
		var err error
		if p.SuperficieM2, err = optionalDecimal(bi.Debi.Sfc); err != nil {
			return nil, eris.Wrap(err, "parser: superficie")
		}
		if p.CoefParticipacion, err = optionalDecimal(bi.Debi.Cpt); err != nil {
			return nil, eris.Wrap(err, "parser: coeficiente")
		}
		if p.Antiguedad, err = optionalInt(bi.Debi.Ant); err != nil {
			return nil, eris.Wrap(err, "parser: antigüedad")
		}
	}

	units, err := buildUnits(bico.Lcons)
	if err != nil {
		return nil, err
	}
	parcels, err := buildSubParcels(bico.Lspr)
	if err != nil {
		return nil, err
	}

	// The type code decides which list the record carries. When the service
	// omits the code, the populated list is the discriminant.
	switch p.Tipo {
	case model.TipoRustico:
		p.Subparcelas = parcels
	case model.TipoUrbano:
		p.UnidadesConstructivas = units
	default:
		if len(parcels) > 0 {
			p.Tipo = model.TipoRustico
			p.Subparcelas = parcels
		} else if len(units) > 0 {
			p.Tipo = model.TipoUrbano
			p.UnidadesConstructivas = units
		}
	}

	return p, nil
}

func buildSummary(rc rcdnpNode) model.PropertySummary {
	s := model.PropertySummary{
		ReferenciaCatastral: reference(rc.Rc, false),
		Provincia:           rc.Dt.Np,
		Municipio:           rc.Dt.Nm,
	}
	if urb := urbanLocation(rc.Dt.Locs); urb != nil {
		s.Direccion = streetAddress(urb.Dir)
		if !urb.Loint.empty() {
			s.LocalizacionInterna = urb.Loint.toModel()
		}
	}
	return s
}

func buildUnits(l *lconsNode) ([]model.ConstructiveUnit, error) {
	if l == nil {
		return nil, nil
	}
	var units []model.ConstructiveUnit
	for _, c := range l.Cons {
		u := model.ConstructiveUnit{Uso: c.Lcd}
		if c.Dfcons != nil {
			var err error
			if u.SuperficieM2, err = optionalDecimal(c.Dfcons.Stl); err != nil {
				return nil, eris.Wrap(err, "parser: superficie unidad")
			}
			u.Tipologia = c.Dfcons.Dtip
		}
		if c.Dt != nil && c.Dt.Lourb != nil && !c.Dt.Lourb.Loint.empty() {
			u.Localizacion = c.Dt.Lourb.Loint.toModel()
		}
		units = append(units, u)
	}
	return units, nil
}

func buildSubParcels(l *lsprNode) ([]model.SubParcel, error) {
	if l == nil {
		return nil, nil
	}
	var parcels []model.SubParcel
	for _, s := range l.Spr {
		sp := model.SubParcel{Codigo: s.Cspr}
		if s.Dspr != nil {
			sp.Calificacion = s.Dspr.Ccc
			sp.Cultivo = s.Dspr.Dcc
			sp.IntensidadProductiva = s.Dspr.Ip
			var err error
			if sp.SuperficieM2, err = optionalDecimal(s.Dspr.Ssp); err != nil {
				return nil, eris.Wrap(err, "parser: superficie subparcela")
			}
		}
		parcels = append(parcels, sp)
	}
	return parcels, nil
}

func buildProvinces(n *provincieroNode) []model.ProvinceCandidate {
	if n == nil {
		return nil
	}
	var out []model.ProvinceCandidate
	for _, p := range n.Prov {
		if p.Cpine == "" && p.Np == "" {
			continue
		}
		out = append(out, model.ProvinceCandidate{CodigoINE: p.Cpine, Nombre: p.Np})
	}
	return out
}

func buildMunicipalities(n *municipieroNode) []model.MunicipalityCandidate {
	if n == nil {
		return nil
	}
	var out []model.MunicipalityCandidate
	for _, m := range n.Muni {
		if m.Nm == "" {
			continue
		}
		c := model.MunicipalityCandidate{Nombre: m.Nm}
		if m.Locat != nil {
			c.CodigoCatastro = m.Locat.Cmc
		}
		if m.Loine != nil {
			c.CodigoINE = m.Loine.Cm
		}
		out = append(out, c)
	}
	return out
}

func buildStreetCandidates(n *callejeroNode) []model.StreetCandidate {
	if n == nil {
		return nil
	}
	var out []model.StreetCandidate
	for _, c := range n.Calle {
		if c.Dir.Nv == "" {
			continue
		}
		out = append(out, model.StreetCandidate{Nombre: c.Dir.Nv, Tipo: c.Dir.Tv, Codigo: c.Dir.Cv})
	}
	return out
}

func buildNumbers(n *numereroNode) []model.NumberCandidate {
	if n == nil {
		return nil
	}
	var out []model.NumberCandidate
	for _, np := range n.Nump {
		if np.Num.Pnp == "" {
			continue
		}
		out = append(out, model.NumberCandidate{
			Numero:              np.Num.Pnp,
			ReferenciaCatastral: np.Rc.Pc1 + np.Rc.Pc2,
		})
	}
	return out
}

// reference joins the cadastral reference fragments. Full references append
// the charge and control codes; listing entries only carry the parcel part.
func reference(rc rcNode, full bool) string {
	if rc.Pc1 == "" && rc.Pc2 == "" {
		return ""
	}
	ref := rc.Pc1 + rc.Pc2 + rc.Car
	if full {
		ref += rc.Cc1 + rc.Cc2
	}
	return ref
}

// urbanLocation digs out the urban address block, tolerating any missing
// intermediate node.
func urbanLocation(locs *locsNode) *lourbNode {
	if locs == nil || locs.Lous == nil {
		return nil
	}
	return locs.Lous.Lourb
}

func streetAddress(d dirNode) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{d.Tv, d.Nv, d.Pnp} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (l *lointNode) empty() bool {
	return l == nil || (l.Bq == "" && l.Es == "" && l.Pt == "" && l.Pu == "")
}

func (l *lointNode) toModel() *model.InternalLocation {
	return &model.InternalLocation{Bloque: l.Bq, Escalera: l.Es, Planta: l.Pt, Puerta: l.Pu}
}

func optionalDecimal(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := decimal.Parse(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt(s string) (*int, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		return nil, eris.Wrapf(decimal.ErrMalformed, "parse %q", s)
	}
	return &v, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
