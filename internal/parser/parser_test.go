package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/catastro-cli/internal/decimal"
	"github.com/sells-group/catastro-cli/internal/model"
)

const urbanXML = `<?xml version="1.0" encoding="UTF-8"?>
<consulta_dnp xmlns="http://www.catastro.meh.es/">
  <bico>
    <bi>
      <idbi>
        <cn>UR</cn>
        <rc><pc1>9872023</pc1><pc2>VH5797S</pc2><car>0001</car><cc1>W</cc1><cc2>X</cc2></rc>
      </idbi>
      <dt>
        <np>MADRID</np>
        <nm>MADRID</nm>
        <locs>
          <lous>
            <lourb>
              <dir><cv>120</cv><tv>CL</tv><nv>ALCALA</nv><pnp>50</pnp></dir>
              <loint><es>1</es><pt>02</pt><pu>B</pu></loint>
            </lourb>
          </lous>
        </locs>
      </dt>
      <ldt>CL ALCALA 50 Es:1 Pl:02 Pt:B 28014 MADRID (MADRID)</ldt>
      <debi>
        <luso>Residencial</luso>
        <sfc>85,5</sfc>
        <cpt>0,040000</cpt>
        <ant>1965</ant>
      </debi>
    </bi>
    <lcons>
      <cons>
        <lcd>VIVIENDA</lcd>
        <dt><lourb><loint><es>1</es><pt>02</pt><pu>B</pu></loint></lourb></dt>
        <dfcons><stl>78,0</stl><dtip>Vivienda colectiva</dtip></dfcons>
      </cons>
      <cons>
        <lcd>ELEMENTOS COMUNES</lcd>
        <dfcons><stl>7,5</stl></dfcons>
      </cons>
    </lcons>
  </bico>
</consulta_dnp>`

const rusticXML = `<?xml version="1.0" encoding="UTF-8"?>
<consulta_dnp xmlns="http://www.catastro.meh.es/">
  <bico>
    <bi>
      <idbi>
        <cn>RU</cn>
        <rc><pc1>13077A0</pc1><pc2>1800039</pc2><car>0000</car><cc1>F</cc1><cc2>X</cc2></rc>
      </idbi>
      <dt>
        <np>CIUDAD REAL</np>
        <nm>SOCUELLAMOS</nm>
        <locs>
          <lors>
            <lorus>
              <cpp><cpo>18</cpo><cpa>39</cpa></cpp>
              <npa>LA VEGUILLA</npa>
            </lorus>
          </lors>
        </locs>
      </dt>
      <ldt>Polígono 18 Parcela 39 LA VEGUILLA. SOCUELLAMOS (CIUDAD REAL)</ldt>
      <debi>
        <luso>Agrario</luso>
        <sfc>12.345</sfc>
      </debi>
    </bi>
    <lspr>
      <spr>
        <cspr>a</cspr>
        <dspr><ccc>V-</ccc><dcc>Viña secano</dcc><ip>02</ip><ssp>10.000</ssp></dspr>
      </spr>
      <spr>
        <cspr>b</cspr>
        <dspr><ccc>E-</ccc><dcc>Pastos</dcc><ip>00</ip><ssp>2.345</ssp></dspr>
      </spr>
    </lspr>
  </bico>
</consulta_dnp>`

const listingXML = `<?xml version="1.0" encoding="UTF-8"?>
<consulta_dnp xmlns="http://www.catastro.meh.es/">
  <lrcdnp>
    <rcdnp>
      <rc><pc1>9872023</pc1><pc2>VH5797S</pc2><car>0001</car></rc>
      <dt>
        <np>MADRID</np><nm>MADRID</nm>
        <locs><lous><lourb>
          <dir><tv>CL</tv><nv>ALCALA</nv><pnp>50</pnp></dir>
          <loint><pt>01</pt><pu>A</pu></loint>
        </lourb></lous></locs>
      </dt>
    </rcdnp>
    <rcdnp>
      <rc><pc1>9872023</pc1><pc2>VH5797S</pc2><car>0002</car></rc>
      <dt>
        <np>MADRID</np><nm>MADRID</nm>
        <locs><lous><lourb>
          <dir><tv>CL</tv><nv>ALCALA</nv><pnp>50</pnp></dir>
          <loint><pt>01</pt><pu>B</pu></loint>
        </lourb></lous></locs>
      </dt>
    </rcdnp>
  </lrcdnp>
</consulta_dnp>`

const provinceErrorXML = `<?xml version="1.0" encoding="UTF-8"?>
<consulta_dnp xmlns="http://www.catastro.meh.es/">
  <lerr>
    <err><cod>18</cod><des>LA PROVINCIA NO EXISTE</des></err>
  </lerr>
  <provinciero>
    <prov><cpine>28</cpine><np>MADRID</np></prov>
    <prov><cpine>29</cpine><np>MALAGA</np></prov>
  </provinciero>
</consulta_dnp>`

const numbersXML = `<?xml version="1.0" encoding="UTF-8"?>
<consulta_numero xmlns="http://www.catastro.meh.es/">
  <numerero>
    <nump>
      <num><pnp>23</pnp></num>
      <rc><pc1>9872023</pc1><pc2>VH5797S</pc2></rc>
    </nump>
    <nump>
      <num><pnp>25</pnp></num>
      <rc><pc1>9872024</pc1><pc2>VH5797S</pc2></rc>
    </nump>
  </numerero>
</consulta_numero>`

func TestParse_UrbanSingle(t *testing.T) {
	t.Parallel()

	resp, err := Parse(strings.NewReader(urbanXML))
	require.NoError(t, err)
	require.Len(t, resp.Properties, 1)
	assert.Nil(t, resp.Error)

	p := resp.Properties[0]
	assert.Equal(t, "9872023VH5797S0001WX", p.ReferenciaCatastral)
	assert.Equal(t, model.TipoUrbano, p.Tipo)
	assert.Equal(t, "CL ALCALA 50", p.Direccion)
	assert.Equal(t, "CL ALCALA 50 Es:1 Pl:02 Pt:B 28014 MADRID (MADRID)", p.DomicilioCompleto)
	assert.Equal(t, "MADRID", p.Provincia)
	assert.Equal(t, "Residencial", p.Uso)

	require.NotNil(t, p.SuperficieM2)
	assert.InDelta(t, 85.5, *p.SuperficieM2, 1e-9)
	require.NotNil(t, p.CoefParticipacion)
	assert.InDelta(t, 0.04, *p.CoefParticipacion, 1e-9)
	require.NotNil(t, p.Antiguedad)
	assert.Equal(t, 1965, *p.Antiguedad)

	require.NotNil(t, p.LocalizacionInterna)
	assert.Equal(t, "1", p.LocalizacionInterna.Escalera)
	assert.Equal(t, "02", p.LocalizacionInterna.Planta)
	assert.Equal(t, "B", p.LocalizacionInterna.Puerta)

	require.Len(t, p.UnidadesConstructivas, 2)
	assert.Equal(t, "VIVIENDA", p.UnidadesConstructivas[0].Uso)
	assert.Equal(t, "Vivienda colectiva", p.UnidadesConstructivas[0].Tipologia)
	require.NotNil(t, p.UnidadesConstructivas[0].SuperficieM2)
	assert.InDelta(t, 78.0, *p.UnidadesConstructivas[0].SuperficieM2, 1e-9)
	require.NotNil(t, p.UnidadesConstructivas[0].Localizacion)
	assert.Equal(t, "02", p.UnidadesConstructivas[0].Localizacion.Planta)
	assert.Nil(t, p.UnidadesConstructivas[1].Localizacion)

	assert.Empty(t, p.Subparcelas)
}

func TestParse_RusticSingle(t *testing.T) {
	t.Parallel()

	resp, err := Parse(strings.NewReader(rusticXML))
	require.NoError(t, err)
	require.Len(t, resp.Properties, 1)

	p := resp.Properties[0]
	assert.Equal(t, "13077A018000390000FX", p.ReferenciaCatastral)
	assert.Equal(t, model.TipoRustico, p.Tipo)
	require.NotNil(t, p.SuperficieM2)
	assert.InDelta(t, 12345, *p.SuperficieM2, 1e-9)

	require.Len(t, p.Subparcelas, 2)
	assert.Equal(t, "a", p.Subparcelas[0].Codigo)
	assert.Equal(t, "Viña secano", p.Subparcelas[0].Cultivo)
	assert.Equal(t, "V-", p.Subparcelas[0].Calificacion)
	assert.Equal(t, "02", p.Subparcelas[0].IntensidadProductiva)
	require.NotNil(t, p.Subparcelas[0].SuperficieM2)
	assert.InDelta(t, 10000, *p.Subparcelas[0].SuperficieM2, 1e-9)

	assert.Empty(t, p.UnidadesConstructivas)
}

// A type code on the record must suppress the list that does not belong to it,
// and the suppressed key must never appear in the marshaled JSON.
func TestParse_TypeListsMutuallyExclusive(t *testing.T) {
	t.Parallel()

	resp, err := Parse(strings.NewReader(rusticXML))
	require.NoError(t, err)
	require.Len(t, resp.Properties, 1)

	data, err := json.Marshal(resp.Properties[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subparcelas"`)
	assert.NotContains(t, string(data), `"unidades_constructivas"`)
}

func TestParse_Listing(t *testing.T) {
	t.Parallel()

	resp, err := Parse(strings.NewReader(listingXML))
	require.NoError(t, err)
	assert.Empty(t, resp.Properties)
	require.Len(t, resp.Summaries, 2)

	s := resp.Summaries[0]
	assert.Equal(t, "9872023VH5797S0001", s.ReferenciaCatastral, "listing entries carry no control code")
	assert.Equal(t, "CL ALCALA 50", s.Direccion)
	require.NotNil(t, s.LocalizacionInterna)
	assert.Equal(t, "A", s.LocalizacionInterna.Puerta)
	assert.Equal(t, "B", resp.Summaries[1].LocalizacionInterna.Puerta)
}

func TestParse_ServiceErrorWithCandidates(t *testing.T) {
	t.Parallel()

	resp, err := Parse(strings.NewReader(provinceErrorXML))
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "18", resp.Error.Code)
	assert.Equal(t, "LA PROVINCIA NO EXISTE", resp.Error.Description)

	require.Len(t, resp.Provinces, 2)
	assert.Equal(t, "28", resp.Provinces[0].CodigoINE)
	assert.Equal(t, "MADRID", resp.Provinces[0].Nombre)
}

func TestParse_Numbers(t *testing.T) {
	t.Parallel()

	resp, err := Parse(strings.NewReader(numbersXML))
	require.NoError(t, err)
	require.Len(t, resp.Numbers, 2)
	assert.Equal(t, "23", resp.Numbers[0].Numero)
	assert.Equal(t, "9872023VH5797S", resp.Numbers[0].ReferenciaCatastral)
	assert.Equal(t, "25", resp.Numbers[1].Numero)
}

func TestParse_MalformedBody(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "not xml at all", "<open>"} {
		_, err := Parse(strings.NewReader(body))
		require.Error(t, err, "body %q", body)
		assert.True(t, errors.Is(err, ErrMalformedResponse), "body %q", body)
	}
}

func TestParse_MalformedNumericFailsRecord(t *testing.T) {
	t.Parallel()

	body := strings.Replace(urbanXML, "<sfc>85,5</sfc>", "<sfc>85,5m2</sfc>", 1)
	_, err := Parse(strings.NewReader(body))
	require.Error(t, err)
	assert.True(t, errors.Is(err, decimal.ErrMalformed))
}

func TestParse_EmptyNumericIsAbsent(t *testing.T) {
	t.Parallel()

	body := strings.Replace(urbanXML, "<ant>1965</ant>", "<ant></ant>", 1)
	resp, err := Parse(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, resp.Properties, 1)
	assert.Nil(t, resp.Properties[0].Antiguedad)
}

func TestParse_Latin1Charset(t *testing.T) {
	t.Parallel()

	// 0xD1 is Ñ in ISO-8859-1. The decoder must honor the declared charset.
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?>`)
	buf.WriteString("<consulta_callejero><callejero><calle><dir><cv>900</cv><tv>CL</tv><nv>CA")
	buf.WriteByte(0xD1)
	buf.WriteString("OS</nv></dir></calle></callejero></consulta_callejero>")

	resp, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, resp.Streets, 1)
	assert.Equal(t, "CAÑOS", resp.Streets[0].Nombre)
	assert.Equal(t, "900", resp.Streets[0].Codigo)
}

func TestParse_ErrorDefaults(t *testing.T) {
	t.Parallel()

	body := `<consulta_dnp><lerr><err></err></lerr></consulta_dnp>`
	resp, err := Parse(strings.NewReader(body))
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNKNOWN", resp.Error.Code)
	assert.Equal(t, "Error desconocido", resp.Error.Description)
}
