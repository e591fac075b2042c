package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_PrecedenceReferenceWins(t *testing.T) {
	t.Parallel()

	// Denomination and code fields present alongside the reference must be
	// ignored entirely in the outbound request.
	req, err := Build(Params{
		ReferenciaCatastral: "9872023VH5797S0001WX",
		Provincia:           "MADRID",
		Municipio:           "MADRID",
		NombreVia:           "ALCALA",
		CodigoProvincia:     "28",
	})
	require.NoError(t, err)

	assert.Equal(t, KindReference, req.Kind)
	assert.Equal(t, OpDNPRC, req.Op)
	assert.False(t, req.Codigos)
	assert.Equal(t, "9872023VH5797S0001WX", req.Values.Get("RefCat"))
	assert.Empty(t, req.Values.Get("Provincia"))
	assert.Empty(t, req.Values.Get("Municipio"))
	assert.Empty(t, req.Values.Get("NombreVia"))
	assert.Empty(t, req.Values.Get("CodigoProvincia"))
}

func TestBuild_ReferenceLengths(t *testing.T) {
	t.Parallel()

	for _, ref := range []string{
		"9872023VH5797S",       // 14: parcel
		"9872023VH5797S0001",   // 18: parcel + charge
		"9872023VH5797S0001WX", // 20: full
	} {
		req, err := Build(Params{ReferenciaCatastral: ref})
		require.NoError(t, err, "ref %q", ref)
		assert.Equal(t, ref, req.Values.Get("RefCat"))
	}

	for _, ref := range []string{"987", "9872023VH5797S0001W", "9872023VH5797S0001WX1", "9872023-H5797S"} {
		_, err := Build(Params{ReferenciaCatastral: ref})
		require.Error(t, err, "ref %q", ref)
		assert.True(t, errors.Is(err, ErrInvalidQueryKind))
	}
}

func TestBuild_ReferenceNormalized(t *testing.T) {
	t.Parallel()

	req, err := Build(Params{ReferenciaCatastral: " 9872023vh5797s0001wx "})
	require.NoError(t, err)
	assert.Equal(t, "9872023VH5797S0001WX", req.Values.Get("RefCat"))
}

func TestBuild_Denomination(t *testing.T) {
	t.Parallel()

	req, err := Build(Params{
		Provincia: "MADRID",
		Municipio: "MADRID",
		TipoVia:   "cl",
		NombreVia: "ALCALA",
		Numero:    "50",
		Escalera:  "1",
		Planta:    "02",
		Puerta:    "B",
	})
	require.NoError(t, err)

	assert.Equal(t, KindDenomination, req.Kind)
	assert.Equal(t, OpDNPLOC, req.Op)
	assert.Equal(t, "MADRID", req.Values.Get("Provincia"))
	assert.Equal(t, "CL", req.Values.Get("TipoVia"), "street type uppercased, never corrected")
	assert.Equal(t, "50", req.Values.Get("Numero"))
	assert.Equal(t, "1", req.Values.Get("Escalera"))
	assert.Equal(t, "02", req.Values.Get("Planta"))
	assert.Equal(t, "B", req.Values.Get("Puerta"))
	assert.Empty(t, req.Values.Get("Bloque"))
}

func TestBuild_DenominationRequiresProvinciaMunicipio(t *testing.T) {
	t.Parallel()

	_, err := Build(Params{Provincia: "MADRID", NombreVia: "ALCALA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQueryKind))

	_, err = Build(Params{NombreVia: "ALCALA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQueryKind))
}

func TestBuild_UnknownStreetTypePassesThrough(t *testing.T) {
	t.Parallel()

	req, err := Build(Params{Provincia: "MADRID", Municipio: "MADRID", TipoVia: "xy", NombreVia: "ALCALA"})
	require.NoError(t, err)
	assert.Equal(t, "XY", req.Values.Get("TipoVia"))
}

func TestBuild_Codes(t *testing.T) {
	t.Parallel()

	req, err := Build(Params{
		CodigoProvincia: "28",
		CodigoMunicipio: "900",
		CodigoVia:       "120",
		Numero:          "50",
	})
	require.NoError(t, err)

	assert.Equal(t, KindCode, req.Kind)
	assert.Equal(t, OpDNPLOCCodigos, req.Op)
	assert.True(t, req.Codigos)
	assert.Equal(t, "28", req.Values.Get("CodigoProvincia"))
	assert.Equal(t, "900", req.Values.Get("CodigoMunicipio"))
	assert.Equal(t, "120", req.Values.Get("CodigoVia"))
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	_, err := Build(Params{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQueryKind))
}

func TestBuildStreetListing(t *testing.T) {
	t.Parallel()

	req, err := BuildStreetListing("MADRID", "MADRID", "cl", "ALCALA")
	require.NoError(t, err)
	assert.Equal(t, KindStreets, req.Kind)
	assert.Equal(t, OpConsultaVia, req.Op)
	assert.Equal(t, "CL", req.Values.Get("TipoVia"))

	_, err = BuildStreetListing("", "MADRID", "", "")
	assert.True(t, errors.Is(err, ErrInvalidQueryKind))
}

func TestBuildNumberListing(t *testing.T) {
	t.Parallel()

	req, err := BuildNumberListing("MADRID", "MADRID", "CL", "ALCALA", "50")
	require.NoError(t, err)
	assert.Equal(t, KindNumbers, req.Kind)
	assert.Equal(t, OpConsultaNum, req.Op)
	assert.Equal(t, "50", req.Values.Get("Numero"))

	_, err = BuildNumberListing("MADRID", "MADRID", "CL", "ALCALA", "")
	assert.True(t, errors.Is(err, ErrInvalidQueryKind))
}

func TestStreetTypes_KnownCodes(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"CL", "AV", "PS", "PZ", "CM", "CR", "TR", "UR", "PJ", "GL"} {
		assert.NotEmpty(t, StreetTypes[code], "code %s", code)
	}
}
