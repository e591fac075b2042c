package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/catastro-cli/internal/query"
)

var consultaParams query.Params

var consultaCmd = &cobra.Command{
	Use:   "consulta",
	Short: "Look a property up by reference, address or official codes",
	Long: "Performs one lookup against the OVC service. The strategy is chosen by " +
		"precedence: cadastral reference, then denomination (provincia/municipio/vía), " +
		"then DGC/INE codes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newResolver()
		payload, err := res.Consulta(cmd.Context(), consultaParams)
		if err != nil {
			return err
		}
		return printJSON(payload)
	},
}

func init() {
	f := consultaCmd.Flags()
	f.StringVar(&consultaParams.ReferenciaCatastral, "referencia", "", "cadastral reference (14, 18 or 20 chars)")
	f.StringVar(&consultaParams.Provincia, "provincia", "", "province name")
	f.StringVar(&consultaParams.Municipio, "municipio", "", "municipality name")
	f.StringVar(&consultaParams.TipoVia, "tipo-via", "", "street type abbreviation (CL, AV, PS, ...)")
	f.StringVar(&consultaParams.NombreVia, "nombre-via", "", "street name")
	f.StringVar(&consultaParams.Numero, "numero", "", "street number")
	f.StringVar(&consultaParams.Bloque, "bloque", "", "block")
	f.StringVar(&consultaParams.Escalera, "escalera", "", "staircase")
	f.StringVar(&consultaParams.Planta, "planta", "", "floor")
	f.StringVar(&consultaParams.Puerta, "puerta", "", "door")
	f.StringVar(&consultaParams.CodigoProvincia, "codigo-provincia", "", "DGC province code")
	f.StringVar(&consultaParams.CodigoMunicipio, "codigo-municipio", "", "DGC municipality code")
	f.StringVar(&consultaParams.CodigoVia, "codigo-via", "", "DGC street code")
	rootCmd.AddCommand(consultaCmd)
}
