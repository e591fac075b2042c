package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/catastro-cli/internal/resolver"
)

var buscarParams resolver.SmartParams

var buscarCmd = &cobra.Command{
	Use:   "buscar",
	Short: "Smart address search with nearest-number fallback",
	Long: "Looks a property up by address. When the exact street number does not " +
		"exist, the nearest available number is searched automatically and the " +
		"payload is annotated with the distance.",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newResolver()
		payload, err := res.SmartSearch(cmd.Context(), buscarParams)
		if err != nil {
			return err
		}
		return printJSON(payload)
	},
}

func init() {
	f := buscarCmd.Flags()
	f.StringVar(&buscarParams.Provincia, "provincia", "", "province name")
	f.StringVar(&buscarParams.Municipio, "municipio", "", "municipality name")
	f.StringVar(&buscarParams.TipoVia, "tipo-via", "", "street type abbreviation (CL, AV, PS, ...)")
	f.StringVar(&buscarParams.NombreVia, "nombre-via", "", "street name")
	f.StringVar(&buscarParams.Numero, "numero", "", "street number")
	f.StringVar(&buscarParams.Escalera, "escalera", "", "staircase")
	f.StringVar(&buscarParams.Planta, "planta", "", "floor")
	f.StringVar(&buscarParams.Puerta, "puerta", "", "door")
	_ = buscarCmd.MarkFlagRequired("provincia")
	_ = buscarCmd.MarkFlagRequired("municipio")
	_ = buscarCmd.MarkFlagRequired("nombre-via")
	_ = buscarCmd.MarkFlagRequired("numero")
	rootCmd.AddCommand(buscarCmd)
}
