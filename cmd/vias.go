package main

import (
	"github.com/spf13/cobra"
)

var (
	viasProvincia string
	viasMunicipio string
	viasTipoVia   string
	viasNombreVia string
)

var viasCmd = &cobra.Command{
	Use:   "vias",
	Short: "List the streets of a municipality",
	Long: "Enumerates the streets known to the service for a municipality, " +
		"optionally filtered by street type and name. Useful when a direct " +
		"lookup fails and the street spelling is in doubt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newResolver()
		payload, err := res.ListStreets(cmd.Context(), viasProvincia, viasMunicipio, viasTipoVia, viasNombreVia)
		if err != nil {
			return err
		}
		return printJSON(payload)
	},
}

func init() {
	f := viasCmd.Flags()
	f.StringVar(&viasProvincia, "provincia", "", "province name")
	f.StringVar(&viasMunicipio, "municipio", "", "municipality name")
	f.StringVar(&viasTipoVia, "tipo-via", "", "street type abbreviation (CL, AV, PS, ...)")
	f.StringVar(&viasNombreVia, "nombre-via", "", "street name filter")
	_ = viasCmd.MarkFlagRequired("provincia")
	_ = viasCmd.MarkFlagRequired("municipio")
	rootCmd.AddCommand(viasCmd)
}
