package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/catastro-cli/internal/config"
	"github.com/sells-group/catastro-cli/internal/resolver"
	"github.com/sells-group/catastro-cli/pkg/catastro"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "catastro-cli",
	Short: "Spanish cadastral data lookup",
	Long:  "Queries the Dirección General del Catastro OVC web services and normalizes the XML responses into a stable JSON contract.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newResolver wires the OVC client from config.
func newResolver() *resolver.Resolver {
	client := catastro.NewClient(
		catastro.WithBaseURL(cfg.Catastro.BaseURL),
		catastro.WithCodigosBaseURL(cfg.Catastro.CodigosBaseURL),
		catastro.WithUserAgent(cfg.Catastro.UserAgent),
		catastro.WithRateLimit(cfg.Catastro.RateLimit, cfg.Catastro.RateBurst),
		catastro.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Catastro.TimeoutSecs) * time.Second,
		}),
	)
	return resolver.New(client)
}

// printJSON writes the payload to stdout the way downstream consumers expect
// it: two-space indent, unescaped UTF-8.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
