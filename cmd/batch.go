package main

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/catastro-cli/internal/model"
	"github.com/sells-group/catastro-cli/internal/query"
)

var (
	batchFile        string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a file of lookups concurrently",
	Long: "Reads a YAML file with a consultas list (each entry is a parameter set " +
		"as accepted by consulta) and runs them with bounded concurrency. Results " +
		"are printed as a JSON array in input order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		queries, err := loadBatchFile(batchFile)
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency == 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}

		zap.L().Info("processing batch",
			zap.Int("consultas", len(queries)),
			zap.Int("concurrency", concurrency),
		)

		res := newResolver()
		results := make([]model.Payload, len(queries))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)

		var succeeded, failed atomic.Int64

		for i, q := range queries {
			i, q := i, q
			g.Go(func() error {
				payload, err := res.Consulta(gctx, q)
				if err != nil {
					failed.Add(1)
					zap.L().Error("consulta failed", zap.Int("index", i), zap.Error(err))
					// Don't abort the batch on individual failure.
					results[i] = &model.QueryError{
						Error:       true,
						Codigo:      "FALLO_CONSULTA",
						Descripcion: err.Error(),
					}
					return nil
				}
				succeeded.Add(1)
				results[i] = payload
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch processing")
		}

		zap.L().Info("batch complete",
			zap.Int64("succeeded", succeeded.Load()),
			zap.Int64("failed", failed.Load()),
		)

		return printJSON(results)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "consultas.yaml", "YAML file with the consultas list")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent lookups (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// batchSpec is the on-disk format of a batch file.
type batchSpec struct {
	Consultas []query.Params `yaml:"consultas"`
}

func loadBatchFile(path string) ([]query.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read %s", path)
	}

	var spec batchSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, eris.Wrapf(err, "batch: parse %s", path)
	}
	if len(spec.Consultas) == 0 {
		return nil, eris.Errorf("batch: %s contains no consultas", path)
	}
	return spec.Consultas, nil
}
