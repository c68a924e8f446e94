package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/shared/config"
	"curriculum-backend/internal/shared/telemetry"
)

// options are the flags shared by every advisor subcommand.
type options struct {
	remote   bool
	endpoint string
	timeout  time.Duration
	catalog  string
}

func newRootCmd(cfg config.Config) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "advisor",
		Short: "Recommend course topics for a semester",
		Long: `advisor suggests which curriculum topics a student should study.

Topics unlock by tier: iniciante from semester 1, intermediario from 3 and
avancado from 5. Recommendations are computed locally from the catalog, or
fetched from a running API with --remote.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.remote, "remote", false, "ask the API instead of selecting locally")
	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", cfg.AdvisorEndpoint, "base URL of the recommendation API")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.AdvisorTimeout, "remote request timeout")
	root.PersistentFlags().StringVar(&opts.catalog, "catalog", cfg.CatalogFile, "YAML catalog file for local mode (default: built-in catalog)")

	root.AddCommand(newRecommendCmd(opts), newFormCmd(opts))
	return root
}

// loadCatalog returns the catalog used in local mode.
func (o *options) loadCatalog(ctx context.Context) (curriculum.Catalog, error) {
	var src curriculum.Source = curriculum.BuiltinSource{}
	if o.catalog != "" {
		src = curriculum.FileSource{Path: o.catalog}
	}
	return src.Load(ctx)
}

func main() {
	defer telemetry.Sync()
	// CLI output owns stdout; keep structured logs on stderr.
	telemetry.SetOutput(os.Stderr)

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}
