package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/onsenswap/onsenswap/api"
	"github.com/onsenswap/onsenswap/app"
	"github.com/onsenswap/onsenswap/app/telemetry"
)

// StartCmd runs the node: it imports genesis on first start, then serves the
// HTTP API and prometheus metrics until interrupted.
func StartCmd() *cobra.Command {
	def := app.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cctx := getCmdContext(cmd)
			cfg := cctx.Config

			node, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := node.Close(); err != nil {
					cctx.Logger.Error("failed to close database", "error", err)
				}
			}()

			chainID, err := node.ChainID()
			if err != nil {
				return err
			}
			if msg, broken := node.CheckInvariants(cmd.Context()); broken {
				cctx.Logger.Error("pair invariants broken at startup", "detail", msg)
			}
			tracing, err := telemetry.NewProvider(cmd.Context(), cfg.TelemetryConfig(chainID))
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(ctx); err != nil {
					cctx.Logger.Error("failed to flush traces", "error", err)
				}
			}()

			cctx.Logger.Info("node started", "chain_id", chainID, "height", node.Height(), "home", cfg.Home)

			return serve(cmd.Context(), node, cfg)
		},
	}

	cmd.Flags().Bool(app.FlagAPIEnable, def.API.Enable, "serve the HTTP API")
	cmd.Flags().String(app.FlagAPIAddress, def.API.Address, "HTTP API listen address")
	cmd.Flags().Int(app.FlagAPIRateLimit, def.API.RateLimit, "requests per second allowed per client IP")
	cmd.Flags().Bool(app.FlagMetricsEnable, def.Metrics.Enable, "serve prometheus metrics")
	cmd.Flags().String(app.FlagMetricsAddr, def.Metrics.Address, "prometheus listen address")
	cmd.Flags().Bool(app.FlagTracingEnable, def.Tracing.Enable, "export spans over OTLP/HTTP")
	cmd.Flags().String(app.FlagTracingEndpoint, def.Tracing.Endpoint, "OTLP/HTTP collector endpoint")
	cmd.Flags().Float64(app.FlagTracingSampleRate, def.Tracing.SampleRate, "fraction of operations traced")

	return cmd
}

func serve(ctx context.Context, node *app.OnsenApp, cfg app.Config) error {
	g, ctx := errgroup.WithContext(ctx)

	if cfg.API.Enable {
		server, err := api.NewServer(node, api.ConfigFromApp(cfg))
		if err != nil {
			return err
		}
		g.Go(func() error { return server.Start(ctx) })
	}
	if cfg.Metrics.Enable {
		g.Go(func() error { return StartPrometheusServer(ctx, cfg.Metrics.Address, node.Logger()) })
	}

	g.Go(func() error {
		<-ctx.Done()
		node.Logger().Info("shutting down")
		return nil
	})

	return g.Wait()
}
