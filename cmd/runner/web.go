package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/platform/web"
	"github.com/vovakirdan/dino-runner/internal/variants"
)

var (
	flagBind    string
	flagPort    int
	flagVariant string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser front end",
	Long: `Serve the runner over HTTP. Every browser tab runs its own session over
a websocket; finished sessions go to the shared scores database.

Routes:
  /play/<variant>      - Play page
  /play/<variant>/qr   - QR code linking to the play page
  /scores/<variant>    - Top scores as JSON
  /variants            - Variants as JSON

Examples:
  runner web
  runner web --port 9000 --variant lite`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVarP(&flagBind, "bind", "b", "0.0.0.0", "Address to bind to (env: RUNNER_BIND)")
	webCmd.Flags().IntVarP(&flagPort, "port", "p", 8080, "Port to listen on (env: RUNNER_PORT)")
	webCmd.Flags().StringVar(&flagVariant, "variant", variants.Classic, "Variant opened by / (env: RUNNER_VARIANT)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	if flagPort < 1 || flagPort > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", flagPort)
	}
	if err := requireVariant(flagVariant); err != nil {
		return err
	}

	logger := newLogger("runner-web")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Bind = flagBind
	cfg.Port = flagPort
	cfg.TickRate = flagTPS
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = difficulty()
	cfg.DefaultVariant = flagVariant
	cfg.Version = releaseVersion

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.NewServer(cfg, store, logger).ListenAndServe(ctx)
}
