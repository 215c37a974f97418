// Package cmd - serve command
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pricebook/api"
	"pricebook/internal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the price table over HTTP",
	Long: `Serve the calculator lookups over HTTP until interrupted.

Routes:
  GET  /regions
  GET  /countries?region=
  GET  /categories?region=&country=
  GET  /levels?region=&country=&category=
  GET  /form?region=&country=&category=&level=&modifier=
  POST /quote`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	res, err := loadPricebook(cmd.Context())
	if err != nil {
		return err
	}

	cfg := config.Get()
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(Version, res.Table, formatOptions())
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", res.Source, addr)
	return srv.Serve(ctx, addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
}
