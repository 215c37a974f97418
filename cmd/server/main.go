// Package main - Entry point for the pricebook HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pricebook/adapters/loader"
	"pricebook/api"
	"pricebook/core/output"
	"pricebook/internal/config"
	"pricebook/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "Config file (default $HOME/.pricebook.json)")
	addr := flag.String("addr", "", "Server address (overrides config)")
	book := flag.String("pricebook", "", "Price table file (overrides config)")
	flag.Parse()

	if err := run(*cfgPath, *addr, *book); err != nil {
		fmt.Fprintf(os.Stderr, "pricebook-server: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr, book string) error {
	if err := config.LoadEnvFiles(".env"); err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if book != "" {
		cfg.Pricebook.Path = book
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := loader.Load(ctx, cfg.Pricebook.Path)
	if err != nil {
		return err
	}

	srv := api.NewServer(version, res.Table, output.Options{DefaultCurrency: cfg.Pricebook.DefaultCurrency})

	fmt.Printf("pricebook server v%s\n", version)
	fmt.Printf("   API:   http://localhost%s\n", cfg.Server.Addr)
	fmt.Printf("   Table: %s (%d issues)\n", res.Source, len(res.Issues))
	fmt.Println()

	logging.Info("server starting", zap.String("addr", cfg.Server.Addr), zap.String("pricebook", res.Source))
	return srv.Serve(ctx, cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
}
