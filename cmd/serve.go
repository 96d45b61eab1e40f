package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"github.com/vasanthreddy12/e-commerce/configs"
	"github.com/vasanthreddy12/e-commerce/payments"
	"github.com/vasanthreddy12/e-commerce/server"
)

const shutdownTimeout = 15 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the storefront API.

Examples:
  e-commerce serve
  e-commerce serve --port 5000
  STORE_DRIVER=memory e-commerce serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
	rootCmd.RunE = runServe
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := configs.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStore, err := server.Bootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := closeStore(closeCtx); err != nil {
			log.Errorw("closing store", "error", err)
		}
	}()

	gateway := payments.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	app := server.New(cfg, server.NewServices(cfg, stores, gateway))

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Server running", "port", cfg.Port, "store", cfg.StoreDriver)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
