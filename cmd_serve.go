package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory/catalog"
	"inventory/routes"
	"inventory/uploads"
	"inventory/views"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the inventory web server",
	Long: `Starts the HTTP server. The schema is migrated on startup and uploaded
images are served from the configured uploads directory.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg.Database, true, logger)
	if err != nil {
		return err
	}
	defer st.close()

	namer, err := uploads.NamerFor(cfg.Uploads.Naming)
	if err != nil {
		return err
	}
	store, err := uploads.NewDiskStore(cfg.Uploads.Dir, namer)
	if err != nil {
		return err
	}

	app := routes.NewApp(routes.Deps{
		Config:  cfg,
		Catalog: catalog.NewService(st.categories, st.products, logger),
		Uploads: store,
		Views:   views.New(cfg.Uploads.URLPrefix),
		Log:     logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		errCh <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
