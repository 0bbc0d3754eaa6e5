package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/edubot/edubot/internal/logger"
	"github.com/edubot/edubot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := logger.NewWithOptions(cfg.LogOptions())
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			printBanner()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := buildServices(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()

		srv := server.New(server.Options{
			Mode:           cfg.Server.Mode,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RateLimit:      cfg.Server.RateLimit,
			RateBurst:      cfg.Server.RateBurst,
		}, server.Deps{
			Chat:    svc.chat,
			History: svc.history,
			Auth:    svc.auth,
			Store:   svc.backend,
			Log:     log,
		})

		log.Info("starting edubot",
			"version", version,
			"addr", cfg.Server.Addr,
			"store", cfg.Store.Driver,
			"llm_provider", cfg.LLM.Provider,
			"shared_lock", cfg.Redis.Addr != "",
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(gctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
		})
		g.Go(func() error {
			<-gctx.Done()
			if ctx.Err() != nil {
				log.Info("shutdown signal received")
			}
			return nil
		})
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("server stopped", "error", err)
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func printBanner() {
	figure.NewFigure("EduBot", "", true).Print()
	fmt.Println("======================================================")
	fmt.Printf("EduBot API (%s)\n\n", version)
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides EDUBOT_ADDR and PORT)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Skip the startup banner")
}
