// cmd/moligo-server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"moligo-core/thermo"
	"moligo/internal/api"
	"moligo/internal/blast"
	"moligo/internal/config"
	"moligo/internal/msa"
	"moligo/internal/observability"
	"moligo/internal/version"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to YAML config file")
	flag.Parse()

	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("moligo")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	bc := blast.NewClient(logger.Named("blast"))
	bc.BaseURL = cfg.Blast.BaseURL
	bc.PollInterval = cfg.Blast.PollInterval.Std()
	bc.MaxPolls = cfg.Blast.MaxPolls

	aligner := msa.New(logger.Named("msa"))
	aligner.Binary = cfg.MSA.Mafft

	handlers := &api.Handlers{
		Blast:       bc,
		MSA:         aligner,
		Tm:          thermo.Default().Tm,
		Log:         logger,
		BlastAPIKey: cfg.Blast.APIKey,
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.NewRouter(handlers, cfg.HTTP.Timeout.Std()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", cfg.Listen),
			zap.String("version", version.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
