package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"biddashboard/internal/config"
	"biddashboard/internal/feed"
	"biddashboard/internal/handlers"
	"biddashboard/internal/insight"
	"biddashboard/internal/logger"
	"biddashboard/internal/synth"

	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadEnv(envFile); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	path, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(path)
}

func newSynthesizer(cfg *config.Config) *synth.Synthesizer {
	opts := []synth.Option{synth.WithAwardProbability(cfg.Synth.AwardProbability)}
	if cfg.Synth.Seed != 0 {
		opts = append(opts, synth.WithRand(synth.NewSeededRand(cfg.Synth.Seed)))
	}
	return synth.New(opts...)
}

func newInsightService(ctx context.Context, cfg *config.Config, log *logger.Entry) *insight.Service {
	var gen insight.Generator = insight.DisabledGenerator{}
	if cfg.Insight.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, AI features answer with fallback text")
	} else {
		g, err := insight.NewGeminiGenerator(ctx, cfg.Insight.APIKey, cfg.Insight.Model)
		if err != nil {
			log.WithError(err).Error("failed to init gemini client, AI features disabled")
		} else {
			gen = g
			log.WithField("model", g.Name()).Info("gemini client ready")
		}
	}

	policy := insight.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.Insight.MaxAttempts
	policy.BaseDelay = cfg.Insight.BaseDelay
	policy.MaxJitter = cfg.Insight.MaxJitter

	client := insight.NewClient(gen, policy, cfg.Insight.SampleSize)
	return insight.NewService(client, cfg.Insight.RatePerMinute)
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the live feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Address = addr
			}

			logger.Configure(cfg.Log.Level, logger.FileConfig{
				Path:       cfg.Log.File,
				MaxSizeMB:  cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAgeDays: cfg.Log.MaxAgeDays,
			})
			log := logger.GetLogger().WithComponent("server")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			gen := newSynthesizer(cfg)
			sim := feed.New(gen,
				feed.WithInitial(gen.Generate(cfg.Feed.InitialSize), "[SYSTEM] 실시간 조달 데이터 수신 대기 중..."),
				feed.WithCapacity(cfg.Feed.Capacity),
				feed.WithLogSize(cfg.Feed.LogSize),
			)
			sim.Start(cfg.Feed.Interval, cfg.Feed.Capacity)
			defer sim.Stop()

			h := handlers.NewHandler(sim, gen, newInsightService(ctx, cfg, log))
			h.RefreshSize = cfg.Feed.RefreshSize

			srv := &http.Server{
				Addr:    cfg.Server.Address,
				Handler: handlers.NewRouter(h),
			}

			errCh := make(chan error, 1)
			go func() {
				log.WithField("address", cfg.Server.Address).Info("starting server")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address, overrides server.address")

	return cmd
}
