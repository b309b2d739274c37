package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chronolock/chronolock/internal/booking"
	"github.com/chronolock/chronolock/internal/calendar"
	"github.com/chronolock/chronolock/internal/catalog"
	"github.com/chronolock/chronolock/internal/clock"
	"github.com/chronolock/chronolock/internal/config"
	httphandler "github.com/chronolock/chronolock/internal/http"
	"github.com/chronolock/chronolock/internal/observability"
	"github.com/chronolock/chronolock/internal/rateLimit"
	"github.com/chronolock/chronolock/internal/reservation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownTracing, err := observability.SetupTracing(context.Background(), cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup tracing: %v", err)
	}
	defer shutdownTracing()

	logger := observability.NewLogger(cfg.LogLevel)

	clk := clock.NewSystem()
	store := reservation.NewStore(clk, catalog.SeedSlots(clk.Now(), cfg.SlotCount))
	cat := catalog.New(catalog.DefaultTiers(), store)

	cal, err := calendar.NewGoogle(context.Background(), calendar.GoogleOptions{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleSecret,
		TokenPath:    cfg.GoogleTokenPath,
		Timeout:      cfg.CalendarTimeout,
	})
	if err != nil {
		log.Fatalf("failed to setup calendar client: %v", err)
	}

	svc := booking.NewService(cat, store, cal, clk, logger,
		booking.WithHoldTTL(cfg.HoldTTL),
		booking.WithPayment(cfg.PaymentAsset, cfg.PaymentAddress),
	)

	handlers := httphandler.NewHandlers(svc, cat)
	rl := rateLimit.NewRateLimiter()
	router := httphandler.SetupRouter(handlers, logger, rl)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithField("addr", cfg.HTTPAddr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	sweeper := reservation.NewSweeper(store, logger)
	g.Go(func() error {
		return sweeper.Run(gctx, cfg.SweepInterval)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-gctx.Done():
	}
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.WithError(err).Error("server exited")
		return
	}
	logger.Info("server exiting")
}
