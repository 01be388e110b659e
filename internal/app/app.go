// Package app wires configuration, storage, services, transport, and the
// scheduler into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fundmate/fundmate-backend/internal/adapter/postgres"
	campaignrepo "github.com/fundmate/fundmate-backend/internal/adapter/postgres/campaign"
	notificationrepo "github.com/fundmate/fundmate-backend/internal/adapter/postgres/notification"
	pledgerepo "github.com/fundmate/fundmate-backend/internal/adapter/postgres/pledge"
	"github.com/fundmate/fundmate-backend/internal/auth"
	"github.com/fundmate/fundmate-backend/internal/config"
	"github.com/fundmate/fundmate-backend/internal/notify"
	"github.com/fundmate/fundmate-backend/internal/scheduler"
	"github.com/fundmate/fundmate-backend/internal/service/aggregation"
	campaignsvc "github.com/fundmate/fundmate-backend/internal/service/campaign"
	pledgesvc "github.com/fundmate/fundmate-backend/internal/service/pledge"
	"github.com/fundmate/fundmate-backend/internal/transport/middleware"
	"github.com/fundmate/fundmate-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires the lifecycle services and the scheduler, and serves
// HTTP until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	campaigns := campaignrepo.New(pool)
	pledges := pledgerepo.New(pool)
	notifications := notificationrepo.New(pool)

	var emitter notify.Emitter = notify.NewInApp(notifications)
	if cfg.Notify.Sink == config.NotifySinkLog {
		emitter = notify.NewLog(logger)
	}
	engine := aggregation.NewEngine(logger, pledges, campaigns)
	txManager := postgres.NewTxManager(pool)

	campaignService := campaignsvc.NewService(logger, cfg.Campaign, campaigns, emitter)
	pledgeService := pledgesvc.NewService(logger, cfg.Campaign, pledges, campaigns, engine, txManager, emitter)

	sched := scheduler.New(logger, cfg.Scheduler, clockwork.NewRealClock(),
		campaigns, pledges, campaignService, notifications, emitter)
	go sched.Run(ctx)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	mux := rest.NewRouter(rest.Handlers{
		Health:        rest.NewHealthHandler(pool, BuildVersion()),
		Campaigns:     rest.NewCampaignHandler(campaignService, logger),
		Pledges:       rest.NewPledgeHandler(pledgeService, logger),
		Notifications: rest.NewNotificationHandler(notifications, logger),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		limiter.Limit(cfg.Server.RateLimitPerMin),
	)(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
