// Command sweep runs the reminder and expiration sweeps once and exits. It
// exists for operators who disable the in-process scheduler and drive the
// sweeps from an external cron job instead.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fundmate/fundmate-backend/internal/adapter/postgres"
	campaignrepo "github.com/fundmate/fundmate-backend/internal/adapter/postgres/campaign"
	notificationrepo "github.com/fundmate/fundmate-backend/internal/adapter/postgres/notification"
	pledgerepo "github.com/fundmate/fundmate-backend/internal/adapter/postgres/pledge"
	"github.com/fundmate/fundmate-backend/internal/app"
	"github.com/fundmate/fundmate-backend/internal/config"
	"github.com/fundmate/fundmate-backend/internal/notify"
	"github.com/fundmate/fundmate-backend/internal/scheduler"
	campaignsvc "github.com/fundmate/fundmate-backend/internal/service/campaign"
)

func main() {
	var which string
	flag.StringVar(&which, "sweep", "all", "which sweep to run: reminders, expired, or all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	campaigns := campaignrepo.New(pool)
	pledges := pledgerepo.New(pool)
	notifications := notificationrepo.New(pool)

	var emitter notify.Emitter = notify.NewInApp(notifications)
	if cfg.Notify.Sink == config.NotifySinkLog {
		emitter = notify.NewLog(logger)
	}
	campaignService := campaignsvc.NewService(logger, cfg.Campaign, campaigns, emitter)

	sched := scheduler.New(logger, cfg.Scheduler, clockwork.NewRealClock(),
		campaigns, pledges, campaignService, notifications, emitter)

	failed := false
	if which == "reminders" || which == "all" {
		if err := sched.SweepReminders(ctx); err != nil {
			logger.Error("reminder sweep failed", slog.String("error", err.Error()))
			failed = true
		}
	}
	if which == "expired" || which == "all" {
		if err := sched.SweepExpired(ctx); err != nil {
			logger.Error("expiration sweep failed", slog.String("error", err.Error()))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	logger.Info("sweep completed", slog.String("sweep", which))
}
