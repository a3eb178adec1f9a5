package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/praxisapp/praxis/internal/app/config"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/mail"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql"
	"github.com/praxisapp/praxis/pkg/logger"
)

// The worker periodically scans for contracts approaching their end date
// and tasks past due, and mails the configured recipients.
func main() {
	log := logger.New()

	log.Info("Starting Praxis alert worker")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.GetDatabaseURL())
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgresql.NewRepositories(db)

	var mailer services.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	alerts := services.NewAlertService(repos.Contracts, repos.Tasks, mailer, cfg.Alerts.Recipients, log)

	interval := cfg.Alerts.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runOnce(ctx, alerts, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runOnce(ctx, alerts, log)
		case <-ctx.Done():
			log.Info("Worker shutdown complete")
			return
		}
	}
}

func runOnce(ctx context.Context, alerts *services.AlertService, log *logger.Logger) {
	scanCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := alerts.Run(scanCtx); err != nil {
		log.Error("Alert scan failed", "error", err)
	}
}
