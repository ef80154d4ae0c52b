package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos-kemasan/cache"
	"pos-kemasan/config"
	"pos-kemasan/controllers/idgen"
	"pos-kemasan/database"
	"pos-kemasan/metrics"
	"pos-kemasan/migration"
	"pos-kemasan/notifier"
	"pos-kemasan/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := boot()
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := idgen.Init(cfg.SnowflakeNode); err != nil {
			return err
		}
		if err := migration.Migrate(db); err != nil {
			return err
		}
		if err := database.RunSeeders(db, cfg); err != nil {
			return err
		}

		opts := server.Options{Logger: log, Metrics: metrics.New()}

		reportCache, closeCache := newReportCache(cfg, log)
		defer closeCache()
		opts.Cache = reportCache

		if cfg.SMTPHost != "" && len(cfg.LowStockRecipients) > 0 {
			mailer := notifier.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
				cfg.MailFrom, cfg.LowStockRecipients, log)
			defer mailer.Close()
			opts.Notifier = mailer
		}

		app := server.New(cfg, db, opts)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", "port", cfg.AppPort, "env", cfg.AppEnv, "driver", cfg.DBDriver)
			errCh <- app.Listen(":" + cfg.AppPort)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	},
}

// newReportCache picks Redis when REDIS_ADDR is set and the in-process cache
// otherwise. An unreachable Redis is kept, reports bypass it until it recovers.
func newReportCache(cfg *config.Config, log *slog.Logger) (cache.ReportCache, func()) {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, caching reports in process")
		return cache.NewMemory(), func() {}
	}
	rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, reports are served uncached until it recovers", "addr", cfg.RedisAddr, "error", err)
	}
	return rc, func() { rc.Close() }
}
