package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventdesk/internal/adapters/apiclient"
	emailPkg "eventdesk/internal/adapters/email"
	web "eventdesk/internal/adapters/http"
	"eventdesk/internal/adapters/storage"
	attendanceStore "eventdesk/internal/adapters/storage/attendance"
	eventStore "eventdesk/internal/adapters/storage/event"
	eventRequestStore "eventdesk/internal/adapters/storage/eventrequest"
	reportStore "eventdesk/internal/adapters/storage/report"
	studentStore "eventdesk/internal/adapters/storage/student"
	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/config"
	"eventdesk/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_invalid", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg.Env, cfg.LogLevel, os.Stdout))

	backend, closeBackend, err := openBackend(context.Background(), cfg)
	if err != nil {
		slog.Error("backend_unavailable", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	if cfg.ResendKey == "" && cfg.IsProduction() {
		slog.Warn("email_disabled", "reason", "EVENTDESK_RESEND_KEY is not set; decision emails are not delivered")
	}

	srv := web.NewServer(backend, web.Options{
		DemoStudentID:   cfg.DemoStudentID,
		SubmitDelay:     cfg.SubmitDelay,
		Mailer:          emailPkg.New(cfg.ResendKey, cfg.EmailFrom),
		EmailFrom:       cfg.EmailFrom,
		CSRFKey:         cfg.CSRFKey,
		SecureCookies:   cfg.IsProduction(),
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	defer srv.Close()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "backend", cfg.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("server_stopping", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server_forced_shutdown", "error", err)
		return
	}
	slog.Info("server_stopped")
}

// openBackend wires the configured data source. The returned func releases it.
func openBackend(ctx context.Context, cfg config.Config) (web.Backend, func(), error) {
	if cfg.Backend == config.BackendAPI {
		client, err := apiclient.New(cfg.APIBaseURL, cfg.APIToken, nil)
		if err != nil {
			return web.Backend{}, nil, err
		}
		return web.Backend{
			Events:     client.Events(),
			Attendance: client.Attendance(),
			Reports:    client.Reports(),
			Requests:   client.Requests(),
			Students:   client.Students(),
		}, func() {}, nil
	}

	db, err := storage.OpenSandbox(ctx, cfg.SlowQuery)
	if err != nil {
		return web.Backend{}, nil, err
	}
	events := eventStore.NewSQLiteStore(db)
	students := studentStore.NewSQLiteStore(db)
	records := attendanceStore.NewSQLiteStore(db)
	reports := reportStore.NewSQLiteStore(db)
	if err := orchestrators.ExecuteSeedSandbox(ctx, orchestrators.SeedSandboxDeps{
		EventStore:      events,
		StudentStore:    students,
		AttendanceStore: records,
		ReportStore:     reports,
	}); err != nil {
		db.Close()
		return web.Backend{}, nil, err
	}
	return web.Backend{
		Events:     events,
		Attendance: records,
		Reports:    reports,
		Requests:   eventRequestStore.NewSQLiteStore(db),
		Students:   students,
	}, func() { db.Close() }, nil
}
