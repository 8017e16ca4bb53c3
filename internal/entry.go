// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/portfolio/internal/api"
	"github.com/starford/portfolio/internal/contact"
	"github.com/starford/portfolio/internal/mailer"
	"github.com/starford/portfolio/internal/mailtemplate"
	"github.com/starford/portfolio/internal/metrics"
	"github.com/starford/portfolio/internal/portfolio"
	"github.com/starford/portfolio/internal/storage"
)

const metricsNamespace = "portfolio"

// Run starts the HTTP server with the given options and blocks until a
// shutdown signal arrives or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("env", cfg.App.Env),
		slog.String("mongo_database", cfg.Mongo.Database),
		slog.String("smtp_host", cfg.SMTP.Host),
		slog.String("log_level", cfg.App.LogLevel.String()))

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Error("mongo disconnect failed", slog.String("error", err.Error()))
		}
	}()

	smtp, err := newSMTP(cfg)
	if err != nil {
		return err
	}
	// Verification is advisory: a broken relay must not keep the API down.
	verifyCtx, cancel := context.WithTimeout(ctx, cfg.SMTP.Timeout)
	if err := smtp.Verify(verifyCtx); err != nil {
		logger.Warn("smtp verification failed", slog.String("host", cfg.SMTP.Host), slog.String("error", err.Error()))
	} else {
		logger.Info("smtp ready", slog.String("host", cfg.SMTP.Host))
	}
	cancel()

	templates, err := mailtemplate.New(cfg.Mail.TemplatesDir, logger)
	if err != nil {
		return fmt.Errorf("init mail templates: %w", err)
	}

	collector := metrics.NewCollector(metricsNamespace)
	contacts := newContactService(cfg, db, smtp, templates, logger, collector)
	folio := portfolio.NewService(db.Projects(), db.Skills())

	h := api.NewHandler(contacts, folio, db, cfg.App.IsDevelopment())
	apiRouter := api.NewRouter(h, cfg.App.HTTP.AllowedOrigins)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(collector.Middleware)

	r.Handle("/metrics", collector.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	if cfg.App.IsProduction() {
		r.NotFound(api.SPA(cfg.App.HTTP.StaticDir).ServeHTTP)
		logger.Info("serving frontend bundle", slog.String("dir", cfg.App.HTTP.StaticDir))
	} else {
		r.NotFound(api.DevFallback().ServeHTTP)
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.App.HTTP.ReadTimeout,
		ReadTimeout:       cfg.App.HTTP.ReadTimeout,
		WriteTimeout:      cfg.App.HTTP.WriteTimeout,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Template hot reload; a no-op without an override directory.
	g.Go(func() error {
		err := templates.Watch(gCtx, func(kind, name string) {
			logger.Info("mail template changed", slog.String("kind", kind), slog.String("template", name))
		})
		if err != nil {
			logger.Warn("templates watcher disabled", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// openDatabase connects to MongoDB. An unreachable server is logged, not
// fatal: the health endpoint reports it and the driver reconnects.
func openDatabase(ctx context.Context, cfg *Config, logger *slog.Logger) (*storage.DB, error) {
	db, err := storage.Connect(ctx, storage.Options{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		logger.Warn("mongo ping failed", slog.String("error", err.Error()))
		return db, nil
	}
	logger.Info("mongo connected", slog.String("database", cfg.Mongo.Database))
	if err := db.EnsureIndexes(ctx); err != nil {
		logger.Warn("ensure indexes failed", slog.String("error", err.Error()))
	}
	return db, nil
}

func newSMTP(cfg *Config) (*mailer.SMTP, error) {
	smtp, err := mailer.NewSMTP(mailer.Options{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		Security: cfg.SMTP.Security,
		Timeout:  cfg.SMTP.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init mailer: %w", err)
	}
	return smtp, nil
}

func newContactService(cfg *Config, db *storage.DB, sender mailer.Sender, templates *mailtemplate.Set, logger *slog.Logger, collector *metrics.Collector) *contact.Service {
	return contact.NewService(db.Contacts(), sender, templates, contactConfig(cfg),
		contact.WithLogger(logger),
		contact.WithMetrics(collector),
	)
}

func contactConfig(cfg *Config) contact.Config {
	return contact.Config{
		SiteName:       cfg.Mail.FromName,
		FromAddress:    cfg.Mail.FromAddress,
		OwnerEmail:     cfg.Mail.OwnerEmail,
		OwnerPhone:     cfg.Mail.OwnerPhone,
		Location:       cfg.Mail.Location(),
		PersistTimeout: cfg.Mongo.Timeout,
		SendTimeout:    cfg.SMTP.Timeout,
	}
}
