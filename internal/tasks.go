package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/starford/portfolio/internal/mailer"
	"github.com/starford/portfolio/internal/mailtemplate"
	"github.com/starford/portfolio/internal/mcpserver"
	"github.com/starford/portfolio/internal/portfolio"
)

// Seed replaces the projects and skills with the content of file.
func Seed(ctx context.Context, file string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg, logger := app.config, app.logger

	data, err := portfolio.LoadFile(file)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	if err := portfolio.NewService(db.Projects(), db.Skills()).Seed(ctx, data); err != nil {
		return err
	}
	logger.Info("portfolio seeded",
		slog.String("file", file),
		slog.Int("projects", len(data.Projects)),
		slog.Int("skills", len(data.Skills)))
	return nil
}

// MailTest verifies the SMTP relay and sends a rendered confirmation to to.
func MailTest(ctx context.Context, to string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg, logger := app.config, app.logger

	smtp, err := newSMTP(cfg)
	if err != nil {
		return err
	}
	verifyCtx, cancel := context.WithTimeout(ctx, cfg.SMTP.Timeout)
	defer cancel()
	if err := smtp.Verify(verifyCtx); err != nil {
		return fmt.Errorf("smtp verify: %w", err)
	}
	logger.Info("smtp connection verified", slog.String("host", cfg.SMTP.Host))

	templates, err := mailtemplate.New(cfg.Mail.TemplatesDir, logger)
	if err != nil {
		return fmt.Errorf("init mail templates: %w", err)
	}
	now := time.Now().In(cfg.Mail.Location())
	rendered, err := templates.Render(mailtemplate.SubmitterConfirmation, mailtemplate.Data{
		SiteName:   cfg.Mail.FromName,
		Name:       "Test",
		Email:      to,
		Message:    "This is a test email sent from the mail-test command.\nIf you can read it, SMTP works.",
		ReceivedAt: now.Format("02/01/2006 15:04:05"),
		OwnerEmail: cfg.Mail.OwnerEmail,
		OwnerPhone: cfg.Mail.OwnerPhone,
		Year:       now.Year(),
	})
	if err != nil {
		return err
	}

	sendCtx, cancelSend := context.WithTimeout(ctx, cfg.SMTP.Timeout)
	defer cancelSend()
	if err := smtp.Send(sendCtx, mailer.Message{
		FromName: cfg.Mail.FromName,
		From:     cfg.Mail.FromAddress,
		To:       to,
		Subject:  "[test] " + rendered.Subject,
		HTML:     rendered.HTML,
	}); err != nil {
		return fmt.Errorf("send test email: %w", err)
	}
	logger.Info("test email sent", slog.String("to", to))
	return nil
}

// ServeMCP exposes the portfolio over MCP on stdin/stdout until the client
// disconnects, ctx is cancelled or a shutdown signal arrives.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg, logger := app.config, app.logger

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	srv := mcpserver.New(portfolio.NewService(db.Projects(), db.Skills()), mcpserver.ContactInfo{
		SiteName: cfg.Mail.FromName,
		Email:    cfg.Mail.OwnerEmail,
		Phone:    cfg.Mail.OwnerPhone,
	}, app.version)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio")
	return srv.Serve(ctx, os.Stdin, os.Stdout)
}
