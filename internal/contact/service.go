// Package contact implements the contact submission workflow: validate,
// persist, notify the owner, confirm to the submitter.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/portfolio/internal/apperr"
	"github.com/starford/portfolio/internal/checksum"
	"github.com/starford/portfolio/internal/mailer"
	"github.com/starford/portfolio/internal/mailtemplate"
	"github.com/starford/portfolio/internal/metrics"
	"github.com/starford/portfolio/internal/models"
	"github.com/starford/portfolio/internal/storage"
)

// SuccessMessage is returned to the visitor once both emails went out.
const SuccessMessage = "Message sent successfully! I will get back to you as soon as possible."

// timestampLayout renders the submission time day-first, as the owner reads it.
const timestampLayout = "02/01/2006 15:04:05"

// Config carries the sender identity, the owner's details and the timeouts.
type Config struct {
	SiteName       string
	FromAddress    string
	OwnerEmail     string
	OwnerPhone     string
	Location       *time.Location
	PersistTimeout time.Duration
	SendTimeout    time.Duration
}

// Result is the success payload of a submission.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service runs the workflow. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	store     storage.ContactRepository
	sender    mailer.Sender
	templates *mailtemplate.Set
	cfg       Config
	metrics   *metrics.Collector
	logger    *slog.Logger
	now       func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithMetrics records submission and email outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the workflow to its collaborators.
func NewService(store storage.ContactRepository, sender mailer.Sender, templates *mailtemplate.Set, cfg Config, opts ...Option) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 8 * time.Second
	}
	s := &Service{
		store:     store,
		sender:    sender,
		templates: templates,
		cfg:       cfg,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates in, stores it and sends the owner notification followed
// by the submitter confirmation.
//
// The stored document is never rolled back: when a send fails the message
// stays saved and an *apperr.EmailDispatchError is returned.
func (s *Service) Submit(ctx context.Context, in Input) (*Result, error) {
	if err := Validate(in); err != nil {
		s.metrics.RecordSubmission(metrics.ResultValidation)
		return nil, err
	}
	in = in.normalized()

	now := s.now()
	msg := &models.ContactMessage{
		Name:        in.Name,
		Email:       in.Email,
		Message:     in.Message,
		Fingerprint: checksum.Fingerprint(in.Name, in.Email, in.Message),
		CreatedAt:   now.UTC(),
	}

	if err := s.persist(ctx, msg); err != nil {
		if errors.Is(err, apperr.ErrDuplicateSubmission) {
			s.metrics.RecordSubmission(metrics.ResultDuplicate)
		} else {
			s.metrics.RecordSubmission(metrics.ResultPersist)
		}
		return nil, err
	}

	if err := s.notify(ctx, msg, now); err != nil {
		s.metrics.RecordSubmission(metrics.ResultEmail)
		return nil, err
	}

	s.metrics.RecordSubmission(metrics.ResultSuccess)
	s.logger.Info("contact submitted", slog.String("id", msg.ID.Hex()))
	return &Result{Success: true, Message: SuccessMessage}, nil
}

func (s *Service) persist(ctx context.Context, msg *models.ContactMessage) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PersistTimeout)
	defer cancel()

	if err := s.store.Create(ctx, msg); err != nil {
		if errors.Is(err, apperr.ErrPersistence) {
			return err
		}
		return fmt.Errorf("save contact: %w: %w", apperr.ErrPersistence, err)
	}
	return nil
}

type notification struct {
	recipient apperr.Recipient
	template  string
	to        string
}

// notify attempts both sends in order. A failed owner notification does not
// stop the confirmation, and every failure is reported.
func (s *Service) notify(ctx context.Context, msg *models.ContactMessage, at time.Time) error {
	data := mailtemplate.Data{
		SiteName:   s.cfg.SiteName,
		Name:       msg.Name,
		Email:      msg.Email,
		Message:    msg.Message,
		ReceivedAt: at.In(s.cfg.Location).Format(timestampLayout),
		OwnerEmail: s.cfg.OwnerEmail,
		OwnerPhone: s.cfg.OwnerPhone,
		Year:       at.In(s.cfg.Location).Year(),
	}

	sends := []notification{
		{recipient: apperr.RecipientOwner, template: mailtemplate.OwnerNotification, to: s.cfg.OwnerEmail},
		{recipient: apperr.RecipientSubmitter, template: mailtemplate.SubmitterConfirmation, to: msg.Email},
	}

	failed := &apperr.EmailDispatchError{}
	for _, n := range sends {
		err := s.send(ctx, n, data)
		s.metrics.RecordEmail(string(n.recipient), err)
		if err != nil {
			s.logger.Error("contact email failed",
				slog.String("id", msg.ID.Hex()),
				slog.String("recipient", string(n.recipient)),
				slog.String("error", err.Error()))
			failed.Add(n.recipient, err)
		}
	}
	if failed.Empty() {
		return nil
	}
	return failed
}

func (s *Service) send(ctx context.Context, n notification, data mailtemplate.Data) error {
	rendered, err := s.templates.Render(n.template, data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	return s.sender.Send(ctx, mailer.Message{
		FromName: s.cfg.SiteName,
		From:     s.cfg.FromAddress,
		To:       n.to,
		Subject:  rendered.Subject,
		HTML:     rendered.HTML,
	})
}
