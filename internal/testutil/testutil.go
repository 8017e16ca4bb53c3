// Package testutil provides in-memory stores and a recording mail sender for tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/starford/portfolio/internal/apperr"
	"github.com/starford/portfolio/internal/mailer"
	"github.com/starford/portfolio/internal/mailtemplate"
	"github.com/starford/portfolio/internal/models"
	"github.com/starford/portfolio/internal/storage"
)

// ContactStore is an in-memory storage.ContactRepository with a unique fingerprint.
type ContactStore struct {
	mu       sync.Mutex
	messages []models.ContactMessage
	// Err, when set, is returned by Create instead of storing.
	Err error
}

var _ storage.ContactRepository = (*ContactStore)(nil)

// Create stores a copy of msg.
func (s *ContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, m := range s.messages {
		if msg.Fingerprint != "" && m.Fingerprint == msg.Fingerprint {
			return fmt.Errorf("insert contact: %w", apperr.ErrDuplicateSubmission)
		}
	}
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	s.messages = append(s.messages, *msg)
	return nil
}

// CountByEmail counts stored messages from email.
func (s *ContactStore) CountByEmail(_ context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, m := range s.messages {
		if m.Email == email {
			n++
		}
	}
	return n, nil
}

// Messages returns a snapshot of the stored messages.
func (s *ContactStore) Messages() []models.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ContactMessage(nil), s.messages...)
}

// ProjectStore is an in-memory storage.ProjectRepository.
type ProjectStore struct {
	mu       sync.Mutex
	Projects []models.Project
	Err      error
}

var _ storage.ProjectRepository = (*ProjectStore)(nil)

// List returns a copy of the projects, never nil.
func (s *ProjectStore) List(context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.Project{}, s.Projects...), nil
}

// ReplaceAll replaces the projects.
func (s *ProjectStore) ReplaceAll(_ context.Context, projects []models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Projects = append([]models.Project(nil), projects...)
	return nil
}

// SkillStore is an in-memory storage.SkillRepository.
type SkillStore struct {
	mu     sync.Mutex
	Skills []models.Skill
	Err    error
}

var _ storage.SkillRepository = (*SkillStore)(nil)

// List returns a copy of the skills, never nil.
func (s *SkillStore) List(context.Context) ([]models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.Skill{}, s.Skills...), nil
}

// ReplaceAll replaces the skills.
func (s *SkillStore) ReplaceAll(_ context.Context, skills []models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Skills = append([]models.Skill(nil), skills...)
	return nil
}

// Sender records every message it is asked to deliver.
type Sender struct {
	mu   sync.Mutex
	sent []mailer.Message
	// FailFor maps a recipient address to the error its sends return.
	FailFor map[string]error
}

var _ mailer.Sender = (*Sender)(nil)

// Send records msg, failing when msg.To is listed in FailFor.
func (s *Sender) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if err, ok := s.FailFor[msg.To]; ok {
		return err
	}
	return ctx.Err()
}

// Sent returns a snapshot of the attempted messages, failed ones included.
func (s *Sender) Sent() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailer.Message(nil), s.sent...)
}

// Templates returns the embedded mail templates.
func Templates(t *testing.T) *mailtemplate.Set {
	t.Helper()
	set, err := mailtemplate.New("", nil)
	if err != nil {
		t.Fatal(err)
	}
	return set
}
