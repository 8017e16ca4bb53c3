// Package storage defines the document persistence abstraction and its MongoDB implementation.
package storage

import (
	"context"

	"github.com/starford/portfolio/internal/models"
)

// ContactRepository persists contact submissions.
type ContactRepository interface {
	// Create inserts msg and assigns its ID. A duplicate fingerprint
	// yields apperr.ErrDuplicateSubmission; any other failure apperr.ErrPersistence.
	Create(ctx context.Context, msg *models.ContactMessage) error
	// CountByEmail returns how many submissions were stored for email. It is
	// the read-back check that a submission survived a failed notification;
	// the HTTP surface does not expose it.
	CountByEmail(ctx context.Context, email string) (int64, error)
}

// ProjectRepository reads and replaces portfolio projects.
type ProjectRepository interface {
	// List returns every project, featured first then newest. Never nil.
	List(ctx context.Context) ([]models.Project, error)
	// ReplaceAll swaps the collection content for projects.
	ReplaceAll(ctx context.Context, projects []models.Project) error
}

// SkillRepository reads and replaces skills.
type SkillRepository interface {
	// List returns every skill in insertion order. Never nil.
	List(ctx context.Context) ([]models.Skill, error)
	// ReplaceAll swaps the collection content for skills.
	ReplaceAll(ctx context.Context, skills []models.Skill) error
}
