// Package portfolio serves the read-only project and skill listings and
// seeds them from a YAML document.
package portfolio

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/portfolio/internal/models"
	"github.com/starford/portfolio/internal/storage"
)

// Data is the content of a seed file.
type Data struct {
	Projects []models.Project `yaml:"projects"`
	Skills   []models.Skill   `yaml:"skills"`
}

// LoadFile decodes a seed file.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &d, nil
}

// Service coordinates the project and skill stores.
type Service struct {
	projects storage.ProjectRepository
	skills   storage.SkillRepository
	now      func() time.Time
}

// NewService creates a new portfolio service.
func NewService(projects storage.ProjectRepository, skills storage.SkillRepository) *Service {
	return &Service{projects: projects, skills: skills, now: time.Now}
}

// ListProjects returns every project. An empty collection yields an empty slice.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// ListSkills returns every skill. An empty collection yields an empty slice.
func (s *Service) ListSkills(ctx context.Context) ([]models.Skill, error) {
	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []models.Skill{}
	}
	return skills, nil
}

// Seed replaces both collections with d. Entries without a creation time
// are stamped with the current time, earlier entries slightly older so that
// newest-first listing keeps the file order.
func (s *Service) Seed(ctx context.Context, d *Data) error {
	now := s.now().UTC()

	projects := make([]models.Project, len(d.Projects))
	for i, p := range d.Projects {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now.Add(-time.Duration(i) * time.Second)
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		projects[i] = p
	}
	skills := make([]models.Skill, len(d.Skills))
	for i, sk := range d.Skills {
		if sk.CreatedAt.IsZero() {
			sk.CreatedAt = now
		}
		skills[i] = sk
	}

	if err := s.projects.ReplaceAll(ctx, projects); err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	if err := s.skills.ReplaceAll(ctx, skills); err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	return nil
}
