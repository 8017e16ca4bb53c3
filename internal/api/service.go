package api

import (
	"context"

	"github.com/starford/portfolio/internal/contact"
	"github.com/starford/portfolio/internal/models"
	"github.com/starford/portfolio/internal/portfolio"
)

// ContactSubmitter runs the contact workflow.
type ContactSubmitter interface {
	Submit(ctx context.Context, in contact.Input) (*contact.Result, error)
}

// PortfolioReader lists the public portfolio content.
type PortfolioReader interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListSkills(ctx context.Context) ([]models.Skill, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ ContactSubmitter = (*contact.Service)(nil)
	_ PortfolioReader  = (*portfolio.Service)(nil)
)
