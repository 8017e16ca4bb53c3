package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starford/portfolio/internal/models"
)

// ProjectStore implements ProjectRepository on the projects collection.
type ProjectStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ ProjectRepository = (*ProjectStore)(nil)

// NewProjectStore creates a ProjectStore on db.
func NewProjectStore(db *mongo.Database, timeout time.Duration) *ProjectStore {
	return &ProjectStore{coll: db.Collection(ProjectsCollection), timeout: timeout}
}

// List returns all projects, featured first then newest.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}})
	return listAll[models.Project](ctx, s.coll, s.timeout, opts)
}

// ReplaceAll replaces every project.
func (s *ProjectStore) ReplaceAll(ctx context.Context, projects []models.Project) error {
	return replaceAll(ctx, s.coll, s.timeout, projects)
}

// SkillStore implements SkillRepository on the skills collection.
type SkillStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ SkillRepository = (*SkillStore)(nil)

// NewSkillStore creates a SkillStore on db.
func NewSkillStore(db *mongo.Database, timeout time.Duration) *SkillStore {
	return &SkillStore{coll: db.Collection(SkillsCollection), timeout: timeout}
}

// List returns all skills in natural order.
func (s *SkillStore) List(ctx context.Context) ([]models.Skill, error) {
	return listAll[models.Skill](ctx, s.coll, s.timeout, options.Find())
}

// ReplaceAll replaces every skill.
func (s *SkillStore) ReplaceAll(ctx context.Context, skills []models.Skill) error {
	return replaceAll(ctx, s.coll, s.timeout, skills)
}
