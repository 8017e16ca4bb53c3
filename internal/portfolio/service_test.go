package portfolio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/portfolio/internal/models"
	"github.com/starford/portfolio/internal/testutil"
)

func TestListEmptyCollections(t *testing.T) {
	svc := NewService(&testutil.ProjectStore{}, &testutil.SkillStore{})

	projects, err := svc.ListProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)

	skills, err := svc.ListSkills(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestListPropagatesStoreError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&testutil.ProjectStore{Err: boom}, &testutil.SkillStore{Err: boom})

	_, err := svc.ListProjects(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = svc.ListSkills(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSeedStampsAndReplaces(t *testing.T) {
	projects := &testutil.ProjectStore{Projects: []models.Project{{Title: "old"}}}
	skills := &testutil.SkillStore{}
	svc := NewService(projects, skills)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	err := svc.Seed(context.Background(), &Data{
		Projects: []models.Project{{Title: "MOVIEFLIX"}, {Title: "Cafe Local"}},
		Skills:   []models.Skill{{Name: "React", Level: "90"}},
	})
	require.NoError(t, err)

	got, _ := svc.ListProjects(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "MOVIEFLIX", got[0].Title)
	assert.Equal(t, fixed, got[0].CreatedAt)
	assert.True(t, got[1].CreatedAt.Before(got[0].CreatedAt))
	assert.NotNil(t, got[1].Technologies)

	gotSkills, _ := svc.ListSkills(context.Background())
	require.Len(t, gotSkills, 1)
	assert.Equal(t, fixed, gotSkills[0].CreatedAt)
}

func TestSeedStopsOnProjectError(t *testing.T) {
	skills := &testutil.SkillStore{Skills: []models.Skill{{Name: "kept"}}}
	svc := NewService(&testutil.ProjectStore{Err: errors.New("down")}, skills)

	err := svc.Seed(context.Background(), &Data{Skills: []models.Skill{{Name: "new"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed projects")
	assert.Equal(t, "kept", skills.Skills[0].Name)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	content := `projects:
  - title: Cafe Local
    description: Site vitrine
    year: "2024"
    category: Web
    featured: true
    technologies: [HTML, CSS]
    image_url: /images/cafe.png
skills:
  - name: JavaScript
    level: "85"
    category: Frontend
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, d.Projects, 1)
	assert.Equal(t, "Cafe Local", d.Projects[0].Title)
	assert.Equal(t, "/images/cafe.png", d.Projects[0].ImageURL)
	assert.True(t, d.Projects[0].Featured)
	require.Len(t, d.Skills, 1)
	assert.Equal(t, "85", d.Skills[0].Level)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
