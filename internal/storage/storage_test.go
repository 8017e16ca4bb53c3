package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/starford/portfolio/internal/apperr"
	"github.com/starford/portfolio/internal/models"
)

func mockDB(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestContactStore_Create(t *testing.T) {
	mt := mockDB(t)

	mt.Run("assigns id on success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewContactStore(mt.DB, time.Second)

		msg := &models.ContactMessage{Name: "Alice", Email: "alice@example.com", Message: "Hello", CreatedAt: time.Now()}
		require.NoError(mt, store.Create(context.Background(), msg))
		assert.False(mt, msg.ID.IsZero())
	})

	mt.Run("duplicate key maps to duplicate submission", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: portfolio.contacts index: fingerprint_unique",
		}))
		store := NewContactStore(mt.DB, time.Second)

		err := store.Create(context.Background(), &models.ContactMessage{Name: "Alice"})
		require.Error(mt, err)
		assert.ErrorIs(mt, err, apperr.ErrDuplicateSubmission)
		assert.ErrorIs(mt, err, apperr.ErrPersistence)
	})

	mt.Run("other failures are generic persistence errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		store := NewContactStore(mt.DB, time.Second)

		err := store.Create(context.Background(), &models.ContactMessage{Name: "Alice"})
		require.Error(mt, err)
		assert.ErrorIs(mt, err, apperr.ErrPersistence)
		assert.NotErrorIs(mt, err, apperr.ErrDuplicateSubmission)
	})
}

func TestContactStore_CountByEmail(t *testing.T) {
	mt := mockDB(t)

	mt.Run("returns aggregate count", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + ContactsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))
		store := NewContactStore(mt.DB, time.Second)

		n, err := store.CountByEmail(context.Background(), "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})
}

func TestProjectStore_List(t *testing.T) {
	mt := mockDB(t)

	mt.Run("decodes documents", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + ProjectsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "title", Value: "MOVIEFLIX"},
				{Key: "description", Value: "Movie browser"},
				{Key: "featured", Value: true},
				{Key: "technologies", Value: bson.A{"React", "TailwindCSS"}},
			},
			bson.D{
				{Key: "title", Value: "Cafe Local"},
				{Key: "description", Value: "Static site"},
			},
		))
		store := NewProjectStore(mt.DB, time.Second)

		projects, err := store.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, projects, 2)
		assert.Equal(mt, "MOVIEFLIX", projects[0].Title)
		assert.True(mt, projects[0].Featured)
		assert.Equal(mt, []string{"React", "TailwindCSS"}, projects[0].Technologies)
	})

	mt.Run("empty collection yields empty slice", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + ProjectsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		store := NewProjectStore(mt.DB, time.Second)

		projects, err := store.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, projects)
		assert.Empty(mt, projects)
	})

	mt.Run("find failure is a persistence error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "denied"}))
		store := NewProjectStore(mt.DB, time.Second)

		_, err := store.List(context.Background())
		assert.ErrorIs(mt, err, apperr.ErrPersistence)
	})
}

func TestSkillStore_ListEmpty(t *testing.T) {
	mt := mockDB(t)

	mt.Run("empty", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + SkillsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		store := NewSkillStore(mt.DB, time.Second)

		skills, err := store.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, skills)
		assert.Len(mt, skills, 0)
	})
}

func TestSkillStore_ReplaceAll(t *testing.T) {
	mt := mockDB(t)

	mt.Run("deletes then inserts", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(3)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(2)}),
		)
		store := NewSkillStore(mt.DB, time.Second)

		err := store.ReplaceAll(context.Background(), []models.Skill{{Name: "Go"}, {Name: "MongoDB"}})
		require.NoError(mt, err)
	})

	mt.Run("empty input only clears", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))
		store := NewSkillStore(mt.DB, time.Second)

		require.NoError(mt, store.ReplaceAll(context.Background(), nil))
	})
}

func TestDB_PingAndIndexes(t *testing.T) {
	mt := mockDB(t)

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		db := NewDB(mt.DB, time.Second)
		assert.NoError(mt, db.Ping(context.Background()))
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		db := NewDB(mt.DB, time.Second)
		assert.NoError(mt, db.EnsureIndexes(context.Background()))
	})
}
