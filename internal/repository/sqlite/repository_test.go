package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/internal/domain"
	"portfolio-server/internal/repository"
)

var defaultCategories = []domain.Category{
	{Name: "Retratos", Slug: "retratos", Description: "Fotografias de retratos profissionais"},
	{Name: "Paisagens", Slug: "paisagens", Description: "Fotografias de paisagens naturais"},
	{Name: "Eventos", Slug: "eventos", Description: "Fotografias de eventos e celebrações"},
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewCategoryRepository(db).Init(ctx))
	require.NoError(t, NewPhotoRepository(db).Init(ctx))
	return db
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "admin", PasswordHash: "$2a$10$hash", Email: "admin@portfolio.com"}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.Positive(t, id)

	t.Run("unique username", func(t *testing.T) {
		_, err := repo.Create(ctx, &domain.User{Username: "admin", PasswordHash: "x"})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("profile rename onto taken username", func(t *testing.T) {
		otherID, err := repo.Create(ctx, &domain.User{Username: "editor", PasswordHash: "x"})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.UpdateProfile(ctx, otherID, "admin", ""), repository.ErrConflict)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "admin@portfolio.com", got.Email)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update password", func(t *testing.T) {
		require.NoError(t, repo.UpdatePassword(ctx, id, "$2a$10$newhash"))
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "$2a$10$newhash", got.PasswordHash)

		assert.ErrorIs(t, repo.UpdatePassword(ctx, 999, "x"), repository.ErrNotFound)
	})

	t.Run("update profile", func(t *testing.T) {
		require.NoError(t, repo.UpdateProfile(ctx, id, "photographer", "p@portfolio.com"))
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "photographer", got.Username)
	})
}

func TestCategoryRepository_SeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx, defaultCategories))
	require.NoError(t, repo.Seed(ctx, defaultCategories))

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)

	// ordered by name
	assert.Equal(t, "Eventos", categories[0].Name)
	assert.Equal(t, "Paisagens", categories[1].Name)
	assert.Equal(t, "Retratos", categories[2].Name)
}

func createPhoto(t *testing.T, repo repository.PhotoRepository, title string, categoryID *int64, orderIndex int, uploadedAt time.Time) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Photo{
		Title:        title,
		StorageKey:   "photos/" + title + ".jpg",
		URL:          "https://cdn.example.com/photos/" + title + ".jpg",
		OriginalName: title + ".jpg",
		CategoryID:   categoryID,
		OrderIndex:   orderIndex,
		UploadedAt:   uploadedAt,
	})
	require.NoError(t, err)
	return id
}

func TestPhotoRepository_ListJoinsCategories(t *testing.T) {
	db := openTestDB(t)
	categories := NewCategoryRepository(db)
	photos := NewPhotoRepository(db)
	ctx := context.Background()

	require.NoError(t, categories.Seed(ctx, defaultCategories))
	seeded, err := categories.List(ctx)
	require.NoError(t, err)
	var retratosID int64
	for _, category := range seeded {
		if category.Slug == "retratos" {
			retratosID = category.ID
		}
	}
	require.Positive(t, retratosID)

	now := time.Now().UTC()
	createPhoto(t, photos, "portrait", &retratosID, 0, now)
	createPhoto(t, photos, "uncategorized", nil, 0, now.Add(time.Minute))

	list, err := photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byTitle := map[string]domain.Photo{}
	for _, photo := range list {
		byTitle[photo.Title] = photo
	}

	portrait := byTitle["portrait"]
	require.NotNil(t, portrait.CategoryName)
	assert.Equal(t, "Retratos", *portrait.CategoryName)
	require.NotNil(t, portrait.CategorySlug)
	assert.Equal(t, "retratos", *portrait.CategorySlug)

	orphan := byTitle["uncategorized"]
	assert.Nil(t, orphan.CategoryID)
	assert.Nil(t, orphan.CategoryName, "null category must surface as null, not leak an id")
	assert.Nil(t, orphan.CategorySlug)
}

func TestPhotoRepository_ListOrdering(t *testing.T) {
	db := openTestDB(t)
	photos := NewPhotoRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	createPhoto(t, photos, "old-front", nil, 0, base.Add(-time.Hour))
	createPhoto(t, photos, "new-front", nil, 0, base)
	createPhoto(t, photos, "back", nil, 5, base.Add(time.Hour))

	list, err := photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// order_index ascending, then upload time descending
	assert.Equal(t, "new-front", list[0].Title)
	assert.Equal(t, "old-front", list[1].Title)
	assert.Equal(t, "back", list[2].Title)
}

func TestPhotoRepository_UpdateDelete(t *testing.T) {
	db := openTestDB(t)
	photos := NewPhotoRepository(db)
	ctx := context.Background()

	id := createPhoto(t, photos, "sunset", nil, 0, time.Now().UTC())

	require.NoError(t, photos.Update(ctx, id, repository.PhotoUpdate{
		Title:       "Sunset",
		Description: "golden hour",
		IsFeatured:  true,
	}))
	got, err := photos.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sunset", got.Title)
	assert.True(t, got.IsFeatured)

	assert.ErrorIs(t, photos.Update(ctx, 999, repository.PhotoUpdate{Title: "x"}), repository.ErrNotFound)

	require.NoError(t, photos.Delete(ctx, id))
	_, err = photos.Get(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, photos.Delete(ctx, id), repository.ErrNotFound)
}

func TestPhotoRepository_CategoryDeleteSetsNull(t *testing.T) {
	db := openTestDB(t)
	categories := NewCategoryRepository(db)
	photos := NewPhotoRepository(db)
	ctx := context.Background()

	require.NoError(t, categories.Seed(ctx, defaultCategories))
	seeded, err := categories.List(ctx)
	require.NoError(t, err)
	categoryID := seeded[0].ID

	id := createPhoto(t, photos, "event", &categoryID, 0, time.Now().UTC())

	// categories have no delete endpoint; exercise the constraint directly
	_, err = db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, categoryID)
	require.NoError(t, err)

	got, err := photos.Get(ctx, id)
	require.NoError(t, err, "deleting a category must not delete referencing photos")
	assert.Nil(t, got.CategoryID)
}
