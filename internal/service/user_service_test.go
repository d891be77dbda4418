package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio-server/internal/domain"
	"portfolio-server/internal/repository"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, username, email string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.Username == username {
			return repository.ErrConflict
		}
	}
	user.Username = username
	user.Email = email
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Username: username, PasswordHash: string(hash), Email: username + "@portfolio.com"}
	_, err = repo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserService_Authenticate(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "admin", "correct-horse")
	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "admin", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
	})

	// unknown username and wrong password must be indistinguishable
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "admin", "old-password")
	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("short new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "old-password", "short")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "not-it", "new-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, user.ID, "old-password", "new-password"))

		_, err := svc.Authenticate(ctx, "admin", "old-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Authenticate(ctx, "admin", "new-password")
		assert.NoError(t, err)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "admin", "password1")
	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("empty username", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, user.ID, "  ", "a@b.com")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("taken username", func(t *testing.T) {
		other := seedUser(t, repo, "editor", "password2")
		_, err := svc.UpdateProfile(ctx, other.ID, "admin", "editor@portfolio.com")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("success", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, user.ID, "photographer", "photo@portfolio.com")
		require.NoError(t, err)
		assert.Equal(t, "photographer", updated.Username)
		assert.Equal(t, "photo@portfolio.com", updated.Email)
	})
}

func TestUserService_EnsureAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin123", "admin@portfolio.com"))
	user, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", user.PasswordHash, "password must never be stored in clear form")

	// second run is a no-op
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin123", "admin@portfolio.com"))
	assert.Len(t, repo.users, 1)
}
