package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stashspot/backend/internal/platform/logger"
	"github.com/stashspot/backend/internal/user/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrDuplicateUser
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

const testSecret = "test-secret"

func newTestUsecase() (*UserUsecase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserUsecase(repo, testSecret, time.Hour, logger.NewLogger()), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a host account with a hashed password", func(t *testing.T) {
		uc, _ := newTestUsecase()

		user, err := uc.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct horse",
			IsHost:   true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.True(t, user.IsHost)
		assert.NotEqual(t, "correct horse", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	})

	t.Run("requires username and email", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, err := uc.Register(ctx, RegisterInput{Username: "", Email: "a@b.c", Password: "long enough"})
		assert.ErrorIs(t, err, domain.ErrInvalidUserData)

		_, err = uc.Register(ctx, RegisterInput{Username: "alice", Email: " ", Password: "long enough"})
		assert.ErrorIs(t, err, domain.ErrInvalidUserData)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, err := uc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.c", Password: "short"})
		assert.ErrorIs(t, err, domain.ErrInvalidUserData)
	})

	t.Run("duplicate username surfaces", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, err := uc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.c", Password: "long enough"})
		require.NoError(t, err)

		_, err = uc.Register(ctx, RegisterInput{Username: "alice", Email: "other@b.c", Password: "long enough"})
		assert.ErrorIs(t, err, domain.ErrDuplicateUser)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, uc *UserUsecase) *domain.User {
		t.Helper()
		user, err := uc.Register(ctx, RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct horse",
			IsHost:   true,
		})
		require.NoError(t, err)
		return user
	}

	t.Run("issues a verifiable token", func(t *testing.T) {
		uc, _ := newTestUsecase()
		registered := register(t, uc)

		token, user, err := uc.Login(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, registered.ID, claims.UserID)
		assert.True(t, claims.IsHost)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, _ := newTestUsecase()
		register(t, uc)

		_, _, err := uc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, _, err := uc.Login(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	stringPtr := func(s string) *string { return &s }

	seed := func(repo *fakeUserRepo) {
		repo.users["u-1"] = &domain.User{ID: "u-1", Username: "bob", FullName: "Bob", Phone: "555-1234"}
		repo.users["admin-1"] = &domain.User{ID: "admin-1", Username: "root", IsAdmin: true}
		repo.users["u-2"] = &domain.User{ID: "u-2", Username: "mallory"}
	}

	t.Run("owner applies a sparse patch", func(t *testing.T) {
		uc, repo := newTestUsecase()
		seed(repo)

		updated, err := uc.UpdateProfile(ctx, "u-1", UpdateProfileInput{Bio: stringPtr("Storage host since 2024")}, domain.Principal{ID: "u-1"})
		require.NoError(t, err)
		assert.Equal(t, "Storage host since 2024", updated.Bio)
		assert.Equal(t, "Bob", updated.FullName, "untouched fields survive")
		assert.Equal(t, "555-1234", repo.users["u-1"].Phone)
	})

	t.Run("admin may patch another account", func(t *testing.T) {
		uc, repo := newTestUsecase()
		seed(repo)

		updated, err := uc.UpdateProfile(ctx, "u-1", UpdateProfileInput{FullName: stringPtr("Robert")}, domain.Principal{ID: "admin-1", IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, "Robert", updated.FullName)
	})

	t.Run("stranger is forbidden and nothing changes", func(t *testing.T) {
		uc, repo := newTestUsecase()
		seed(repo)

		_, err := uc.UpdateProfile(ctx, "u-1", UpdateProfileInput{FullName: stringPtr("Hijacked")}, domain.Principal{ID: "u-2"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, "Bob", repo.users["u-1"].FullName)
	})

	t.Run("missing account", func(t *testing.T) {
		uc, repo := newTestUsecase()
		seed(repo)

		_, err := uc.UpdateProfile(ctx, "nope", UpdateProfileInput{}, domain.Principal{ID: "nope"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUsecase()
	repo.users["u-1"] = &domain.User{ID: "u-1", Username: "bob"}

	user, err := uc.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = uc.GetProfile(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
