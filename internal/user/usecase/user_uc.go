package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stashspot/backend/internal/platform/logger"
	"github.com/stashspot/backend/internal/user/domain"
)

// Claims is the JWT payload issued on login and validated by the HTTP auth
// middleware. The host and admin flags let the middleware build a Principal
// without a database round trip; the usecases re-check against the store
// where it matters.
type Claims struct {
	UserID  string `json:"user_id"`
	IsHost  bool   `json:"is_host"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// UserUsecase is the auth provider: account registration, credential checks
// and JWT issuance.
type UserUsecase struct {
	repo      domain.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logger.Logger
}

func NewUserUsecase(repo domain.UserRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *UserUsecase {
	return &UserUsecase{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    log.Named("UserUsecase"),
	}
}

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	IsHost   bool
}

// Register creates a new account with a bcrypt-hashed password.
func (uc *UserUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrInvalidUserData)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidUserData)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		IsHost:       in.IsHost,
		CreatedAt:    time.Now(),
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		uc.logger.Error("Failed to create user", zap.String("username", in.Username), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User registered", zap.String("user_id", user.ID), zap.Bool("is_host", user.IsHost))
	return user, nil
}

// Login verifies the credentials and returns a signed JWT plus the account.
func (uc *UserUsecase) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := &Claims{
		UserID:  user.ID,
		IsHost:  user.IsHost,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.jwtSecret))
	if err != nil {
		uc.logger.Error("Failed to sign token", zap.String("user_id", user.ID), zap.Error(err))
		return "", nil, err
	}

	uc.logger.Info("User logged in", zap.String("user_id", user.ID))
	return token, user, nil
}

// GetProfile fetches the account behind a principal.
func (uc *UserUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.repo.FindByID(ctx, userID)
}

// UpdateProfileInput carries a sparse profile update: nil fields stay untouched.
type UpdateProfileInput struct {
	FullName *string
	Phone    *string
	Bio      *string
	Avatar   *string
}

// UpdateProfile applies a sparse update to an account. Only the account owner
// or an admin may change it.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, patch UpdateProfileInput, actor domain.Principal) (*domain.User, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ID != actor.ID && !actor.IsAdmin {
		uc.logger.Warn("Profile update rejected",
			zap.String("user_id", userID),
			zap.String("actor_id", actor.ID))
		return nil, fmt.Errorf("%w: only the owner or an admin may update this profile", domain.ErrForbidden)
	}

	updated := *user
	if patch.FullName != nil {
		updated.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		updated.Phone = *patch.Phone
	}
	if patch.Bio != nil {
		updated.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		updated.Avatar = *patch.Avatar
	}

	if err := uc.repo.Update(ctx, &updated); err != nil {
		uc.logger.Error("Failed to update profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Profile updated", zap.String("user_id", userID), zap.String("actor_id", actor.ID))
	return &updated, nil
}
