package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shipscope/shipment-tracker/internal/models"
	"github.com/shipscope/shipment-tracker/internal/repository"
	apperrors "github.com/shipscope/shipment-tracker/pkg/errors"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

// AuthService handles registration, login and token verification
type AuthService struct {
	userStore UserStore
	logger    logger.Logger
	secret    []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, logger logger.Logger, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userStore: userStore,
		logger:    logger,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new user account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	_, err := s.userStore.GetByEmail(ctx, email)

	if err == nil {
		return nil, apperrors.NewConflictError("user already exists")
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError("failed to check existing user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to hash password")
	}

	user := models.NewUser(email, string(hash), name)

	if err := s.userStore.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", "error", err)
		return nil, apperrors.NewInternalError("failed to create user")
	}

	s.logger.Info("User registered", "userID", user.ID)
	return user, nil
}

// Login verifies the credentials and issues a signed access token. The
// expiry is returned alongside the token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Duration, error) {
	user, err := s.userStore.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", 0, apperrors.NewUnauthenticatedError("invalid credentials")
		}
		return "", 0, apperrors.NewInternalError("failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", 0, apperrors.NewUnauthenticatedError("invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)

	if err != nil {
		s.logger.Error("Failed to sign token", "error", err, "userID", user.ID)
		return "", 0, apperrors.NewInternalError("failed to sign token")
	}

	return token, s.tokenTTL, nil
}

// ResolvePrincipal verifies a bearer token and resolves it to an existing
// user. Every failure maps to the same unauthenticated outcome.
func (s *AuthService) ResolvePrincipal(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthenticatedError("could not validate credentials")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, apperrors.NewUnauthenticatedError("could not validate credentials")
	}

	sub, err := claims.GetSubject()

	if err != nil || sub == "" {
		return nil, apperrors.NewUnauthenticatedError("could not validate credentials")
	}

	user, err := s.userStore.GetByID(ctx, sub)

	if err != nil {
		return nil, apperrors.NewUnauthenticatedError("could not validate credentials")
	}

	return user, nil
}
