// Package auth provides registration, login and bearer token handling shared
// by the account and transaction services.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/domain/user"
	repouser "github.com/amirasaad/fintech-ledger/pkg/repository/user"
	"github.com/amirasaad/fintech-ledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// dummyHash is compared against when the username is unknown, so a failed
// login costs the same whether or not the user exists.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// Strategy issues and reads bearer tokens.
type Strategy interface {
	GenerateToken(ctx context.Context, u *user.User) (string, error)
	GenerateServiceToken(subject string) (string, error)
	GetCurrentUserID(token *jwt.Token) (uuid.UUID, error)
}

// Service registers and authenticates users against the identity store.
type Service struct {
	store    repouser.Store
	strategy Strategy
	logger   *slog.Logger
}

// New creates a new auth Service.
func New(store repouser.Store, strategy Strategy, logger *slog.Logger) *Service {
	return &Service{store: store, strategy: strategy, logger: logger}
}

// NewWithJWT creates an auth Service issuing HS256 tokens.
func NewWithJWT(store repouser.Store, cfg *config.Jwt, logger *slog.Logger) *Service {
	return New(store, NewJWTStrategy(cfg, logger), logger)
}

// Register creates a user. A taken username yields domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, username, password string) (*user.User, error) {
	log := s.logger.With("context", "Register", "username", username)
	log.Debug("Register called")
	u, err := user.NewUser(username, password)
	if err != nil {
		log.Warn("Register failed: invalid user", "error", err)
		return nil, err
	}
	if err := s.store.Create(ctx, u); err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "userID", u.ID)
	return u, nil
}

// Login verifies the credentials. Unknown users and wrong passwords both
// yield user.ErrUserUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (*user.User, error) {
	log := s.logger.With("context", "Login", "username", username)
	log.Debug("Login called")
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		_ = utils.CheckPasswordHash(password, dummyHash)
		if errors.Is(err, user.ErrUserNotFound) {
			log.Warn("Login failed", "error", user.ErrUserUnauthorized)
			return nil, user.ErrUserUnauthorized
		}
		log.Error("Login failed: store error", "error", err)
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.HashedPassword) {
		log.Warn("Login failed", "error", user.ErrUserUnauthorized)
		return nil, user.ErrUserUnauthorized
	}
	log.Info("Login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues a bearer token for u.
func (s *Service) GenerateToken(ctx context.Context, u *user.User) (string, error) {
	log := s.logger.With("userID", u.ID)
	log.Debug("GenerateToken called")
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Info("GenerateToken successful")
	return token, nil
}

// GenerateServiceToken issues a bearer token for service-to-service calls.
func (s *Service) GenerateServiceToken(subject string) (string, error) {
	return s.strategy.GenerateServiceToken(subject)
}

// GetCurrentUserID extracts the user id from a verified token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	userID, err := s.strategy.GetCurrentUserID(token)
	if err != nil {
		s.logger.Warn("GetCurrentUserID failed", "error", err)
		return uuid.Nil, err
	}
	return userID, nil
}

// JWTStrategy implements Strategy with HS256 signed tokens.
type JWTStrategy struct {
	cfg    *config.Jwt
	logger *slog.Logger
}

// NewJWTStrategy creates a JWTStrategy.
func NewJWTStrategy(cfg *config.Jwt, logger *slog.Logger) *JWTStrategy {
	return &JWTStrategy{cfg: cfg, logger: logger}
}

func (s *JWTStrategy) GenerateToken(_ context.Context, u *user.User) (string, error) {
	return s.sign(jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
	})
}

func (s *JWTStrategy) GenerateServiceToken(subject string) (string, error) {
	return s.sign(jwt.MapClaims{
		"sub":     subject,
		"service": true,
	})
}

func (s *JWTStrategy) sign(claims jwt.MapClaims) (string, error) {
	if s.cfg == nil || s.cfg.Secret == "" {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.cfg.Expiry).Unix()
	if s.cfg.Issuer != "" {
		claims["iss"] = s.cfg.Issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTStrategy) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	if token == nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	return userID, nil
}
