package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockdash/internal/config"
	"stockdash/internal/dto"
	"stockdash/internal/middleware"
	"stockdash/internal/model"
	"stockdash/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// AuthService issues JWT token pairs and manages user accounts.
type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
	log   zerolog.Logger
}

func NewAuthService(users repository.UserRepository, cfg *config.Config, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, cfg: cfg, log: log}
}

// Login verifies credentials and returns an access/refresh token pair.
// Failed lookups and bad passwords produce the same error so usernames
// cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn().Str("username", req.Username).Msg("failed login attempt")
		return nil, ErrUnauthorized
	}
	return s.tokenPair(user)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || !user.Active {
		return nil, ErrUnauthorized
	}
	return s.tokenPair(user)
}

func (s *AuthService) tokenPair(user *model.User) (*dto.LoginResponse, error) {
	now := time.Now()
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	refreshTTL := time.Duration(s.cfg.JWTRefreshHours) * time.Hour

	access, err := s.sign(user, now, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, now, refreshTTL)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         UserToResponse(user),
	}, nil
}

func (s *AuthService) sign(user *model.User, now time.Time, ttl time.Duration) (string, error) {
	claims := middleware.JWTClaims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   user.ID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ─── User management (admin only) ────────────────────────────────────────────

func (s *AuthService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*model.User, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username %q already taken: %w", req.Username, ErrInvalidArgument)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Str("role", user.Role).Msg("user created")
	return user, nil
}

func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "user")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id.String()).Msg("user updated")
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

// DeactivateUser soft-deletes: the account stops authenticating but its id
// stays valid for any audit references.
func (s *AuthService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return mapNotFound(err, "user")
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id.String()).Msg("user deactivated")
	return nil
}
