package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwicaksana/construction-management/internal"
)

type RepositoryAPI interface {
	GetCredentials(email string) (passwordHash string, userID int64, err error)
	GetUserWithCapabilities(userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, email string) (string, error)
	GenerateRefreshToken(userID int64, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type SessionStoreAPI interface {
	GetUser(ctx context.Context, userID int64) (*User, bool)
	PutUser(ctx context.Context, user *User) error
	DropUser(ctx context.Context, userID int64) error
	RevokeToken(ctx context.Context, token string, until time.Time) error
	IsTokenRevoked(ctx context.Context, token string) bool
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)
	GetUserWithCapabilities(ctx context.Context, userID int64) (*User, error)
	Logout(ctx context.Context, token string) error
	InvalidateUser(ctx context.Context, userID int64) error
}

type Service struct {
	repo     RepositoryAPI
	tokens   TokenGeneratorAPI
	sessions SessionStoreAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, sessions SessionStoreAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Authenticate validates credentials and issues a token pair. The user's
// capability snapshot is primed into the session store so the first
// authenticated request does not hit the database again.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	storedHash, userID, err := s.repo.GetCredentials(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown or inactive user", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", userID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	user, err := s.repo.GetUserWithCapabilities(userID)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to load user", err)
	}
	if !user.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := s.sessions.PutUser(ctx, user); err != nil {
		s.logger.Warn("failed to prime session cache", "error", err, "user_id", userID)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate access token", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate refresh token", err)
	}

	s.logger.Info("user authenticated", "user_id", user.ID, "role_label", user.RoleLabel())

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if s.sessions.IsTokenRevoked(ctx, refreshToken) {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokens.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate access token", err)
	}
	newRefreshToken, err := s.tokens.GenerateRefreshToken(claims.UserID, claims.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate refresh token", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *Service) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	if s.sessions.IsTokenRevoked(ctx, tokenString) {
		return nil, internal.ErrInvalidToken
	}
	return s.tokens.ValidateToken(tokenString)
}

// GetUserWithCapabilities returns the user with its capability snapshot,
// served from the session cache when present.
func (s *Service) GetUserWithCapabilities(ctx context.Context, userID int64) (*User, error) {
	if user, ok := s.sessions.GetUser(ctx, userID); ok {
		return user, nil
	}

	user, err := s.repo.GetUserWithCapabilities(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}

	if err := s.sessions.PutUser(ctx, user); err != nil {
		s.logger.Warn("failed to cache user session", "error", err, "user_id", userID)
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return internal.ErrInvalidToken
	}

	until := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.sessions.RevokeToken(ctx, token, until); err != nil {
		return internal.NewInternalError("failed to revoke token", err)
	}
	return s.sessions.DropUser(ctx, claims.UserID)
}

// InvalidateUser drops the cached capability snapshot, forcing the next
// request to reload the stored mask. Called after role or permission
// changes so grants take effect without waiting for the cache TTL.
func (s *Service) InvalidateUser(ctx context.Context, userID int64) error {
	return s.sessions.DropUser(ctx, userID)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64, email string) (string, error) {
	return j.signToken(userID, email, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64, email string) (string, error) {
	return j.signToken(userID, email, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signToken(userID int64, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken accepts tokens signed with either secret so it can check
// both access and refresh tokens.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	for _, secret := range [][]byte{j.AccessTokenSecret, j.RefreshTokenSecret} {
		claims, err := j.parseWithSecret(tokenString, secret)
		if err == nil {
			return claims, nil
		}
		if err == internal.ErrTokenExpired {
			return nil, err
		}
	}
	return nil, internal.ErrInvalidToken
}

func (j *JWTTokenGenerator) parseWithSecret(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if token != nil {
			if claims, ok := token.Claims.(*Claims); ok && claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
				return nil, internal.ErrTokenExpired
			}
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}
