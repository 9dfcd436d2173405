package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-commission/internal/auth/errors"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/database"
	"go-commission/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo   Repository
	secret []byte
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, secret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, secret: []byte(secret), now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !database.IsNotFound(err) {
			l.Error("login lookup failed", zap.Error(err))
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		l.Info("login rejected", zap.String("user_id", u.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issue(u)
	if err != nil {
		l.Error("token generation failed", zap.Error(err))
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	l.Info("user logged in", zap.String("user_id", u.ID.String()))
	return pair, mapToResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenPair{}, AuthResponse{}, autherrors.ErrTokenExpired
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if claims.Type != TokenTypeRefresh {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidUserID
	}

	// Roles are reloaded so that a refresh picks up role changes.
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issue(u)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return pair, mapToResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToResponse(u)
	return &resp, nil
}

func (s *service) issue(u *user.User) (TokenPair, error) {
	access, err := s.generateToken(u, TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.generateToken(u, TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(u *user.User, typ string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: u.ID.String(),
		Roles:  u.RoleNames(),
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *service) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func mapToResponse(u *user.User) AuthResponse {
	teamIDs := make([]string, 0, len(u.Memberships))
	for _, id := range u.TeamIDs() {
		teamIDs = append(teamIDs, id.String())
	}
	return AuthResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Roles:   u.RoleNames(),
		TeamIDs: teamIDs,
	}
}
