package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-commission/internal/access"
	"go-commission/internal/auth"
	autherrors "go-commission/internal/auth/errors"
	"go-commission/internal/middleware"
	"go-commission/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fakeRepository struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newUser(t *testing.T, email, password string, active bool, roles ...string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &user.User{ID: uuid.New(), Name: "Ana", Email: email, Password: string(hashed), IsActive: active}
	for _, r := range roles {
		u.Roles = append(u.Roles, user.UserRole{UserID: u.ID, Role: r})
	}
	return u
}

func setup(t *testing.T, users ...*user.User) auth.Service {
	repo := &fakeRepository{users: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return auth.NewService(repo, testSecret)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	active := newUser(t, "ana@mail.com", "password123", true, "seller", "finance")
	inactive := newUser(t, "old@mail.com", "password123", false, "seller")
	svc := setup(t, active, inactive)

	t.Run("success", func(t *testing.T) {
		pair, resp, err := svc.Login(ctx, "ana@mail.com", "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, active.ID.String(), resp.ID)
		assert.ElementsMatch(t, []string{"seller", "finance"}, resp.Roles)

		claims := &auth.Claims{}
		_, err = jwt.ParseWithClaims(pair.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, auth.TokenTypeAccess, claims.Type)
		assert.Equal(t, active.ID.String(), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ana@mail.com", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@mail.com", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "old@mail.com", "password123")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	u := newUser(t, "ana@mail.com", "password123", true, "seller")
	svc := setup(t, u)

	pair, _, err := svc.Login(ctx, "ana@mail.com", "password123")
	require.NoError(t, err)

	t.Run("refresh token issues new pair with current roles", func(t *testing.T) {
		u.Roles = append(u.Roles, user.UserRole{UserID: u.ID, Role: "manager"})

		next, resp, err := svc.RefreshToken(ctx, pair.RefreshToken)

		require.NoError(t, err)
		assert.NotEmpty(t, next.AccessToken)
		assert.Contains(t, resp.Roles, "manager")
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, _, err := svc.RefreshToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := svc.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := auth.Claims{
			UserID: u.ID.String(),
			Type:   auth.TokenTypeRefresh,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, token)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})
}

func TestService_GetMe(t *testing.T) {
	u := newUser(t, "ana@mail.com", "password123", true, "lawyer")
	svc := setup(t, u)

	resp, err := svc.GetMe(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"lawyer"}, resp.Roles)

	_, err = svc.GetMe(context.Background(), "bad")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)

	_, err = svc.GetMe(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}

func TestAccessTokenIsAcceptedByMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	u := newUser(t, "ana@mail.com", "password123", true, "seller", "lawyer")
	svc := setup(t, u)

	pair, _, err := svc.Login(context.Background(), "ana@mail.com", "password123")
	require.NoError(t, err)

	var actor access.Actor
	r := gin.New()
	r.GET("/probe", middleware.AuthMiddlewareWithSecret(testSecret), func(c *gin.Context) {
		actor, _ = access.ActorFromGin(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, u.ID, actor.UserID)
	assert.True(t, actor.Roles.Has(access.RoleLawyer))

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
