package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-commission/internal/auth"
	autherrors "go-commission/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	loginFn   func(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error)
	refreshFn func(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error)
	meFn      func(ctx context.Context, userID string) (*auth.AuthResponse, error)
}

func (f *fakeService) Login(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeService) RefreshToken(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error) {
	return f.refreshFn(ctx, token)
}

func (f *fakeService) GetMe(ctx context.Context, userID string) (*auth.AuthResponse, error) {
	return f.meFn(ctx, userID)
}

func newRouter(h *auth.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		h.Me(c)
	})
	return r
}

func jsonBody(v any) *bytes.Buffer {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(v)
	return &buf
}

func TestHandler_Login(t *testing.T) {
	svc := &fakeService{loginFn: func(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error) {
		if password != "password123" {
			return auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return auth.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, auth.AuthResponse{Email: email}, nil
	}}
	r := newRouter(auth.NewHandler(svc))

	t.Run("web client gets cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(map[string]string{
			"email": "ana@mail.com", "password": "password123",
		}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "acc", cookies[0].Value)
	})

	t.Run("api client gets no cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(map[string]string{
			"email": "ana@mail.com", "password": "password123",
		}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "API")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		assert.Contains(t, w.Body.String(), `"access_token":"acc"`)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(map[string]string{
			"email": "ana@mail.com", "password": "wrong",
		}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", jsonBody(map[string]string{"email": "x"}))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	var got string
	svc := &fakeService{refreshFn: func(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error) {
		got = token
		return auth.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}, auth.AuthResponse{}, nil
	}}
	r := newRouter(auth.NewHandler(svc))

	t.Run("web reads cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("X-Client-Type", "WEB")
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "ref1"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ref1", got)
	})

	t.Run("web without cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "NO_REFRESH_TOKEN")
	})

	t.Run("api reads body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", jsonBody(map[string]string{"refresh_token": "ref9"}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "API")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ref9", got)
	})
}

func TestHandler_Me(t *testing.T) {
	svc := &fakeService{meFn: func(ctx context.Context, userID string) (*auth.AuthResponse, error) {
		return &auth.AuthResponse{ID: userID}, nil
	}}
	r := newRouter(auth.NewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("X-Test-User", "u-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
}

func TestHandler_LogoutClearsCookies(t *testing.T) {
	r := newRouter(auth.NewHandler(&fakeService{}))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.Empty(t, c.Value)
		assert.True(t, c.MaxAge < 0)
	}
}
