package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-commission/internal/user"
	usererrors "go-commission/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	user.Service
	getAllFn  func(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, error)
	createFn  func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	getByIDFn func(ctx context.Context, id string) (user.UserResponse, error)
}

func (f *fakeService) GetAll(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakeService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}

func newTestContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHandler_GetAllPassesRoleFilter(t *testing.T) {
	var got user.ListUsersFilter
	h := user.NewHandler(&fakeService{getAllFn: func(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, error) {
		got = filter
		return []user.UserResponse{{ID: uuid.NewString(), Name: "Ana"}}, nil
	}})

	c, w := newTestContext(http.MethodGet, "/users?role=seller&active_only=true", nil)
	h.GetAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "seller", got.Role)
	assert.True(t, got.ActiveOnly)
}

func TestHandler_GetAllRejectsUnknownRole(t *testing.T) {
	h := user.NewHandler(&fakeService{})

	c, w := newTestContext(http.MethodGet, "/users?role=boss", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h := user.NewHandler(&fakeService{createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
			return user.UserResponse{ID: uuid.NewString(), Email: req.Email, Roles: req.Roles}, nil
		}})

		c, w := newTestContext(http.MethodPost, "/users", map[string]any{
			"name": "Ana", "email": "ana@mail.com", "password": "secret123", "roles": []string{"seller"},
		})
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h := user.NewHandler(&fakeService{})

		c, w := newTestContext(http.MethodPost, "/users", map[string]any{
			"name": "Ana", "email": "not-an-email", "password": "secret123", "roles": []string{"seller"},
		})
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		h := user.NewHandler(&fakeService{createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserAlreadyExists
		}})

		c, w := newTestContext(http.MethodPost, "/users", map[string]any{
			"name": "Ana", "email": "ana@mail.com", "password": "secret123", "roles": []string{"seller"},
		})
		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestHandler_GetByIDNotFound(t *testing.T) {
	h := user.NewHandler(&fakeService{getByIDFn: func(ctx context.Context, id string) (user.UserResponse, error) {
		return user.UserResponse{}, usererrors.ErrUserNotFound
	}})

	c, w := newTestContext(http.MethodGet, "/users/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
