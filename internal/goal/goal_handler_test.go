package goal_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-commission/internal/access"
	"go-commission/internal/goal"
	goalerrors "go-commission/internal/goal/errors"
	goalMock "go-commission/internal/goal/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newGoalRouter(t *testing.T, actor *access.Actor) (*gin.Engine, *goalMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := goalMock.NewMockService(ctrl)
	h := goal.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor != nil {
			c.Set(access.ContextActorKey, *actor)
		}
		c.Next()
	})
	r.GET("/goals", h.GetAll)
	r.GET("/goals/progress", h.Progress)
	r.POST("/goals", h.Create)
	r.PUT("/goals/:id", h.Update)
	r.DELETE("/goals/:id", h.Delete)
	return r, svc
}

func managerActor() *access.Actor {
	return &access.Actor{UserID: uuid.New(), Roles: access.NewRoleSet(access.RoleManager)}
}

func TestHandler_CreateGoal(t *testing.T) {
	r, svc := newGoalRouter(t, managerActor())
	svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ access.Actor, req goal.GoalRequest) (goal.GoalResponse, error) {
			assert.True(t, req.Target.Equal(dec("5000")))
			return goal.GoalResponse{ID: uuid.NewString(), Title: "Company goal", Target: "5000.00"}, nil
		})

	body := `{"start_date":"2026-03-01","end_date":"2026-03-31","target":"5000"}`
	req := httptest.NewRequest(http.MethodPost, "/goals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Company goal")
}

func TestHandler_CreateGoalValidatesDates(t *testing.T) {
	r, _ := newGoalRouter(t, managerActor())

	body := `{"start_date":"03/01/2026","end_date":"2026-03-31","target":"10"}`
	req := httptest.NewRequest(http.MethodPost, "/goals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateGoalConflict(t *testing.T) {
	r, svc := newGoalRouter(t, managerActor())
	svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(goal.GoalResponse{}, goalerrors.ErrGoalAlreadyExists)

	body := `{"start_date":"2026-03-01","end_date":"2026-03-31","target":10}`
	req := httptest.NewRequest(http.MethodPost, "/goals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_Progress(t *testing.T) {
	r, svc := newGoalRouter(t, managerActor())
	svc.EXPECT().Progress(gomock.Any(), gomock.Any()).Return([]goal.ProgressResponse{{
		GoalResponse: goal.GoalResponse{Title: "Company goal", Target: "100.00"},
		Progress:     "40.00",
		Remaining:    "60.00",
		Percentage:   40,
	}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/goals/progress", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"percentage":40`)
	assert.Contains(t, w.Body.String(), `"remaining":"60.00"`)
}

func TestHandler_ListGoalsPaginates(t *testing.T) {
	r, svc := newGoalRouter(t, managerActor())
	goals := make([]goal.GoalResponse, 3)
	svc.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(goals, nil)

	req := httptest.NewRequest(http.MethodGet, "/goals?page=2&page_size=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)
}

func TestHandler_DeleteGoalForbidden(t *testing.T) {
	r, svc := newGoalRouter(t, managerActor())
	svc.EXPECT().Delete(gomock.Any(), gomock.Any(), "g-1").Return(goalerrors.ErrManageNotAllowed)

	req := httptest.NewRequest(http.MethodDelete, "/goals/g-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_GoalRequiresActor(t *testing.T) {
	r, _ := newGoalRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/goals/progress", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
