package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/reminder-admin/internal/handler"
	"github.com/maxviazov/reminder-admin/internal/model"
	"github.com/maxviazov/reminder-admin/internal/repository"
)

type stubUserService struct {
	user     model.User
	getErr   error
	page     repository.PageResult[model.User]
	listErr  error
	lastID   string
	listCall int
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (model.User, error) {
	s.lastID = id
	return s.user, s.getErr
}

func (s *stubUserService) ListUsers(ctx context.Context, p repository.Page) (repository.PageResult[model.User], error) {
	s.listCall++
	return s.page, s.listErr
}

func newUserRouter(svc *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r, handler.Deps{Pinger: stubPinger{}, Users: svc})
	return r
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{page: repository.PageResult[model.User]{
		Items: []model.User{{ID: "wa-1", DisplayName: "Ann"}},
		Total: 1, Limit: 10, Offset: 0,
	}}
	w := serve(newUserRouter(stub), http.MethodGet, "/api/v1/users?limit=10")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t,
		`{"success":true,"data":[{"id":"wa-1","display_name":"Ann","phone":"","created_at":"0001-01-01T00:00:00Z"}],"total":1,"limit":10,"offset":0}`,
		w.Body.String())
}

func TestUserHandler_List_Errors(t *testing.T) {
	t.Run("bad offset", func(t *testing.T) {
		stub := &stubUserService{}
		w := serve(newUserRouter(stub), http.MethodGet, "/api/v1/users?offset=x")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, stub.listCall)
	})

	t.Run("storage failure", func(t *testing.T) {
		stub := &stubUserService{listErr: repository.MapError("list users", errors.New("conn reset"))}
		w := serve(newUserRouter(stub), http.MethodGet, "/api/v1/users")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"storage_failure","message":"failed to load users"}`, w.Body.String())
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		stub := &stubUserService{user: model.User{ID: "wa-9", DisplayName: "Bo"}}
		w := serve(newUserRouter(stub), http.MethodGet, "/api/v1/users/wa-9")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "wa-9", stub.lastID)
		assert.Contains(t, w.Body.String(), `"display_name":"Bo"`)
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubUserService{getErr: repository.ErrNotFound}
		w := serve(newUserRouter(stub), http.MethodGet, "/api/v1/users/ghost")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
