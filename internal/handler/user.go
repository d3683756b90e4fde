package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/reminder-admin/internal/service"
	"github.com/maxviazov/reminder-admin/pkg/response"
)

const (
	msgListUsersFailed = "failed to load users"
	msgGetUserFailed   = "failed to load user"
)

type UserHandler struct {
	svc    service.UserService
	limits service.PageLimits
}

func NewUserHandler(svc service.UserService, limits service.PageLimits) *UserHandler {
	return &UserHandler{svc: svc, limits: limits}
}

func (h *UserHandler) Register(r *gin.RouterGroup) {
	g := r.Group(usersPath)
	{
		g.GET("", h.list)
		g.GET(idParam, h.getByID)
	}
}

func (h *UserHandler) list(c *gin.Context) {
	page, err := service.ParsePage(c.Query("limit"), c.Query("offset"), h.limits)
	if err != nil {
		response.WriteError(c, err, msgListUsersFailed)
		return
	}
	res, err := h.svc.ListUsers(c.Request.Context(), page)
	if err != nil {
		response.WriteError(c, err, msgListUsersFailed)
		return
	}
	response.WritePage(c, res)
}

func (h *UserHandler) getByID(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err, msgGetUserFailed)
		return
	}
	response.WriteData(c, http.StatusOK, user)
}
