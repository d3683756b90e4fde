package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/reminder-admin/internal/service"
	"github.com/maxviazov/reminder-admin/pkg/response"
)

const (
	msgListRemindersFailed = "failed to load reminders"
	msgGetReminderFailed   = "failed to load reminder"
)

type ReminderHandler struct {
	svc    service.ReminderService
	limits service.PageLimits
}

func NewReminderHandler(svc service.ReminderService, limits service.PageLimits) *ReminderHandler {
	return &ReminderHandler{svc: svc, limits: limits}
}

func (h *ReminderHandler) Register(r *gin.RouterGroup) {
	g := r.Group(remindersPath)
	{
		g.GET("", h.list)
		g.GET(idParam, h.getByID)
	}
}

func (h *ReminderHandler) list(c *gin.Context) {
	page, err := service.ParsePage(c.Query("limit"), c.Query("offset"), h.limits)
	if err != nil {
		response.WriteError(c, err, msgListRemindersFailed)
		return
	}
	res, err := h.svc.ListReminders(c.Request.Context(), page)
	if err != nil {
		response.WriteError(c, err, msgListRemindersFailed)
		return
	}
	response.WritePage(c, res)
}

func (h *ReminderHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}), msgGetReminderFailed)
		return
	}
	reminder, err := h.svc.GetReminder(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err, msgGetReminderFailed)
		return
	}
	response.WriteData(c, http.StatusOK, reminder)
}
