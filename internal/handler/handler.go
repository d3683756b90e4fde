package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/reminder-admin/internal/service"
)

// Deps are the collaborators the HTTP surface needs. Routes of a nil service
// are not mounted and answer 404; health, status and docs are always there.
type Deps struct {
	Pinger    Pinger
	Reminders service.ReminderService
	Users     service.UserService
	Limits    service.PageLimits
	Status    StatusInfo
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, d Deps) {
	if d.Limits == (service.PageLimits{}) {
		d.Limits = service.DefaultPageLimits()
	}
	h := NewHealthHandler(d.Pinger)

	// Health probes
	r.GET(LivePath, h.Liveness)
	r.GET(ReadyPath, h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group(healthGroup)
		{
			health.GET(LivePath, h.Liveness)
			health.GET(ReadyPath, h.Readiness)
		}
		api.GET(statusPath, NewStatusHandler(d.Status).Status)
		if d.Reminders != nil {
			NewReminderHandler(d.Reminders, d.Limits).Register(api)
		}
		if d.Users != nil {
			NewUserHandler(d.Users, d.Limits).Register(api)
		}
	}
}
