package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is the minimal contract needed from storage to check readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	repo Pinger
}

func NewHealthHandler(repo Pinger) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness verifies the storage answers a ping.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "storage not configured"})
		return
	}
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "storage unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// StatusInfo is the static identity reported by /status.
type StatusInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Env     string `json:"env"`
	Driver  string `json:"storage_driver"`
}

type StatusHandler struct {
	info StatusInfo
}

func NewStatusHandler(info StatusInfo) *StatusHandler { return &StatusHandler{info: info} }

// Status reports a fixed payload; it never touches storage.
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.info})
}
