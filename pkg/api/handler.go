// Package api exposes the scheduling services over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/core/operations"
	"github.com/jakechorley/production-scheduler/pkg/core/services"
	"github.com/jakechorley/production-scheduler/pkg/db"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for the route handlers
type Handler struct {
	DB       db.Database
	Provider capacity.Provider
	Engine   *allocator.Engine
	Logger   *zap.Logger
	// Health is checked by /healthz; nil means always healthy
	Health Pinger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.Logger))

	r.GET("/healthz", h.Healthz)
	r.GET("/work-centers", h.ListWorkCenters)

	jobs := r.Group("/jobs/:id")
	{
		jobs.POST("/schedule", h.ScheduleJob)
		jobs.DELETE("/schedule", h.RemoveSchedule)
	}

	r.POST("/schedule/preview", h.PreviewSchedule)
	r.POST("/operations/derive", h.DeriveOperations)

	return r
}

// Healthz checks the database connection
func (h *Handler) Healthz(c *gin.Context) {
	if h.Health != nil {
		if err := h.Health.Ping(c.Request.Context()); err != nil {
			h.Logger.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListWorkCenters returns the current capacity snapshot
func (h *Handler) ListWorkCenters(c *gin.Context) {
	snapshot, err := services.ListWorkCenters(c.Request.Context(), h.Provider, h.Logger)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ScheduleJob schedules a stored job and persists the result
func (h *Handler) ScheduleJob(c *gin.Context) {
	result, err := services.ScheduleJob(c.Request.Context(), h.DB, h.Provider, h.Engine, h.Logger, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Suggestion)
}

// RemoveSchedule deletes a job's persisted schedule
func (h *Handler) RemoveSchedule(c *gin.Context) {
	removed, err := services.RemoveSchedule(c.Request.Context(), h.DB, h.Provider, h.Logger, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// PreviewSchedule generates a suggestion for an ad-hoc job without persisting it
func (h *Handler) PreviewSchedule(c *gin.Context) {
	var req services.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := services.PreviewSchedule(c.Request.Context(), h.Provider, h.Engine, h.Logger, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// DeriveRequest is the body of POST /operations/derive
type DeriveRequest struct {
	Quantity  int              `json:"quantity" binding:"gte=0"`
	LineItems []model.LineItem `json:"lineItems" binding:"required,min=1"`
}

// DeriveResponse is the routing derived from line items
type DeriveResponse struct {
	Operations []model.Operation `json:"operations"`
	TotalHours float64           `json:"totalHours"`
}

// DeriveOperations turns line items into an ordered routing
func (h *Handler) DeriveOperations(c *gin.Context) {
	var req DeriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ops := operations.Derive(req.LineItems, req.Quantity)
	c.JSON(http.StatusOK, DeriveResponse{
		Operations: ops,
		TotalHours: operations.TotalHours(ops),
	})
}
