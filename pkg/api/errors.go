package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/db"
)

// StatusFor maps a service error to an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, allocator.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrCapacityChanged):
		return http.StatusConflict
	case errors.Is(err, allocator.ErrUnplaceableOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, capacity.ErrProviderFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.Logger.Info("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
