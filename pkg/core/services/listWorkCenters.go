package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/production-scheduler/pkg/core/capacity"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
)

// ListWorkCenters returns the current capacity snapshot
func ListWorkCenters(ctx context.Context, provider capacity.Provider, logger *zap.Logger) ([]model.WorkCenterCapacity, error) {
	snapshot, err := provider.GetCapacity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capacity: %w", err)
	}

	logger.Debug("Work centers listed", zap.Int("count", len(snapshot)))
	return snapshot, nil
}
