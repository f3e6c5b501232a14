package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/production-scheduler/pkg/core/allocator"
	"github.com/jakechorley/production-scheduler/pkg/core/model"
	"github.com/jakechorley/production-scheduler/pkg/db"
)

var fixedNow = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func newTestEngine() *allocator.Engine {
	return allocator.NewEngine(allocator.EngineConfig{
		Clock:    func() time.Time { return fixedNow },
		Location: time.UTC,
	})
}

// mockStore is an in-memory db.Database
type mockStore struct {
	jobs       map[string]*db.Job
	operations map[string][]db.JobOperation
	lineItems  map[string][]db.LineItem
	schedules  map[string][]db.ScheduledOperation
	centers    []db.WorkCenter

	replaceErr      error
	insertedOps     []db.JobOperation
	replaceCalls    int
	getScheduleErr  error
	workCentersErr error
}

var _ db.Database = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		jobs:       make(map[string]*db.Job),
		operations: make(map[string][]db.JobOperation),
		lineItems:  make(map[string][]db.LineItem),
		schedules:  make(map[string][]db.ScheduledOperation),
	}
}

func (m *mockStore) GetJob(ctx context.Context, jobID string) (*db.Job, error) {
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", jobID, db.ErrNotFound)
	}
	return job, nil
}

func (m *mockStore) GetJobOperations(ctx context.Context, jobID string) ([]db.JobOperation, error) {
	return m.operations[jobID], nil
}

func (m *mockStore) GetLineItems(ctx context.Context, jobID string) ([]db.LineItem, error) {
	return m.lineItems[jobID], nil
}

func (m *mockStore) InsertJobOperations(ctx context.Context, ops []db.JobOperation) error {
	m.insertedOps = append(m.insertedOps, ops...)
	for _, op := range ops {
		m.operations[op.JobID] = append(m.operations[op.JobID], op)
	}
	return nil
}

func (m *mockStore) GetSchedule(ctx context.Context, jobID string) ([]db.ScheduledOperation, error) {
	if m.getScheduleErr != nil {
		return nil, m.getScheduleErr
	}
	return m.schedules[jobID], nil
}

func (m *mockStore) ReplaceSchedule(ctx context.Context, jobID string, ops []db.ScheduledOperation) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.schedules[jobID] = ops
	return nil
}

func (m *mockStore) DeleteSchedule(ctx context.Context, jobID string) (int64, error) {
	n := int64(len(m.schedules[jobID]))
	delete(m.schedules, jobID)
	return n, nil
}

func (m *mockStore) GetWorkCenters(ctx context.Context) ([]db.WorkCenter, error) {
	if m.workCentersErr != nil {
		return nil, m.workCentersErr
	}
	return m.centers, nil
}

func (m *mockStore) GetBookings(ctx context.Context, from time.Time) ([]db.ScheduledOperation, error) {
	var bookings []db.ScheduledOperation
	for _, ops := range m.schedules {
		for _, op := range ops {
			if op.ScheduledEnd.After(from) {
				bookings = append(bookings, op)
			}
		}
	}
	return bookings, nil
}

// mockProvider returns a fixed snapshot and records invalidations
type mockProvider struct {
	snapshot    []model.WorkCenterCapacity
	err         error
	invalidated int
}

func (p *mockProvider) GetCapacity(ctx context.Context) ([]model.WorkCenterCapacity, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.snapshot, nil
}

func (p *mockProvider) Invalidate(ctx context.Context) error {
	p.invalidated++
	return nil
}

func openCenter(id string, maxCapacity, load int, hours int) model.WorkCenterCapacity {
	return model.WorkCenterCapacity{
		WorkCenterID: id,
		Name:         id,
		MaxCapacity:  maxCapacity,
		CurrentLoad:  load,
		TimeSlots: []model.TimeSlot{
			{WorkCenterID: id, Start: fixedNow, End: fixedNow.Add(time.Duration(hours) * time.Hour), Available: true},
		},
	}
}

func storedJob(id string) *db.Job {
	return &db.Job{
		ID:            id,
		JobNumber:     "Q-" + id,
		DueDate:       time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		PriorityLevel: 3,
		Quantity:      10,
	}
}
