package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rewardlab/event-platform/services/event/internal/models"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
	"github.com/rewardlab/event-platform/services/event/internal/search"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Event{}, &models.Reward{}, &models.RequestReward{}, &models.Attendance{}))
	return db
}

func newTestEventService(t *testing.T) *EventService {
	t.Helper()
	return &EventService{Repo: &repo.GormRepo{DB: initTestDB(t)}}
}

func validEventRequest() transport.CreateEventRequest {
	now := time.Now()
	return transport.CreateEventRequest{
		Name:        "spring festival",
		Description: "daily rewards",
		StartDate:   now.Add(-time.Hour),
		EndDate:     now.Add(24 * time.Hour),
		Status:      models.EventStatusActive,
	}
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(t)
	event, err := svc.CreateEvent(context.Background(), validEventRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, models.EventStatusActive, event.Status)
	assert.Equal(t, models.ProvideByOperator, event.ProvideBy)
}

func TestCreateEvent_DefaultsToInactive(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(t)
	req := validEventRequest()
	req.Status = ""

	event, err := svc.CreateEvent(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusInactive, event.Status)
}

func TestCreateEvent_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*transport.CreateEventRequest)
	}{
		{name: "empty name", mutate: func(r *transport.CreateEventRequest) { r.Name = "" }},
		{name: "zero start", mutate: func(r *transport.CreateEventRequest) { r.StartDate = time.Time{} }},
		{name: "zero end", mutate: func(r *transport.CreateEventRequest) { r.EndDate = time.Time{} }},
		{name: "end before start", mutate: func(r *transport.CreateEventRequest) { r.EndDate = r.StartDate.Add(-time.Hour) }},
		{name: "unknown status", mutate: func(r *transport.CreateEventRequest) { r.Status = "paused" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validEventRequest()
			tt.mutate(&req)
			_, err := svc.CreateEvent(ctx, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPatchEvent(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validEventRequest())
	require.NoError(t, err)

	status := models.EventStatusInactive
	name := "renamed"
	patched, err := svc.PatchEvent(ctx, event.ID, transport.PatchEventRequest{Status: &status, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusInactive, patched.Status)
	assert.Equal(t, "renamed", patched.Name)
	// untouched fields survive
	assert.Equal(t, event.Description, patched.Description)

	bad := "paused"
	_, err = svc.PatchEvent(ctx, event.ID, transport.PatchEventRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchEvent(ctx, uuid.New(), transport.PatchEventRequest{Name: &name})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validEventRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))
	_, err = svc.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, event.ID), gorm.ErrRecordNotFound)
}

func TestListEvents_StatusFilter(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(t)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, validEventRequest())
	require.NoError(t, err)
	inactive := validEventRequest()
	inactive.Status = models.EventStatusInactive
	_, err = svc.CreateEvent(ctx, inactive)
	require.NoError(t, err)

	all, err := svc.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListEvents(ctx, models.EventStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, models.EventStatusActive, active[0].Status)
}

func TestSearchEvents_Unconfigured(t *testing.T) {
	t.Parallel()

	svc := newTestEventService(t)
	_, err := svc.SearchEvents(context.Background(), "festival")
	assert.ErrorIs(t, err, search.ErrUnavailable)
}
