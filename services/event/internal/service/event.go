package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/services/event/internal/models"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
	"github.com/rewardlab/event-platform/services/event/internal/search"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

var ErrValidation = errors.New("validation failed")

type EventService struct {
	Repo *repo.GormRepo

	// Indexer is optional; nil disables search indexing.
	Indexer *search.Indexer
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return s.Repo.GetEvent(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, status string) ([]models.Event, error) {
	return s.Repo.ListEvents(ctx, status)
}

func (s *EventService) CreateEvent(ctx context.Context, req transport.CreateEventRequest) (*models.Event, error) {
	if err := validateEventFields(req.Name, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.EventStatusInactive
	}
	if status != models.EventStatusActive && status != models.EventStatusInactive {
		return nil, ErrValidation
	}

	provideBy := req.ProvideBy
	if provideBy == "" {
		provideBy = models.ProvideByOperator
	}

	event := models.Event{
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         status,
		ProvideBy:      provideBy,
		ConditionType:  req.ConditionType,
		ConditionCount: req.ConditionCount,
	}
	if err := s.Repo.CreateEvent(ctx, &event); err != nil {
		return nil, err
	}

	s.index(ctx, &event)
	return &event, nil
}

func (s *EventService) PatchEvent(ctx context.Context, id uuid.UUID, req transport.PatchEventRequest) (*models.Event, error) {
	event, err := s.Repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.Status != nil {
		if *req.Status != models.EventStatusActive && *req.Status != models.EventStatusInactive {
			return nil, ErrValidation
		}
		event.Status = *req.Status
	}
	if req.ProvideBy != nil {
		event.ProvideBy = *req.ProvideBy
	}
	if req.ConditionType != nil {
		event.ConditionType = *req.ConditionType
	}
	if req.ConditionCount != nil {
		event.ConditionCount = *req.ConditionCount
	}

	if err := validateEventFields(event.Name, event.StartDate, event.EndDate); err != nil {
		return nil, err
	}
	if err := s.Repo.SaveEvent(ctx, event); err != nil {
		return nil, err
	}

	s.index(ctx, event)
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	if s.Indexer != nil {
		if err := s.Indexer.DeleteEvent(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("event_unindex_failed", "event_id", id, "error", err)
		}
	}
	return nil
}

func (s *EventService) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	if s.Indexer == nil {
		return nil, search.ErrUnavailable
	}
	return s.Indexer.Search(ctx, query)
}

// index is best-effort: a search outage must not fail a write.
func (s *EventService) index(ctx context.Context, event *models.Event) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexEvent(ctx, event); err != nil {
		logging.FromContext(ctx).Warn("event_index_failed", "event_id", event.ID, "error", err)
	}
}

func validateEventFields(name string, start, end time.Time) error {
	if name == "" || start.IsZero() || end.IsZero() || !end.After(start) {
		return ErrValidation
	}
	return nil
}
