package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/services/event/internal/models"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
	"github.com/rewardlab/event-platform/services/event/internal/stream"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

var ErrAlreadyProcessed = errors.New("request already processed")

type RequestRewardService struct {
	Repo *repo.GormRepo

	// Producer is optional; nil disables verdict publishing.
	Producer *stream.Producer

	// Now is swappable for tests.
	Now func() time.Time
}

func (s *RequestRewardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Claim runs the reward claim flow. Every outcome, success or fail, is
// recorded as a verdict; only infrastructure trouble returns an error.
func (s *RequestRewardService) Claim(ctx context.Context, userID string, eventIDStr string) (*models.RequestReward, error) {
	if userID == "" {
		return nil, ErrValidation
	}
	eventID, err := uuid.Parse(eventIDStr)
	if err != nil {
		return nil, ErrValidation
	}

	event, err := s.Repo.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return s.record(ctx, userID, eventID, nil, models.RequestResultFail, "Event not found")
		}
		return nil, err
	}

	if event.Status != models.EventStatusActive {
		return s.record(ctx, userID, eventID, event, models.RequestResultFail, "Event is not active")
	}

	now := s.now()
	if now.Before(event.StartDate) || now.After(event.EndDate) {
		return s.record(ctx, userID, eventID, event, models.RequestResultFail, "Event is not in valid period")
	}

	if event.ProvideBy == models.ProvideBySystem && event.ConditionType != "" {
		met, err := s.conditionMet(ctx, userID, event)
		if err != nil {
			return nil, err
		}
		if !met {
			return s.record(ctx, userID, eventID, event, models.RequestResultFail, "Event condition not met")
		}
	}

	return s.record(ctx, userID, eventID, event, models.RequestResultSuccess, "Reward successfully claimed")
}

func (s *RequestRewardService) conditionMet(ctx context.Context, userID string, event *models.Event) (bool, error) {
	switch event.ConditionType {
	case models.ConditionAttendanceDays:
		days, err := s.Repo.CountAttendanceDays(ctx, userID)
		if err != nil {
			return false, err
		}
		return days >= int64(event.ConditionCount), nil
	default:
		// Unknown condition types cannot be auto-verified.
		return false, nil
	}
}

func (s *RequestRewardService) record(ctx context.Context, userID string, eventID uuid.UUID, event *models.Event, result, message string) (*models.RequestReward, error) {
	req := models.RequestReward{
		UserID:      userID,
		EventID:     eventID,
		Result:      result,
		Message:     message,
		RequestedAt: s.now(),
	}
	if event != nil {
		req.ConditionType = event.ConditionType
		req.ConditionCount = event.ConditionCount
	}
	if err := s.Repo.CreateRequestReward(ctx, &req); err != nil {
		return nil, err
	}
	s.publish(ctx, &req)
	return &req, nil
}

// publish is best-effort: the audit stream must not fail a claim.
func (s *RequestRewardService) publish(ctx context.Context, req *models.RequestReward) {
	if s.Producer == nil {
		return
	}
	verdict := stream.Verdict{
		RequestID:   req.ID.String(),
		UserID:      req.UserID,
		EventID:     req.EventID.String(),
		Result:      req.Result,
		Message:     req.Message,
		RequestedAt: req.RequestedAt,
	}
	if err := s.Producer.PublishVerdict(ctx, verdict); err != nil {
		logging.FromContext(ctx).Warn("verdict_publish_failed", "request_id", verdict.RequestID, "error", err)
	}
}

func (s *RequestRewardService) Get(ctx context.Context, id uuid.UUID) (*models.RequestReward, error) {
	return s.Repo.GetRequestReward(ctx, id)
}

func (s *RequestRewardService) List(ctx context.Context, f repo.RequestRewardFilter) ([]models.RequestReward, error) {
	return s.Repo.ListRequestRewards(ctx, f)
}

// Process is the manual verdict by staff: flips the request to processed
// with the given result. Exactly once per request.
func (s *RequestRewardService) Process(ctx context.Context, req transport.ProcessRequestRewardRequest) (*models.RequestReward, error) {
	id, err := uuid.Parse(req.RequestID)
	if err != nil {
		return nil, ErrValidation
	}
	if req.Result != models.RequestResultSuccess && req.Result != models.RequestResultFail {
		return nil, ErrValidation
	}

	request, err := s.Repo.GetRequestReward(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.IsProcessed {
		return nil, ErrAlreadyProcessed
	}

	message := req.Message
	if message == "" {
		if req.Result == models.RequestResultSuccess {
			message = "Manually approved by operator"
		} else {
			message = "Manually rejected by operator"
		}
	}

	now := s.now()
	request.Result = req.Result
	request.Message = message
	request.IsProcessed = true
	request.ProcessedAt = &now

	if err := s.Repo.SaveRequestReward(ctx, request); err != nil {
		return nil, err
	}
	s.publish(ctx, request)
	return request, nil
}

func (s *RequestRewardService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteRequestReward(ctx, id)
}
