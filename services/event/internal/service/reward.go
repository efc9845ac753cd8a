package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rewardlab/event-platform/services/event/internal/models"
	"github.com/rewardlab/event-platform/services/event/internal/repo"
	"github.com/rewardlab/event-platform/services/event/internal/transport"
)

type RewardService struct {
	Repo *repo.GormRepo
}

func (s *RewardService) GetReward(ctx context.Context, id uuid.UUID) (*models.Reward, error) {
	return s.Repo.GetReward(ctx, id)
}

func (s *RewardService) ListRewards(ctx context.Context, eventID uuid.UUID) ([]models.Reward, error) {
	return s.Repo.ListRewards(ctx, eventID)
}

func (s *RewardService) CreateReward(ctx context.Context, req transport.CreateRewardRequest) (*models.Reward, error) {
	if !validRewardType(req.Type) || req.Quantity <= 0 {
		return nil, ErrValidation
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, ErrValidation
	}
	// The reward must hang off an existing event.
	if _, err := s.Repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	reward := models.Reward{
		Type:        req.Type,
		TargetID:    req.TargetID,
		Quantity:    req.Quantity,
		Description: req.Description,
		EventID:     eventID,
	}
	if err := s.Repo.CreateReward(ctx, &reward); err != nil {
		return nil, err
	}
	return &reward, nil
}

func (s *RewardService) PatchReward(ctx context.Context, id uuid.UUID, req transport.PatchRewardRequest) (*models.Reward, error) {
	reward, err := s.Repo.GetReward(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !validRewardType(*req.Type) {
			return nil, ErrValidation
		}
		reward.Type = *req.Type
	}
	if req.TargetID != nil {
		reward.TargetID = *req.TargetID
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrValidation
		}
		reward.Quantity = *req.Quantity
	}
	if req.Description != nil {
		reward.Description = *req.Description
	}

	if err := s.Repo.SaveReward(ctx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *RewardService) DeleteReward(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteReward(ctx, id)
}

func validRewardType(t string) bool {
	switch t {
	case models.RewardTypePoint, models.RewardTypeItem, models.RewardTypeCoupon:
		return true
	}
	return false
}
