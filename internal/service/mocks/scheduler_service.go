// internal/service/mocks/scheduler_service.go
// テスト用の手書きモック (testify/mock ベース)
package mocks

import (
	"context"

	"go_5_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type SchedulerService struct {
	mock.Mock
}

func (m *SchedulerService) PickNext(ctx context.Context, category model.Category, excludeID uuid.UUID) (*model.NextReviewResponse, error) {
	args := m.Called(ctx, category, excludeID)
	var next *model.NextReviewResponse
	if args.Get(0) != nil {
		next = args.Get(0).(*model.NextReviewResponse)
	}
	return next, args.Error(1)
}

func (m *SchedulerService) RecordOutcome(ctx context.Context, itemID uuid.UUID, correct bool) (*model.ReviewState, error) {
	args := m.Called(ctx, itemID, correct)
	var state *model.ReviewState
	if args.Get(0) != nil {
		state = args.Get(0).(*model.ReviewState)
	}
	return state, args.Error(1)
}

func (m *SchedulerService) RecordPractice(ctx context.Context, itemID uuid.UUID) (*model.ReviewState, error) {
	args := m.Called(ctx, itemID)
	var state *model.ReviewState
	if args.Get(0) != nil {
		state = args.Get(0).(*model.ReviewState)
	}
	return state, args.Error(1)
}

func (m *SchedulerService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	args := m.Called(ctx)
	var stats *model.StatsResponse
	if args.Get(0) != nil {
		stats = args.Get(0).(*model.StatsResponse)
	}
	return stats, args.Error(1)
}

func (m *SchedulerService) ResetAllProgress(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
