// internal/service/mocks/profile_service.go
// テスト用の手書きモック (testify/mock ベース)
package mocks

import (
	"context"

	"go_5_vocab_trainer/internal/model"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type ProfileService struct {
	mock.Mock
}

func (m *ProfileService) OnAppStart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *ProfileService) ApplyRollover(ctx context.Context, tx *gorm.DB) (*model.Profile, error) {
	args := m.Called(ctx, tx)
	var profile *model.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*model.Profile)
	}
	return profile, args.Error(1)
}

func (m *ProfileService) IncrementPracticed(ctx context.Context, tx *gorm.DB) (*model.Profile, error) {
	args := m.Called(ctx, tx)
	var profile *model.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*model.Profile)
	}
	return profile, args.Error(1)
}

func (m *ProfileService) Snapshot(ctx context.Context) (*model.Profile, error) {
	args := m.Called(ctx)
	var profile *model.Profile
	if args.Get(0) != nil {
		profile = args.Get(0).(*model.Profile)
	}
	return profile, args.Error(1)
}

func (m *ProfileService) ResetCounters(ctx context.Context, tx *gorm.DB) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *ProfileService) GetSelectedCategory(ctx context.Context) (model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *ProfileService) SetSelectedCategory(ctx context.Context, category model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
