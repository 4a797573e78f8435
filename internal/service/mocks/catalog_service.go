// internal/service/mocks/catalog_service.go
// テスト用の手書きモック (testify/mock ベース)
package mocks

import (
	"context"

	"go_5_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListItems(ctx context.Context, category model.Category) ([]*model.LearningItem, error) {
	args := m.Called(ctx, category)
	var items []*model.LearningItem
	if args.Get(0) != nil {
		items = args.Get(0).([]*model.LearningItem)
	}
	return items, args.Error(1)
}

func (m *CatalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*model.LearningItem, error) {
	args := m.Called(ctx, itemID)
	var item *model.LearningItem
	if args.Get(0) != nil {
		item = args.Get(0).(*model.LearningItem)
	}
	return item, args.Error(1)
}

func (m *CatalogService) AddCustomItem(ctx context.Context, req *model.PostItemRequest) (*model.LearningItem, error) {
	args := m.Called(ctx, req)
	var item *model.LearningItem
	if args.Get(0) != nil {
		item = args.Get(0).(*model.LearningItem)
	}
	return item, args.Error(1)
}

func (m *CatalogService) RemoveCustomItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}
