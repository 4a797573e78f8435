// internal/service/catalog_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"go_5_vocab_trainer/internal/middleware"
	"go_5_vocab_trainer/internal/model"
	"go_5_vocab_trainer/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService は静的カタログとカスタム項目を合わせた学習項目一覧を提供します。
type CatalogService interface {
	ListItems(ctx context.Context, category model.Category) ([]*model.LearningItem, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*model.LearningItem, error)
	AddCustomItem(ctx context.Context, req *model.PostItemRequest) (*model.LearningItem, error)
	RemoveCustomItem(ctx context.Context, itemID uuid.UUID) error
}

type catalogService struct {
	db       *gorm.DB
	itemRepo repository.ItemRepository
	static   []model.LearningItem
	staticID map[uuid.UUID]*model.LearningItem // ID→静的項目の索引
}

// NewCatalogService はカタログサービスを作成します。
// static には通常 StaticCatalog() を渡します (テストでは任意の小さな一覧を注入可能)。
func NewCatalogService(db *gorm.DB, itemRepo repository.ItemRepository, static []model.LearningItem) CatalogService {
	byID := make(map[uuid.UUID]*model.LearningItem, len(static))
	for i := range static {
		byID[static[i].ItemID] = &static[i]
	}
	return &catalogService{
		db:       db,
		itemRepo: itemRepo,
		static:   static,
		staticID: byID,
	}
}

func (s *catalogService) ListItems(ctx context.Context, category model.Category) ([]*model.LearningItem, error) {
	logger := middleware.GetLogger(ctx)

	customs, err := s.itemRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list custom items from repository", "error", err)
		return nil, model.ErrInternalServer
	}

	// 並びは静的項目 (定義順) → カスタム項目 (追加順)
	items := make([]*model.LearningItem, 0, len(s.static)+len(customs))
	for i := range s.static {
		if category == "" || s.static[i].Category == category {
			items = append(items, &s.static[i])
		}
	}
	for _, c := range customs {
		if category == "" || c.Category == category {
			items = append(items, c)
		}
	}
	return items, nil
}

func (s *catalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*model.LearningItem, error) {
	if item, ok := s.staticID[itemID]; ok {
		return item, nil
	}
	item, err := s.itemRepo.FindByID(ctx, s.db, itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, model.ErrInternalServer
	}
	return item, nil
}

func (s *catalogService) AddCustomItem(ctx context.Context, req *model.PostItemRequest) (*model.LearningItem, error) {
	logger := middleware.GetLogger(ctx)

	// 空白のみのテキストは不可 (validatorのnotblankと二重だがサービス単体でも守る)
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "単語・フレーズを入力してください。", "text", model.ErrInvalidInput)
	}

	var createdItem *model.LearningItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 重複チェック (静的カタログとカスタム項目の両方)
		for i := range s.static {
			if s.static[i].Text == text {
				return model.ErrConflict
			}
		}
		exists, err := s.itemRepo.CheckTextExists(ctx, tx, text)
		if err != nil {
			logger.Error("Error checking text existence in transaction", "error", err)
			return model.ErrInternalServer
		}
		if exists {
			return model.ErrConflict
		}

		// 2. カスタム項目を作成 (カテゴリは常に custom)
		item := &model.LearningItem{
			ItemID:   uuid.New(),
			Text:     text,
			Category: model.CategoryCustom,
			Example:  strings.TrimSpace(req.Example),
			Custom:   true,
		}
		if err := s.itemRepo.Create(ctx, tx, item); err != nil {
			logger.Error("Error creating custom item in transaction", "error", err)
			return model.ErrInternalServer
		}

		createdItem = item
		return nil // コミット
	})

	if err != nil {
		if errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrInvalidInput) {
			return nil, err
		}
		logger.Error("Transaction failed for AddCustomItem", "error", err)
		return nil, model.ErrInternalServer
	}

	return createdItem, nil
}

func (s *catalogService) RemoveCustomItem(ctx context.Context, itemID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.itemRepo.Delete(ctx, tx, itemID)
	})
	if err != nil {
		// 存在しない項目の削除はno-op扱い
		// 残った復習状態 (orphan) はSchedulerが項目一覧に載らない限り選ばないため無害
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Custom item already absent, treating delete as no-op", "item_id", itemID)
			return nil
		}
		logger.Error("Error deleting custom item", "error", err)
		return model.ErrInternalServer
	}
	return nil
}
