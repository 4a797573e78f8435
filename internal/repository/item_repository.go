// internal/repository/item_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository はユーザ追加のカスタム項目を管理します。
// 静的カタログ項目はコード上の定義から生成されるため、ここでは扱いません。
type ItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *model.LearningItem) error // トランザクション対応
	FindByID(ctx context.Context, db *gorm.DB, itemID uuid.UUID) (*model.LearningItem, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.LearningItem, error)
	CheckTextExists(ctx context.Context, db *gorm.DB, text string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
}

type gormItemRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormItemRepository() ItemRepository {
	return &gormItemRepository{}
}

func (r *gormItemRepository) Create(ctx context.Context, tx *gorm.DB, item *model.LearningItem) error {
	// UUIDはService層で設定済み想定
	result := tx.WithContext(ctx).Create(item)
	return result.Error
}

func (r *gormItemRepository) FindByID(ctx context.Context, db *gorm.DB, itemID uuid.UUID) (*model.LearningItem, error) {
	var item model.LearningItem
	// GORMのFirstはデフォルトで deleted_at IS NULL を考慮する
	result := db.WithContext(ctx).Where("item_id = ?", itemID).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

func (r *gormItemRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.LearningItem, error) {
	var items []*model.LearningItem
	// 追加順で返す (カタログ順序は静的項目→カスタム項目の追加順)
	result := db.WithContext(ctx).Order("created_at ASC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *gormItemRepository) CheckTextExists(ctx context.Context, db *gorm.DB, text string) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.LearningItem{}).Where("text = ?", text).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *gormItemRepository) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	// 論理削除。対象が存在しない場合の扱いは呼び出し元 (Service) が決める。
	result := tx.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.LearningItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
