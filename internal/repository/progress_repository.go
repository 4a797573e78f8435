// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRepository は項目ごとの復習状態 (ReviewState) を管理します。
type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error // トランザクション対応
	FindByItemID(ctx context.Context, db *gorm.DB, itemID uuid.UUID) (*model.ReviewState, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.ReviewState, error)
	Update(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error // トランザクション対応
	DeleteAll(ctx context.Context, tx *gorm.DB) error                       // 全リセット用
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error {
	result := tx.WithContext(ctx).Create(state)
	return result.Error
}

func (r *gormProgressRepository) FindByItemID(ctx context.Context, db *gorm.DB, itemID uuid.UUID) (*model.ReviewState, error) {
	var state model.ReviewState
	result := db.WithContext(ctx).Where("item_id = ?", itemID).First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &state, nil
}

func (r *gormProgressRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.ReviewState, error) {
	var states []*model.ReviewState
	// 出題優先度の並び (レベル昇順 → 期限昇順) はSchedulerが全項目を見て決めるが、
	// ここでも同じ並びで返しておくとタイブレークが安定する
	result := db.WithContext(ctx).
		Order("level ASC, next_review_at ASC").
		Find(&states)
	if result.Error != nil {
		return nil, result.Error
	}
	return states, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error {
	// state オブジェクト全体を渡して更新。事前の存在確認は呼び出し元 (Service) 想定。
	result := tx.WithContext(ctx).Save(state)
	return result.Error
}

func (r *gormProgressRepository) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	// resetAllProgress 用。物理削除で全行を消す。
	result := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ReviewState{})
	return result.Error
}
