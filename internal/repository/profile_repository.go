// internal/repository/profile_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_vocab_trainer/internal/model"

	"gorm.io/gorm"
)

// profileRowID はシングルトン行の固定主キーです。
const profileRowID = 1

// ProfileRepository は利用者プロファイル (日次統計・連続記録・選択カテゴリ) を管理します。
// 行は常に1件で、存在しなければデフォルト値で作成します。
type ProfileRepository interface {
	Get(ctx context.Context, db *gorm.DB) (*model.Profile, error)
	Update(ctx context.Context, tx *gorm.DB, profile *model.Profile) error // トランザクション対応
}

type gormProfileRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProfileRepository() ProfileRepository {
	return &gormProfileRepository{}
}

func (r *gormProfileRepository) Get(ctx context.Context, db *gorm.DB) (*model.Profile, error) {
	var profile model.Profile
	result := db.WithContext(ctx).Where("id = ?", profileRowID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// 初回アクセス時はデフォルト値で作成して返す
			profile = model.Profile{ID: profileRowID}
			if createErr := db.WithContext(ctx).Create(&profile).Error; createErr != nil {
				return nil, createErr
			}
			return &profile, nil
		}
		return nil, result.Error
	}
	return &profile, nil
}

func (r *gormProfileRepository) Update(ctx context.Context, tx *gorm.DB, profile *model.Profile) error {
	profile.ID = profileRowID
	// Select で全カラムを対象にし、ゼロ値 (Practiced=0 等) への更新も反映させる
	result := tx.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", profileRowID).
		Select("StatsDate", "Practiced", "TotalStreak", "SelectedCategory").
		Updates(profile)
	return result.Error
}
