// internal/service/profile_service.go
package service

import (
	"context"
	"errors"

	"go_5_vocab_trainer/internal/config"
	"go_5_vocab_trainer/internal/middleware"
	"go_5_vocab_trainer/internal/model"
	"go_5_vocab_trainer/internal/repository"

	"gorm.io/gorm"
)

// ProfileService は日次統計・連続記録 (ストリーク) と選択中カテゴリを管理します。
//
// 日付の切り替わり処理は起動時 (OnAppStart) に加えて、記録・参照の直前にも
// 遅延適用します。ブラウザのページロードと違い、サーバプロセスは日付をまたいで
// 生き続けるためです。
type ProfileService interface {
	// OnAppStart は起動時に日付の切り替わりを評価します。
	OnAppStart(ctx context.Context) error

	// ApplyRollover は必要なら日付切り替えを適用し、最新のプロファイルを返します。
	// 呼び出し元のトランザクション内で実行します。
	ApplyRollover(ctx context.Context, tx *gorm.DB) (*model.Profile, error)

	// IncrementPracticed は当日の復習回数を+1します (復習記録と同一トランザクションで呼ぶこと)。
	IncrementPracticed(ctx context.Context, tx *gorm.DB) (*model.Profile, error)

	// Snapshot は日付切り替えを適用した上で現在のプロファイルを返します。
	Snapshot(ctx context.Context) (*model.Profile, error)

	// ResetCounters は進捗全リセットの一環として統計・ストリークをゼロに戻します。
	// 選択中カテゴリは維持します。
	ResetCounters(ctx context.Context, tx *gorm.DB) error

	GetSelectedCategory(ctx context.Context) (model.Category, error)
	SetSelectedCategory(ctx context.Context, category model.Category) error
}

type profileService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
	cfg         *config.Config
	clock       Clock
}

func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository, cfg *config.Config, clock Clock) ProfileService {
	if clock == nil {
		clock = SystemClock
	}
	return &profileService{
		db:          db,
		profileRepo: profileRepo,
		cfg:         cfg,
		clock:       clock,
	}
}

// rollover は保存された日付と今日を比較し、必要なら日次統計とストリークを更新します。
// 変更があった場合は true を返します。
//
// ルール:
//   - 保存日付 == 今日: 何もしない
//   - 保存日付 == 昨日 かつ 目標達成済み: ストリーク+1
//   - それ以外 (日付飛び・目標未達・日付なし・日付破損): ストリークを0に戻す
//
// いずれの切り替えでも当日の復習回数は0から数え直します。
// ストリークの加算は日付が切り替わる瞬間にのみ起きるため、1日に2回増えることはありません。
func (s *profileService) rollover(profile *model.Profile) bool {
	now := s.clock.Now()
	today := now.Format(model.StatsDateLayout)
	if profile.StatsDate == today {
		return false
	}

	yesterday := now.AddDate(0, 0, -1).Format(model.StatsDateLayout)

	// 破損した日付文字列は「記録なし」として扱う (fail-soft)
	if _, ok := profile.StatsDay(now.Location()); ok &&
		profile.StatsDate == yesterday && profile.Practiced >= s.cfg.App.DailyGoal {
		profile.TotalStreak++
	} else {
		profile.TotalStreak = 0
	}

	profile.StatsDate = today
	profile.Practiced = 0
	return true
}

func (s *profileService) OnAppStart(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.Get(ctx, tx)
		if err != nil {
			logger.Error("Error loading profile on app start", "error", err)
			return model.ErrInternalServer
		}
		if s.rollover(profile) {
			if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
				logger.Error("Error saving profile after rollover", "error", err)
				return model.ErrInternalServer
			}
			logger.Info("Daily stats rolled over",
				"date", profile.StatsDate, "streak", profile.TotalStreak)
		}
		return nil
	})
}

func (s *profileService) ApplyRollover(ctx context.Context, tx *gorm.DB) (*model.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, tx)
	if err != nil {
		return nil, err
	}
	if s.rollover(profile) {
		if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *profileService) IncrementPracticed(ctx context.Context, tx *gorm.DB) (*model.Profile, error) {
	profile, err := s.ApplyRollover(ctx, tx)
	if err != nil {
		return nil, err
	}
	profile.Practiced++
	if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Snapshot(ctx context.Context) (*model.Profile, error) {
	logger := middleware.GetLogger(ctx)

	var profile *model.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		profile, txErr = s.ApplyRollover(ctx, tx)
		return txErr
	})
	if err != nil {
		logger.Error("Error taking profile snapshot", "error", err)
		return nil, model.ErrInternalServer
	}
	return profile, nil
}

func (s *profileService) ResetCounters(ctx context.Context, tx *gorm.DB) error {
	profile, err := s.profileRepo.Get(ctx, tx)
	if err != nil {
		return err
	}
	profile.StatsDate = ""
	profile.Practiced = 0
	profile.TotalStreak = 0
	return s.profileRepo.Update(ctx, tx, profile)
}

func (s *profileService) GetSelectedCategory(ctx context.Context) (model.Category, error) {
	profile, err := s.profileRepo.Get(ctx, s.db.WithContext(ctx))
	if err != nil {
		middleware.GetLogger(ctx).Error("Error loading profile for category", "error", err)
		return "", model.ErrInternalServer
	}
	return profile.SelectedCategory, nil
}

func (s *profileService) SetSelectedCategory(ctx context.Context, category model.Category) error {
	logger := middleware.GetLogger(ctx)

	if !category.IsValid() {
		return model.NewAppError("VALIDATION_ERROR", "不正なカテゴリです。", "category", model.ErrInvalidInput)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.Get(ctx, tx)
		if err != nil {
			return err
		}
		profile.SelectedCategory = category
		return s.profileRepo.Update(ctx, tx, profile)
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return err
		}
		logger.Error("Error updating selected category", "error", err)
		return model.ErrInternalServer
	}
	return nil
}
