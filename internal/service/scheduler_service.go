// internal/service/scheduler_service.go
package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"go_5_vocab_trainer/internal/config"
	"go_5_vocab_trainer/internal/middleware"
	"go_5_vocab_trainer/internal/model"
	"go_5_vocab_trainer/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchedulerService は次に出題する項目の選択と、回答結果による復習状態の更新を担います。
//
// 項目は概念的に4状態を遷移します:
//   - New:      復習状態なし。常に出題対象 (期限到来扱い)
//   - Due:      期限到来かつレベル5未満
//   - NotDue:   期限前
//   - Mastered: レベル5。以後出題されない終端状態
type SchedulerService interface {
	PickNext(ctx context.Context, category model.Category, excludeID uuid.UUID) (*model.NextReviewResponse, error)
	RecordOutcome(ctx context.Context, itemID uuid.UUID, correct bool) (*model.ReviewState, error)
	RecordPractice(ctx context.Context, itemID uuid.UUID) (*model.ReviewState, error)
	GetStats(ctx context.Context) (*model.StatsResponse, error)
	ResetAllProgress(ctx context.Context) error
}

type schedulerService struct {
	db         *gorm.DB
	catalog    CatalogService
	progRepo   repository.ProgressRepository
	profileSvc ProfileService
	cfg        *config.Config
	clock      Clock
}

func NewSchedulerService(db *gorm.DB, catalog CatalogService, progRepo repository.ProgressRepository, profileSvc ProfileService, cfg *config.Config, clock Clock) SchedulerService {
	if clock == nil {
		clock = SystemClock
	}
	return &schedulerService{
		db:         db,
		catalog:    catalog,
		progRepo:   progRepo,
		profileSvc: profileSvc,
		cfg:        cfg,
		clock:      clock,
	}
}

// candidate は出題候補の項目と復習状態 (未出題ならnil) の組です。
type candidate struct {
	item  *model.LearningItem
	state *model.ReviewState
}

func (c *candidate) level() int {
	if c.state == nil {
		return model.MinLevel // 未出題はレベル0扱い
	}
	return c.state.Level
}

func (s *schedulerService) PickNext(ctx context.Context, category model.Category, excludeID uuid.UUID) (*model.NextReviewResponse, error) {
	logger := middleware.GetLogger(ctx).With("category", string(category))
	now := s.clock.Now()

	items, err := s.catalog.ListItems(ctx, category)
	if err != nil {
		return nil, err
	}
	// 出題失敗はカテゴリに項目が1件もない場合のみ (期限到来が0件でも失敗しない)
	if len(items) == 0 {
		return nil, model.NewAppError("EMPTY_CATALOG", "このカテゴリには学習項目がありません。", "category", model.ErrEmptyCatalog)
	}

	states, err := s.progRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to load review states", "error", err)
		return nil, model.ErrInternalServer
	}
	stateByID := make(map[uuid.UUID]*model.ReviewState, len(states))
	for _, st := range states {
		stateByID[st.ItemID] = st
	}

	// 期限到来している項目 (New含む) を集める
	var due []candidate
	var notMastered []candidate
	for _, item := range items {
		st := stateByID[item.ItemID] // カタログに無い項目の復習状態 (orphan) はここで自然に無視される
		c := candidate{item: item, state: st}
		if st == nil {
			due = append(due, c)
			notMastered = append(notMastered, c)
			continue
		}
		if st.IsMastered() {
			continue
		}
		notMastered = append(notMastered, c)
		if st.IsDue(now) {
			due = append(due, c)
		}
	}

	var picked *candidate
	if len(due) > 0 {
		// レベル昇順 (習得から遠い順)、同レベルは期限の古い順。
		// 未出題項目は期限ゼロ値なので同レベル内で先頭に並ぶ。
		sort.SliceStable(due, func(i, j int) bool {
			if due[i].level() != due[j].level() {
				return due[i].level() < due[j].level()
			}
			ti, tj := dueTime(&due[i]), dueTime(&due[j])
			return ti.Before(tj)
		})
		picked = &due[0]
		if picked.item.ItemID == excludeID {
			// 直前の項目は避ける。ただし候補が1件ならそのまま出す
			for i := range due {
				if due[i].item.ItemID != excludeID {
					picked = &due[i]
					break
				}
			}
		}
	} else {
		// 期限到来なし: 未習得項目からランダム復習
		pool := notMastered
		if excludeID != uuid.Nil && len(pool) > 1 {
			filtered := make([]candidate, 0, len(pool))
			for _, c := range pool {
				if c.item.ItemID != excludeID {
					filtered = append(filtered, c)
				}
			}
			if len(filtered) > 0 {
				pool = filtered
			}
		}
		if len(pool) == 0 {
			// 全項目習得済み
			logger.Info("All items in category are mastered")
			return nil, model.NewAppError("ALL_MASTERED", "このカテゴリの項目はすべて習得済みです。", "category", model.ErrNotFound)
		}
		picked = &pool[rand.Intn(len(pool))]
	}

	logger.Debug("Picked next item", "item_id", picked.item.ItemID, "level", picked.level())
	return &model.NextReviewResponse{
		ItemID:   picked.item.ItemID,
		Text:     picked.item.Text,
		Category: picked.item.Category,
		Example:  picked.item.Example,
		Level:    picked.level(),
	}, nil
}

// dueTime は並べ替え用の期限時刻を返します。未出題はゼロ値 (最優先)。
func dueTime(c *candidate) time.Time {
	if c.state != nil {
		return c.state.NextReviewAt
	}
	return time.Time{}
}

func (s *schedulerService) RecordOutcome(ctx context.Context, itemID uuid.UUID, correct bool) (*model.ReviewState, error) {
	logger := middleware.GetLogger(ctx).With("item_id", itemID, "correct", correct)
	now := s.clock.Now()

	// カタログに存在しない項目への記録は拒否する
	if _, err := s.catalog.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "学習項目が見つかりません。", "item_id", model.ErrNotFound)
		}
		return nil, err
	}

	var updated *model.ReviewState

	// 復習状態・日次統計・ストリークは同一トランザクションで更新する
	// (呼び出し元から部分更新が観測されないこと)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := s.progRepo.FindByItemID(ctx, tx, itemID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding review state in transaction", "error", err)
			return model.ErrInternalServer
		}
		isNew := errors.Is(err, model.ErrNotFound)
		if isNew {
			state = &model.ReviewState{ItemID: itemID, Level: model.MinLevel}
		}

		// レベルは1回の記録で±1、[0,5]にクランプ。
		// レベル5 (習得済み) は終端状態で、不正解でも降格しない。
		if correct {
			state.CorrectCount++
			if state.Level < model.MaxLevel {
				state.Level++
			}
		} else {
			state.IncorrectCount++
			if state.Level > model.MinLevel && !state.IsMastered() {
				state.Level--
			}
		}

		// 次回期限は「新しい」レベルで間隔テーブルを引く
		state.NextReviewAt = now.Add(config.ReviewIntervals[state.Level])
		state.LastSeenAt = now

		if isNew {
			if err := s.progRepo.Create(ctx, tx, state); err != nil {
				logger.Error("Error creating review state", "error", err)
				return model.ErrInternalServer
			}
		} else {
			if err := s.progRepo.Update(ctx, tx, state); err != nil {
				logger.Error("Error updating review state", "error", err)
				return model.ErrInternalServer
			}
		}

		if _, err := s.profileSvc.IncrementPracticed(ctx, tx); err != nil {
			logger.Error("Error incrementing daily practiced count", "error", err)
			return model.ErrInternalServer
		}

		updated = state
		return nil // コミット
	})
	if err != nil {
		if errors.Is(err, model.ErrInternalServer) {
			return nil, err
		}
		logger.Error("Transaction failed for RecordOutcome", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Outcome recorded", "level", updated.Level, "next_review", updated.NextReviewAt)
	return updated, nil
}

// RecordPractice はフリーテキスト練習モードの記録パスです。
// 元のダッシュボードではこの経路は回答内容に関わらず常に「正解」として
// 進捗を進めます。クイックレートの記録経路と意図的に分けたまま残しています。
func (s *schedulerService) RecordPractice(ctx context.Context, itemID uuid.UUID) (*model.ReviewState, error) {
	return s.RecordOutcome(ctx, itemID, true)
}

func (s *schedulerService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	logger := middleware.GetLogger(ctx)
	now := s.clock.Now()

	items, err := s.catalog.ListItems(ctx, "")
	if err != nil {
		return nil, err
	}
	states, err := s.progRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to load review states for stats", "error", err)
		return nil, model.ErrInternalServer
	}
	stateByID := make(map[uuid.UUID]*model.ReviewState, len(states))
	for _, st := range states {
		stateByID[st.ItemID] = st
	}

	profile, err := s.profileSvc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.StatsResponse{
		Streak:        profile.TotalStreak,
		DailyProgress: profile.Practiced,
		DailyGoal:     s.cfg.App.DailyGoal,
		Category:      profile.SelectedCategory,
	}
	// カタログに存在する項目だけを数える (orphanの復習状態は無視)
	for _, item := range items {
		st, ok := stateByID[item.ItemID]
		if !ok {
			resp.DueCount++ // 未出題は期限到来扱い
			continue
		}
		if st.IsMastered() {
			resp.MasteredCount++
			continue
		}
		resp.LearningCount++
		if st.IsDue(now) {
			resp.DueCount++
		}
	}
	return resp, nil
}

func (s *schedulerService) ResetAllProgress(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)

	// 復習状態と日次統計・ストリークを消す。カスタム項目は残す。
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.progRepo.DeleteAll(ctx, tx); err != nil {
			logger.Error("Error deleting review states", "error", err)
			return model.ErrInternalServer
		}
		if err := s.profileSvc.ResetCounters(ctx, tx); err != nil {
			logger.Error("Error resetting profile counters", "error", err)
			return model.ErrInternalServer
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrInternalServer) {
			return err
		}
		logger.Error("Transaction failed for ResetAllProgress", "error", err)
		return model.ErrInternalServer
	}

	logger.Info("All progress reset")
	return nil
}
