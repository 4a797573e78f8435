// internal/service/scheduler_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"go_5_vocab_trainer/internal/config"
	"go_5_vocab_trainer/internal/model"
	"go_5_vocab_trainer/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type schedulerFixture struct {
	db        *gorm.DB
	clock     *fixedClock
	catalog   CatalogService
	profile   ProfileService
	scheduler SchedulerService
	progRepo  repository.ProgressRepository
	cfg       *config.Config
}

func newSchedulerForTest(t *testing.T, static []model.LearningItem) *schedulerFixture {
	t.Helper()
	db := setupTestDB(t)
	clock := newFixedClock()
	cfg := testConfig()

	itemRepo := repository.NewGormItemRepository()
	progRepo := repository.NewGormProgressRepository()
	profileRepo := repository.NewGormProfileRepository()

	catalog := NewCatalogService(db, itemRepo, static)
	profile := NewProfileService(db, profileRepo, cfg, clock)
	scheduler := NewSchedulerService(db, catalog, progRepo, profile, cfg, clock)

	return &schedulerFixture{
		db:        db,
		clock:     clock,
		catalog:   catalog,
		profile:   profile,
		scheduler: scheduler,
		progRepo:  progRepo,
		cfg:       cfg,
	}
}

// seedState は復習状態を直接DBに挿入するヘルパー
func (f *schedulerFixture) seedState(t *testing.T, itemID uuid.UUID, level int, nextReviewAt time.Time) {
	t.Helper()
	state := &model.ReviewState{
		ItemID:       itemID,
		Level:        level,
		LastSeenAt:   f.clock.Now().Add(-4 * time.Hour),
		NextReviewAt: nextReviewAt,
	}
	require.NoError(t, f.progRepo.Create(context.Background(), f.db, state))
}

func Test_schedulerService_PickNext_FreshCatalog(t *testing.T) {
	// 未出題の項目は常に出題対象 (レベル0扱い)
	ctx := context.Background()
	static := staticTestItems(
		[2]string{"run errands", "everyday"},
		[2]string{"grab a bite", "everyday"},
		[2]string{"put off", "phrasal-verb"},
	)
	f := newSchedulerForTest(t, static)

	next, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 0, next.Level)
	assert.Equal(t, model.CategoryEveryday, next.Category)

	// 直前の項目を除外すると別の項目が返る
	other, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, next.ItemID)
	require.NoError(t, err)
	assert.NotEqual(t, next.ItemID, other.ItemID)
}

func Test_schedulerService_PickNext_Priority(t *testing.T) {
	// 期限到来の項目はレベル昇順→期限の古い順で選ばれる
	ctx := context.Background()
	static := staticTestItems(
		[2]string{"a", "everyday"},
		[2]string{"b", "everyday"},
		[2]string{"c", "everyday"},
		[2]string{"d", "everyday"},
	)
	f := newSchedulerForTest(t, static)
	now := f.clock.Now()

	f.seedState(t, static[0].ItemID, 2, now.Add(-2*time.Hour)) // due, level2
	f.seedState(t, static[1].ItemID, 1, now.Add(-time.Hour))   // due, level1 → 最優先
	f.seedState(t, static[2].ItemID, 1, now.Add(time.Hour))    // not due
	f.seedState(t, static[3].ItemID, 5, now.Add(-time.Hour))   // mastered → 対象外

	next, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, static[1].ItemID, next.ItemID)
	assert.Equal(t, 1, next.Level)

	// 最優先を除外すると次点 (レベル2) が返る
	next, err = f.scheduler.PickNext(ctx, model.CategoryEveryday, static[1].ItemID)
	require.NoError(t, err)
	assert.Equal(t, static[0].ItemID, next.ItemID)
}

func Test_schedulerService_PickNext_TieBreakByDueDate(t *testing.T) {
	// 同レベルなら期限の古いものが先
	ctx := context.Background()
	static := staticTestItems(
		[2]string{"a", "everyday"},
		[2]string{"b", "everyday"},
	)
	f := newSchedulerForTest(t, static)
	now := f.clock.Now()

	f.seedState(t, static[0].ItemID, 2, now.Add(-time.Hour))
	f.seedState(t, static[1].ItemID, 2, now.Add(-3*time.Hour)) // より過期

	next, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, static[1].ItemID, next.ItemID)
}

func Test_schedulerService_PickNext_RandomWhenNoneDue(t *testing.T) {
	// 期限到来が0件でも失敗せず、未習得項目からランダムに選ぶ
	ctx := context.Background()
	static := staticTestItems(
		[2]string{"a", "everyday"},
		[2]string{"b", "everyday"},
	)
	f := newSchedulerForTest(t, static)
	future := f.clock.Now().Add(24 * time.Hour)

	f.seedState(t, static[0].ItemID, 2, future)
	f.seedState(t, static[1].ItemID, 3, future)

	// 除外指定があれば残りの1件が必ず返る
	for i := 0; i < 5; i++ {
		next, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, static[0].ItemID)
		require.NoError(t, err)
		assert.Equal(t, static[1].ItemID, next.ItemID)
	}

	// 候補が1件しかない場合は除外指定されていてもその項目を返す
	single := staticTestItems([2]string{"only", "slang"})
	f2 := newSchedulerForTest(t, single)
	f2.seedState(t, single[0].ItemID, 1, f2.clock.Now().Add(time.Hour))

	next, err := f2.scheduler.PickNext(ctx, model.CategorySlang, single[0].ItemID)
	require.NoError(t, err)
	assert.Equal(t, single[0].ItemID, next.ItemID)
}

func Test_schedulerService_PickNext_EmptyCategory(t *testing.T) {
	// 項目が1件もないカテゴリのみ失敗する (期限到来0件は失敗ではない)
	ctx := context.Background()
	static := staticTestItems([2]string{"a", "everyday"})
	f := newSchedulerForTest(t, static)

	next, err := f.scheduler.PickNext(ctx, model.CategoryBusiness, uuid.Nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmptyCatalog)
	assert.Nil(t, next)
}

func Test_schedulerService_PickNext_AllMastered(t *testing.T) {
	ctx := context.Background()
	static := staticTestItems([2]string{"a", "everyday"})
	f := newSchedulerForTest(t, static)
	f.seedState(t, static[0].ItemID, 5, f.clock.Now().Add(-time.Hour))

	next, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, uuid.Nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Nil(t, next)
}

func Test_schedulerService_RecordOutcome(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		seedLevel    *int // nilなら未出題
		correct      bool
		wantLevel    int
		wantInterval time.Duration
	}{
		{
			name:         "正常系: 初回正解でレベル1、1時間後に再出題",
			seedLevel:    nil,
			correct:      true,
			wantLevel:    1,
			wantInterval: time.Hour,
		},
		{
			name:         "正常系: 初回不正解はレベル0のまま、即時再出題",
			seedLevel:    nil,
			correct:      false,
			wantLevel:    0,
			wantInterval: 0,
		},
		{
			name:         "正常系: レベル4で正解すると習得 (7日後)",
			seedLevel:    intPtr(4),
			correct:      true,
			wantLevel:    5,
			wantInterval: 168 * time.Hour,
		},
		{
			name:         "正常系: レベル2で不正解はレベル1に降格、1時間後",
			seedLevel:    intPtr(2),
			correct:      false,
			wantLevel:    1,
			wantInterval: time.Hour,
		},
		{
			name:         "正常系: 習得済みは不正解でも降格しない (終端状態)",
			seedLevel:    intPtr(5),
			correct:      false,
			wantLevel:    5,
			wantInterval: 168 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			static := staticTestItems([2]string{"a", "everyday"})
			f := newSchedulerForTest(t, static)
			now := f.clock.Now()

			if tt.seedLevel != nil {
				f.seedState(t, static[0].ItemID, *tt.seedLevel, now.Add(-time.Hour))
			}

			state, err := f.scheduler.RecordOutcome(ctx, static[0].ItemID, tt.correct)
			require.NoError(t, err)
			require.NotNil(t, state)

			assert.Equal(t, tt.wantLevel, state.Level)
			assert.True(t, state.NextReviewAt.Equal(now.Add(tt.wantInterval)),
				"nextReviewAt = %v, want %v", state.NextReviewAt, now.Add(tt.wantInterval))
			assert.True(t, state.LastSeenAt.Equal(now))
			assert.False(t, state.NextReviewAt.Before(state.LastSeenAt))
			if tt.correct {
				assert.Equal(t, 1, state.CorrectCount)
			} else {
				assert.Equal(t, 1, state.IncorrectCount)
			}
		})
	}
}

func Test_schedulerService_RecordOutcome_UnknownItem(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerForTest(t, staticTestItems([2]string{"a", "everyday"}))

	state, err := f.scheduler.RecordOutcome(ctx, uuid.New(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Nil(t, state)
}

func Test_schedulerService_RecordOutcome_LevelBounds(t *testing.T) {
	// どんな回答列でもレベルは常に [0,5] に収まる
	ctx := context.Background()
	static := staticTestItems([2]string{"a", "everyday"})
	f := newSchedulerForTest(t, static)

	outcomes := []bool{false, false, true, true, true, true, true, true, true, false, false, true}
	for _, correct := range outcomes {
		state, err := f.scheduler.RecordOutcome(ctx, static[0].ItemID, correct)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.Level, model.MinLevel)
		assert.LessOrEqual(t, state.Level, model.MaxLevel)
	}
}

func Test_schedulerService_RecordOutcome_UpdatesDailyStats(t *testing.T) {
	// 復習記録と同時に当日の回数が増える
	ctx := context.Background()
	static := staticTestItems([2]string{"a", "everyday"})
	f := newSchedulerForTest(t, static)

	_, err := f.scheduler.RecordOutcome(ctx, static[0].ItemID, true)
	require.NoError(t, err)
	_, err = f.scheduler.RecordOutcome(ctx, static[0].ItemID, false)
	require.NoError(t, err)

	profile, err := f.profile.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Practiced)
}

func Test_schedulerService_RecordPractice(t *testing.T) {
	// 練習モードは回答内容に関わらず正解として進捗を進める
	ctx := context.Background()
	static := staticTestItems([2]string{"a", "everyday"})
	f := newSchedulerForTest(t, static)

	state, err := f.scheduler.RecordPractice(ctx, static[0].ItemID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, 1, state.CorrectCount)
}

func Test_schedulerService_TerminalMastery(t *testing.T) {
	// 一度習得したら resetAllProgress まで出題されない
	ctx := context.Background()
	static := staticTestItems(
		[2]string{"a", "everyday"},
		[2]string{"b", "everyday"},
	)
	f := newSchedulerForTest(t, static)
	f.seedState(t, static[0].ItemID, 4, f.clock.Now().Add(-time.Hour))

	state, err := f.scheduler.RecordOutcome(ctx, static[0].ItemID, true)
	require.NoError(t, err)
	require.Equal(t, model.MaxLevel, state.Level)

	// クロックを大きく進めても習得済み項目は選ばれない
	f.clock.Advance(30 * 24 * time.Hour)
	for i := 0; i < 10; i++ {
		next, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, static[1].ItemID, next.ItemID)
	}

	// リセット後は再び出題対象に戻る
	require.NoError(t, f.scheduler.ResetAllProgress(ctx))
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 20; i++ {
		next, err := f.scheduler.PickNext(ctx, model.CategoryEveryday, uuid.Nil)
		require.NoError(t, err)
		seen[next.ItemID] = true
	}
	assert.True(t, seen[static[0].ItemID])
}

func Test_schedulerService_GetStats(t *testing.T) {
	ctx := context.Background()
	static := staticTestItems(
		[2]string{"a", "everyday"},
		[2]string{"b", "everyday"},
		[2]string{"c", "slang"},
		[2]string{"d", "slang"},
	)
	f := newSchedulerForTest(t, static)
	now := f.clock.Now()

	f.seedState(t, static[0].ItemID, 5, now.Add(-time.Hour))   // mastered
	f.seedState(t, static[1].ItemID, 2, now.Add(-time.Hour))   // learning, due
	f.seedState(t, static[2].ItemID, 3, now.Add(24*time.Hour)) // learning, not due
	f.seedState(t, uuid.New(), 4, now.Add(-time.Hour))         // orphan → 無視される
	// static[3] は未出題 → due扱い

	stats, err := f.scheduler.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MasteredCount)
	assert.Equal(t, 2, stats.LearningCount)
	assert.Equal(t, 2, stats.DueCount) // due(level2) + 未出題
	assert.Equal(t, 5, stats.DailyGoal)
}

func Test_schedulerService_ResetAllProgress(t *testing.T) {
	// 進捗と統計は消えるがカスタム項目は残る
	ctx := context.Background()
	static := staticTestItems([2]string{"a", "everyday"})
	f := newSchedulerForTest(t, static)

	custom, err := f.catalog.AddCustomItem(ctx, &model.PostItemRequest{Text: "lowkey"})
	require.NoError(t, err)
	_, err = f.scheduler.RecordOutcome(ctx, custom.ItemID, true)
	require.NoError(t, err)

	require.NoError(t, f.scheduler.ResetAllProgress(ctx))

	stats, err := f.scheduler.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MasteredCount)
	assert.Equal(t, 0, stats.LearningCount)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, 0, stats.DailyProgress)

	items, err := f.catalog.ListItems(ctx, model.CategoryCustom)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, custom.ItemID, items[0].ItemID)
}

func intPtr(v int) *int { return &v }
