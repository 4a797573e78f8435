// internal/service/helpers_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"go_5_vocab_trainer/internal/config"
	"go_5_vocab_trainer/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---

// setupTestDB はテストごとに独立したインメモリDBを作成します。
// cache=shared がないとGORMのコネクションプールが別々の空DBを見てしまうため、
// テスト名で名前を付けた共有メモリDBを使います。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	if err != nil {
		t.Fatalf("failed to connect database for testing: %v", err)
	}
	if err := db.AutoMigrate(&model.LearningItem{}, &model.ReviewState{}, &model.Profile{}); err != nil {
		t.Fatalf("failed to migrate database for testing: %v", err)
	}
	return db
}

// fixedClock はテスト用の固定クロックです。
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// testBaseTime はテストの基準時刻 (ローカルタイム)
var testBaseTime = time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

func newFixedClock() *fixedClock {
	return &fixedClock{now: testBaseTime}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.DailyGoal = 5
	return cfg
}

// staticTestItems は静的カタログの代わりに注入する小さな項目一覧を作ります。
func staticTestItems(specs ...[2]string) []model.LearningItem {
	items := make([]model.LearningItem, 0, len(specs))
	for _, s := range specs {
		items = append(items, model.LearningItem{
			ItemID:   uuid.New(),
			Text:     s[0],
			Category: model.Category(s[1]),
		})
	}
	return items
}
