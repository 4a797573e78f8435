// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// レベルの定義。0は未正解、MaxLevelで習得済み (以降は出題されない)。
const (
	MinLevel = 0
	MaxLevel = 5
)

// ReviewState は項目ごとの復習状態を表します。
// 一度も出題されていない項目には行が存在しません (New状態)。
type ReviewState struct {
	ItemID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"item_id"`
	Level          int       `gorm:"not null;default:0" json:"level"` // 0..5
	CorrectCount   int       `gorm:"not null;default:0" json:"correct"`
	IncorrectCount int       `gorm:"not null;default:0" json:"incorrect"`
	LastSeenAt     time.Time `gorm:"not null" json:"last_seen"`
	NextReviewAt   time.Time `gorm:"not null;index" json:"next_review"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

func (ReviewState) TableName() string {
	return "review_states"
}

// IsMastered はこの項目が習得済み (出題対象外) かどうかを返します。
func (rs *ReviewState) IsMastered() bool {
	return rs.Level >= MaxLevel
}

// IsDue は now 時点で復習期限が到来しているかどうかを返します。
// 習得済み項目は期限に関わらず対象外です。
func (rs *ReviewState) IsDue(now time.Time) bool {
	return !rs.IsMastered() && !now.Before(rs.NextReviewAt)
}

// 復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// NextReviewResponse は次の出題項目のレスポンスDTO
type NextReviewResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	Text     string    `json:"text"`
	Category Category  `json:"category"`
	Example  string    `json:"example"`
	Level    int       `json:"level"` // 未出題なら0
}
