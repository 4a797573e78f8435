// internal/model/profile.go
package model

import "time"

// StatsDateLayout は日次統計の日付キーのフォーマットです (ローカル日付)。
const StatsDateLayout = "2006-01-02"

// Profile は利用者単位の設定・日次統計・連続記録を保持するシングルトン行です。
// シングルブラウザ・シングルユーザ前提のため行は常に1件 (ID=1) です。
type Profile struct {
	ID               uint     `gorm:"primaryKey"`
	StatsDate        string   `gorm:"not null;default:''"` // "2006-01-02" 形式。空 = 未記録
	Practiced        int      `gorm:"not null;default:0"`  // 当日の復習回数
	TotalStreak      int      `gorm:"not null;default:0"`  // 連続達成日数
	SelectedCategory Category `gorm:"not null;default:''"` // ダッシュボードで選択中のカテゴリ
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

// StatsDay は StatsDate をパースして返します。
// フォーマット不正は「未記録」として扱います (破損データはデフォルトに初期化する方針)。
func (p *Profile) StatsDay(loc *time.Location) (time.Time, bool) {
	if p.StatsDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(StatsDateLayout, p.StatsDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// StatsResponse は GET /stats のレスポンスDTO
type StatsResponse struct {
	MasteredCount int      `json:"mastered_count"` // レベル5に到達した項目数
	LearningCount int      `json:"learning_count"` // 出題済みでレベル5未満の項目数
	DueCount      int      `json:"due_count"`      // いま復習期限が来ている項目数 (未出題含む)
	Streak        int      `json:"streak"`
	DailyProgress int      `json:"daily_progress"` // 当日の復習回数
	DailyGoal     int      `json:"daily_goal"`
	Category      Category `json:"selected_category"`
}

// CategoryResponse は選択中カテゴリのレスポンスDTO
type CategoryResponse struct {
	Category Category `json:"category"`
}
