// internal/model/item.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category は学習項目の分類タグです。
type Category string

const (
	CategoryEveryday      Category = "everyday"
	CategoryPhrasalVerb   Category = "phrasal-verb"
	CategorySlang         Category = "slang"
	CategoryIdiom         Category = "idiom"
	CategoryBusiness      Category = "business"
	CategoryPronunciation Category = "pronunciation"
	CategoryCustom        Category = "custom" // ユーザ追加項目は常にこのカテゴリ
)

// AllCategories は有効なカテゴリの一覧です (バリデーション用)。
var AllCategories = []Category{
	CategoryEveryday,
	CategoryPhrasalVerb,
	CategorySlang,
	CategoryIdiom,
	CategoryBusiness,
	CategoryPronunciation,
	CategoryCustom,
}

// IsValid はカテゴリが定義済みのものかどうかを返します。
// 空文字は「全カテゴリ」を意味するフィルタとして有効扱いです。
func (c Category) IsValid() bool {
	if c == "" {
		return true
	}
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}

// LearningItem は学習対象の単語・フレーズを表します。
// 静的カタログ項目はプロセス起動時にコードから生成され、DBには保存しません。
// ユーザ追加項目 (Custom=true) のみ custom_items テーブルに永続化します。
//
// ItemID は安定した合成IDです。表示テキストをキーに使うと編集時に進捗が
// 迷子になるため、テキストとは独立したIDで進捗を紐付けます。
type LearningItem struct {
	ItemID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"item_id"`
	Text      string         `gorm:"not null" json:"text"`     // 単語・フレーズ本体
	Category  Category       `gorm:"not null" json:"category"` //
	Example   string         `json:"example"`                  // 用例文
	Custom    bool           `gorm:"not null;default:false" json:"custom"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用 (Custom項目のみ)
}

func (LearningItem) TableName() string {
	return "custom_items"
}

// カスタム項目作成リクエストDTO
type PostItemRequest struct {
	Text    string `json:"text" validate:"required,notblank"`
	Example string `json:"example" validate:"omitempty,max=500"`
}

// 選択中カテゴリ更新リクエストDTO
type PutCategoryRequest struct {
	Category *string `json:"category" validate:"required"`
}
