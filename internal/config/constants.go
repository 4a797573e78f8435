// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "VocabTrainer"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort  = ":8080"
	DefaultLogLevel    = "info"
	DefaultDatabaseURL = "file:vocab_trainer.db"
	DefaultDailyGoal   = 5
)

// ReviewIntervals は復習間隔のルックアップテーブルです。
// 回答後の「新しい」レベルでインデックスします。
// レベル0は即時再出題、レベル5 (習得済み) は7日後ですが、
// 習得済み項目はそもそも出題対象から外れます。
var ReviewIntervals = [6]time.Duration{
	0,
	1 * time.Hour,
	4 * time.Hour,
	24 * time.Hour,
	72 * time.Hour,
	168 * time.Hour,
}
