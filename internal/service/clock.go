// internal/service/clock.go
package service

import "time"

// Clock は現在時刻の取得を抽象化します。
// 日付の切り替わりや復習期限はすべてこのクロック経由で判定するため、
// テストでは固定クロックを注入して決定的に検証できます。
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock は実時間を返すデフォルトのクロックです。
var SystemClock Clock = systemClock{}
