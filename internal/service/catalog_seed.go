// internal/service/catalog_seed.go
package service

import (
	"github.com/google/uuid"

	"go_5_vocab_trainer/internal/model"
)

// catalogNamespace は静的カタログ項目のUUIDv5生成に使う名前空間です。
// 静的項目のIDはテキストから決定的に導出されるため、プロセスを再起動しても
// 進捗との紐付けが維持されます。この値は変更しないこと (変更すると全進捗が迷子になる)。
var catalogNamespace = uuid.MustParse("8f9c2f60-2b5e-4f5a-9a3d-56e1c0d9b7a4")

func seedItem(text string, category model.Category, example string) model.LearningItem {
	return model.LearningItem{
		ItemID:   uuid.NewSHA1(catalogNamespace, []byte(text)),
		Text:     text,
		Category: category,
		Example:  example,
	}
}

// StaticCatalog は組み込みの学習項目一覧を返します。
// 順序はこの定義順がそのまま一覧の並びになります (意味的な順序ではない)。
func StaticCatalog() []model.LearningItem {
	return []model.LearningItem{
		// everyday
		seedItem("run errands", model.CategoryEveryday, "I need to run errands before the shops close."),
		seedItem("grab a bite", model.CategoryEveryday, "Want to grab a bite after work?"),
		seedItem("in a nutshell", model.CategoryEveryday, "In a nutshell, the meeting was a waste of time."),
		seedItem("sleep on it", model.CategoryEveryday, "Don't decide now, sleep on it and tell me tomorrow."),
		seedItem("catch up", model.CategoryEveryday, "Let's catch up over coffee next week."),
		seedItem("make ends meet", model.CategoryEveryday, "With rent this high it's hard to make ends meet."),

		// phrasal-verb
		seedItem("put off", model.CategoryPhrasalVerb, "Stop putting off the dentist appointment."),
		seedItem("figure out", model.CategoryPhrasalVerb, "I can't figure out how this printer works."),
		seedItem("run into", model.CategoryPhrasalVerb, "I ran into my old teacher at the station."),
		seedItem("look forward to", model.CategoryPhrasalVerb, "I'm looking forward to the long weekend."),
		seedItem("come up with", model.CategoryPhrasalVerb, "She came up with a clever workaround."),
		seedItem("get over", model.CategoryPhrasalVerb, "It took him a month to get over the flu."),

		// slang
		seedItem("no biggie", model.CategorySlang, "You're five minutes late, no biggie."),
		seedItem("hang out", model.CategorySlang, "We used to hang out at the arcade."),
		seedItem("salty", model.CategorySlang, "He's still salty about losing the game."),
		seedItem("ghost someone", model.CategorySlang, "She ghosted him after the second date."),
		seedItem("binge-watch", model.CategorySlang, "We binge-watched the whole season in one night."),

		// idiom
		seedItem("break the ice", model.CategoryIdiom, "A silly question is a good way to break the ice."),
		seedItem("hit the sack", model.CategoryIdiom, "I'm exhausted, time to hit the sack."),
		seedItem("spill the beans", model.CategoryIdiom, "Who spilled the beans about the surprise party?"),
		seedItem("once in a blue moon", model.CategoryIdiom, "We only eat out once in a blue moon."),
		seedItem("bite the bullet", model.CategoryIdiom, "I bit the bullet and booked the flight."),

		// business
		seedItem("touch base", model.CategoryBusiness, "Let's touch base on Friday about the launch."),
		seedItem("circle back", model.CategoryBusiness, "I'll circle back once I hear from legal."),
		seedItem("low-hanging fruit", model.CategoryBusiness, "Fixing typos is the low-hanging fruit here."),
		seedItem("move the needle", model.CategoryBusiness, "This campaign barely moved the needle on sales."),
		seedItem("bandwidth", model.CategoryBusiness, "I don't have the bandwidth to take that on this sprint."),

		// pronunciation
		seedItem("thorough", model.CategoryPronunciation, "She did a thorough review of the contract."),
		seedItem("colonel", model.CategoryPronunciation, "The colonel retired after thirty years of service."),
		seedItem("squirrel", model.CategoryPronunciation, "A squirrel buried nuts under the oak tree."),
		seedItem("rural", model.CategoryPronunciation, "They moved to a rural town last spring."),
	}
}
