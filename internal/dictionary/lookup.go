package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/model"
)

// fallbackKanji maps common English words to a single kanji. It is used only
// when both remote sources come back empty or unreachable.
var fallbackKanji = map[string]string{
	"one":      "一",
	"two":      "二",
	"three":    "三",
	"four":     "四",
	"five":     "五",
	"six":      "六",
	"seven":    "七",
	"eight":    "八",
	"nine":     "九",
	"ten":      "十",
	"person":   "人",
	"big":      "大",
	"small":    "小",
	"middle":   "中",
	"book":     "本",
	"sun":      "日",
	"day":      "日",
	"moon":     "月",
	"month":    "月",
	"fire":     "火",
	"water":    "水",
	"tree":     "木",
	"gold":     "金",
	"money":    "金",
	"earth":    "土",
	"year":     "年",
	"time":     "時",
	"now":      "今",
	"before":   "前",
	"after":    "後",
	"up":       "上",
	"down":     "下",
	"mountain": "山",
	"river":    "川",
	"rice":     "米",
	"car":      "車",
	"language": "語",
	"study":    "学",
	"school":   "校",
	"life":     "生",
	"house":    "家",
	"eat":      "食",
	"drink":    "飲",
	"see":      "見",
	"hear":     "聞",
	"go":       "行",
	"come":     "来",
	"country":  "国",
	"new":      "新",
	"old":      "古",
	"heart":    "心",
	"hand":     "手",
	"foot":     "足",
	"eye":      "目",
	"ear":      "耳",
	"mouth":    "口",
	"name":     "名",
	"rain":     "雨",
	"flower":   "花",
	"dog":      "犬",
	"love":     "愛",
}

// Result combines what the sources returned for a query.
type Result struct {
	Words []model.WordResult
	Kanji []model.KanjiDetail
	// Fallback is set when Kanji came from the static table.
	Fallback bool
}

// Empty reports whether nothing was found.
func (r Result) Empty() bool {
	return len(r.Words) == 0 && len(r.Kanji) == 0
}

// Dictionary queries both sources.
type Dictionary struct {
	kanji  *KanjiClient
	words  *WordClient
	logger *zap.Logger
}

// New returns a Dictionary over the given clients.
func New(kanji *KanjiClient, words *WordClient, log *zap.Logger) *Dictionary {
	d := &Dictionary{kanji: kanji, words: words}
	d.logger = Options{Logger: log}.logger()
	return d
}

// Kanji returns details for one character.
func (d *Dictionary) Kanji(ctx context.Context, char string) (model.KanjiDetail, error) {
	return d.kanji.Kanji(ctx, char)
}

// Lookup searches words and, for a single kanji query, its details.
// Source failures are logged and treated as empty. ErrNoResults means
// nothing matched, including in the fallback table.
func (d *Dictionary) Lookup(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, fmt.Errorf("query is required")
	}

	var res Result
	words, err := d.words.Search(ctx, query)
	if err != nil {
		d.logger.Warn("word search failed", zap.String("query", query), zap.Error(err))
	}
	res.Words = words

	if IsKanji(query) {
		detail, err := d.kanji.Kanji(ctx, query)
		switch {
		case err == nil:
			res.Kanji = append(res.Kanji, detail)
		case errors.Is(err, ErrNotFound):
		default:
			d.logger.Warn("kanji fetch failed", zap.String("query", query), zap.Error(err))
		}
	}

	if res.Empty() {
		if char, ok := fallbackKanji[strings.ToLower(query)]; ok {
			detail, err := d.kanji.Kanji(ctx, char)
			if err != nil {
				detail = model.KanjiDetail{Kanji: char, Meanings: []string{strings.ToLower(query)}}
			}
			res.Kanji = append(res.Kanji, detail)
			res.Fallback = true
		}
	}

	if res.Empty() {
		return res, ErrNoResults
	}
	return res, nil
}

// IsKanji reports whether s is exactly one Han character.
func IsKanji(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.Is(unicode.Han, r)
}
