package kana

import (
	"fmt"
	"strings"
)

// Difficulty levels for the built-in kanji lists.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyAll    = "all"
)

var kanjiEasy = []string{
	"一", "二", "三", "四", "五", "六", "七", "八", "九", "十",
	"人", "大", "小", "中", "本", "日", "月", "火", "水", "木",
	"金", "土", "年", "時", "分", "今", "前", "後", "上", "下",
}

var kanjiMedium = []string{
	"山", "川", "田", "車", "電", "話", "語", "学", "校", "生",
	"先", "私", "家", "食", "飲", "見", "聞", "行", "来", "出",
	"入", "会", "社", "店", "駅", "道", "国", "都", "市", "町",
}

var kanjiHard = []string{
	"新", "古", "高", "低", "長", "短", "多", "少", "好", "悪",
	"安", "心", "手", "足", "目", "耳", "口", "名", "字", "書",
	"読", "買", "売", "作", "使", "立", "座", "休", "働", "起",
	"寝", "帰", "返", "開", "閉", "始", "終", "続",
}

// Kanji returns the built-in list for a difficulty.
func Kanji(difficulty string) ([]string, error) {
	var out []string
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case DifficultyEasy:
		out = append(out, kanjiEasy...)
	case DifficultyMedium:
		out = append(out, kanjiMedium...)
	case DifficultyHard:
		out = append(out, kanjiHard...)
	case DifficultyAll, "":
		out = append(out, kanjiEasy...)
		out = append(out, kanjiMedium...)
		out = append(out, kanjiHard...)
	default:
		return nil, fmt.Errorf("unknown difficulty %q (use easy, medium, hard or all)", difficulty)
	}
	return out, nil
}

// Search keeps the kanji that contain query; an empty query keeps all.
func Search(list []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}
	out := make([]string, 0, len(list))
	for _, k := range list {
		if strings.Contains(k, query) {
			out = append(out, k)
		}
	}
	return out
}
