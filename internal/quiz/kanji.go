package quiz

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/nihongo/internal/model"
)

const (
	// ChoiceCount is the number of multiple-choice options.
	ChoiceCount = 4
	// DistractorCount is how many other kanji are fetched for wrong options.
	DistractorCount = 5
	// DefaultQuestionSeconds is the per-question countdown.
	DefaultQuestionSeconds = 30
	// ReviewWeakLimit is how many weak items a weak review draws from.
	ReviewWeakLimit = 20
)

// CheckAnswer reports whether answer matches any meaning or any reading
// of detail, depending on questionType. Comparison ignores case and
// surrounding space.
func CheckAnswer(detail model.KanjiDetail, questionType, answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return false
	}
	candidates := detail.Meanings
	if questionType == model.QuestionReading {
		candidates = detail.Readings()
	}
	for _, c := range candidates {
		if strings.ToLower(c) == answer {
			return true
		}
	}
	return false
}

// Expected returns the answers shown after a question is resolved.
func Expected(detail model.KanjiDetail, questionType string) []string {
	if questionType == model.QuestionReading {
		return detail.Readings()
	}
	return detail.Meanings
}

// Choices builds the multiple-choice options: the first meaning or reading of
// detail plus the first one of each distractor, deduplicated ignoring case,
// padded with placeholders and shuffled.
func Choices(detail model.KanjiDetail, distractors []model.KanjiDetail, questionType string, picker *Picker) []string {
	var correct string
	placeholder := "option %d"
	first := func(d model.KanjiDetail) string {
		if len(d.Meanings) == 0 {
			return ""
		}
		return d.Meanings[0]
	}
	if questionType == model.QuestionReading {
		placeholder = "reading%d"
		readings := detail.Readings()
		if len(readings) == 0 {
			return []string{"reading1", "reading2", "reading3", "reading4"}
		}
		correct = readings[0]
		first = func(d model.KanjiDetail) string {
			for _, r := range d.Readings() {
				if !strings.EqualFold(r, correct) {
					return r
				}
			}
			return ""
		}
	} else {
		correct = first(detail)
		if correct == "" {
			correct = "unknown"
		}
	}

	options := []string{correct}
	for _, d := range distractors {
		if len(options) == ChoiceCount {
			break
		}
		opt := first(d)
		if opt == "" || containsFold(options, opt) {
			continue
		}
		options = append(options, opt)
	}
	for len(options) < ChoiceCount {
		options = append(options, fmt.Sprintf(placeholder, len(options)+1))
	}
	if picker != nil {
		picker.Shuffle(options)
	}
	return options
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// KanjiRound tracks score and misses of one kanji quiz run, and replays the
// misses on request.
type KanjiRound struct {
	Mode         string
	QuestionType string

	score    int
	answered int
	missed   []model.KanjiDetail

	review    []model.KanjiDetail
	reviewPos int
}

// NewKanjiRound starts an empty round.
func NewKanjiRound(mode, questionType string) *KanjiRound {
	return &KanjiRound{Mode: mode, QuestionType: questionType}
}

// Label returns the session label.
func (r *KanjiRound) Label() string {
	return KanjiModeLabel(r.Mode, r.QuestionType)
}

// Score returns the number of correct answers.
func (r *KanjiRound) Score() int { return r.score }

// Answered returns the number of resolved questions.
func (r *KanjiRound) Answered() int { return r.answered }

// Missed returns the kanji answered incorrectly this round.
func (r *KanjiRound) Missed() []model.KanjiDetail { return r.missed }

// Record counts one resolved question.
func (r *KanjiRound) Record(detail model.KanjiDetail, correct bool) {
	r.answered++
	if correct {
		r.score++
		return
	}
	r.missed = append(r.missed, detail)
}

// Reset clears score, misses and any review in progress.
func (r *KanjiRound) Reset() {
	r.score, r.answered = 0, 0
	r.missed = nil
	r.review = nil
	r.reviewPos = 0
}

// StartReview replays the missed kanji. It returns false when there is
// nothing to review. Score and answered restart from zero.
func (r *KanjiRound) StartReview() bool {
	if len(r.missed) == 0 {
		return false
	}
	r.review = append([]model.KanjiDetail(nil), r.missed...)
	r.reviewPos = 0
	r.score, r.answered = 0, 0
	r.missed = nil
	return true
}

// Reviewing reports whether a review is in progress.
func (r *KanjiRound) Reviewing() bool {
	return r.reviewPos < len(r.review)
}

// NextReview returns the next kanji to replay, or false when the review is
// exhausted and questions should be drawn at random again.
func (r *KanjiRound) NextReview() (model.KanjiDetail, bool) {
	if !r.Reviewing() {
		return model.KanjiDetail{}, false
	}
	d := r.review[r.reviewPos]
	r.reviewPos++
	return d, true
}

// Accuracy returns the round accuracy as a percentage.
func (r *KanjiRound) Accuracy() float64 {
	if r.answered == 0 {
		return 0
	}
	return float64(r.score) / float64(r.answered) * 100
}
