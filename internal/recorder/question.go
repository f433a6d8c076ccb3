package recorder

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/model"
)

const (
	questionPending int32 = iota
	questionAnswered
	questionCancelled
)

// Question guards one asked item so that exactly one answer is recorded for
// it, whether it comes from the user or from the countdown running out.
type Question struct {
	rec      *Recorder
	itemID   string
	state    atomic.Int32
	mu       sync.Mutex
	timer    *time.Timer
	onExpire func(model.StatsRecord)
}

// BeginQuestion starts guarding itemID. With a positive timeout the question
// expires on its own and records an incorrect answer, then calls onExpire
// (which may be nil) with the updated record.
func (r *Recorder) BeginQuestion(itemID string, timeout time.Duration, onExpire func(model.StatsRecord)) *Question {
	q := &Question{rec: r, itemID: itemID, onExpire: onExpire}
	if timeout > 0 {
		q.mu.Lock()
		q.timer = time.AfterFunc(timeout, func() {
			rec, ok, err := q.Expire(context.Background())
			if err != nil {
				r.logger.Warn("failed to record expired question", zap.String("item", itemID), zap.Error(err))
				return
			}
			if ok && q.onExpire != nil {
				q.onExpire(rec)
			}
		})
		q.mu.Unlock()
	}
	return q
}

// ItemID returns the guarded item.
func (q *Question) ItemID() string {
	return q.itemID
}

// Pending reports whether the question still awaits an answer.
func (q *Question) Pending() bool {
	return q.state.Load() == questionPending
}

// Submit records the user's answer. accepted is false when the question was
// already answered, expired or cancelled; nothing is recorded then.
func (q *Question) Submit(ctx context.Context, isCorrect bool) (rec model.StatsRecord, accepted bool, err error) {
	if !q.state.CompareAndSwap(questionPending, questionAnswered) {
		return model.StatsRecord{}, false, nil
	}
	q.stopTimer()
	rec, err = q.rec.RecordAnswer(ctx, q.itemID, isCorrect)
	return rec, err == nil, err
}

// Expire records an incorrect answer if the question is still pending.
func (q *Question) Expire(ctx context.Context) (rec model.StatsRecord, accepted bool, err error) {
	if !q.state.CompareAndSwap(questionPending, questionAnswered) {
		return model.StatsRecord{}, false, nil
	}
	q.stopTimer()
	rec, err = q.rec.RecordAnswer(ctx, q.itemID, false)
	return rec, err == nil, err
}

// Cancel abandons the question without recording anything. It reports
// whether the question was still pending.
func (q *Question) Cancel() bool {
	if !q.state.CompareAndSwap(questionPending, questionCancelled) {
		return false
	}
	q.stopTimer()
	return true
}

func (q *Question) stopTimer() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.timer != nil {
		q.timer.Stop()
	}
}
