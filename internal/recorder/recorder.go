// Package recorder is the entry point quiz screens use to report progress.
// Every call is one load, mutate, save cycle against the store.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/logger"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/stats"
)

// ErrInvalidInput is returned when a caller reports an impossible answer or session.
var ErrInvalidInput = errors.New("invalid input")

// Store is the persistence boundary: whole-record load and save.
type Store interface {
	Load(ctx context.Context) model.StatsRecord
	Save(ctx context.Context, rec model.StatsRecord)
}

// Recorder serializes read-modify-write cycles on the stats record.
type Recorder struct {
	mu       sync.Mutex
	store    Store
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// New returns a Recorder backed by store. A nil logger discards output.
func New(store Store, log *zap.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		store:    store,
		logger:   logger.OrNop(log),
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordAnswer applies the item update and the streak update to one loaded
// snapshot and saves once.
func (r *Recorder) RecordAnswer(ctx context.Context, itemID string, isCorrect bool) (model.StatsRecord, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return model.StatsRecord{}, fmt.Errorf("%w: item id is empty", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.store.Load(ctx)
	rec = stats.RecordItemAnswer(rec, itemID, isCorrect, r.now())
	rec = stats.RecordStreak(rec, isCorrect)
	r.store.Save(ctx, rec)
	r.logger.Debug("recorded answer",
		zap.String("item", itemID),
		zap.Bool("correct", isCorrect),
		zap.Int("streak", rec.CurrentStreak),
	)
	return rec, nil
}

// EndSession appends a finished session. Sessions with no answers are valid.
func (r *Recorder) EndSession(ctx context.Context, input model.SessionInput) (model.StatsRecord, error) {
	if err := r.validate.Struct(input); err != nil {
		return model.StatsRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	rec := r.store.Load(ctx)
	rec = stats.RecordSession(rec, stats.NewSession(input, now), now)
	r.store.Save(ctx, rec)
	r.logger.Info("recorded session",
		zap.String("mode", input.Mode),
		zap.Int("score", input.Score),
		zap.Int("total", input.TotalQuestions),
		zap.Int("duration_s", input.Duration),
	)
	return rec, nil
}

// Snapshot returns the current record without modifying it.
func (r *Recorder) Snapshot(ctx context.Context) model.StatsRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Load(ctx)
}

// WeakItems returns up to limit of the lowest-accuracy attempted items.
func (r *Recorder) WeakItems(ctx context.Context, limit int) []string {
	return stats.WeakestItems(r.Snapshot(ctx), limit)
}
