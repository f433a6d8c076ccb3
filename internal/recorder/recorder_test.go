package recorder

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/store"
)

var fixedNow = time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)

type memStore struct {
	mu    sync.Mutex
	rec   model.StatsRecord
	loads int
	saves int
}

func newMemStore() *memStore {
	return &memStore{rec: model.NewStatsRecord()}
}

func (m *memStore) Load(context.Context) model.StatsRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.rec.Clone()
}

func (m *memStore) Save(_ context.Context, rec model.StatsRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.rec = rec.Clone()
}

func newTestRecorder(st Store) *Recorder {
	return New(st, nil, WithClock(func() time.Time { return fixedNow }))
}

func TestRecordAnswerLoadsAndSavesOnce(t *testing.T) {
	st := newMemStore()
	rec, err := newTestRecorder(st).RecordAnswer(context.Background(), "水", true)
	if err != nil {
		t.Fatalf("record answer: %v", err)
	}
	if st.loads != 1 || st.saves != 1 {
		t.Fatalf("expected one load and one save, got %d/%d", st.loads, st.saves)
	}
	item := rec.ItemStats["水"]
	if item.Correct != 1 || item.Mastery != 100 || rec.CurrentStreak != 1 || rec.BestStreak != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if item.LastSeen != model.FormatTimestamp(fixedNow) {
		t.Fatalf("unexpected lastSeen %q", item.LastSeen)
	}
}

func TestRecordAnswerRejectsEmptyItem(t *testing.T) {
	st := newMemStore()
	_, err := newTestRecorder(st).RecordAnswer(context.Background(), "  ", true)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if st.saves != 0 {
		t.Fatalf("invalid answer must not be saved")
	}
}

func TestEndSession(t *testing.T) {
	st := newMemStore()
	r := newTestRecorder(st)
	rec, err := r.EndSession(context.Background(), model.SessionInput{Mode: "kana-katakana", Score: 8, TotalQuestions: 10, Duration: 95})
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if rec.TotalQuizzes != 1 || rec.CorrectAnswers != 8 || rec.IncorrectAnswers != 2 {
		t.Fatalf("unexpected ledger: %+v", rec)
	}
	if got := rec.SessionHistory[0]; got.Accuracy != 80 || got.Date != model.FormatTimestamp(fixedNow) {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestEndSessionWithoutAnswers(t *testing.T) {
	rec, err := newTestRecorder(newMemStore()).EndSession(context.Background(), model.SessionInput{Mode: "typing-meaning"})
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if rec.TotalQuizzes != 1 || rec.SessionHistory[0].Accuracy != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestEndSessionRejectsInvalidInput(t *testing.T) {
	cases := []model.SessionInput{
		{Mode: "", Score: 1, TotalQuestions: 2},
		{Mode: "kana-all", Score: 3, TotalQuestions: 2},
		{Mode: "kana-all", Score: -1, TotalQuestions: 2},
		{Mode: "kana-all", TotalQuestions: 2, Duration: -5},
	}
	for _, input := range cases {
		st := newMemStore()
		if _, err := newTestRecorder(st).EndSession(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
		if st.saves != 0 {
			t.Fatalf("input %+v: invalid session was saved", input)
		}
	}
}

func TestConcurrentAnswersAreNotLost(t *testing.T) {
	st := newMemStore()
	r := newTestRecorder(st)
	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := r.RecordAnswer(context.Background(), "あ", i%2 == 0); err != nil {
				t.Errorf("record answer: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if got := r.Snapshot(context.Background()).ItemStats["あ"].Total(); got != workers {
		t.Fatalf("expected %d answers, got %d", workers, got)
	}
}

func TestRecorderWithSQLiteStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "stats.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	r := newTestRecorder(st)
	for i := 0; i < 5; i++ {
		if _, err := r.RecordAnswer(ctx, "か", true); err != nil {
			t.Fatalf("record answer: %v", err)
		}
	}
	rec, err := r.RecordAnswer(ctx, "か", false)
	if err != nil {
		t.Fatalf("record answer: %v", err)
	}
	if rec.ItemStats["か"].Mastery != 83 || rec.CurrentStreak != 0 || rec.BestStreak != 5 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if weak := r.WeakItems(ctx, 5); len(weak) != 1 || weak[0] != "か" {
		t.Fatalf("unexpected weak items: %v", weak)
	}
}
