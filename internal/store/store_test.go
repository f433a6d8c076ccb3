package store

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "nihongo.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	st := openTestStore(t)
	rec := st.Load(context.Background())
	if rec.TotalQuizzes != 0 || rec.TotalQuestions != 0 || rec.BestStreak != 0 {
		t.Fatalf("expected zeroed record, got %+v", rec)
	}
	if rec.ItemStats == nil || rec.SessionHistory == nil {
		t.Fatalf("expected empty collections, got %+v", rec)
	}
	if rec.SchemaVersion != model.SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", model.SchemaVersion, rec.SchemaVersion)
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rec := model.NewStatsRecord()
	rec.TotalQuizzes = 2
	rec.CurrentStreak = 3
	rec.BestStreak = 4
	rec.ItemStats["水"] = model.ItemStat{ID: "水", Correct: 3, Incorrect: 1, Mastery: 75, LastSeen: "2026-01-01T00:00:00.000Z"}
	rec.SessionHistory = append(rec.SessionHistory, model.QuizSession{Mode: "kana-all", Score: 1, TotalQuestions: 2, Accuracy: 50})

	st.Save(ctx, rec)
	got := st.Load(ctx)
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", rec, got)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rec := model.NewStatsRecord()
	rec.ItemStats["あ"] = model.ItemStat{ID: "あ", Correct: 1, Mastery: 100}
	st.Save(ctx, rec)

	first := st.Load(ctx)
	second := st.Load(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("loads differ:\n%+v\n%+v", first, second)
	}
}

func TestLoadCorruptPayloadFallsBackToDefault(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.db.Exec(`INSERT INTO kv (key, payload, updated_at) VALUES (?, ?, ?)`, StatsKey, "{not json", "x"); err != nil {
		t.Fatalf("insert corrupt payload: %v", err)
	}
	rec := st.Load(ctx)
	if rec.TotalQuizzes != 0 || len(rec.ItemStats) != 0 {
		t.Fatalf("expected default record, got %+v", rec)
	}
}

func TestLoadNewerSchemaFallsBackToDefault(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.db.Exec(`INSERT INTO kv (key, payload, updated_at) VALUES (?, ?, ?)`, StatsKey, `{"schemaVersion":99,"totalQuizzes":5}`, "x"); err != nil {
		t.Fatalf("insert payload: %v", err)
	}
	if rec := st.Load(context.Background()); rec.TotalQuizzes != 0 {
		t.Fatalf("expected default record, got %+v", rec)
	}
}

func TestSavePublishesChange(t *testing.T) {
	st := openTestStore(t)
	ch, cancel := st.Changes().Subscribe()
	defer cancel()

	st.Save(context.Background(), model.NewStatsRecord())
	select {
	case c := <-ch:
		if c.Remote {
			t.Fatalf("local save reported as remote")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected change notification")
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	st := openTestStore(t)
	ch, cancel := st.Changes().Subscribe()
	defer cancel()
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st.Save(context.Background(), model.NewStatsRecord())
	select {
	case <-ch:
		t.Fatalf("failed save must not publish a change")
	default:
	}
	if rec := st.Load(context.Background()); rec.TotalQuizzes != 0 {
		t.Fatalf("expected default record from closed store, got %+v", rec)
	}
}

func TestLoadMigratesLegacyPayload(t *testing.T) {
	st := openTestStore(t)
	legacy := `{
		"totalQuizzes": 1,
		"totalQuestions": 4,
		"correctAnswers": 3,
		"incorrectAnswers": 1,
		"currentStreak": 2,
		"bestStreak": 2,
		"lastQuizDate": "2025-05-01T10:00:00.000Z",
		"kanjiStats": {"火": {"kanji": "火", "correct": 1, "incorrect": 2, "lastSeen": "2025-05-01T10:00:00.000Z", "mastery": 90}},
		"quizHistory": [{"date": "2025-05-01T10:00:00.000Z", "mode": "typing-meaning", "score": 3, "totalQuestions": 4, "accuracy": 75, "duration": 40}]
	}`
	if _, err := st.db.Exec(`INSERT INTO kv (key, payload, updated_at) VALUES (?, ?, ?)`, StatsKey, legacy, "x"); err != nil {
		t.Fatalf("insert legacy payload: %v", err)
	}
	rec := st.Load(context.Background())
	item, ok := rec.ItemStats["火"]
	if !ok {
		t.Fatalf("expected migrated item, got %+v", rec.ItemStats)
	}
	if item.ID != "火" || item.Correct != 1 || item.Incorrect != 2 || item.Mastery != 33 {
		t.Fatalf("unexpected migrated item: %+v", item)
	}
	if len(rec.SessionHistory) != 1 || rec.SessionHistory[0].Mode != "typing-meaning" {
		t.Fatalf("unexpected migrated history: %+v", rec.SessionHistory)
	}
	if rec.SchemaVersion != model.SchemaVersion || rec.TotalQuizzes != 1 {
		t.Fatalf("unexpected migrated record: %+v", rec)
	}
}

func TestExportImport(t *testing.T) {
	src := openTestStore(t)
	ctx := context.Background()
	rec := model.NewStatsRecord()
	rec.TotalQuizzes = 7
	rec.ItemStats["ア"] = model.ItemStat{ID: "ア", Correct: 2, Mastery: 100}
	src.Save(ctx, rec)

	var buf bytes.Buffer
	if err := src.Export(ctx, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), `"schemaVersion": 1`) {
		t.Fatalf("export missing schema version: %s", buf.String())
	}

	dst := openTestStore(t)
	imported, err := dst.Import(ctx, &buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.TotalQuizzes != 7 {
		t.Fatalf("unexpected imported record: %+v", imported)
	}
	if got := dst.Load(ctx); !reflect.DeepEqual(got, rec) {
		t.Fatalf("imported record mismatch:\nwant %+v\ngot  %+v", rec, got)
	}

	if _, err := dst.Import(ctx, strings.NewReader("garbage")); err == nil {
		t.Fatalf("expected import error for garbage payload")
	}
}

func TestReset(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rec := model.NewStatsRecord()
	rec.TotalQuizzes = 3
	st.Save(ctx, rec)
	if err := st.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := st.Load(ctx); got.TotalQuizzes != 0 {
		t.Fatalf("expected empty record after reset, got %+v", got)
	}
}
