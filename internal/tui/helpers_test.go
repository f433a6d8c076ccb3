package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/recorder"
)

type memStore struct {
	mu  sync.Mutex
	rec model.StatsRecord
}

func (s *memStore) Load(context.Context) model.StatsRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

func (s *memStore) Save(_ context.Context, rec model.StatsRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec.Clone()
}

func (s *memStore) snapshot() model.StatsRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

func newTestRecorder(t *testing.T) (*recorder.Recorder, *memStore) {
	t.Helper()
	st := &memStore{rec: model.NewStatsRecord()}
	return recorder.New(st, nil), st
}

type fakeSource map[string]model.KanjiDetail

func (f fakeSource) Kanji(_ context.Context, char string) (model.KanjiDetail, error) {
	d, ok := f[char]
	if !ok {
		return model.KanjiDetail{}, fmt.Errorf("no kanji %s", char)
	}
	return d, nil
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
