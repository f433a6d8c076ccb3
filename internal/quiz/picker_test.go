package quiz

import "testing"

func TestPickerUniformCoversItems(t *testing.T) {
	p := NewSeededPicker(1)
	ids := []string{"a", "b", "c"}
	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		seen[ids[p.Next(ids)]]++
	}
	for _, id := range ids {
		if seen[id] == 0 {
			t.Fatalf("item %s never picked: %v", id, seen)
		}
	}
	if p.Next(nil) != -1 {
		t.Fatalf("expected -1 for empty list")
	}
}

func TestPickerFavoursWeakItems(t *testing.T) {
	p := NewSeededPicker(7)
	ids := []string{"a", "b", "c", "d"}
	p.SetWeak([]string{"d"}, 9)
	counts := map[string]int{}
	const draws = 4000
	for i := 0; i < draws; i++ {
		counts[ids[p.Next(ids)]]++
	}
	// d weighs 10 out of 13.
	if counts["d"] < draws/2 {
		t.Fatalf("weak item under-picked: %v", counts)
	}
	p.SetWeak(nil, 9)
	if p.Weighted() {
		t.Fatalf("expected uniform picker after clearing weak set")
	}
}

func TestSampleExcludes(t *testing.T) {
	p := NewSeededPicker(3)
	got := p.Sample([]string{"a", "b", "c", "d"}, 2, "a")
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %v", got)
	}
	for _, id := range got {
		if id == "a" {
			t.Fatalf("excluded item sampled: %v", got)
		}
	}
	if got := p.Sample([]string{"a", "b"}, 5, "a"); len(got) != 1 || got[0] != "b" {
		t.Fatalf("unexpected short sample: %v", got)
	}
}
