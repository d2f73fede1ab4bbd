package news

import (
	"fmt"
	"testing"
)

func TestTitleCacheFIFOEviction(t *testing.T) {
	cache := NewTitleCache(3)

	cache.Record("a")
	cache.Record("b")
	cache.Record("c")

	if cache.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", cache.Len())
	}

	// Fourth record evicts the oldest entry.
	cache.Record("d")

	if cache.Len() != 3 {
		t.Errorf("expected capacity to hold at 3, got %d", cache.Len())
	}
	if cache.Seen("a") {
		t.Error("expected 'a' to be evicted")
	}
	for _, title := range []string{"b", "c", "d"} {
		if !cache.Seen(title) {
			t.Errorf("expected %q to remain cached", title)
		}
	}
}

func TestTitleCacheHoldsMostRecentN(t *testing.T) {
	cache := NewTitleCache(10)

	for i := 0; i < 25; i++ {
		cache.Record(fmt.Sprintf("title-%d", i))
	}

	if cache.Len() != 10 {
		t.Fatalf("expected 10 entries, got %d", cache.Len())
	}
	for i := 0; i < 15; i++ {
		if cache.Seen(fmt.Sprintf("title-%d", i)) {
			t.Errorf("expected title-%d to be evicted", i)
		}
	}
	for i := 15; i < 25; i++ {
		if !cache.Seen(fmt.Sprintf("title-%d", i)) {
			t.Errorf("expected title-%d to be cached", i)
		}
	}
}

func TestTitleCacheDuplicateRecordDoesNotRefresh(t *testing.T) {
	cache := NewTitleCache(2)

	cache.Record("a")
	cache.Record("b")
	// Recording "a" again must not move it to the back of the queue.
	cache.Record("a")
	cache.Record("c")

	if cache.Seen("a") {
		t.Error("expected 'a' to be evicted first despite re-record")
	}
	if !cache.Seen("b") || !cache.Seen("c") {
		t.Error("expected 'b' and 'c' to remain cached")
	}
}

func TestTitleCacheEmptyTitle(t *testing.T) {
	cache := NewTitleCache(3)

	if !cache.Seen("") {
		t.Error("empty title must be treated as already seen")
	}

	cache.Record("")
	if cache.Len() != 0 {
		t.Errorf("empty title must never be recorded, got %d entries", cache.Len())
	}
}
