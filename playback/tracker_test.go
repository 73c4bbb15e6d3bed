package playback

import "testing"

func sampleTimestamps() []WordTimestamp {
	return []WordTimestamp{
		{Text: "real", Start: 0.0, End: 0.4},
		{Text: "property", Start: 0.4, End: 1.0},
		{Text: "includes", Start: 1.0, End: 2.0},
		{Text: "land", Start: 2.5, End: 3.0},
	}
}

func TestActiveIndexPure(t *testing.T) {
	ts := sampleTimestamps()
	first := ActiveIndex(ts, 1.5)
	for i := 0; i < 10; i++ {
		if got := ActiveIndex(ts, 1.5); got != first {
			t.Fatalf("ActiveIndex not stable: %d then %d", first, got)
		}
	}
	if first != 2 {
		t.Fatalf("ActiveIndex(1.5) = %d; want 2", first)
	}
}

func TestActiveIndexBoundaries(t *testing.T) {
	ts := []WordTimestamp{
		{Text: "one", Start: 1.0, End: 2.0},
		{Text: "two", Start: 2.0, End: 3.0},
	}
	if got := ActiveIndex(ts, 1.0); got != 0 {
		t.Fatalf("start time inclusive: got %d; want 0", got)
	}
	if got := ActiveIndex(ts, 2.0); got != 1 {
		t.Fatalf("end time exclusive: got %d; want 1", got)
	}
	if got := ActiveIndex(ts, 3.0); got != -1 {
		t.Fatalf("past last interval: got %d; want -1", got)
	}
	if got := ActiveIndex(ts, 0.5); got != -1 {
		t.Fatalf("before first interval: got %d; want -1", got)
	}
}

func TestTrackerSuppressesRedundantEmissions(t *testing.T) {
	tr := NewTracker("real property includes land")
	tr.SetTimestamps(sampleTimestamps())

	var emissions []int
	clears := 0
	tr.OnHighlight(func(word string, index int) { emissions = append(emissions, index) })
	tr.OnClear(func() { clears++ })

	// Several ticks inside the same word emit once.
	tr.Tick(0.41)
	tr.Tick(0.5)
	tr.Tick(0.9)
	if len(emissions) != 1 || emissions[0] != 1 {
		t.Fatalf("emissions = %v; want [1]", emissions)
	}

	// Moving into the gap clears once.
	tr.Tick(2.2)
	tr.Tick(2.3)
	if clears != 1 {
		t.Fatalf("clears = %d; want 1", clears)
	}

	// Entering the next word emits again.
	tr.Tick(2.6)
	if len(emissions) != 2 || emissions[1] != 3 {
		t.Fatalf("emissions = %v; want [1 3]", emissions)
	}
}

func TestTrackerSeekRecomputesSynchronously(t *testing.T) {
	tr := NewTracker("real property includes land")
	tr.SetTimestamps(sampleTimestamps())

	var last int = -99
	tr.OnHighlight(func(word string, index int) { last = index })

	tr.Tick(0.1)
	if last != 0 {
		t.Fatalf("after first tick active = %d; want 0", last)
	}

	// Seek jumps backward-compatible state immediately, no tick needed.
	tr.Seek(2.7)
	if last != 3 {
		t.Fatalf("after seek active = %d; want 3", last)
	}
	if tr.ActiveWordIndex() != 3 {
		t.Fatalf("ActiveWordIndex = %d; want 3", tr.ActiveWordIndex())
	}
}

func TestTrackerIdleWithoutTimestamps(t *testing.T) {
	tr := NewTracker("some text")
	if tr.State() != Idle {
		t.Fatalf("fresh tracker state = %v; want Idle", tr.State())
	}
	tr.SetTimestamps(nil)
	if tr.State() != Idle {
		t.Fatalf("empty timestamps should keep Idle")
	}

	fired := false
	tr.OnHighlight(func(string, int) { fired = true })
	tr.Tick(1.0)
	if fired {
		t.Fatalf("idle tracker emitted a highlight")
	}

	tr.SetTimestamps(sampleTimestamps())
	if tr.State() != Tracking {
		t.Fatalf("state after load = %v; want Tracking", tr.State())
	}
	tr.Reset()
	if tr.State() != Idle {
		t.Fatalf("state after reset = %v; want Idle", tr.State())
	}
}

func TestResolveDirect(t *testing.T) {
	tr := NewTracker("one two three four five")
	if got := tr.Resolve(2, "three"); got != 2 {
		t.Fatalf("in-bounds index resolved to %d; want 2", got)
	}
	// In-bounds indices resolve directly even when the text disagrees.
	if got := tr.Resolve(1, "mismatch"); got != 1 {
		t.Fatalf("in-bounds mismatch resolved to %d; want 1", got)
	}
}

func TestResolveWindowSearch(t *testing.T) {
	// Transcript split "don't" into two entries, pushing indices one past
	// the displayed list; the window search recovers the right word.
	tr := NewTracker("agents don't commingle escrow funds")
	if got := tr.Resolve(5, "funds."); got != 4 {
		t.Fatalf("window search resolved to %d; want 4", got)
	}
}

func TestResolveFullScanFallback(t *testing.T) {
	tr := NewTracker("alpha beta gamma delta epsilon zeta eta theta iota kappa")
	// Index far out of bounds, beyond the window of the tail.
	if got := tr.Resolve(30, "beta"); got != 1 {
		t.Fatalf("full scan resolved to %d; want 1", got)
	}
}

func TestResolveNothingMatches(t *testing.T) {
	tr := NewTracker("alpha beta gamma")
	if got := tr.Resolve(7, "omicron"); got != -1 {
		t.Fatalf("unmatched word resolved to %d; want -1", got)
	}
}
