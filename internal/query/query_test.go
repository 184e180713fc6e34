package query

import "testing"

func TestRunMemoizes(t *testing.T) {
	c := NewContext()
	calls := 0
	compute := func() int {
		calls++
		return 42
	}
	a := Run(c, "double", 1, compute)
	b := Run(c, "double", 1, compute)
	if a != 42 || b != 42 {
		t.Fatalf("unexpected values %d %d", a, b)
	}
	if calls != 1 {
		t.Fatalf("expected compute to run once, ran %d times", calls)
	}
}

func TestRunDistinctKeysDoNotShareCache(t *testing.T) {
	c := NewContext()
	one := Run(c, "square", 2, func() int { return 4 })
	two := Run(c, "square", 3, func() int { return 9 })
	if one == two {
		t.Fatalf("distinct keys must not collide")
	}
}

func TestBumpRevisionInvalidatesCache(t *testing.T) {
	c := NewContext()
	calls := 0
	compute := func() int {
		calls++
		return calls
	}
	Run(c, "counter", "k", compute)
	c.BumpRevision()
	Run(c, "counter", "k", compute)
	if calls != 2 {
		t.Fatalf("expected recompute after revision bump, calls=%d", calls)
	}
}

func TestIsRunningDetectsReentrance(t *testing.T) {
	c := NewContext()
	var sawRunning bool
	Run(c, "recursive", "k", func() int {
		sawRunning = c.IsRunning("recursive", "k")
		return 1
	})
	if !sawRunning {
		t.Fatalf("expected IsRunning to report true during the query's own body")
	}
	if c.IsRunning("recursive", "k") {
		t.Fatalf("expected IsRunning to report false once the query finished")
	}
}

func TestStoreResultThenRunReadsThrough(t *testing.T) {
	c := NewContext()
	StoreResult(c, "sig", "init#1", "provisional")
	got, ok := Peek[string](c, "sig", "init#1")
	if !ok || got != "provisional" {
		t.Fatalf("expected provisional value, got %q ok=%v", got, ok)
	}
	StoreResult(c, "sig", "init#1", "final")
	final := Run(c, "sig", "init#1", func() string {
		t.Fatalf("compute should not run: a value is already stored for this revision")
		return ""
	})
	if final != "final" {
		t.Fatalf("expected final value to read through, got %q", final)
	}
}

func TestPeekMissingKey(t *testing.T) {
	c := NewContext()
	if _, ok := Peek[int](c, "missing", "k"); ok {
		t.Fatalf("expected no value for an unqueried key")
	}
}
