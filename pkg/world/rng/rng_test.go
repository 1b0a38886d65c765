package rng

import "testing"

func TestSourceDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		if x, y := a.Next(100), b.Next(100); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestSourceRanges(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		if v := r.Next(3); v < 0 || v >= 3 {
			t.Fatalf("Next(3) = %d, out of [0,3)", v)
		}
		if v := r.Range(5, 12); v < 5 || v >= 12 {
			t.Fatalf("Range(5,12) = %d, out of [5,12)", v)
		}
	}
	if got := r.Range(4, 4); got != 4 {
		t.Errorf("Range(4,4) = %d, want 4", got)
	}
	if got := r.Next(0); got != 0 {
		t.Errorf("Next(0) = %d, want 0", got)
	}
}

func TestSourceOneIn(t *testing.T) {
	r := New(99)

	hits := 0
	const n = 20000
	for range n {
		if r.OneIn(4) {
			hits++
		}
	}
	// Expect roughly a quarter.
	if hits < n/5 || hits > n/3 {
		t.Errorf("OneIn(4) hit %d/%d times, expected about %d", hits, n, n/4)
	}
	if !r.OneIn(1) || !r.OneIn(0) {
		t.Error("OneIn(1) and OneIn(0) must always be true")
	}
}

func TestForkIndependent(t *testing.T) {
	parent := New(1)
	before := *parent

	f1 := parent.Fork(3, 4, 600)
	f2 := parent.Fork(3, 4, 600)
	if f1.Next(1000) != f2.Next(1000) {
		t.Error("forks with the same inputs diverged")
	}
	if *parent != before {
		t.Error("Fork advanced the parent state")
	}

	other := parent.Fork(4, 3, 600)
	same := true
	for range 10 {
		if f1.Next(1<<20) != other.Next(1<<20) {
			same = false
		}
	}
	if same {
		t.Error("forks for different regions produced identical sequences")
	}
}
