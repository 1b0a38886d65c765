package rng

// Source is a small deterministic LCG. Every tree placement draws from one
// shared Source, so the order of calls decides the generated world.
type Source struct {
	state int64
}

// New creates a Source from a seed.
func New(seed int64) *Source {
	return &Source{state: seed}
}

// Fork derives an independent Source for a region, keeping the parent's
// sequence untouched.
func (r *Source) Fork(x, y int, salt int64) *Source {
	s := r.state ^ (int64(x)*341873128712 + int64(y)*132897987541 + salt)
	return &Source{state: s}
}

func (r *Source) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Next returns a value in [0, n). n <= 0 returns 0 without drawing.
func (r *Source) Next(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

// Range returns a value in [lo, hi). An empty range returns lo.
func (r *Source) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Next(hi-lo)
}

// OneIn reports true with probability 1/n. n <= 1 is always true but still
// consumes a draw.
func (r *Source) OneIn(n int) bool {
	if n <= 1 {
		r.next()
		return true
	}
	return r.Next(n) == 0
}
