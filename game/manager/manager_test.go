package manager

import "golang.org/x/exp/rand"

// scriptedRand replays fixed draws, reduced modulo n.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
