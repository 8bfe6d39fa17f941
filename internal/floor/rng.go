package floor

import "math/rand"

// countingSource wraps a seeded source and counts draws, so a snapshot can
// record (seed, draws) and a restore can replay the source to the exact
// same state. Every Int63/Uint64 call advances the underlying source once,
// so replaying is just advancing it draws times.
type countingSource struct {
	src   rand.Source64
	draws uint64
}

func newCountingSource(seed int64) *countingSource {
	return &countingSource{src: rand.NewSource(seed).(rand.Source64)}
}

func (s *countingSource) Int63() int64 {
	s.draws++
	return s.src.Int63()
}

func (s *countingSource) Uint64() uint64 {
	s.draws++
	return s.src.Uint64()
}

func (s *countingSource) Seed(seed int64) {
	s.src.Seed(seed)
	s.draws = 0
}

// advance burns n draws without counting them twice.
func (s *countingSource) advance(n uint64) {
	for i := uint64(0); i < n; i++ {
		s.src.Uint64()
	}
	s.draws = n
}
