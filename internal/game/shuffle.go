package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"trivia-game-service/internal/domain"
)

// Shuffler is the seedable source of every random choice a session makes.
// It is owned by a single session and is not safe for concurrent use.
type Shuffler struct {
	rnd *rand.Rand
}

// NewShuffler returns a deterministic shuffler for seed.
func NewShuffler(seed int64) *Shuffler {
	return &Shuffler{rnd: rand.New(rand.NewSource(seed))}
}

// NewRandomShuffler seeds from crypto/rand, falling back to the wall clock.
func NewRandomShuffler() *Shuffler {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return NewShuffler(seed)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Perm returns a uniformly shuffled permutation of [0, n) (Fisher-Yates).
func (s *Shuffler) Perm(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

// Sample draws min(k, len(pool)) questions without replacement.
func (s *Shuffler) Sample(pool []domain.Question, k int) []domain.Question {
	if k > len(pool) {
		k = len(pool)
	}
	if k < 0 {
		k = 0
	}
	perm := s.Perm(len(pool))
	out := make([]domain.Question, k)
	for i := 0; i < k; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}

// Pick returns one question chosen uniformly from qs. qs must not be empty.
func (s *Shuffler) Pick(qs []domain.Question) domain.Question {
	return qs[s.rnd.Intn(len(qs))]
}

// Choices mixes the correct answer with the incorrect ones in a fresh order.
// Duplicates in the source data are kept as-is.
func (s *Shuffler) Choices(q domain.Question) []string {
	all := make([]string, 0, len(q.IncorrectAnswers)+1)
	all = append(all, q.CorrectAnswer)
	all = append(all, q.IncorrectAnswers...)

	out := make([]string, len(all))
	for i, j := range s.Perm(len(all)) {
		out[i] = all[j]
	}
	return out
}
