package runner

import "sync"

// HighScoreStore persists the single high-score value of a variant.
// HighScore is read once when a Simulation is built; SetHighScore is called at
// most once per session, when the final score beats the stored one.
type HighScoreStore interface {
	HighScore() int
	SetHighScore(score int)
}

// MemoryStore is an in-process HighScoreStore. It is safe for concurrent use
// so several sessions may share one.
type MemoryStore struct {
	mu     sync.Mutex
	score  int
	writes int
}

// NewMemoryStore returns a store that starts at score.
func NewMemoryStore(score int) *MemoryStore {
	return &MemoryStore{score: score}
}

// HighScore implements HighScoreStore.
func (m *MemoryStore) HighScore() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

// SetHighScore implements HighScoreStore.
func (m *MemoryStore) SetHighScore(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	m.writes++
}

// Writes returns how many times SetHighScore was called.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
