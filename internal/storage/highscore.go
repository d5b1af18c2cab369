package storage

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-runner/internal/runner"
)

// HighScores adapts the record of one variant to runner.HighScoreStore.
// The simulation cannot handle errors, so failures are logged and a failed
// read counts as no record.
func (s *Store) HighScores(variant string, logger *log.Logger) runner.HighScoreStore {
	if logger == nil {
		logger = log.Default()
	}
	return &recordStore{store: s, variant: variant, logger: logger}
}

type recordStore struct {
	store   *Store
	variant string
	logger  *log.Logger
}

func (r *recordStore) HighScore() int {
	score, err := r.store.Record(r.variant)
	if err != nil {
		r.logger.Error("read high score", "variant", r.variant, "err", err)
		return 0
	}
	return score
}

func (r *recordStore) SetHighScore(score int) {
	raised, err := r.store.SetRecord(r.variant, score)
	switch {
	case err != nil:
		r.logger.Error("write high score", "variant", r.variant, "score", score, "err", err)
	case raised:
		r.logger.Info("new high score", "variant", r.variant, "score", score)
	default:
		r.logger.Debug("stored high score is higher", "variant", r.variant, "score", score)
	}
}
