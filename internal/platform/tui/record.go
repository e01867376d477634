package tui

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/chroma-arcade/internal/core"
	"github.com/vovakirdan/chroma-arcade/internal/storage"
)

// ScoreStore persists finished games and rounds. *storage.Store implements it.
type ScoreStore interface {
	SaveScore(gameID, runID string, score, bestStreak int) (int64, error)
	SaveRound(r storage.RoundRecord) (int64, error)
}

var _ ScoreStore = (*storage.Store)(nil)

// recorder writes a game's rounds and final score. Each game run gets its
// own id so rounds can be grouped later.
type recorder struct {
	store  ScoreStore
	gameID string
	runID  string
	logger *log.Logger
	saved  bool // final score of the current run written
}

func newRecorder(store ScoreStore, gameID string, logger *log.Logger) *recorder {
	return &recorder{
		store:  store,
		gameID: gameID,
		runID:  uuid.NewString(),
		logger: logger,
	}
}

// record stores the rounds that finished in a tick and, when a game ended,
// its score.
func (r *recorder) record(res core.StepResult) {
	if r.store == nil {
		return
	}

	for _, ev := range res.Rounds {
		_, err := r.store.SaveRound(storage.RoundRecord{
			RunID:    r.runID,
			GameID:   r.gameID,
			RoundNo:  ev.Round,
			Success:  ev.Success,
			Delta:    ev.ScoreDelta,
			Streak:   ev.Streak,
			Mistakes: ev.Mistakes,
			Duration: ev.Elapsed,
		})
		if err != nil {
			r.logger.Warn("could not save round", "game", r.gameID, "round", ev.Round, "error", err)
		}
	}

	if res.Ended {
		r.saveScore(res.EndedScore, res.State.BestStreak)
		r.runID = uuid.NewString()
		r.saved = false
	}
}

// finish stores the score of the run in progress, once.
func (r *recorder) finish(state core.GameState) {
	if r.store == nil || r.saved || state.Score <= 0 {
		return
	}
	r.saveScore(state.Score, state.BestStreak)
	r.saved = true
}

func (r *recorder) saveScore(score, best int) {
	if _, err := r.store.SaveScore(r.gameID, r.runID, score, best); err != nil {
		r.logger.Warn("could not save score", "game", r.gameID, "error", err)
		return
	}
	r.logger.Debug("score saved", "game", r.gameID, "run", r.runID, "score", score)
}

// RunID returns the id of the run in progress.
func (r *recorder) RunID() string {
	return r.runID
}
