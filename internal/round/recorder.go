package round

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/schoolhelper/internal/store"
	"github.com/abhisek/schoolhelper/internal/trophies"
)

// Result is what the player sees when a round ends.
type Result struct {
	Summary Summary
	Award   trophies.Award

	// Saved is false when the session could not be persisted.
	Saved bool
}

// Recorder persists finished rounds. Storage failures are logged and do
// not interrupt play.
type Recorder struct {
	repo     store.Repo
	trophies *trophies.Service
	log      *zap.Logger
}

// NewRecorder creates a Recorder. A nil repo records nothing but still
// computes trophies.
func NewRecorder(repo store.Repo, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		repo:     repo,
		trophies: trophies.NewService(repo, log),
		log:      log,
	}
}

// Finish saves the round for playerID and awards its trophy.
func (rec *Recorder) Finish(ctx context.Context, playerID string, r *Round) Result {
	res := Result{Summary: r.Summary()}

	if rec.repo != nil && playerID != "" {
		sess := r.Session(playerID)
		if err := rec.repo.SaveSession(ctx, &sess); err != nil {
			rec.log.Warn("save session failed",
				zap.String("player_id", playerID),
				zap.String("game", string(sess.GameType)),
				zap.Error(err))
		} else {
			res.Saved = true
		}
	}

	res.Award = rec.trophies.Award(ctx, playerID, r.game.Type, res.Summary.Score, res.Summary.Total)
	return res
}
