package trophies

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/schoolhelper/internal/store"
)

// Award is the outcome of a finished round.
type Award struct {
	Tier     Tier
	GameType store.GameType
	Score    int
	Total    int

	// New is false when the player already held this tier for the game,
	// or when the award could not be saved.
	New      bool
	EarnedAt time.Time
}

// Earned reports whether the round reached any tier.
func (a Award) Earned() bool { return a.Tier != TierNone }

// Service computes and records trophies. Persistence failures are logged
// and never reach the caller; a round always ends with its award shown.
type Service struct {
	repo store.Repo
	log  *zap.Logger
}

// NewService creates a Service. A nil repo disables persistence.
func NewService(repo store.Repo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Award computes the tier for the round and saves it for the player.
func (s *Service) Award(ctx context.Context, playerID string, game store.GameType, score, total int) Award {
	award := Award{
		Tier:     TierFor(score, total),
		GameType: game,
		Score:    score,
		Total:    total,
		EarnedAt: time.Now(),
	}
	if !award.Earned() || s.repo == nil || playerID == "" {
		return award
	}

	t := &store.Trophy{PlayerID: playerID, GameType: game, TrophyType: string(award.Tier)}
	created, err := s.repo.AwardTrophy(ctx, t)
	if err != nil {
		s.log.Warn("award trophy failed",
			zap.String("player_id", playerID),
			zap.String("game", string(game)),
			zap.String("tier", string(award.Tier)),
			zap.Error(err))
		return award
	}
	award.New = created
	award.EarnedAt = t.EarnedAt
	return award
}

// List returns the player's trophies, newest first. Errors yield an empty list.
func (s *Service) List(ctx context.Context, playerID string) []store.Trophy {
	if s.repo == nil {
		return nil
	}
	list, err := s.repo.Trophies(ctx, playerID)
	if err != nil {
		s.log.Warn("list trophies failed", zap.String("player_id", playerID), zap.Error(err))
		return nil
	}
	return list
}

// Counts tallies trophies by tier.
func Counts(list []store.Trophy) map[Tier]int {
	counts := make(map[Tier]int, 3)
	for _, t := range list {
		counts[Tier(t.TrophyType)]++
	}
	return counts
}
