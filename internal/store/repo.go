package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrEmptyName is returned when a player name is blank.
	ErrEmptyName = errors.New("player name is empty")
)

// GameType identifies one of the three games.
type GameType string

const (
	GameMath    GameType = "math"
	GameNumbers GameType = "numbers"
	GameWords   GameType = "words"
)

// Player is a child using the app.
type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Session is one finished round.
type Session struct {
	ID             string
	PlayerID       string
	GameType       GameType
	Difficulty     string // math only
	Mode           string // numbers only
	Score          int
	TotalQuestions int
	TimeSeconds    int
	CreatedAt      time.Time
}

// Trophy records a tier earned in a game.
type Trophy struct {
	ID         string
	PlayerID   string
	GameType   GameType
	TrophyType string
	EarnedAt   time.Time
}

// Repo persists players, sessions, trophies and preferences.
type Repo interface {
	// GetOrCreatePlayer returns the player with name, creating it if needed.
	GetOrCreatePlayer(ctx context.Context, name string) (Player, error)

	// PlayerByName returns ErrNotFound when no player has name.
	PlayerByName(ctx context.Context, name string) (Player, error)

	// Players lists all players ordered by name.
	Players(ctx context.Context) ([]Player, error)

	// SaveSession stores s, filling in ID and CreatedAt when unset.
	SaveSession(ctx context.Context, s *Session) error

	// RecentSessions returns up to limit sessions, newest first.
	RecentSessions(ctx context.Context, playerID string, limit int) ([]Session, error)

	// AwardTrophy stores t unless the player already holds that tier for
	// the game. It reports whether a new trophy was created and fills t
	// from the stored row either way.
	AwardTrophy(ctx context.Context, t *Trophy) (bool, error)

	// Trophies lists a player's trophies, newest first.
	Trophies(ctx context.Context, playerID string) ([]Trophy, error)

	// Pref returns the stored preference value and whether it was set.
	Pref(ctx context.Context, key string) (string, bool, error)

	// SetPref stores or replaces a preference.
	SetPref(ctx context.Context, key, value string) error

	Close() error
}
