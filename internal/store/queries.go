package store

import (
	"context"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var (
	playerColumns  = []string{"id", "name", "created_at"}
	sessionColumns = []string{"id", "player_id", "game_type", "difficulty", "mode", "score", "total_questions", "time_seconds", "created_at"}
	trophyColumns  = []string{"id", "player_id", "game_type", "trophy_type", "earned_at"}
)

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func (s *Store) GetOrCreatePlayer(ctx context.Context, name string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, ErrEmptyName
	}

	q, args := s.builder().Insert(tablePlayers).
		Columns(playerColumns...).
		Values(uuid.NewString(), name, s.now()).
		OnConflict(entsql.ConflictColumns("name"), entsql.DoNothing()).
		Query()
	if _, err := s.backend.exec(ctx, q, args...); err != nil {
		return Player{}, fmt.Errorf("insert player: %w", err)
	}
	return s.PlayerByName(ctx, name)
}

func (s *Store) PlayerByName(ctx context.Context, name string) (Player, error) {
	q, args := s.builder().Select(playerColumns...).
		From(entsql.Table(tablePlayers)).
		Where(entsql.EQ("name", strings.TrimSpace(name))).
		Query()
	players, err := s.queryPlayers(ctx, q, args...)
	if err != nil {
		return Player{}, err
	}
	if len(players) == 0 {
		return Player{}, ErrNotFound
	}
	return players[0], nil
}

func (s *Store) Players(ctx context.Context) ([]Player, error) {
	q, args := s.builder().Select(playerColumns...).
		From(entsql.Table(tablePlayers)).
		OrderBy("name").
		Query()
	return s.queryPlayers(ctx, q, args...)
}

func (s *Store) queryPlayers(ctx context.Context, q string, args ...any) ([]Player, error) {
	rs, err := s.backend.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rs.Close()

	var out []Player
	for rs.Next() {
		var p Player
		if err := rs.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rs.Err()
}

func (s *Store) SaveSession(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}

	q, args := s.builder().Insert(tableSessions).
		Columns(sessionColumns...).
		Values(sess.ID, sess.PlayerID, string(sess.GameType), sess.Difficulty, sess.Mode,
			sess.Score, sess.TotalQuestions, sess.TimeSeconds, sess.CreatedAt.UTC()).
		Query()
	if _, err := s.backend.exec(ctx, q, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) RecentSessions(ctx context.Context, playerID string, limit int) ([]Session, error) {
	sel := s.builder().Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("player_id", playerID)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	rs, err := s.backend.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rs.Close()

	var out []Session
	for rs.Next() {
		var (
			sess     Session
			gameType string
		)
		if err := rs.Scan(&sess.ID, &sess.PlayerID, &gameType, &sess.Difficulty, &sess.Mode,
			&sess.Score, &sess.TotalQuestions, &sess.TimeSeconds, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.GameType = GameType(gameType)
		out = append(out, sess)
	}
	return out, rs.Err()
}

func (s *Store) AwardTrophy(ctx context.Context, t *Trophy) (bool, error) {
	if t.EarnedAt.IsZero() {
		t.EarnedAt = s.now()
	}

	q, args := s.builder().Insert(tableTrophies).
		Columns(trophyColumns...).
		Values(uuid.NewString(), t.PlayerID, string(t.GameType), t.TrophyType, t.EarnedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("player_id", "game_type", "trophy_type"),
			entsql.DoNothing(),
		).
		Query()
	n, err := s.backend.exec(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("insert trophy: %w", err)
	}

	q, args = s.builder().Select(trophyColumns...).
		From(entsql.Table(tableTrophies)).
		Where(entsql.And(
			entsql.EQ("player_id", t.PlayerID),
			entsql.EQ("game_type", string(t.GameType)),
			entsql.EQ("trophy_type", t.TrophyType),
		)).
		Query()
	stored, err := s.queryTrophies(ctx, q, args...)
	if err != nil {
		return false, err
	}
	if len(stored) == 0 {
		return false, ErrNotFound
	}
	*t = stored[0]
	return n > 0, nil
}

func (s *Store) Trophies(ctx context.Context, playerID string) ([]Trophy, error) {
	q, args := s.builder().Select(trophyColumns...).
		From(entsql.Table(tableTrophies)).
		Where(entsql.EQ("player_id", playerID)).
		OrderBy(entsql.Desc("earned_at"), "game_type").
		Query()
	return s.queryTrophies(ctx, q, args...)
}

func (s *Store) queryTrophies(ctx context.Context, q string, args ...any) ([]Trophy, error) {
	rs, err := s.backend.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query trophies: %w", err)
	}
	defer rs.Close()

	var out []Trophy
	for rs.Next() {
		var (
			t        Trophy
			gameType string
		)
		if err := rs.Scan(&t.ID, &t.PlayerID, &gameType, &t.TrophyType, &t.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan trophy: %w", err)
		}
		t.GameType = GameType(gameType)
		out = append(out, t)
	}
	return out, rs.Err()
}

func (s *Store) Pref(ctx context.Context, key string) (string, bool, error) {
	q, args := s.builder().Select("value").
		From(entsql.Table(tablePrefs)).
		Where(entsql.EQ("key", key)).
		Query()
	rs, err := s.backend.query(ctx, q, args...)
	if err != nil {
		return "", false, fmt.Errorf("query preference: %w", err)
	}
	defer rs.Close()

	if !rs.Next() {
		return "", false, rs.Err()
	}
	var v string
	if err := rs.Scan(&v); err != nil {
		return "", false, fmt.Errorf("scan preference: %w", err)
	}
	return v, true, nil
}

func (s *Store) SetPref(ctx context.Context, key, value string) error {
	q, args := s.builder().Insert(tablePrefs).
		Columns("key", "value").
		Values(key, value).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := s.backend.exec(ctx, q, args...); err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}
