package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LeaderboardEntry is one player's standing.
type LeaderboardEntry struct {
	Rank       int
	Player     string
	BestScore  int
	AchievedAt time.Time // When BestScore was first reached
	Runs       int
	LastPlayed time.Time
}

// Stats contains aggregated statistics over all recorded runs.
type Stats struct {
	Runs       int
	Players    int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// RecordScore stores a finished run and raises the player's best score.
// It returns the player's best score after the update.
func (s *Store) RecordScore(player string, score int, duration time.Duration) (int, error) {
	if score < 0 {
		return 0, ErrNegativeScore
	}
	player, err := NormalizePlayer(player)
	if err != nil {
		return 0, err
	}
	now := toMillis(s.now())

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO scores (player, score, duration_ms, created_at) VALUES (?, ?, ?, ?)",
		player, score, duration.Milliseconds(), now,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	// best_at only moves when the best strictly improves, so ties keep the
	// earlier achievement.
	if _, err := tx.Exec(
		`INSERT INTO players (player, best_score, best_at, runs, last_played)
		 VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT(player) DO UPDATE SET
		   best_at = CASE WHEN excluded.best_score > players.best_score
		                  THEN excluded.best_at ELSE players.best_at END,
		   best_score = MAX(players.best_score, excluded.best_score),
		   runs = players.runs + 1,
		   last_played = excluded.last_played`,
		player, score, now, now,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot update player: %w", err)
	}

	var best int
	if err := tx.QueryRow("SELECT best_score FROM players WHERE player = ?", player).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot read best score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return best, nil
}

// BestScore returns the player's best score, or 0 if they never played.
func (s *Store) BestScore(player string) (int, error) {
	player, err := NormalizePlayer(player)
	if err != nil {
		return 0, nil
	}
	var best sql.NullInt64
	err = s.db.QueryRow("SELECT best_score FROM players WHERE player = ?", player).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return int(best.Int64), nil
}

// Leaderboard returns players ordered by best score.
// Ties go to whoever reached the score first. The limit defaults to
// DefaultLimit and is capped at MaxLimit.
func (s *Store) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	limit = normalizeLimit(limit)

	rows, err := s.db.Query(
		`SELECT player, best_score, best_at, runs, last_played
		 FROM players
		 ORDER BY best_score DESC, best_at ASC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var (
			e                  LeaderboardEntry
			bestAt, lastPlayed int64
		)
		if err := rows.Scan(&e.Player, &e.BestScore, &bestAt, &e.Runs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Rank = len(entries) + 1
		e.AchievedAt = fromMillis(bestAt)
		e.LastPlayed = fromMillis(lastPlayed)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerRank returns the player's leaderboard entry with its rank.
// It returns ErrPlayerNotFound for players without runs.
func (s *Store) PlayerRank(player string) (LeaderboardEntry, error) {
	name, err := NormalizePlayer(player)
	if err != nil {
		return LeaderboardEntry{Player: player}, fmt.Errorf("%w: %s", ErrPlayerNotFound, player)
	}
	player = name

	e := LeaderboardEntry{Player: player}
	var bestAt, lastPlayed int64

	err = s.db.QueryRow(
		"SELECT best_score, best_at, runs, last_played FROM players WHERE player = ?",
		player,
	).Scan(&e.BestScore, &bestAt, &e.Runs, &lastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%w: %s", ErrPlayerNotFound, player)
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot query player: %w", err)
	}

	var ahead int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM players
		 WHERE best_score > ?1
		    OR (best_score = ?1 AND best_at < ?2)
		    OR (best_score = ?1 AND best_at = ?2 AND player < ?3)`,
		e.BestScore, bestAt, player,
	).Scan(&ahead)
	if err != nil {
		return e, fmt.Errorf("storage: cannot compute rank: %w", err)
	}

	e.Rank = ahead + 1
	e.AchievedAt = fromMillis(bestAt)
	e.LastPlayed = fromMillis(lastPlayed)
	return e, nil
}

// TopScores returns the best individual runs across all players.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	limit = normalizeLimit(limit)

	rows, err := s.db.Query(
		`SELECT id, player, score, duration_ms, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e                     ScoreEntry
			durationMs, createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = fromMillis(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores`,
	).Scan(&stats.Runs, &stats.Players, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if lastPlayed.Valid {
		stats.LastPlayed = fromMillis(lastPlayed.Int64)
	}
	return stats, nil
}
