package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-wolf/internal/core"
)

// LevelStat is a recorded level result.
type LevelStat struct {
	ID     int64
	Player string
	core.LevelReport
	CreatedAt time.Time
}

// RecordLevel stores one finished level.
func (s *Store) RecordLevel(player string, r core.LevelReport) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO level_stats
		 (player, map, completed, kills, total_kills, secrets, total_secrets,
		  treasure, total_treasure, seconds, par_seconds, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player, r.Map, r.Completed, r.Kills, r.TotalKills, r.Secrets, r.TotalSecrets,
		r.Treasure, r.TotalTreasure, r.Seconds, r.ParSeconds, r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record level: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LevelHistory returns the most recent results for a map, newest first.
// An empty map name returns results for every map.
func (s *Store) LevelHistory(mapName string, limit int) ([]LevelStat, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, player, map, completed, kills, total_kills, secrets, total_secrets,
		        treasure, total_treasure, seconds, par_seconds, score, created_at
		 FROM level_stats
		 WHERE ? = '' OR map = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mapName, mapName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stats: %w", err)
	}
	defer rows.Close()

	var out []LevelStat
	for rows.Next() {
		var st LevelStat
		var createdAt any
		if err := rows.Scan(&st.ID, &st.Player, &st.Map, &st.Completed,
			&st.Kills, &st.TotalKills, &st.Secrets, &st.TotalSecrets,
			&st.Treasure, &st.TotalTreasure, &st.Seconds, &st.ParSeconds,
			&st.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.CreatedAt = parseTime(createdAt)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BestTime returns the fastest completion of a map in seconds, and false
// when the map was never completed.
func (s *Store) BestTime(mapName string) (float64, bool, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT MIN(seconds) FROM level_stats WHERE map = ? AND completed = 1`,
		mapName,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return best.Float64, true, nil
}
