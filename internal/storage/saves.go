package storage

import (
	"fmt"
	"time"
)

// SaveSlot is one stored save-state blob.
type SaveSlot struct {
	Player    string
	Slot      int
	GameID    string
	Map       string
	Label     string
	Data      []byte
	Size      int // Length of Data, filled by ListSaves
	UpdatedAt time.Time
}

// PutSave writes a slot, replacing any previous content.
func (s *Store) PutSave(slot SaveSlot) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (player, slot, game_id, map, label, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player, slot) DO UPDATE SET
			game_id = excluded.game_id,
			map = excluded.map,
			label = excluded.label,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP`,
		slot.Player, slot.Slot, slot.GameID, slot.Map, slot.Label, slot.Data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save slot %d: %w", slot.Slot, err)
	}
	return nil
}

// GetSave reads a slot. The boolean is false when the slot is empty.
func (s *Store) GetSave(player string, slot int) (SaveSlot, bool, error) {
	out := SaveSlot{Player: player, Slot: slot}
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT game_id, map, label, data, updated_at FROM saves WHERE player = ? AND slot = ?`,
		player, slot,
	).Scan(&out.GameID, &out.Map, &out.Label, &out.Data, &updatedAt)
	if err != nil {
		ok, err := notFound(err)
		if err != nil {
			return SaveSlot{}, false, fmt.Errorf("storage: cannot read save slot %d: %w", slot, err)
		}
		return SaveSlot{}, ok, nil
	}
	out.Size = len(out.Data)
	out.UpdatedAt = parseTime(updatedAt)
	return out, true, nil
}

// ListSaves returns a player's slots without their data, lowest slot first.
// An empty player lists every slot.
func (s *Store) ListSaves(player string) ([]SaveSlot, error) {
	rows, err := s.db.Query(
		`SELECT player, slot, game_id, map, label, length(data), updated_at
		 FROM saves
		 WHERE ? = '' OR player = ?
		 ORDER BY player, slot`,
		player, player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var slots []SaveSlot
	for rows.Next() {
		var sl SaveSlot
		var updatedAt any
		if err := rows.Scan(&sl.Player, &sl.Slot, &sl.GameID, &sl.Map, &sl.Label, &sl.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sl.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// DeleteSave removes a slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSave(player string, slot int) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE player = ? AND slot = ?", player, slot); err != nil {
		return fmt.Errorf("storage: cannot delete save slot %d: %w", slot, err)
	}
	return nil
}
