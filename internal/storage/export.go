package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// csvScore is the CSV row layout of an exported score.
type csvScore struct {
	Game     string `csv:"game"`
	Player   string `csv:"player"`
	Score    int    `csv:"score"`
	RunID    string `csv:"run_id"`
	PlayedAt string `csv:"played_at"`
}

// ExportCSV writes the scores of gameID (every game when empty) to w as
// CSV with a header row. It returns the number of rows written.
func (s *Store) ExportCSV(w io.Writer, gameID string) (int, error) {
	entries, err := s.AllScores(gameID)
	if err != nil {
		return 0, err
	}
	if err := WriteCSV(w, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// WriteCSV writes entries to w as CSV with a header row.
func WriteCSV(w io.Writer, entries []ScoreEntry) error {
	rows := make([]*csvScore, 0, len(entries))
	for _, e := range entries {
		row := &csvScore{
			Game:   e.GameID,
			Player: e.Player,
			Score:  e.Score,
			RunID:  e.RunID,
		}
		if !e.CreatedAt.IsZero() {
			row.PlayedAt = e.CreatedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		// Header only.
		_, err := io.WriteString(w, "game,player,score,run_id,played_at\n")
		if err != nil {
			return fmt.Errorf("storage: cannot write csv: %w", err)
		}
		return nil
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("storage: cannot write csv: %w", err)
	}
	return nil
}
