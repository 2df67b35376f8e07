// Package history persists completed rounds as JSON records so they can be
// replayed, audited (manual-review holes in particular) and fed back into
// statistics.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/fairwaylabs/wolfgoatpig/internal/fileutil"
	"github.com/fairwaylabs/wolfgoatpig/internal/game"
)

// PlayerRecord is one player's line in a round record.
type PlayerRecord struct {
	ID       game.PlayerID `json:"id"`
	Name     string        `json:"name"`
	Handicap float64       `json:"handicap"`
	Points   float64       `json:"points"`
}

// Record is the archived form of one finished (or abandoned) round.
type Record struct {
	GameID     string            `json:"game_id"`
	RecordedAt time.Time         `json:"recorded_at"`
	Course     string            `json:"course"`
	Rules      game.RulesConfig  `json:"rules"`
	Players    []PlayerRecord    `json:"players"`
	Holes      []game.HoleResult `json:"holes"`
	Finished   bool              `json:"finished"`

	// ReviewHoles lists holes whose settlement needs a human look.
	ReviewHoles []int `json:"review_holes,omitempty"`
}

// NewRecord builds a Record from a game state at its current point.
func NewRecord(s *game.State, now time.Time) Record {
	rec := Record{
		GameID:     s.ID,
		RecordedAt: now,
		Course:     s.Course.Name,
		Rules:      s.Rules,
		Holes:      append([]game.HoleResult(nil), s.History...),
		Finished:   s.Finished,
	}
	for _, p := range s.Players {
		rec.Players = append(rec.Players, PlayerRecord{
			ID:       p.ID,
			Name:     p.Name,
			Handicap: p.Handicap,
			Points:   p.Points,
		})
	}
	for _, h := range s.History {
		if h.NeedsManualReview {
			rec.ReviewHoles = append(rec.ReviewHoles, h.Hole)
		}
	}
	return rec
}

// Writer persists round records.
type Writer interface {
	WriteRound(s *game.State) error
}

// FileWriter writes one JSON file per round into a directory. Writes are
// atomic so a concurrent reader never sees a partial record.
type FileWriter struct {
	dir    string
	clock  quartz.Clock
	logger *log.Logger
}

// FileWriterOption configures a FileWriter.
type FileWriterOption func(*FileWriter)

// WithClock overrides the wall clock (tests use a mock).
func WithClock(clock quartz.Clock) FileWriterOption {
	return func(w *FileWriter) { w.clock = clock }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *log.Logger) FileWriterOption {
	return func(w *FileWriter) { w.logger = logger }
}

// NewFileWriter creates the directory if needed and returns a writer into it.
func NewFileWriter(dir string, opts ...FileWriterOption) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	w := &FileWriter{dir: dir}
	for _, opt := range opts {
		opt(w)
	}
	if w.clock == nil {
		w.clock = quartz.NewReal()
	}
	if w.logger == nil {
		w.logger = log.New(os.Stderr)
	}
	return w, nil
}

// WriteRound archives the round under <dir>/<timestamp>-<gameid>.json.
func (w *FileWriter) WriteRound(s *game.State) error {
	now := w.clock.Now().UTC()
	rec := NewRecord(s, now)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding round record: %w", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("%s-%s.json", now.Format("20060102T150405Z"), rec.GameID))
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing round record: %w", err)
	}
	w.logger.Debug("round archived", "game", rec.GameID, "path", path, "holes", len(rec.Holes))
	return nil
}

// ReadRecord loads a single archived record.
func ReadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading round record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding round record %s: %w", path, err)
	}
	return &rec, nil
}

// NoopWriter discards rounds. Simulations that only want statistics use it.
type NoopWriter struct{}

func (NoopWriter) WriteRound(*game.State) error { return nil }
