// Package storage provides SQLite-based persistence for recorded rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// ErrReplayNotFound is returned when no replay has the requested ID.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Replay is a recorded round: the configuration it ran with, one input
// frame per tick, and the outcome it produced.
type Replay struct {
	ID      string
	GameID  string
	ScreenW int
	ScreenH int
	Config  []byte // YAML
	Frames  []core.InputFrame
	Resizes []Resize

	Score int
	Lives int
	State string
	Hash  uint64 // snapshot hash after the last frame

	CreatedAt time.Time
}

// Resize records a terminal size change applied before the frame at Tick.
type Resize struct {
	Tick   int
	Width  int
	Height int
}

// ReplaySummary is a replay without its config and frames, for listings.
type ReplaySummary struct {
	ID         string
	GameID     string
	FrameCount int
	Score      int
	Lives      int
	State      string
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Only non-empty input frames are stored; frame_count restores the gaps.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			screen_w INTEGER NOT NULL,
			screen_h INTEGER NOT NULL,
			config BLOB NOT NULL,
			frame_count INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			lives INTEGER NOT NULL DEFAULT 0,
			state TEXT NOT NULL,
			hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			actions INTEGER NOT NULL,
			pointer INTEGER,
			PRIMARY KEY (replay_id, tick)
		);

		CREATE TABLE IF NOT EXISTS replay_resizes (
			replay_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and its frames in one transaction.
// A missing ID is filled with a new UUID. Returns the replay ID.
func (s *Store) SaveReplay(r *Replay) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO replays
		 (id, game_id, screen_w, screen_h, config, frame_count, score, lives, state, hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.ScreenW, r.ScreenH, r.Config, len(r.Frames),
		r.Score, r.Lives, r.State, formatHash(r.Hash),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO replay_inputs (replay_id, tick, actions, pointer) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for tick, f := range r.Frames {
		if f.Empty() {
			continue
		}
		var ptr sql.NullInt64
		if f.HasPointer {
			ptr = sql.NullInt64{Int64: int64(f.Pointer), Valid: true}
		}
		if _, err := stmt.Exec(r.ID, tick, int64(f.Actions), ptr); err != nil {
			return "", fmt.Errorf("storage: cannot save input at tick %d: %w", tick, err)
		}
	}

	for seq, rs := range r.Resizes {
		_, err := tx.Exec(
			"INSERT INTO replay_resizes (replay_id, seq, tick, width, height) VALUES (?, ?, ?, ?, ?)",
			r.ID, seq, rs.Tick, rs.Width, rs.Height,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save resize: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return r.ID, nil
}

// LoadReplay retrieves a replay with all its frames.
// Returns ErrReplayNotFound if the ID is unknown.
func (s *Store) LoadReplay(id string) (*Replay, error) {
	var (
		r          Replay
		frameCount int
		hash       string
		createdAt  any
	)

	err := s.db.QueryRow(
		`SELECT id, game_id, screen_w, screen_h, config, frame_count, score, lives, state, hash, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(
		&r.ID, &r.GameID, &r.ScreenW, &r.ScreenH, &r.Config, &frameCount,
		&r.Score, &r.Lives, &r.State, &hash, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	if r.Hash, err = parseHash(hash); err != nil {
		return nil, fmt.Errorf("storage: replay %s has a corrupt hash: %w", id, err)
	}
	r.CreatedAt = parseTimestamp(createdAt)

	r.Frames = make([]core.InputFrame, frameCount)
	if err := s.loadInputs(id, r.Frames); err != nil {
		return nil, err
	}
	if r.Resizes, err = s.loadResizes(id); err != nil {
		return nil, err
	}

	return &r, nil
}

// loadInputs fills the stored frames into frames, indexed by tick.
func (s *Store) loadInputs(id string, frames []core.InputFrame) error {
	rows, err := s.db.Query(
		`SELECT tick, actions, pointer FROM replay_inputs WHERE replay_id = ? ORDER BY tick`,
		id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tick    int
			actions int64
			ptr     sql.NullInt64
		)
		if err := rows.Scan(&tick, &actions, &ptr); err != nil {
			return fmt.Errorf("storage: cannot scan input row: %w", err)
		}
		if tick < 0 || tick >= len(frames) {
			return fmt.Errorf("storage: replay %s has input at tick %d beyond %d frames", id, tick, len(frames))
		}

		f := core.InputFrame{Actions: uint16(actions)} //#nosec G115 -- written from a uint16
		if ptr.Valid {
			f.SetPointer(int(ptr.Int64))
		}
		frames[tick] = f
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("storage: row iteration error: %w", err)
	}
	return nil
}

func (s *Store) loadResizes(id string) ([]Resize, error) {
	rows, err := s.db.Query(
		`SELECT tick, width, height FROM replay_resizes WHERE replay_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query resizes: %w", err)
	}
	defer rows.Close()

	var resizes []Resize
	for rows.Next() {
		var rs Resize
		if err := rows.Scan(&rs.Tick, &rs.Width, &rs.Height); err != nil {
			return nil, fmt.Errorf("storage: cannot scan resize row: %w", err)
		}
		resizes = append(resizes, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return resizes, nil
}

// ListReplays returns the most recent replays, newest first.
// An empty gameID lists replays of every game.
func (s *Store) ListReplays(gameID string, limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, frame_count, score, lives, state, created_at
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var e ReplaySummary
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.FrameCount, &e.Score, &e.Lives, &e.State, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteReplay removes a replay and its frames.
// Returns ErrReplayNotFound if the ID is unknown.
func (s *Store) DeleteReplay(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM replay_resizes WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete resizes: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// formatHash encodes a hash as fixed-width hex; SQLite integers are signed.
func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

func parseHash(s string) (uint64, error) {
	return strconv.ParseUint(s, 16, 64)
}

// parseTimestamp handles both time.Time and string datetime values.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
