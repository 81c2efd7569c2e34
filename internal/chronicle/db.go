// Package chronicle records simulation outcomes in SQLite: one row per
// run, one per finished episode. It stores results only; live simulation
// state is never persisted and never restored.
package chronicle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/blobworld/internal/world"
)

// DB wraps a SQLite connection for outcome recording.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the chronicle database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open chronicle: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate chronicle: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS episodes (
		run_id TEXT NOT NULL REFERENCES runs(id),
		episode INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		terminated INTEGER NOT NULL,
		survivor INTEGER NOT NULL,
		final_masses_json TEXT NOT NULL,
		returns_json TEXT NOT NULL,
		PRIMARY KEY (run_id, episode)
	);

	CREATE INDEX IF NOT EXISTS idx_episodes_run ON episodes(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun registers a run and the config it was launched with.
func (db *DB) CreateRun(id string, cfg world.Config) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT INTO runs (id, created_at, config_json) VALUES (?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), string(cfgJSON),
	)
	return err
}

// Episode is one finished episode's outcome.
type Episode struct {
	RunID      string
	Episode    int
	Seed       int64
	Ticks      int
	Terminated bool
	// Survivor is the index of the last player alive, -1 when no single
	// survivor exists (none left, or several at truncation).
	Survivor    int
	FinalMasses []float64
	Returns     []float64
}

// RecordEpisode appends an episode outcome to its run.
func (db *DB) RecordEpisode(e Episode) error {
	massesJSON, _ := json.Marshal(e.FinalMasses)
	returnsJSON, _ := json.Marshal(e.Returns)

	terminated := 0
	if e.Terminated {
		terminated = 1
	}
	_, err := db.conn.Exec(
		`INSERT INTO episodes
		 (run_id, episode, seed, ticks, terminated, survivor, final_masses_json, returns_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Episode, e.Seed, e.Ticks, terminated, e.Survivor,
		string(massesJSON), string(returnsJSON),
	)
	return err
}

// EpisodeCount returns how many episodes a run has recorded.
func (db *DB) EpisodeCount(runID string) (int, error) {
	var n int
	err := db.conn.Get(&n, `SELECT COUNT(*) FROM episodes WHERE run_id = ?`, runID)
	return n, err
}
