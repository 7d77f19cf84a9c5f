package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so history queries can run while the watch loop writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rrg_snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			benchmark   TEXT NOT NULL,
			timeframe   TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			rs_ratio    REAL,
			rs_momentum REAL,
			quadrant    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snap_ts ON rrg_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_snap_symbol ON rrg_snapshots(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Record(snapshots []Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, s := range snapshots {
		if _, err := tx.Exec(`INSERT INTO rrg_snapshots
			(timestamp, benchmark, timeframe, symbol, rs_ratio, rs_momentum, quadrant)
			VALUES (?,?,?,?,?,?,?)`,
			s.TakenAt.Unix(), s.Benchmark, s.Timeframe, s.Symbol,
			s.RSRatio, s.RSMomentum, s.Quadrant,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert snapshot %s: %w", s.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) LatestQuadrants(benchmark, timeframe string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT symbol, quadrant FROM rrg_snapshots
		WHERE benchmark = ? AND timeframe = ?
		  AND timestamp = (SELECT MAX(timestamp) FROM rrg_snapshots s2
		                   WHERE s2.symbol = rrg_snapshots.symbol
		                     AND s2.benchmark = ? AND s2.timeframe = ?)`,
		benchmark, timeframe, benchmark, timeframe)
	if err != nil {
		return nil, fmt.Errorf("query latest quadrants: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var symbol, quadrant string
		if err := rows.Scan(&symbol, &quadrant); err != nil {
			return nil, err
		}
		out[symbol] = quadrant
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) History(symbol string, limit int) ([]Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT timestamp, benchmark, timeframe, symbol, rs_ratio, rs_momentum, quadrant
		FROM rrg_snapshots WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var ts int64
		if err := rows.Scan(&ts, &s.Benchmark, &s.Timeframe, &s.Symbol, &s.RSRatio, &s.RSMomentum, &s.Quadrant); err != nil {
			return nil, err
		}
		s.TakenAt = time.Unix(ts, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
