// Package storage provides SQLite-based persistence for game scores and
// training runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/genetic"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	Lines     int
	Level     int
	CreatedAt time.Time
}

// RunEntry summarizes one training run.
type RunEntry struct {
	ID          int64
	ConfigYAML  string
	Seed        uint64
	Generations int
	BestFit     float64
	CreatedAt   time.Time
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			config_yaml TEXT NOT NULL,
			seed TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS generations (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			generation INTEGER NOT NULL,
			avg_fit REAL NOT NULL,
			top_fit REAL NOT NULL,
			elite_fit REAL NOT NULL,
			avg_gene TEXT NOT NULL,
			top_gene TEXT NOT NULL,
			elite_gene TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, generation)
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

// SaveScore records a finished game. Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (player, score, lines, level) VALUES (?, ?, ?, ?)",
		e.Player, e.Score, e.Lines, e.Level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores across all players.
// Results are ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, lines, level, created_at
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
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Lines, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given player.
// Returns 0 if no scores exist.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE player = ?",
		player,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// PlayerStats contains aggregated statistics for a player.
type PlayerStats struct {
	Player     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// AllPlayerStats retrieves statistics for every player that has a score.
func (s *Store) AllPlayerStats() (map[string]*PlayerStats, error) {
	rows, err := s.db.Query(
		`SELECT player, COUNT(*), MAX(score), AVG(score), SUM(lines), MAX(created_at)
		 FROM scores
		 GROUP BY player`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PlayerStats)
	for rows.Next() {
		var p PlayerStats
		var lastPlayed any
		if err := rows.Scan(&p.Player, &p.GamesCount, &p.HighScore, &p.AvgScore, &p.TotalLines, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		p.LastPlayed = parseTime(lastPlayed)
		stats[p.Player] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// CreateRun records the start of a training run and returns its ID.
func (s *Store) CreateRun(configYAML string, seed uint64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (config_yaml, seed) VALUES (?, ?)",
		configYAML, strconv.FormatUint(seed, 10),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveGeneration records the statistics of one generation of a run.
func (s *Store) SaveGeneration(ctx context.Context, runID int64, st genetic.Stats) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations
		 (run_id, generation, avg_fit, top_fit, elite_fit, avg_gene, top_gene, elite_gene)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, st.Generation,
		st.AvgFit, st.TopFit, st.EliteFit,
		formatGene(st.AvgGene), formatGene(st.TopGene), formatGene(st.EliteGene),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save generation %d of run %d: %w", st.Generation, runID, err)
	}
	return nil
}

// Runs retrieves the most recent training runs with their progress.
func (s *Store) Runs(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.config_yaml, r.seed, COUNT(g.generation), COALESCE(MAX(g.top_fit), 0), r.created_at
		 FROM runs r
		 LEFT JOIN generations g ON g.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var seed string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.ConfigYAML, &seed, &r.Generations, &r.BestFit, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run row: %w", err)
		}
		if r.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("storage: run %d has bad seed %q: %w", r.ID, seed, err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Generations retrieves the recorded statistics of a run in order.
func (s *Store) Generations(runID int64) ([]genetic.Stats, error) {
	rows, err := s.db.Query(
		`SELECT generation, avg_fit, top_fit, elite_fit, avg_gene, top_gene, elite_gene
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var out []genetic.Stats
	for rows.Next() {
		var st genetic.Stats
		var avg, top, elite string
		if err := rows.Scan(&st.Generation, &st.AvgFit, &st.TopFit, &st.EliteFit, &avg, &top, &elite); err != nil {
			return nil, fmt.Errorf("storage: cannot scan generation row: %w", err)
		}
		for _, f := range []struct {
			text string
			dst  *agent.Genotype
		}{{avg, &st.AvgGene}, {top, &st.TopGene}, {elite, &st.EliteGene}} {
			if *f.dst, err = parseGene(f.text); err != nil {
				return nil, fmt.Errorf("storage: run %d generation %d: %w", runID, st.Generation, err)
			}
		}
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// RunRecorder returns a genetic.Recorder that saves every generation under runID.
func (s *Store) RunRecorder(runID int64) genetic.Recorder {
	return genetic.RecorderFunc(func(ctx context.Context, st genetic.Stats) error {
		return s.SaveGeneration(ctx, runID, st)
	})
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func formatGene(g agent.Genotype) string {
	parts := make([]string, len(g))
	for i, w := range g {
		parts[i] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func parseGene(s string) (agent.Genotype, error) {
	var g agent.Genotype
	parts := strings.Split(s, ",")
	if len(parts) != len(g) {
		return g, errors.New("gene has wrong length")
	}
	for i, p := range parts {
		w, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return g, fmt.Errorf("bad gene weight %q: %w", p, err)
		}
		g[i] = w
	}
	return g, nil
}
