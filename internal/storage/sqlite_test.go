package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/genetic"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore(ScoreEntry{Player: "JOE", Score: 300}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("JOE")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{Player: "JOE", Score: 100, Lines: 2, Level: 1},
		{Player: "AlgoBot", Score: 5000, Lines: 40, Level: 5},
		{Player: "ANN", Score: 250, Lines: 3, Level: 1},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Player != "AlgoBot" || scores[0].Score != 5000 {
		t.Errorf("Expected AlgoBot 5000 first, got %s %d", scores[0].Player, scores[0].Score)
	}
	if scores[0].Lines != 40 || scores[0].Level != 5 {
		t.Errorf("Expected lines/level 40/5, got %d/%d", scores[0].Lines, scores[0].Level)
	}
	if scores[1].Score != 250 || scores[2].Score != 100 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{Player: "BOB", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("NOBODY")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for unknown player, got %d", high)
	}
}

func TestStorePlayerStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "JOE", Score: 100, Lines: 1})
	store.SaveScore(ScoreEntry{Player: "JOE", Score: 300, Lines: 4})
	store.SaveScore(ScoreEntry{Player: "ANN", Score: 50})

	stats, err := store.AllPlayerStats()
	if err != nil {
		t.Fatalf("AllPlayerStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(stats))
	}

	joe := stats["JOE"]
	if joe == nil {
		t.Fatal("Missing stats for JOE")
	}
	if joe.GamesCount != 2 || joe.HighScore != 300 || joe.AvgScore != 200 || joe.TotalLines != 5 {
		t.Errorf("Unexpected JOE stats: %+v", joe)
	}
}

func TestStoreRunHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const seed = uint64(1) << 63
	runID, err := store.CreateRun("optimizer:\n  generations: 2\n", seed)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	rec := store.RunRecorder(runID)
	for gen := range 2 {
		st := genetic.Stats{
			Generation: gen,
			AvgFit:     10.5 * float64(gen+1),
			TopFit:     100 * float64(gen+1),
			EliteFit:   80,
			TopGene:    agent.Genotype{-0.72, -0.73, -0.44, -0.01, -0.68, 0.83, -0.83, 0.30, 0.22},
		}
		if err := rec.Record(ctx, st); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	// Duplicate generations are rejected
	if err := store.SaveGeneration(ctx, runID, genetic.Stats{Generation: 1}); err == nil {
		t.Error("Expected error for duplicate generation")
	}

	runs, err := store.Runs(10)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if runs[0].Seed != seed {
		t.Errorf("Expected seed %d, got %d", seed, runs[0].Seed)
	}
	if runs[0].Generations != 2 || runs[0].BestFit != 200 {
		t.Errorf("Unexpected run summary: %+v", runs[0])
	}

	gens, err := store.Generations(runID)
	if err != nil {
		t.Fatalf("Generations() failed: %v", err)
	}
	if len(gens) != 2 {
		t.Fatalf("Expected 2 generations, got %d", len(gens))
	}
	if gens[1].AvgFit != 21 || gens[1].TopFit != 200 {
		t.Errorf("Unexpected generation 1: %+v", gens[1])
	}
	if gens[0].TopGene[5] != 0.83 {
		t.Errorf("Gene did not round-trip: %v", gens[0].TopGene)
	}
}

func TestStoreRunsEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Runs(0)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}
