package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func saveRuns(t *testing.T, store *Store, runs ...Run) {
	t.Helper()
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%+v) failed: %v", r, err)
		}
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

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

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saveRuns(t, store, Run{Difficulty: "easy", Moves: 30, Cols: 20, Rows: 20})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns("easy", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		Player:     "alice",
		Difficulty: "hard",
		Moves:      42,
		Duration:   3500 * time.Millisecond,
		Cols:       20,
		Rows:       15,
		Seed:       7,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	best, err := store.BestRun("hard")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil {
		t.Fatal("Expected a best run")
	}
	if best.ID != id || best.Player != "alice" || best.Moves != 42 {
		t.Errorf("Got %+v, expected alice with 42 moves", best)
	}
	if best.Duration != 3500*time.Millisecond {
		t.Errorf("Duration = %v, expected 3.5s", best.Duration)
	}
	if best.Cols != 20 || best.Rows != 15 || best.Seed != 7 {
		t.Errorf("Grid/seed = %dx%d/%d, expected 20x15/7", best.Cols, best.Rows, best.Seed)
	}
	if best.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestSaveRunValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Moves: 3}); err == nil {
		t.Error("Run without difficulty should be rejected")
	}
	if _, err := store.SaveRun(Run{Difficulty: "easy", Moves: -1}); err == nil {
		t.Error("Negative moves should be rejected")
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store,
		Run{Player: "a", Difficulty: "medium", Moves: 40, Duration: 10 * time.Second},
		Run{Player: "b", Difficulty: "medium", Moves: 25, Duration: 20 * time.Second},
		Run{Player: "c", Difficulty: "medium", Moves: 25, Duration: 5 * time.Second},
		Run{Player: "d", Difficulty: "easy", Moves: 10, Duration: time.Second},
	)

	runs, err := store.TopRuns("medium", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 medium runs, got %d", len(runs))
	}

	want := []string{"c", "b", "a"}
	for i, p := range want {
		if runs[i].Player != p {
			t.Errorf("Rank %d = %s, expected %s", i+1, runs[i].Player, p)
		}
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].Player != "d" {
		t.Errorf("Top across difficulties = %+v, expected d first and limit 2", all)
	}
}

func TestTopRunsEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.TopRuns("hard", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}

	best, err := store.BestRun("hard")
	if err != nil || best != nil {
		t.Errorf("BestRun on empty table = %v, %v; expected nil, nil", best, err)
	}
}

func TestDifficultyStats(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store,
		Run{Difficulty: "easy", Moves: 20, Duration: 4 * time.Second},
		Run{Difficulty: "easy", Moves: 30, Duration: 2 * time.Second},
		Run{Difficulty: "hard", Moves: 50, Duration: 9 * time.Second},
	)

	stats, err := store.DifficultyStats()
	if err != nil {
		t.Fatalf("DifficultyStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 difficulties, got %d", len(stats))
	}

	easy := stats["easy"]
	if easy == nil {
		t.Fatal("Missing easy stats")
	}
	if easy.Wins != 2 || easy.BestMoves != 20 || easy.AvgMoves != 25 {
		t.Errorf("Easy stats = %+v, expected 2 wins, best 20, avg 25", easy)
	}
	if easy.BestDuration != 2*time.Second {
		t.Errorf("Easy best duration = %v, expected 2s", easy.BestDuration)
	}
	if _, ok := stats["medium"]; ok {
		t.Error("Medium has no runs and should be absent")
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	saveRuns(t, store,
		Run{Difficulty: "easy", Moves: 1},
		Run{Difficulty: "easy", Moves: 2},
		Run{Difficulty: "hard", Moves: 3},
	)

	n, err := store.ClearRuns("easy")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Cleared %d runs, expected 2", n)
	}

	hard, _ := store.TopRuns("hard", 10)
	if len(hard) != 1 {
		t.Errorf("Hard runs should survive, got %d", len(hard))
	}

	if n, _ := store.ClearRuns(""); n != 1 {
		t.Errorf("Clearing everything removed %d runs, expected 1", n)
	}
}
