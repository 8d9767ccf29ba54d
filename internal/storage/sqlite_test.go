package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/orb-dash/internal/games/runner"
)

var _ runner.BestStore = (*BestRecord)(nil)

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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		score int
		level int
	}{
		{100, 1},
		{50, 1},
		{2600, 2},
	}
	for _, r := range runs {
		if _, err := store.SaveRun("orbdash", "", r.score, r.level); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun("other", "", 500, 1); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	scores, err := store.TopScores("orbdash", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{2600, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Level != 2 {
		t.Errorf("Expected top run level 2, got %d", scores[0].Level)
	}
	for _, s := range scores {
		if s.RunID == "" {
			t.Error("Expected generated run ID")
		}
	}
}

func TestStoreSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun("orbdash", "run-fixed", 10, 0)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "run-fixed" {
		t.Errorf("SaveRun() id = %q, want run-fixed", id)
	}

	if _, err := store.SaveRun("orbdash", "run-fixed", 20, 1); err == nil {
		t.Error("Expected duplicate run ID to fail")
	}

	scores, _ := store.AllScores("orbdash")
	if len(scores) != 1 || scores[0].Level != 1 {
		t.Errorf("Expected one run clamped to level 1, got %+v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun("test", "", (i+1)*100, 1)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("orbdash")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRun("orbdash", "", 100, 1)
	store.SaveRun("orbdash", "", 300, 1)
	store.SaveRun("orbdash", "", 200, 1)

	high, err = store.HighScore("orbdash")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreBest(t *testing.T) {
	store := openTestStore(t)
	best := store.Best("orbdash")

	got, err := best.LoadBest()
	if err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Expected empty best 0, got %v", got)
	}

	tests := []struct {
		save float64
		want float64
	}{
		{1200, 1200},
		{3400, 3400},
		{900, 3400},
	}
	for _, tt := range tests {
		if err := best.SaveBest(tt.save); err != nil {
			t.Fatalf("SaveBest(%v) failed: %v", tt.save, err)
		}
		got, err := best.LoadBest()
		if err != nil {
			t.Fatalf("LoadBest() failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("after SaveBest(%v) best = %v, want %v", tt.save, got, tt.want)
		}
	}

	other, _ := store.LoadBest("other")
	if other != 0 {
		t.Errorf("Best leaked across games: %v", other)
	}
}

func TestStoreBestFeedsSession(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveBest(runner.GameID, 4321); err != nil {
		t.Fatalf("SaveBest() failed: %v", err)
	}

	cfg, catalog, err := runner.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	session := runner.NewSession(cfg, catalog, runner.Options{Best: store.Best(runner.GameID)})
	if session.Best() != 4321 {
		t.Errorf("Session best = %v, want 4321", session.Best())
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("orbdash", "", 100, 1)
	store.SaveRun("orbdash", "", 200, 1)
	store.SaveRun("other", "", 300, 1)
	store.SaveBest("orbdash", 200)

	if err := store.ClearScores("orbdash"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("orbdash", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if best, _ := store.LoadBest("orbdash"); best != 0 {
		t.Errorf("Expected best cleared, got %v", best)
	}

	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("Other game scores should not be affected by clearing")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun("test", "", i*10, 1)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("orbdash", "", 100, 1)
	store.SaveRun("orbdash", "", 300, 3)

	stats, err := store.GetGameStats("orbdash")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestLevel != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("Unexpected aggregates: %+v", stats)
	}

	empty, err := store.GetGameStats("none")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
