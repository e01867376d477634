package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTest(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("sort", "run", s, 2); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("rush", "run", 500, 7); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("sort", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}
	if scores[0].BestStreak != 2 || scores[0].RunID != "run" {
		t.Errorf("Entry fields not stored: %+v", scores[0])
	}

	rush, err := store.TopScores("rush", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(rush) != 1 {
		t.Errorf("Expected 1 rush score, got %d", len(rush))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTest(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "r", (i+1)*100, 0)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTest(t)

	high, err := store.HighScore("sort")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("sort", "a", 100, 0)
	store.SaveScore("sort", "b", 300, 0)
	store.SaveScore("sort", "c", 200, 0)

	high, err = store.HighScore("sort")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTest(t)

	records := []RoundRecord{
		{RunID: "r1", GameID: "sort", RoundNo: 1, Success: true, Delta: 8, Streak: 1, Duration: 4200 * time.Millisecond},
		{RunID: "r1", GameID: "sort", RoundNo: 2, Success: true, Delta: 8, Streak: 2, Duration: 3800 * time.Millisecond},
		{RunID: "r1", GameID: "sort", RoundNo: 3, Success: false, Streak: 0, Mistakes: 2, Duration: 12 * time.Second},
		{RunID: "r2", GameID: "rush", RoundNo: 1, Success: true, Delta: 1, Streak: 1, Duration: time.Second},
	}
	for _, r := range records {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	got, err := store.RecentRounds("sort", 2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(got))
	}
	if got[0].RoundNo != 3 || got[0].Success || got[0].Mistakes != 2 {
		t.Errorf("Newest round should come first: %+v", got[0])
	}
	if got[0].Duration != 12*time.Second {
		t.Errorf("Duration = %v, expected 12s", got[0].Duration)
	}

	all, err := store.RecentRounds("", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 rounds across games, got %d", len(all))
	}

	streak, err := store.BestStreak("sort")
	if err != nil {
		t.Fatalf("BestStreak() failed: %v", err)
	}
	if streak != 2 {
		t.Errorf("BestStreak() = %d, expected 2", streak)
	}
}

func TestStoreSaveRoundRequiresIDs(t *testing.T) {
	store := openTest(t)

	if _, err := store.SaveRound(RoundRecord{GameID: "sort"}); err == nil {
		t.Error("SaveRound without a run id should fail")
	}
	if _, err := store.SaveRound(RoundRecord{RunID: "r"}); err == nil {
		t.Error("SaveRound without a game id should fail")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTest(t)

	store.SaveScore("sort", "r1", 16, 2)
	store.SaveScore("sort", "r2", 8, 1)
	store.SaveRound(RoundRecord{RunID: "r1", GameID: "sort", RoundNo: 1, Success: true, Delta: 8, Streak: 1, Duration: 2 * time.Second})
	store.SaveRound(RoundRecord{RunID: "r1", GameID: "sort", RoundNo: 2, Success: false, Duration: 4 * time.Second})
	store.SaveRound(RoundRecord{RunID: "r3", GameID: "hunt", RoundNo: 1, Success: true, Delta: 1, Streak: 5, Duration: time.Second})

	stats, err := store.GetGameStats("sort")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 16 || stats.TotalScore != 24 {
		t.Errorf("Score stats = %+v", stats)
	}
	if stats.AvgScore != 12 {
		t.Errorf("AvgScore = %v, expected 12", stats.AvgScore)
	}
	if stats.Rounds != 2 || stats.RoundsWon != 1 || stats.Accuracy() != 0.5 {
		t.Errorf("Round stats = %+v", stats)
	}
	if stats.AvgRoundDur != 3*time.Second {
		t.Errorf("AvgRoundDur = %v, expected 3s", stats.AvgRoundDur)
	}
	if stats.BestStreak != 2 {
		t.Errorf("BestStreak = %d, expected 2", stats.BestStreak)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if hunt := all["hunt"]; hunt == nil || hunt.GamesCount != 0 || hunt.Rounds != 1 || hunt.BestStreak != 5 {
		t.Errorf("hunt stats = %+v", hunt)
	}

	empty, err := store.GetGameStats("none")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.Accuracy() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", empty)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTest(t)

	store.SaveScore("sort", "r", 100, 0)
	store.SaveScore("sort", "r", 200, 0)
	store.SaveScore("rush", "r", 300, 0)
	store.SaveRound(RoundRecord{RunID: "r", GameID: "sort", RoundNo: 1, Success: true})

	if err := store.ClearScores("sort"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	sortScores, _ := store.TopScores("sort", 10)
	if len(sortScores) != 0 {
		t.Errorf("Expected 0 sort scores after clear, got %d", len(sortScores))
	}
	rounds, _ := store.RecentRounds("sort", 10)
	if len(rounds) != 0 {
		t.Errorf("Expected round history to be cleared, got %d", len(rounds))
	}

	rushScores, _ := store.TopScores("rush", 10)
	if len(rushScores) != 1 {
		t.Errorf("Rush scores should not be affected by clearing sort")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
