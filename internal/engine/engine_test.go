package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/chroma-arcade/internal/clock"
	"github.com/vovakirdan/chroma-arcade/internal/color"
	"github.com/vovakirdan/chroma-arcade/internal/round"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var rgbPalette = color.MustPalette(
	color.MustColor("red", "#ef4444"),
	color.MustColor("blue", "#3b82f6"),
	color.MustColor("green", "#22c55e"),
)

var rgbBuckets = color.BucketTable{
	"red":   color.BucketWarm,
	"blue":  color.BucketCool,
	"green": color.BucketCool,
}

func newSortEngine(t *testing.T, seed int64) (*Engine, *clock.Manual) {
	t.Helper()
	src := clock.NewManual(epoch)
	e, err := New(Config{
		Kind:     KindSort,
		Pool:     rgbPalette,
		Buckets:  rgbBuckets,
		Round:    round.Options{Count: 3},
		Duration: 5 * time.Second,
		Seed:     seed,
	}, src)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e, src
}

func newTargetEngine(t *testing.T, pool color.Palette, confirm int, cooldown time.Duration) (*Engine, *clock.Manual) {
	t.Helper()
	src := clock.NewManual(epoch)
	e, err := New(Config{
		Kind:           KindTarget,
		Pool:           pool,
		Round:          round.Options{Count: 1},
		Duration:       30 * time.Second,
		Seed:           5,
		Cooldown:       cooldown,
		ConfirmSamples: confirm,
	}, src)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e, src
}

// idOf finds the item carrying the named colour.
func idOf(t *testing.T, s Snapshot, name string) round.ItemID {
	t.Helper()
	for _, it := range s.Items {
		if it.Color.Name == name {
			return it.ID
		}
	}
	t.Fatalf("no item named %q in %v", name, s.Items)
	return -1
}

func TestEngineStartsIdle(t *testing.T) {
	e, _ := newSortEngine(t, 1)
	s := e.Snapshot()
	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %v, expected idle", s.Phase)
	}
	if e.SubmitPlacement(0, color.BucketWarm) {
		t.Error("placement while idle should be rejected")
	}
	if err := e.NextRound(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("NextRound() while idle error = %v, expected ErrNotStarted", err)
	}
}

func TestSortScenarioSuccess(t *testing.T) {
	e, _ := newSortEngine(t, 1)
	if err := e.StartGame(); err != nil {
		t.Fatalf("StartGame() failed: %v", err)
	}
	s := e.Snapshot()

	e.SubmitPlacement(idOf(t, s, "red"), color.BucketWarm)
	e.SubmitPlacement(idOf(t, s, "blue"), color.BucketCool)
	if e.Phase() != PhaseActive {
		t.Fatal("round should stay active until every item is placed")
	}
	e.SubmitPlacement(idOf(t, s, "green"), color.BucketCool)

	s = e.Snapshot()
	if s.Phase != PhaseResult || !s.Success {
		t.Fatalf("expected Result(success), got %v success=%v", s.Phase, s.Success)
	}
	if s.Score != 3 {
		t.Errorf("Score = %d, expected 3", s.Score)
	}
	if s.Streak != 1 {
		t.Errorf("Streak = %d, expected 1", s.Streak)
	}
	if len(s.Mistakes) != 0 {
		t.Errorf("Mistakes = %v, expected none", s.Mistakes)
	}
}

func TestSortScenarioFailure(t *testing.T) {
	e, _ := newSortEngine(t, 1)
	e.StartGame()

	// Win one round first so the streak reset is observable.
	s := e.Snapshot()
	e.SubmitPlacement(idOf(t, s, "red"), color.BucketWarm)
	e.SubmitPlacement(idOf(t, s, "blue"), color.BucketCool)
	e.SubmitPlacement(idOf(t, s, "green"), color.BucketCool)
	if e.Snapshot().Streak != 1 {
		t.Fatal("setup round should have succeeded")
	}

	if err := e.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}
	s = e.Snapshot()
	red := idOf(t, s, "red")
	e.SubmitPlacement(red, color.BucketCool)
	e.SubmitPlacement(idOf(t, s, "blue"), color.BucketCool)
	e.SubmitPlacement(idOf(t, s, "green"), color.BucketCool)

	s = e.Snapshot()
	if s.Phase != PhaseResult || s.Success {
		t.Fatalf("expected Result(failure), got %v success=%v", s.Phase, s.Success)
	}
	if len(s.Mistakes) != 1 || s.Mistakes[0] != red {
		t.Errorf("Mistakes = %v, expected [%d]", s.Mistakes, red)
	}
	if names := s.MistakeNames(); len(names) != 1 || names[0] != "red" {
		t.Errorf("MistakeNames() = %v, expected [red]", names)
	}
	if s.Streak != 0 {
		t.Errorf("Streak = %d, expected 0", s.Streak)
	}
	if s.Score != 3 {
		t.Errorf("Score = %d, expected 3 (unchanged by failure)", s.Score)
	}
	if s.BestStreak != 1 {
		t.Errorf("BestStreak = %d, expected 1", s.BestStreak)
	}
}

func TestExpiryFailsRound(t *testing.T) {
	e, src := newSortEngine(t, 2)
	e.StartGame()
	s := e.Snapshot()

	// A correct partial placement does not help once time runs out.
	e.SubmitPlacement(idOf(t, s, "red"), color.BucketWarm)

	src.Advance(5 * time.Second)
	e.Tick()

	s = e.Snapshot()
	if s.Phase != PhaseResult || s.Success {
		t.Fatalf("expected Result(failure) after expiry, got %v success=%v", s.Phase, s.Success)
	}
	if s.Streak != 0 {
		t.Errorf("Streak = %d, expected 0", s.Streak)
	}
	if s.Remaining != 0 {
		t.Errorf("Remaining = %v, expected 0", s.Remaining)
	}
	// red was right; the unplaced two are mistakes.
	if len(s.Mistakes) != 2 {
		t.Errorf("Mistakes = %v, expected the two unplaced items", s.Mistakes)
	}
}

func TestActionAfterDeadlineIsIgnored(t *testing.T) {
	e, src := newSortEngine(t, 3)
	e.StartGame()
	s := e.Snapshot()
	e.SubmitPlacement(idOf(t, s, "red"), color.BucketWarm)
	e.SubmitPlacement(idOf(t, s, "blue"), color.BucketCool)

	// Deadline passes but no tick has observed it yet.
	src.Advance(6 * time.Second)
	if e.SubmitPlacement(idOf(t, s, "green"), color.BucketCool) {
		t.Error("placement after the deadline should be rejected")
	}

	s = e.Snapshot()
	if s.Phase != PhaseResult || s.Success {
		t.Fatalf("expiry should win, got %v success=%v", s.Phase, s.Success)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
}

func TestStaleClockEventIgnored(t *testing.T) {
	e, _ := newSortEngine(t, 4)
	e.StartGame()
	oldToken := e.Snapshot().Token

	// Skip to a new round while the first is still running.
	if err := e.NextRound(); err != nil {
		t.Fatalf("NextRound() failed: %v", err)
	}
	newToken := e.Snapshot().Token
	if newToken == oldToken {
		t.Fatal("new round should carry a new token")
	}

	if e.HandleClockEvent(clock.Event{Token: oldToken, Expired: true}) {
		t.Error("stale expiry should be discarded")
	}
	if e.Phase() != PhaseActive {
		t.Fatalf("stale expiry moved round to %v", e.Phase())
	}

	if !e.HandleClockEvent(clock.Event{Token: newToken, Expired: true}) {
		t.Error("current expiry should be accepted")
	}
	if e.Phase() != PhaseResult {
		t.Errorf("Phase = %v, expected result", e.Phase())
	}
	if e.HandleClockEvent(clock.Event{Token: newToken, Expired: true}) {
		t.Error("duplicate expiry should be discarded")
	}
}

func TestOldRoundClockCannotExpireNewRound(t *testing.T) {
	e, src := newSortEngine(t, 5)
	e.StartGame()

	// Round 1 is 4s in when round 2 starts; round 1's deadline passing
	// must not end round 2.
	src.Advance(4 * time.Second)
	e.NextRound()
	src.Advance(2 * time.Second)
	e.Tick()

	if e.Phase() != PhaseActive {
		t.Fatalf("round 2 ended at the old deadline, phase %v", e.Phase())
	}
	src.Advance(3 * time.Second)
	e.Tick()
	if e.Phase() != PhaseResult {
		t.Errorf("round 2 should expire at its own deadline, phase %v", e.Phase())
	}
}

func TestPlacementOrderIndependence(t *testing.T) {
	orders := [][]string{
		{"red", "blue", "green"},
		{"green", "red", "blue"},
		{"blue", "green", "red"},
	}
	want := map[string]color.Bucket{
		"red":   color.BucketCool,
		"blue":  color.BucketCool,
		"green": color.BucketCool,
	}

	var outcomes []bool
	var mistakes [][]round.ItemID
	for _, order := range orders {
		e, _ := newSortEngine(t, 9)
		e.StartGame()
		s := e.Snapshot()
		for _, name := range order {
			e.SubmitPlacement(idOf(t, s, name), want[name])
		}
		s = e.Snapshot()
		outcomes = append(outcomes, s.Success)
		mistakes = append(mistakes, s.Mistakes)
	}

	for i := 1; i < len(outcomes); i++ {
		if outcomes[i] != outcomes[0] {
			t.Errorf("order %v gave success=%v, order %v gave %v", orders[i], outcomes[i], orders[0], outcomes[0])
		}
		if len(mistakes[i]) != len(mistakes[0]) || mistakes[i][0] != mistakes[0][0] {
			t.Errorf("mistakes differ: %v vs %v", mistakes[i], mistakes[0])
		}
	}
}

func TestReplacingAPlacement(t *testing.T) {
	e, _ := newSortEngine(t, 6)
	e.StartGame()
	s := e.Snapshot()
	red := idOf(t, s, "red")

	e.SubmitPlacement(red, color.BucketCool)
	e.SubmitPlacement(red, color.BucketNone)
	if _, placed := e.Snapshot().Placements[red]; placed {
		t.Fatal("BucketNone should clear the placement")
	}
	e.SubmitPlacement(red, color.BucketWarm)
	e.SubmitPlacement(idOf(t, s, "blue"), color.BucketCool)
	e.SubmitPlacement(idOf(t, s, "green"), color.BucketCool)

	if !e.Snapshot().Success {
		t.Error("only the final placement should count")
	}
}

func TestInvalidPlacementRejected(t *testing.T) {
	e, _ := newSortEngine(t, 7)
	e.StartGame()

	for _, id := range []round.ItemID{-1, 3, 42} {
		if e.SubmitPlacement(id, color.BucketWarm) {
			t.Errorf("placement for unknown item %d should be rejected", id)
		}
	}
	if e.SubmitPlacement(0, color.Bucket("lukewarm")) {
		t.Error("unknown bucket should be rejected")
	}
	if len(e.Snapshot().Placements) != 0 {
		t.Error("rejected placements must not change state")
	}
}

func TestNewGameResetsScoreNextRoundKeepsIt(t *testing.T) {
	e, _ := newSortEngine(t, 8)
	e.StartGame()
	s := e.Snapshot()
	e.SubmitPlacement(idOf(t, s, "red"), color.BucketWarm)
	e.SubmitPlacement(idOf(t, s, "blue"), color.BucketCool)
	e.SubmitPlacement(idOf(t, s, "green"), color.BucketCool)

	e.NextRound()
	s = e.Snapshot()
	if s.Score != 3 || s.Streak != 1 {
		t.Errorf("NextRound should keep score/streak, got %d/%d", s.Score, s.Streak)
	}
	if len(s.Placements) != 0 {
		t.Error("NextRound should clear placements")
	}
	if s.RoundNo != 2 {
		t.Errorf("RoundNo = %d, expected 2", s.RoundNo)
	}

	e.StartGame()
	s = e.Snapshot()
	if s.Score != 0 || s.Streak != 0 {
		t.Errorf("StartGame should reset score/streak, got %d/%d", s.Score, s.Streak)
	}
}

func TestTargetHitSuccess(t *testing.T) {
	e, _ := newTargetEngine(t, color.RushPalette, 1, 0)
	e.StartGame()
	s := e.Snapshot()
	if s.Target == nil {
		t.Fatal("target game must have a target")
	}

	other := color.RushPalette.At(0)
	if other.Name == s.Target.Name {
		other = color.RushPalette.At(1)
	}
	e.SubmitTargetHit(other.RGB)
	if e.Phase() != PhaseActive {
		t.Fatal("wrong colour should not end the round")
	}
	if e.Snapshot().Misses != 1 {
		t.Errorf("Misses = %d, expected 1", e.Snapshot().Misses)
	}

	e.SubmitTargetHit(s.Target.RGB)
	s = e.Snapshot()
	if s.Phase != PhaseResult || !s.Success {
		t.Fatalf("expected Result(success), got %v success=%v", s.Phase, s.Success)
	}
	if s.Score != 1 || s.Streak != 1 {
		t.Errorf("score/streak = %d/%d, expected 1/1", s.Score, s.Streak)
	}
}

func TestItemHitUsesTileColour(t *testing.T) {
	src := clock.NewManual(epoch)
	e, err := New(Config{
		Kind:     KindTarget,
		Pool:     color.RushPalette,
		Round:    round.Options{Count: 25, Replacement: true},
		Duration: 5 * time.Second,
		Seed:     11,
	}, src)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	e.StartGame()
	s := e.Snapshot()

	if e.SubmitItemHit(99) {
		t.Error("unknown tile should be rejected")
	}
	for _, it := range s.Items {
		if it.Color.Name == s.Target.Name {
			e.SubmitItemHit(it.ID)
			break
		}
	}
	if !e.Snapshot().Success {
		t.Error("clicking a target tile should win the round")
	}
}

func TestCameraSamplesNearTarget(t *testing.T) {
	e, _ := newTargetEngine(t, color.HuntPalette, 1, 0)
	// Reroll until the target is red.
	for i := 0; i < 100; i++ {
		e.StartGame()
		if e.Snapshot().Target.Name == "red" {
			break
		}
	}
	if e.Snapshot().Target.Name != "red" {
		t.Skip("seed never produced a red target")
	}

	e.SubmitTargetHit(color.RGB{R: 250, G: 80, B: 80})
	s := e.Snapshot()
	if !s.Success {
		t.Errorf("sample near red should hit, reading %v", s.Reading)
	}
}

func TestTargetDebounce(t *testing.T) {
	e, src := newTargetEngine(t, color.HuntPalette, 3, 500*time.Millisecond)
	e.StartGame()
	target := e.Snapshot().Target.RGB

	if e.SubmitTargetHit(target) {
		t.Error("hits inside the cooldown should be ignored")
	}

	src.Advance(600 * time.Millisecond)
	e.SubmitTargetHit(target)
	e.SubmitTargetHit(target)
	if e.Phase() != PhaseActive {
		t.Fatal("two samples should not be enough with ConfirmSamples=3")
	}

	// A miss resets the run.
	var miss color.RGB
	for _, c := range color.HuntPalette.Colors() {
		if c.RGB != target {
			miss = c.RGB
			break
		}
	}
	e.SubmitTargetHit(miss)
	e.SubmitTargetHit(target)
	e.SubmitTargetHit(target)
	if e.Phase() != PhaseActive {
		t.Fatal("run should have been reset by the miss")
	}
	e.SubmitTargetHit(target)
	if !e.Snapshot().Success {
		t.Error("three consecutive matches should win")
	}

	// Samples after the round ended are ignored.
	if e.SubmitTargetHit(target) {
		t.Error("samples in Result should be ignored")
	}
	if e.Snapshot().Score != 1 {
		t.Errorf("Score = %d, repeated samples must not score again", e.Snapshot().Score)
	}
}

func TestWrongKindIntentsRejected(t *testing.T) {
	sortEngine, _ := newSortEngine(t, 1)
	sortEngine.StartGame()
	if sortEngine.SubmitTargetHit(color.RGB{}) {
		t.Error("target hit on sort game should be rejected")
	}

	targetEngine, _ := newTargetEngine(t, color.RushPalette, 1, 0)
	targetEngine.StartGame()
	if targetEngine.SubmitPlacement(0, color.BucketWarm) {
		t.Error("placement on target game should be rejected")
	}
}

func TestSubscribe(t *testing.T) {
	e, src := newSortEngine(t, 1)

	var phases []Phase
	cancel := e.Subscribe(func(s Snapshot) {
		phases = append(phases, s.Phase)
	})

	e.StartGame()
	src.Advance(time.Second)
	e.Tick()
	src.Advance(10 * time.Second)
	e.Tick()

	if len(phases) != 3 {
		t.Fatalf("expected 3 notifications, got %d: %v", len(phases), phases)
	}
	if phases[0] != PhaseActive || phases[2] != PhaseResult {
		t.Errorf("unexpected phases %v", phases)
	}

	cancel()
	e.NextRound()
	if len(phases) != 3 {
		t.Error("cancelled subscriber should not be called")
	}
}

func TestSetDurationAppliesToNextRound(t *testing.T) {
	e, src := newSortEngine(t, 1)
	e.StartGame()

	if err := e.SetDuration(0); !errors.Is(err, ErrConfig) {
		t.Errorf("SetDuration(0) error = %v, expected ErrConfig", err)
	}
	if err := e.SetDuration(2 * time.Second); err != nil {
		t.Fatalf("SetDuration() failed: %v", err)
	}

	// The running round keeps its 5s deadline.
	src.Advance(3 * time.Second)
	e.Tick()
	if e.Phase() != PhaseActive {
		t.Fatal("running round should keep its original deadline")
	}
	if d := e.Snapshot().Duration; d != 5*time.Second {
		t.Errorf("Duration = %v, expected 5s for the running round", d)
	}

	e.NextRound()
	if d := e.Snapshot().Duration; d != 2*time.Second {
		t.Errorf("Duration = %v, expected 2s for the new round", d)
	}
	src.Advance(2 * time.Second)
	e.Tick()
	if e.Phase() != PhaseResult {
		t.Error("new round should expire after 2s")
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty pool", Config{Kind: KindSort, Buckets: rgbBuckets, Round: round.Options{Count: 1}, Duration: time.Second}},
		{"zero duration", Config{Kind: KindSort, Pool: rgbPalette, Buckets: rgbBuckets, Round: round.Options{Count: 1}}},
		{"zero count", Config{Kind: KindSort, Pool: rgbPalette, Buckets: rgbBuckets, Duration: time.Second}},
		{"count exceeds pool", Config{Kind: KindSort, Pool: rgbPalette, Buckets: rgbBuckets, Round: round.Options{Count: 4}, Duration: time.Second}},
		{"missing buckets", Config{Kind: KindSort, Pool: rgbPalette, Round: round.Options{Count: 1}, Duration: time.Second}},
		{"unclassified color", Config{Kind: KindSort, Pool: rgbPalette, Buckets: color.BucketTable{"red": color.BucketWarm}, Round: round.Options{Count: 1}, Duration: time.Second}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg, nil)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("New() error = %v, expected ErrConfig", err)
			}
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	items := []round.Item{
		{ID: 0, Color: rgbPalette.At(0)},
		{ID: 1, Color: rgbPalette.At(1)},
		{ID: 2, Color: rgbPalette.At(2)},
	}
	placements := map[round.ItemID]color.Bucket{
		0: color.BucketCool,
		2: color.BucketCool,
	}

	ok, wrong, err := Evaluate(items, placements, rgbBuckets)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if ok {
		t.Error("expected failure")
	}
	if len(wrong) != 2 || wrong[0] != 0 || wrong[1] != 1 {
		t.Errorf("wrong = %v, expected [0 1]", wrong)
	}

	ok2, wrong2, _ := Evaluate(items, placements, rgbBuckets)
	if ok2 != ok || len(wrong2) != len(wrong) {
		t.Error("Evaluate should be deterministic")
	}

	_, _, err = Evaluate(items, placements, color.BucketTable{})
	if !errors.Is(err, color.ErrUnclassified) {
		t.Errorf("Evaluate() with empty table error = %v, expected ErrUnclassified", err)
	}
}
