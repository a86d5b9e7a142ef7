package t2048

import (
	"errors"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

type fakeStore struct {
	values  map[string]int
	saves   int
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]int)}
}

func (f *fakeStore) HighScore(key string) (int, error) {
	return f.values[key], nil
}

func (f *fakeStore) SaveHighScore(key string, value int) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.values[key] = max(f.values[key], value)
	return nil
}

func newTestGame(t *testing.T, v Variant, mutate func(*config.T2048Config), store core.HighScoreStore) *Game {
	t.Helper()
	cfg := config.DefaultT2048Config()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := New(v, registry.Env{Config: cfg, Scores: store})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{Seed: 42}, testNow)
	return g
}

// setBoard replaces the grid and rebuilds the render pool as resting tiles.
func setBoard(t *testing.T, g *Game, rows [][]int) {
	t.Helper()
	if err := g.grid.Load(rows); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	g.pool.reset()
	n := g.grid.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if v := g.grid.at(x, y); v != 0 {
				g.pool.alloc(x, y, v)
			}
		}
	}
}

func TestReset(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)
	snap := g.Snapshot()

	if count(snap.Grid) != 2 || sum(snap.Grid) != 4 {
		t.Errorf("Reset() grid = %v, expected two 2-tiles", snap.Grid)
	}
	if snap.State != StatePlaying || snap.CanUndo || snap.Moves != 0 {
		t.Errorf("Reset() snapshot = %+v", snap)
	}
	if snap.LiveTiles != 2 {
		t.Errorf("LiveTiles = %d, expected 2", snap.LiveTiles)
	}
	for _, tile := range g.pool.live() {
		if tile.Anim != AnimPulse || tile.Value != 2 {
			t.Errorf("spawned tile = %+v, expected pulsing 2", tile)
		}
	}
	if snap.HighScore != 2 {
		t.Errorf("HighScore = %d, expected 2 after reset", snap.HighScore)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultT2048Config()
	cfg.Grid.Size = 1
	if _, err := New(VariantStandard, registry.Env{Config: cfg}); err == nil {
		t.Error("New() should reject an invalid config")
	}
}

func TestDeterminism(t *testing.T) {
	dirs := []Direction{DirLeft, DirUp, DirRight, DirDown, DirDown, DirLeft, DirUp, DirRight}

	run := func() []Snapshot {
		g := newTestGame(t, VariantStandard, nil, nil)
		snaps := []Snapshot{g.Snapshot()}
		for i := 0; i < 60; i++ {
			g.Move(dirs[i%len(dirs)], testNow.Add(time.Duration(i)*time.Second))
			snaps = append(snaps, g.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("step %d diverged:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestMoveWithoutChange(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)
	setBoard(t, g, [][]int{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := g.grid.Values()

	if g.Move(DirLeft, testNow) {
		t.Error("Move() should report no change")
	}
	if !slices.Equal(g.grid.Values(), before) {
		t.Errorf("grid changed:\n%s", g.grid)
	}
	if g.canUndo {
		t.Error("A move without change must not arm undo")
	}
	if n := len(g.pool.live()); n != 3 {
		t.Errorf("live tiles = %d, expected one resting tile per value", n)
	}
}

func TestMoveSpawnsOneTile(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		mutate  func(*config.T2048Config)
		allowed []int
	}{
		{"standard", VariantStandard, nil, []int{2, 4}},
		{"classic", VariantClassic, nil, []int{2}},
		{"always four", VariantStandard, func(c *config.T2048Config) {
			p := 1.0
			c.Spawn.FourProbability = &p
		}, []int{4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, tc.variant, tc.mutate, nil)
			for i := 0; i < 200; i++ {
				before := g.grid.Values()
				if !g.Move(Direction(i%4), testNow) {
					continue
				}
				merged := 0
				for _, tile := range g.pool.live() {
					if tile.Anim == AnimSlideMerge {
						merged++
					}
				}
				added := sum(g.grid.Values()) - sum(before)
				if !slices.Contains(tc.allowed, added) {
					t.Fatalf("move %d added %d, expected one of %v", i, added, tc.allowed)
				}
				if count(g.grid.Values()) != count(before)-merged+1 {
					t.Fatalf("move %d: tile count %d -> %d with %d merges", i, count(before), count(g.grid.Values()), merged)
				}
				if g.state == StateGameOver {
					g.Apply(core.ActionReset, testNow)
				}
			}
		})
	}
}

func TestUndo(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)
	setBoard(t, g, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	before := g.grid.Values()

	if g.Undo(testNow) {
		t.Error("Undo() before any move should be a no-op")
	}

	if !g.Move(DirLeft, testNow) {
		t.Fatal("Move() should change the grid")
	}
	if !g.State().CanUndo {
		t.Fatal("CanUndo should be set after a move")
	}

	if !g.Undo(testNow) {
		t.Fatal("Undo() should succeed after a move")
	}
	if !slices.Equal(g.grid.Values(), before) {
		t.Errorf("Undo() restored\n%s\nexpected %v", g.grid, before)
	}
	if g.State().CanUndo {
		t.Error("CanUndo should be cleared by Undo()")
	}

	live := g.pool.live()
	if len(live) != 3 {
		t.Errorf("Undo() emitted %d tiles, expected 3", len(live))
	}
	for _, tile := range live {
		if tile.Anim != AnimPulse {
			t.Errorf("restored tile %+v should pulse", tile)
		}
	}

	after := g.grid.Values()
	if g.Undo(testNow) {
		t.Error("Second Undo() should be a no-op")
	}
	if !slices.Equal(g.grid.Values(), after) {
		t.Error("Second Undo() changed the grid")
	}
}

func TestUndoDisabledByConfig(t *testing.T) {
	off := false
	g := newTestGame(t, VariantStandard, func(c *config.T2048Config) { c.Undo.Enabled = &off }, nil)
	setBoard(t, g, [][]int{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if !g.Move(DirLeft, testNow) {
		t.Fatal("Move() should change the grid")
	}
	if g.State().CanUndo || g.Undo(testNow) {
		t.Error("Undo should stay unavailable when disabled")
	}
}

func TestGameOverAndRecovery(t *testing.T) {
	g := newTestGame(t, VariantClassic, func(c *config.T2048Config) { c.Grid.Size = 2 }, nil)
	setBoard(t, g, [][]int{
		{4, 2},
		{8, 0},
	})

	if g.Apply(core.ActionReset, testNow) {
		t.Error("Reset action should be ignored while playing")
	}

	// The only empty cell after moving right is (0, 1), and it gets a 2.
	if !g.Move(DirRight, testNow) {
		t.Fatal("Move() should change the grid")
	}
	want := []int{4, 2, 2, 8}
	if !slices.Equal(g.grid.Values(), want) {
		t.Fatalf("grid = %v, expected %v", g.grid.Values(), want)
	}
	if !g.State().GameOver {
		t.Fatal("Expected game over")
	}

	if !g.Apply(core.ActionUndo, testNow) {
		t.Fatal("Undo should be allowed from game over")
	}
	if g.State().GameOver {
		t.Error("Undo should return to playing")
	}
	if !slices.Equal(g.grid.Values(), []int{4, 2, 8, 0}) {
		t.Errorf("grid after undo = %v", g.grid.Values())
	}

	g.Move(DirRight, testNow)
	if !g.State().GameOver {
		t.Fatal("Expected game over again")
	}
	if !g.Apply(core.ActionReset, testNow) {
		t.Fatal("Reset action should start a new game after game over")
	}
	snap := g.Snapshot()
	if snap.State != StatePlaying || count(snap.Grid) != 2 || snap.CanUndo {
		t.Errorf("after reset: %+v", snap)
	}
}

func TestDropTile(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)
	setBoard(t, g, [][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 0, 2048},
		{2, 4, 8, 16},
	})

	if !g.DropTile(4, testNow) {
		t.Fatal("DropTile() should fill the last empty cell")
	}
	v, _ := g.grid.Get(2, 2)
	if v != 4 {
		t.Errorf("cell (2, 2) = %d, expected 4", v)
	}
	if got := g.grid.Values(); got[0] != 2 || got[15] != 16 {
		t.Error("DropTile() overwrote a non-empty cell")
	}
	last := g.pool.live()[len(g.pool.live())-1]
	if last.X != 2 || last.Y != 2 || last.Anim != AnimPulse {
		t.Errorf("dropped tile = %+v", last)
	}

	full := g.grid.Values()
	if g.DropTile(2, testNow) {
		t.Error("DropTile() on a full grid should fail")
	}
	if !slices.Equal(g.grid.Values(), full) {
		t.Error("Failed DropTile() changed the grid")
	}
}

func TestDropTileNeverOverwrites(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)
	g.grid.Clear()
	g.pool.reset()

	for i := 0; i < g.grid.Len(); i++ {
		before := g.grid.Values()
		if !g.DropTile(2, testNow) {
			t.Fatalf("DropTile() failed with %d empty cells", g.grid.Len()-i)
		}
		after := g.grid.Values()
		for j := range before {
			if before[j] != 0 && after[j] != before[j] {
				t.Fatalf("cell %d overwritten", j)
			}
		}
	}
	if g.grid.Contains(0) {
		t.Error("grid should be full")
	}
}

func TestTickSettlesEveryCell(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)
	capacity := 2 * g.grid.Len()

	for i := 0; i < 500; i++ {
		now := testNow.Add(time.Duration(i) * time.Second)
		g.Apply(core.Action(int(core.ActionLeft)+i%4), now)

		if n := len(g.pool.live()); n > capacity {
			t.Fatalf("move %d: %d live tiles exceeds %d", i, n, capacity)
		}

		end := now.Add(time.Second)
		if g.Tick(end) {
			t.Fatalf("move %d: Tick() should finish within a second", i)
		}
		if g.Tick(end) {
			t.Fatal("Tick() after completion should report no frames")
		}

		shown := make([]int, g.grid.Len())
		for _, tile := range g.pool.live() {
			if tile.Visible {
				shown[tile.Y*g.grid.Size()+tile.X] = tile.DisplayValue()
			}
		}
		if !slices.Equal(shown, g.grid.Values()) {
			t.Fatalf("move %d: settled tiles %v do not match grid %v", i, shown, g.grid.Values())
		}

		if g.state == StateGameOver {
			g.Apply(core.ActionReset, end)
		}
	}
}

func TestTickReportsAnimation(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)
	if !g.Tick(testNow.Add(100 * time.Millisecond)) {
		t.Error("Tick() during spawn pulse should request another frame")
	}
	if g.Tick(testNow.Add(300 * time.Millisecond)) {
		t.Error("Tick() at pulse end should report done")
	}
}

func TestHighScore(t *testing.T) {
	store := newFakeStore()
	store.values["2048"] = 64

	g := newTestGame(t, VariantStandard, nil, store)
	if g.State().HighScore != 64 {
		t.Errorf("HighScore = %d, expected stored 64", g.State().HighScore)
	}
	if store.saves != 0 {
		t.Error("A lower board max must not be saved")
	}

	setBoard(t, g, [][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.Move(DirLeft, testNow)

	if g.State().HighScore != 128 || store.values["2048"] != 128 {
		t.Errorf("HighScore = %d, stored %d; expected 128", g.State().HighScore, store.values["2048"])
	}
	if store.values["2048_classic"] != 0 {
		t.Error("Variants should keep separate high scores")
	}
}

func TestHighScoreSaveErrorIsNotFatal(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")

	g := newTestGame(t, VariantStandard, nil, store)
	if g.State().HighScore != 2 {
		t.Errorf("HighScore = %d, expected in-memory 2", g.State().HighScore)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, expected 1 attempt", store.saves)
	}
}

func TestApplyDispatch(t *testing.T) {
	g := newTestGame(t, VariantStandard, nil, nil)

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		if !g.Apply(a, testNow) {
			t.Errorf("Apply(%v) should request a redraw", a)
		}
	}
	for _, a := range []core.Action{core.ActionNone, core.ActionQuit} {
		if g.Apply(a, testNow) {
			t.Errorf("Apply(%v) should be ignored", a)
		}
	}
}

func TestApplyMapsDirections(t *testing.T) {
	tests := []struct {
		action core.Action
		x, y   int
	}{
		{core.ActionLeft, 0, 1},
		{core.ActionUp, 1, 0},
		{core.ActionRight, 3, 1},
		{core.ActionDown, 1, 3},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			g := newTestGame(t, VariantClassic, nil, nil)
			setBoard(t, g, [][]int{
				{0, 0, 0, 0},
				{0, 8, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			})
			g.Apply(tc.action, testNow)

			if v, _ := g.grid.Get(tc.x, tc.y); v != 8 {
				t.Errorf("cell (%d, %d) = %d, expected the 8\n%s", tc.x, tc.y, v, g.grid)
			}
		})
	}
}

func TestRegisteredVariants(t *testing.T) {
	for _, id := range []string{"2048", "2048_classic"} {
		g, err := registry.Create(id, registry.Env{Config: config.DefaultT2048Config()})
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}
