package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"plank/internal/app"
	"plank/internal/config"
	"plank/internal/models"
	"plank/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *app.App, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s := store.New(filepath.Join(dir, "saves"))
	cfgPath := filepath.Join(dir, "config", "config.json")
	a := app.New()
	return New(a, s, nil, cfgPath), a, s, cfgPath
}

// dispatchAndHandle pushes a command through the real queue and runs
// its handler, the same path production takes.
func dispatchAndHandle(a *app.App, h *Handler, cmd models.Command) {
	a.Dispatch(cmd)
	h.Handle(<-a.Commands())
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestInitializeFallsBackToDefaultBoard(t *testing.T) {
	h, a, _, _ := newTestHandler(t)

	// no save files exist, so the load must fail and fall back
	dispatchAndHandle(a, h, models.CommandInitialize)

	boards := a.Boards()
	if len(boards) != 1 {
		t.Fatalf("expected exactly one fallback board, got %d", len(boards))
	}
	if !reflect.DeepEqual(boards[0], models.DefaultBoard()) {
		t.Errorf("got %+v, want the default board", boards[0])
	}
	if a.State() != models.LifecycleInitialized {
		t.Errorf("got state %s, want initialized", a.State())
	}
}

func TestInitializeWritesDefaultConfigOnce(t *testing.T) {
	h, a, _, cfgPath := newTestHandler(t)

	dispatchAndHandle(a, h, models.CommandInitialize)
	if got := config.Load(cfgPath); !reflect.DeepEqual(got, config.Default()) {
		t.Errorf("first run should write the default config, got %+v", got)
	}

	// a customized config must survive subsequent initializes
	custom := config.Default()
	custom.DefaultBoardName = "Inbox"
	if err := config.Save(cfgPath, custom); err != nil {
		t.Fatal(err)
	}

	dispatchAndHandle(a, h, models.CommandInitialize)
	if got := config.Load(cfgPath); got.DefaultBoardName != "Inbox" {
		t.Errorf("initialize overwrote an existing config: %+v", got)
	}
}

func TestSaveThenInitializeRoundTrip(t *testing.T) {
	h, a, s, _ := newTestHandler(t)

	boards := []models.Board{
		{Name: "To Do", Cards: []models.Card{models.NewCard("one", "first card")}},
		{Name: "Doing", Cards: []models.Card{models.NewCard("two", ""), models.NewCard("three", "")}},
		{Name: "Done"},
	}
	a.SetBoards(boards)
	dispatchAndHandle(a, h, models.CommandSaveLocalData)

	// a fresh process: new state, same save directory
	a2 := app.New()
	h2 := New(a2, s, nil, filepath.Join(t.TempDir(), "config.json"))
	dispatchAndHandle(a2, h2, models.CommandInitialize)

	if !reflect.DeepEqual(a2.Boards(), boards) {
		t.Errorf("round trip mismatch:\n saved:  %+v\n loaded: %+v", boards, a2.Boards())
	}
}

func TestResetLeavesBoardsUntouched(t *testing.T) {
	h, a, _, cfgPath := newTestHandler(t)

	boards := []models.Board{
		{Name: "To Do", Cards: []models.Card{models.NewCard("keep me", "")}},
	}
	a.SetBoards(boards)

	custom := config.Default()
	custom.TickRateMs = 42
	if err := config.Save(cfgPath, custom); err != nil {
		t.Fatal(err)
	}

	dispatchAndHandle(a, h, models.CommandReset)

	if !reflect.DeepEqual(a.Boards(), boards) {
		t.Error("reset changed the board sequence")
	}
	if got := config.Load(cfgPath); !reflect.DeepEqual(got, config.Default()) {
		t.Errorf("reset did not restore the default config: %+v", got)
	}
}

func TestGetLocalDataInstallsEmptySet(t *testing.T) {
	h, a, _, _ := newTestHandler(t)
	a.SetBoards([]models.Board{models.NewBoard("stale")})

	dispatchAndHandle(a, h, models.CommandGetLocalData)

	if len(a.Boards()) != 0 {
		t.Errorf("expected empty board set, got %+v", a.Boards())
	}
	if a.State() != models.LifecycleLoaded {
		t.Errorf("got state %s, want loaded", a.State())
	}
}

type fakeCloud struct {
	boards []models.Board
}

func (f *fakeCloud) Fetch(ctx context.Context) ([]models.Board, error) {
	return f.boards, nil
}

func (f *fakeCloud) Push(ctx context.Context, boards []models.Board) error {
	return nil
}

func TestGetCloudDataUsesProviderSeam(t *testing.T) {
	h, a, _, _ := newTestHandler(t)

	// no provider wired: the cloud path installs an empty set
	dispatchAndHandle(a, h, models.CommandGetCloudData)
	if len(a.Boards()) != 0 {
		t.Errorf("nil provider: expected empty board set, got %+v", a.Boards())
	}

	remote := []models.Board{models.NewBoard("from cloud")}
	h.cloud = &fakeCloud{boards: remote}
	dispatchAndHandle(a, h, models.CommandGetCloudData)
	if !reflect.DeepEqual(a.Boards(), remote) {
		t.Errorf("expected provider boards, got %+v", a.Boards())
	}
}

func TestFailedCommandKeepsLoopRunning(t *testing.T) {
	dir := t.TempDir()
	a := app.New()
	// point the store at a location that cannot be a directory, so
	// every save fails
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	h := New(a, store.New(filepath.Join(blocked, "saves")), nil, filepath.Join(dir, "config.json"))

	done := make(chan struct{})
	go func() {
		h.Run(a.Commands())
		close(done)
	}()

	a.SetBoards([]models.Board{models.NewBoard("unsaved")})
	a.Dispatch(models.CommandSaveLocalData)
	a.Dispatch(models.CommandGetLocalData)

	// the failed save must not stall the worker; the follow-up
	// command still runs to completion
	waitFor(t, "boards cleared by get_local_data", func() bool {
		return len(a.Boards()) == 0 && a.State() == models.LifecycleLoaded
	})

	a.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after the channel closed")
	}
}

func TestPerProducerOrderPreserved(t *testing.T) {
	a := app.New()

	ordered := []models.Command{
		models.CommandInitialize,
		models.CommandGetLocalData,
		models.CommandSaveLocalData,
	}

	var wg sync.WaitGroup
	wg.Add(2)

	// producer A enqueues a distinct ordered sequence
	go func() {
		defer wg.Done()
		for _, cmd := range ordered {
			a.Dispatch(cmd)
		}
	}()

	// producer B floods the queue concurrently
	const floods = 20
	go func() {
		defer wg.Done()
		for i := 0; i < floods; i++ {
			a.Dispatch(models.CommandReset)
		}
	}()

	wg.Wait()
	a.Close()

	var fromA []models.Command
	total := 0
	for cmd := range a.Commands() {
		total++
		if cmd != models.CommandReset {
			fromA = append(fromA, cmd)
		}
	}

	if total != len(ordered)+floods {
		t.Errorf("expected %d commands, drained %d", len(ordered)+floods, total)
	}
	if !reflect.DeepEqual(fromA, ordered) {
		t.Errorf("producer A's relative order was not preserved: %v", fromA)
	}
}
