// Package app holds the authoritative in-memory application state
// shared between the UI goroutine and the IO worker.
package app

import (
	"sync"

	"plank/internal/models"
)

// commandQueueCapacity bounds the number of pending commands. A
// producer blocks only when the queue is full.
const commandQueueCapacity = 100

// App owns the current board set and lifecycle flag. All access goes
// through its mutex; the lock is held only long enough to read or
// swap a snapshot, never across filesystem work.
type App struct {
	mu     sync.Mutex
	boards []models.Board
	state  models.Lifecycle

	commands chan models.Command
}

// New creates the application state with an empty board set and a
// bounded command queue.
func New() *App {
	return &App{
		state:    models.LifecycleCreated,
		commands: make(chan models.Command, commandQueueCapacity),
	}
}

// Commands exposes the receive side of the command queue to the IO
// worker. Commands are delivered strictly in enqueue order.
func (a *App) Commands() <-chan models.Command {
	return a.commands
}

// Close closes the command queue; the IO worker loop drains what is
// left and exits.
func (a *App) Close() {
	close(a.commands)
}

// Dispatch enqueues a command for the IO worker and flags the
// corresponding lifecycle transition. It blocks only if the queue is
// at capacity.
func (a *App) Dispatch(cmd models.Command) {
	a.mu.Lock()
	if cmd == models.CommandInitialize {
		a.state = models.LifecycleInitializing
	} else {
		a.state = models.LifecycleLoading
	}
	a.mu.Unlock()

	a.commands <- cmd
}

// Boards returns a consistent snapshot of the board sequence. The
// returned slice is a copy; callers treat its contents as read-only.
func (a *App) Boards() []models.Board {
	a.mu.Lock()
	defer a.mu.Unlock()
	boards := make([]models.Board, len(a.boards))
	copy(boards, a.boards)
	return boards
}

// SetBoards atomically replaces the board sequence.
func (a *App) SetBoards(boards []models.Board) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.boards = boards
}

// AddBoard appends a board to the sequence.
func (a *App) AddBoard(board models.Board) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.boards = append(a.boards, board)
}

// AddCard appends a card to the board at boardIdx. Out-of-range
// indices are ignored.
func (a *App) AddCard(boardIdx int, card models.Card) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if boardIdx < 0 || boardIdx >= len(a.boards) {
		return
	}
	a.boards[boardIdx].Cards = append(a.boards[boardIdx].Cards, card)
}

// RemoveCard deletes the card at cardIdx from the board at boardIdx.
// Out-of-range indices are ignored.
func (a *App) RemoveCard(boardIdx, cardIdx int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if boardIdx < 0 || boardIdx >= len(a.boards) {
		return
	}
	cards := a.boards[boardIdx].Cards
	if cardIdx < 0 || cardIdx >= len(cards) {
		return
	}
	a.boards[boardIdx].Cards = append(cards[:cardIdx:cardIdx], cards[cardIdx+1:]...)
}

// State returns the current lifecycle flag.
func (a *App) State() models.Lifecycle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Initialized marks initialization complete. Calling it when the
// state is already Initialized is a no-op.
func (a *App) Initialized() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = models.LifecycleInitialized
}

// Loaded marks the most recently dispatched command as complete. It is
// invoked after every command handler, success or failure, so the
// state is always queryable again. Completion of the initialize
// command lands on Initialized rather than Loaded, even when the
// handler failed partway through.
func (a *App) Loaded() {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.state {
	case models.LifecycleInitializing:
		a.state = models.LifecycleInitialized
	case models.LifecycleInitialized:
		// initialize path already marked
	default:
		a.state = models.LifecycleLoaded
	}
}
