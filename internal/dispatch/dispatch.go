// Package dispatch runs the IO worker that performs filesystem and
// config operations on behalf of the UI without blocking rendering.
package dispatch

import (
	"context"
	"fmt"
	"log"

	"plank/internal/app"
	"plank/internal/cloud"
	"plank/internal/config"
	"plank/internal/models"
	"plank/internal/store"
)

// Handler executes commands sequentially on the IO worker goroutine.
// Each handler touches the filesystem first and only then takes the
// application state lock to install the result.
type Handler struct {
	app        *app.App
	store      *store.Store
	cloud      cloud.Provider
	configPath string
}

// New creates a command handler. provider may be nil; the cloud load
// path then installs an empty board set.
func New(a *app.App, s *store.Store, provider cloud.Provider, configPath string) *Handler {
	return &Handler{
		app:        a,
		store:      s,
		cloud:      provider,
		configPath: configPath,
	}
}

// Run drains the command channel in FIFO order until it is closed.
// A failed command never stops the loop.
func (h *Handler) Run(commands <-chan models.Command) {
	for cmd := range commands {
		h.Handle(cmd)
	}
	log.Println("command channel closed, io worker exiting")
}

// Handle executes a single command. Whatever the outcome, the result
// is logged and the application is marked loaded again, so the state
// never hangs on a failed command.
func (h *Handler) Handle(cmd models.Command) {
	var err error
	switch cmd {
	case models.CommandInitialize:
		err = h.initialize()
	case models.CommandGetLocalData:
		err = h.getLocalSave()
	case models.CommandGetCloudData:
		err = h.getCloudSave()
	case models.CommandReset:
		err = h.resetConfig()
	case models.CommandSaveLocalData:
		err = h.saveLocalData()
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		log.Printf("command %s failed: %v", cmd, err)
	} else {
		log.Printf("command %s done", cmd)
	}

	h.app.Loaded()
}

// initialize prepares the config and save directories, then loads the
// latest local snapshot. Directory or load failures degrade to
// defaults; they never abort startup.
func (h *Handler) initialize() error {
	log.Println("initializing application")

	if err := config.EnsureDefault(h.configPath); err != nil {
		log.Printf("cannot prepare config directory: %v", err)
	}
	if err := h.store.EnsureDir(); err != nil {
		log.Printf("cannot create save directory: %v", err)
	}

	boards := h.prepareBoards()
	h.app.SetBoards(boards)
	h.app.Initialized()

	log.Println("application initialized")
	return nil
}

// prepareBoards resolves the latest local save and loads it, falling
// back to a single default empty board when nothing loadable exists.
func (h *Handler) prepareBoards() []models.Board {
	versions := h.store.ListSaveVersions()
	latest := store.LatestVersion(versions)
	boards, err := h.store.LoadSnapshot(store.ParseVersion(latest))
	if err != nil {
		log.Printf("cannot load local save: %v", err)
		return []models.Board{models.DefaultBoard()}
	}
	log.Printf("local save loaded from %s", latest)
	return boards
}

func (h *Handler) getLocalSave() error {
	log.Println("getting local save")
	h.app.SetBoards([]models.Board{})
	return nil
}

func (h *Handler) getCloudSave() error {
	log.Println("getting cloud save")
	boards := []models.Board{}
	if h.cloud != nil {
		fetched, err := h.cloud.Fetch(context.Background())
		if err != nil {
			return fmt.Errorf("fetch cloud save: %w", err)
		}
		boards = fetched
	}
	h.app.SetBoards(boards)
	return nil
}

// resetConfig restores the config file to its default content. Board
// data is not touched.
func (h *Handler) resetConfig() error {
	log.Println("resetting config")
	if err := config.Reset(h.configPath); err != nil {
		return fmt.Errorf("reset config: %w", err)
	}
	return nil
}

// saveLocalData snapshots the boards under the state lock, then writes
// the snapshot outside of it. A write failure is logged by the caller
// and never retried; the in-memory boards stay correct.
func (h *Handler) saveLocalData() error {
	log.Println("saving local data")
	boards := h.app.Boards()
	if err := h.store.SaveSnapshot(boards); err != nil {
		return fmt.Errorf("save local data: %w", err)
	}
	return nil
}
