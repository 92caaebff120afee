package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"plank/internal/app"
	"plank/internal/config"
	"plank/internal/dispatch"
	"plank/internal/models"
	"plank/internal/store"
	"plank/internal/tui"
)

var resetConfig bool

var rootCmd = &cobra.Command{
	Use:   "plank",
	Short: "Plank - a terminal kanban board",
	Long:  `Plank is a personal kanban board for the terminal. Boards and cards are kept in versioned local save files; the UI never blocks on disk IO.`,
	RunE:  runBoard,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&resetConfig, "reset", false, "reset the config file to its defaults before starting")
	rootCmd.AddCommand(versionCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	configPath, err := config.DefaultPath()
	if err != nil {
		// degraded: config operations will fail and be logged, the
		// board itself stays usable
		log.Printf("cannot resolve config path: %v", err)
	}
	cfg := config.Load(configPath)

	st := store.New(cfg.SaveDirectory)
	setupLogging(st.Dir())

	application := app.New()

	// IO runs on its own goroutine so the UI never waits on the disk.
	handler := dispatch.New(application, st, nil, configPath)
	go handler.Run(application.Commands())
	defer application.Close()

	if resetConfig {
		application.Dispatch(models.CommandReset)
	}
	application.Dispatch(models.CommandInitialize)

	if err := tui.Run(application, cfg.TickRate()); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// setupLogging sends the log to a file while the TUI owns the
// terminal. If the file cannot be opened the log is discarded rather
// than corrupting the screen.
func setupLogging(dir string) {
	path := filepath.Join(dir, "plank.log")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
