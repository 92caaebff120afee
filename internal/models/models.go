// Package models defines the core domain types for Plank.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle is the coarse application state exposed to the UI so it
// knows when board data is safe to read.
type Lifecycle string

const (
	LifecycleCreated      Lifecycle = "created"
	LifecycleInitializing Lifecycle = "initializing"
	LifecycleInitialized  Lifecycle = "initialized"
	LifecycleLoading      Lifecycle = "loading"
	LifecycleLoaded       Lifecycle = "loaded"
)

// Command identifies one of the operations the IO worker performs on
// request. The set is closed; commands carry no payload.
type Command string

const (
	CommandInitialize    Command = "initialize"
	CommandGetLocalData  Command = "get_local_data"
	CommandGetCloudData  Command = "get_cloud_data"
	CommandReset         Command = "reset"
	CommandSaveLocalData Command = "save_local_data"
)

// Card is a single unit of work. A card belongs to exactly one board.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCard creates a card with a fresh ID.
func NewCard(title, description string) Card {
	return Card{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// Board is an ordered collection of cards. Card order is meaningful
// (column order), as is the order of boards within a snapshot.
type Board struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// NewBoard creates an empty board with the given name.
func NewBoard(name string) Board {
	return Board{Name: name}
}

// DefaultBoard is the single empty board installed when no local save
// can be loaded.
func DefaultBoard() Board {
	return NewBoard("Default Board")
}
