// Package store provides versioned local save-file persistence for Plank.
//
// Snapshots of the full board set are written to the save directory as
// plank_v<N>.json files, where N is a monotonically increasing version
// number. The store never panics on filesystem or parse errors: listing
// an unreadable directory yields no versions, and an unparseable
// version identifier falls back to version 1, so the rest of the
// application stays operable even when persistence is broken.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"plank/internal/models"
)

const (
	// SaveDirName is the fixed directory name under the system temp dir.
	SaveDirName = "plank_saves"

	savePrefix = "plank_v"
	saveExt    = ".json"

	// FallbackVersion is used when no save files exist.
	FallbackVersion = "v1"
)

// ErrSnapshotNotFound indicates there is no save file for the
// requested version.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store reads and writes board snapshots in a single save directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is not created
// until EnsureDir is called.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// NewDefault creates a store rooted at the default save directory
// under the system temp dir.
func NewDefault() *Store {
	return New(DefaultDir())
}

// DefaultDir returns the default save directory.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), SaveDirName)
}

// Dir returns the save directory this store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the save directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	return nil
}

// ListSaveVersions enumerates the version identifiers of the save
// files present in the save directory, e.g. "plank_v3". An unreadable
// or missing directory yields an empty result, never an error.
func (s *Store) ListSaveVersions() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}

	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, savePrefix) || !strings.HasSuffix(name, saveExt) {
			continue
		}
		versions = append(versions, strings.TrimSuffix(name, saveExt))
	}
	return versions
}

// LatestVersion returns the identifier with the highest numeric
// version. Comparison is numeric, not lexicographic, so "v10" beats
// "v2". An empty set yields FallbackVersion.
func LatestVersion(versions []string) string {
	latest := FallbackVersion
	best := uint32(0)
	for _, v := range versions {
		if n := ParseVersion(v); n > best {
			best = n
			latest = v
		}
	}
	return latest
}

// ParseVersion extracts the numeric version from an identifier of the
// shape "...v<digits>": the text after the last "v" is parsed as an
// unsigned integer. Any parse failure yields 1; the caller never sees
// an error.
func ParseVersion(id string) uint32 {
	parts := strings.Split(id, "v")
	last := parts[len(parts)-1]
	n, err := strconv.ParseUint(last, 10, 32)
	if err != nil {
		return 1
	}
	return uint32(n)
}

// LoadSnapshot reads and decodes the snapshot file for the given
// numeric version.
func (s *Store) LoadSnapshot(version uint32) ([]models.Board, error) {
	path := s.snapshotPath(version)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: version %d", ErrSnapshotNotFound, version)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var boards []models.Board
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return boards, nil
}

// SaveSnapshot writes the boards as a new snapshot, one version past
// the latest existing save (version 1 when the directory is empty).
func (s *Store) SaveSnapshot(boards []models.Board) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}

	next := uint32(1)
	if versions := s.ListSaveVersions(); len(versions) > 0 {
		next = ParseVersion(LatestVersion(versions)) + 1
	}

	data, err := json.MarshalIndent(boards, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := s.snapshotPath(next)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

func (s *Store) snapshotPath(version uint32) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d%s", savePrefix, version, saveExt))
}
