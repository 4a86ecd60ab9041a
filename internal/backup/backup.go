// Package backup writes local JSON snapshots of the user's journal: every
// entry and story fetched from the backend, kept under the config directory
// with a fixed number of snapshots retained.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/lifecal/internal/constants"
	"github.com/julianstephens/lifecal/internal/logger"
	"github.com/julianstephens/lifecal/internal/models"
)

const (
	snapshotVersion = 1
	timestampFormat = "20060102-150405"
)

// Source supplies the data to snapshot.
type Source interface {
	AllEntries(ctx context.Context) ([]models.Entry, error)
	ListStories(ctx context.Context) ([]models.Story, error)
}

// Snapshot is the on-disk document.
type Snapshot struct {
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"createdAt"`
	User      models.User    `json:"user"`
	Entries   []models.Entry `json:"entries"`
	Stories   []models.Story `json:"stories"`
}

// Info describes a snapshot file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
	seq       int
}

// Manager handles snapshot operations
type Manager struct {
	backupDir string
	now       func() time.Time
}

// NewManager keeps snapshots in a directory next to the local database.
func NewManager(dbPath string) *Manager {
	return &Manager{
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		now:       time.Now,
	}
}

// Dir returns the snapshot directory path
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create fetches entries and stories concurrently and writes a new snapshot,
// then prunes old ones. Nothing is written if either fetch fails.
func (m *Manager) Create(ctx context.Context, src Source, user models.User) (string, error) {
	snap := Snapshot{Version: snapshotVersion, CreatedAt: m.now().UTC(), User: user}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := src.AllEntries(gctx)
		if err != nil {
			return fmt.Errorf("fetching entries: %w", err)
		}
		snap.Entries = entries
		return nil
	})
	g.Go(func() error {
		stories, err := src.ListStories(gctx)
		if err != nil {
			return fmt.Errorf("fetching stories: %w", err)
		}
		snap.Stories = stories
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	path, err := m.uniquePath(snap.CreatedAt)
	if err != nil {
		return "", err
	}
	if err := writeJSON(path, snap); err != nil {
		return "", err
	}

	if err := m.rotate(); err != nil {
		logger.For("backup").Warn("Failed to rotate old snapshots", "error", err)
	}
	logger.For("backup").Info("Snapshot written", "path", path, "entries", len(snap.Entries), "stories", len(snap.Stories))
	return path, nil
}

func (m *Manager) uniquePath(t time.Time) (string, error) {
	base := constants.BackupFilePrefix + t.Format(timestampFormat)
	path := filepath.Join(m.backupDir, base+constants.BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique snapshot filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, counter, constants.BackupFileSuffix))
	}
}

// writeJSON writes through a temp file and rename so a crash never leaves a
// truncated snapshot behind.
func writeJSON(path string, v any) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// parseName extracts the timestamp and collision counter from
// lifecal-YYYYMMDD-HHMMSS[-N].json.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
	seq := 0
	if len(stamp) > len(timestampFormat) {
		counter, ok := strings.CutPrefix(stamp[len(timestampFormat):], "-")
		n, err := strconv.Atoi(counter)
		if !ok || err != nil {
			return time.Time{}, 0, false
		}
		seq = n
		stamp = stamp[:len(timestampFormat)]
	}
	t, err := time.Parse(timestampFormat, stamp)
	return t, seq, err == nil
}

// List returns all snapshots, newest first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var out []Info
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, seq, ok := parseName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{Path: filepath.Join(m.backupDir, e.Name()), Timestamp: ts, Size: info.Size(), seq: seq})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].seq > out[j].seq
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// rotate removes snapshots beyond the retention limit
func (m *Manager) rotate() error {
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(snaps); i++ {
		if err := os.Remove(snaps[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snaps[i].Path, err)
		}
	}
	return nil
}

// Load reads a snapshot. A bare file name is resolved inside the backup directory.
func (m *Manager) Load(name string) (Snapshot, error) {
	path := name
	if filepath.Base(name) == name {
		path = filepath.Join(m.backupDir, name)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(buf, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s is corrupted: %w", filepath.Base(path), err)
	}
	if snap.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}
