// Package file provides a filesystem-backed session store. Each session is
// one JSON file; writes go through a temp file, fsync and rename so a crash
// mid-save never leaves a partial snapshot behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

const fileExt = ".json"

// Store implements ports.SessionStore on the local filesystem.
type Store struct {
	basePath string
}

var _ ports.SessionStore = (*Store)(nil)

// New creates a store rooted at basePath. An empty basePath defaults to
// ".concierge/sessions" under the working directory.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".concierge", "sessions")
	}
	return &Store{basePath: basePath}
}

func (s *Store) path(sessionID string) string {
	return filepath.Join(s.basePath, sessionID+fileExt)
}

// Save writes the snapshot atomically.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	if err := validateID(sessionID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	// The temp file lives in the same directory so the rename stays on one
	// filesystem.
	tmp, err := os.CreateTemp(s.basePath, "tmp-"+sessionID+"-*"+fileExt)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path(sessionID)); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Load reads the snapshot for the session.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	if err := validateID(sessionID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the session file. Deleting an unknown session is a no-op.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := validateID(sessionID); err != nil {
		return err
	}

	if err := os.Remove(s.path(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting session file: %w", err)
	}
	return nil
}

// List returns the IDs of all persisted sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, fileExt))
	}
	return ids, nil
}

// validateID rejects IDs that would escape the session directory.
func validateID(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if strings.ContainsAny(sessionID, `/\`) || sessionID != filepath.Base(sessionID) {
		return fmt.Errorf("invalid session ID %q", sessionID)
	}
	return nil
}
