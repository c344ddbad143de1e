// Package store persists committed selections per variant and owner. It is
// the external collaborator that receives the transfer control's commit
// output and seeds the next session.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/ruminaider/rosterpick/internal/catalog"
)

// Backends accepted by Open.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// historyLimit caps how many commits the YAML store keeps per selection.
const historyLimit = 20

// Commit records one saved selection.
type Commit struct {
	ID          string          `yaml:"id"`
	Variant     catalog.Variant `yaml:"variant"`
	Owner       string          `yaml:"owner"`
	IDs         []string        `yaml:"ids"`
	CommittedAt time.Time       `yaml:"committed_at"`
}

// Store loads and saves ordered selections.
type Store interface {
	// Load returns the saved ids in order; nothing saved yields an empty slice.
	Load(ctx context.Context, v catalog.Variant, owner string) ([]string, error)
	// Save replaces the saved ids and records a commit.
	Save(ctx context.Context, v catalog.Variant, owner string, ids []string) error
	// History returns up to limit commits, newest first. limit <= 0 means all.
	History(ctx context.Context, v catalog.Variant, owner string, limit int) ([]Commit, error)
	Close() error
}

// Open returns the store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendYAML:
		return NewYAMLStore(path), nil
	case BackendSQLite:
		return OpenSQLStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// newCommitID returns a time-ordered commit id.
func newCommitID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }
