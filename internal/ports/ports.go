// Package ports defines the interfaces (contracts) that adapters must
// implement. Domain logic depends only on these interfaces, never on
// concrete implementations.
package ports

import (
	"github.com/lattice-search/lattice/internal/domain/rolegraph"
	"github.com/lattice-search/lattice/internal/domain/thesaurus"
)

// Snapshot is the cached state of one built role: its thesaurus plus the
// graph tables. The automaton and autocomplete index are rebuilt from
// the thesaurus on load — they are cheap and deterministic.
type Snapshot struct {
	Thesaurus *thesaurus.Thesaurus
	Graph     *rolegraph.Snapshot
}

// Storage caches built role state to durable storage. Serialized
// snapshots are an internal cache, not an interchange format.
//
// Crash safety: SaveSnapshot must be transactional. A crash mid-write
// must not corrupt previously committed data.
type Storage interface {
	// SaveSnapshot persists the full snapshot for a role, overwriting
	// any prior snapshot.
	SaveSnapshot(role string, snap *Snapshot) error

	// LoadSnapshot retrieves the snapshot for a role.
	// Returns nil, nil if none exists (fresh role).
	LoadSnapshot(role string) (*Snapshot, error)

	// DeleteRole removes all cached data for a role. Idempotent.
	DeleteRole(role string) error
}

// Watcher monitors a knowledge-graph directory and triggers role
// rebuilds. The adapter must debounce rapid events — editors often fire
// several writes per save. Only one Watch call should be active at a
// time.
type Watcher interface {
	// Watch starts monitoring path recursively. onChange receives the
	// absolute path of each changed file and may be invoked from any
	// goroutine.
	Watch(path string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop
	// returns no further onChange calls fire. Safe to call twice.
	Stop() error
}
