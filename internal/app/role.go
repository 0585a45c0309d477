package app

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/lattice-search/lattice/internal/domain/autocomplete"
	"github.com/lattice-search/lattice/internal/domain/automata"
	"github.com/lattice-search/lattice/internal/domain/rolegraph"
	"github.com/lattice-search/lattice/internal/domain/scorer"
	"github.com/lattice-search/lattice/internal/domain/thesaurus"
	"github.com/lattice-search/lattice/internal/ports"
)

// Role is one built search session: thesaurus, automaton, autocomplete
// index and concept graph, plus the configured scorer. The automaton and
// index are immutable after build; the graph takes its own lock for the
// single-writer ingest path. Reconfiguration rebuilds the whole Role and
// swaps it atomically in the App.
type Role struct {
	Name string

	Thesaurus    *thesaurus.Thesaurus
	Graph        *rolegraph.RoleGraph
	Autocomplete *autocomplete.Index

	scorer scorer.Scorer
}

// buildRole constructs a Role from its config. Thesaurus construction is
// the only phase that touches the filesystem or the network.
func buildRole(ctx context.Context, cfg *RoleConfig) (*Role, error) {
	var t *thesaurus.Thesaurus
	var err error
	switch {
	case cfg.KGPath != "":
		t, err = thesaurus.BuildFromDir(cfg.Name, cfg.KGPath)
	case cfg.ThesaurusFile != "":
		t, err = thesaurus.LoadFile(cfg.ThesaurusFile)
	default:
		t, err = thesaurus.Fetch(ctx, cfg.ThesaurusURL)
	}
	if err != nil {
		return nil, err
	}

	role, err := roleFromThesaurus(cfg, &ports.Snapshot{Thesaurus: t})
	if err != nil {
		return nil, err
	}
	slog.Info("role built",
		"role", cfg.Name,
		"terms", t.Len(),
		"scorer", role.scorer.Name(),
	)
	return role, nil
}

// roleFromThesaurus builds the derived structures (automaton via the
// graph, autocomplete index, scorer) from an already-loaded thesaurus.
func roleFromThesaurus(cfg *RoleConfig, snap *ports.Snapshot) (*Role, error) {
	t := snap.Thesaurus
	graph, err := rolegraph.New(cfg.Name, t, rolegraph.WithGranularity(cfg.granularity()))
	if err != nil {
		return nil, err
	}
	index, err := autocomplete.Build(t)
	if err != nil {
		return nil, err
	}
	sc, err := scorer.New(cfg.Scorer, graph)
	if err != nil {
		return nil, err
	}
	return &Role{
		Name:         cfg.Name,
		Thesaurus:    t,
		Graph:        graph,
		Autocomplete: index,
		scorer:       sc,
	}, nil
}

// Automaton returns the role's term matcher.
func (r *Role) Automaton() *automata.Automaton { return r.Graph.Automaton() }

// Ingest indexes one document into the role's graph.
func (r *Role) Ingest(docID, text string) {
	r.Graph.Ingest(docID, text)
}

// Search ranks indexed documents for a query through the graph.
func (r *Role) Search(query string, limit int) []rolegraph.DocumentRank {
	return r.Graph.Query(query, 0, limit)
}

// Score applies the role's configured relevance function.
func (r *Role) Score(query string, doc scorer.Document) float64 {
	return r.scorer.Score(query, doc)
}

// App owns the built roles and the current-role handle. Rebuilds swap
// the role pointer under the lock; readers grab the pointer and then
// work lock-free against immutable structures.
type App struct {
	mu    sync.RWMutex
	roles map[string]*Role
}

// NewApp builds every configured role.
func NewApp(ctx context.Context, cfg *Config) (*App, error) {
	a := &App{roles: make(map[string]*Role, len(cfg.Roles))}
	for i := range cfg.Roles {
		role, err := buildRole(ctx, &cfg.Roles[i])
		if err != nil {
			return nil, err
		}
		a.roles[role.Name] = role
	}
	return a, nil
}

// NewAppFromStore builds every configured role, restoring it from the
// snapshot cache when a cached build exists and building from source
// otherwise. The long-running daemon uses this so documents indexed
// before it started stay searchable.
func NewAppFromStore(ctx context.Context, cfg *Config, store ports.Storage) (*App, error) {
	a := &App{roles: make(map[string]*Role, len(cfg.Roles))}
	for i := range cfg.Roles {
		rc := &cfg.Roles[i]
		role, err := LoadRole(store, rc)
		if err != nil {
			return nil, err
		}
		if role == nil {
			role, err = buildRole(ctx, rc)
			if err != nil {
				return nil, err
			}
		}
		a.roles[role.Name] = role
	}
	return a, nil
}

// Role returns the current build of a named role, nil if unknown.
func (a *App) Role(name string) *Role {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.roles[name]
}

// Names returns the configured role names in sorted order.
func (a *App) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.roles))
	for name := range a.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rebuild reconstructs one role wholesale and swaps it in. Concurrent
// readers keep the old build until they next call Role.
func (a *App) Rebuild(ctx context.Context, cfg *RoleConfig) error {
	role, err := buildRole(ctx, cfg)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.roles[role.Name] = role
	a.mu.Unlock()
	slog.Info("role rebuilt", "role", role.Name)
	return nil
}
