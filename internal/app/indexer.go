package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lattice-search/lattice/internal/ports"
)

// indexableExts are the document types batch ingestion picks up.
var indexableExts = map[string]bool{
	".md":  true,
	".txt": true,
}

// IngestDir walks dir and ingests every indexable file into the role's
// graph, one document per file, the file path (relative to dir) as the
// document ID. The batch is interruptible between documents: a canceled
// context stops cleanly after the in-flight document.
func (r *Role) IngestDir(ctx context.Context, dir string) (int, error) {
	count := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() || !indexableExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable document", "path", path, "error", err)
			return nil
		}
		docID, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			docID = path
		}
		r.Ingest(docID, string(content))
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	slog.Info("ingest complete", "role", r.Name, "documents", count)
	return count, nil
}

// Save caches the role's thesaurus and graph tables through the storage
// port.
func (r *Role) Save(store ports.Storage) error {
	return store.SaveSnapshot(r.Name, &ports.Snapshot{
		Thesaurus: r.Thesaurus,
		Graph:     r.Graph.Snapshot(),
	})
}

// LoadRole rebuilds a role from a cached snapshot: the automaton and
// autocomplete index are reconstructed from the cached thesaurus (cheap
// and deterministic), the graph tables are restored as-is. Returns nil
// if no snapshot exists.
func LoadRole(store ports.Storage, cfg *RoleConfig) (*Role, error) {
	snap, err := store.LoadSnapshot(cfg.Name)
	if err != nil || snap == nil {
		return nil, err
	}

	role, err := roleFromThesaurus(cfg, snap)
	if err != nil {
		return nil, err
	}
	role.Graph.Restore(snap.Graph)
	slog.Info("role loaded from cache", "role", cfg.Name, "terms", snap.Thesaurus.Len())
	return role, nil
}

// Watch starts watching a role's knowledge-graph directory and rebuilds
// the role on any markdown change. Only meaningful for kg_path roles.
func (a *App) Watch(ctx context.Context, cfg *RoleConfig, w ports.Watcher) error {
	if cfg.KGPath == "" {
		return nil
	}
	return w.Watch(cfg.KGPath, func(path string) {
		slog.Info("knowledge graph changed, rebuilding role", "role", cfg.Name, "path", path)
		if err := a.Rebuild(ctx, cfg); err != nil {
			slog.Error("role rebuild failed", "role", cfg.Name, "error", err)
		}
	})
}
