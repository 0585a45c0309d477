// Package bolt implements the ports.Storage interface using bbolt
// (embedded B+ tree). Each role gets its own top-level bucket holding
// the thesaurus JSON and the binary graph blobs. Writes are
// transactional — a crash mid-write cannot corrupt previously committed
// data.
package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/lattice-search/lattice/internal/domain/rolegraph"
	"github.com/lattice-search/lattice/internal/domain/thesaurus"
	"github.com/lattice-search/lattice/internal/ports"
)

// Bucket keys
var (
	keyThesaurus   = []byte("thesaurus")
	keyNodes       = []byte("nodes")
	keyEdges       = []byte("edges")
	keyGranularity = []byte("granularity")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bbolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot persists the full snapshot for a role.
func (s *Store) SaveSnapshot(role string, snap *ports.Snapshot) error {
	if snap == nil || snap.Thesaurus == nil || snap.Graph == nil {
		return fmt.Errorf("incomplete snapshot for role %q", role)
	}

	thesJSON, err := json.Marshal(snap.Thesaurus)
	if err != nil {
		return fmt.Errorf("marshal thesaurus: %w", err)
	}
	nodeBlob := encodeNodes(snap.Graph.Nodes)
	edgeBlob := encodeEdges(snap.Graph.Edges)

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(role))
		if err != nil {
			return err
		}
		if err := b.Put(keyThesaurus, thesJSON); err != nil {
			return err
		}
		if err := b.Put(keyNodes, nodeBlob); err != nil {
			return err
		}
		if err := b.Put(keyEdges, edgeBlob); err != nil {
			return err
		}
		return b.Put(keyGranularity, []byte{byte(snap.Graph.Granularity)})
	})
}

// LoadSnapshot retrieves the snapshot for a role.
// Returns nil, nil if no snapshot exists (fresh role).
func (s *Store) LoadSnapshot(role string) (*ports.Snapshot, error) {
	var thesJSON, nodeBlob, edgeBlob, granByte []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(role))
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only
		// valid within it).
		if v := b.Get(keyThesaurus); v != nil {
			thesJSON = append([]byte(nil), v...)
		}
		if v := b.Get(keyNodes); v != nil {
			nodeBlob = append([]byte(nil), v...)
		}
		if v := b.Get(keyEdges); v != nil {
			edgeBlob = append([]byte(nil), v...)
		}
		if v := b.Get(keyGranularity); v != nil {
			granByte = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if thesJSON == nil {
		return nil, nil
	}

	t := thesaurus.New("")
	if err := json.Unmarshal(thesJSON, t); err != nil {
		return nil, fmt.Errorf("unmarshal thesaurus: %w", err)
	}

	graph := &rolegraph.Snapshot{Role: role}
	if len(granByte) == 1 {
		graph.Granularity = rolegraph.Granularity(granByte[0])
	}
	if nodeBlob != nil {
		if graph.Nodes, err = decodeNodes(nodeBlob); err != nil {
			return nil, fmt.Errorf("decode nodes: %w", err)
		}
	}
	if edgeBlob != nil {
		if graph.Edges, err = decodeEdges(edgeBlob); err != nil {
			return nil, fmt.Errorf("decode edges: %w", err)
		}
	}

	return &ports.Snapshot{Thesaurus: t, Graph: graph}, nil
}

// DeleteRole removes all cached data for a role. Idempotent.
func (s *Store) DeleteRole(role string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(role)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(role))
	})
}
