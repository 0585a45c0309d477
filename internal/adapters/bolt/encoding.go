// Binary encoding for graph snapshot blobs.
//
// The node and edge tables dominate the snapshot, so they use a compact
// little-endian binary layout instead of JSON. The thesaurus is stored
// as JSON — it is small and its JSON shape is already the interchange
// format.
//
// Node blob layout:
//
//	nodeCount: uint32
//	per node:
//	  id:       uint64
//	  rank:     uint64
//	  edgeCnt:  uint32  then edgeCnt × uint64
//	  docCnt:   uint32  then docCnt × (len:uint16 + bytes)
//
// Edge blob layout:
//
//	edgeCount: uint32
//	per edge:
//	  id, a, b, rank: uint64
//	  docCnt: uint32 then docCnt × (len:uint16 + bytes + rank:uint64)
package bolt

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lattice-search/lattice/internal/domain/rolegraph"
)

// encodeNodes encodes the node table. Snapshot slices are already sorted,
// so identical graph state encodes identically.
func encodeNodes(nodes []rolegraph.NodeSnap) []byte {
	var buf bytes.Buffer
	writeU32(&buf, uint32(len(nodes)))
	for _, n := range nodes {
		writeU64(&buf, n.ID)
		writeU64(&buf, n.Rank)
		writeU32(&buf, uint32(len(n.Edges)))
		for _, e := range n.Edges {
			writeU64(&buf, e)
		}
		writeU32(&buf, uint32(len(n.Documents)))
		for _, d := range n.Documents {
			writeStr(&buf, d)
		}
	}
	return buf.Bytes()
}

// decodeNodes decodes a node blob. Every read is bounds-checked so
// corrupt data returns an error instead of panicking.
func decodeNodes(data []byte) ([]rolegraph.NodeSnap, error) {
	r := &reader{data: data}
	count, err := r.u32()
	if err != nil {
		return nil, fmt.Errorf("node count: %w", err)
	}
	nodes := make([]rolegraph.NodeSnap, 0, count)
	for i := uint32(0); i < count; i++ {
		var n rolegraph.NodeSnap
		if n.ID, err = r.u64(); err != nil {
			return nil, fmt.Errorf("node %d id: %w", i, err)
		}
		if n.Rank, err = r.u64(); err != nil {
			return nil, fmt.Errorf("node %d rank: %w", i, err)
		}
		edgeCnt, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("node %d edge count: %w", i, err)
		}
		for j := uint32(0); j < edgeCnt; j++ {
			e, err := r.u64()
			if err != nil {
				return nil, fmt.Errorf("node %d edge %d: %w", i, j, err)
			}
			n.Edges = append(n.Edges, e)
		}
		docCnt, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("node %d doc count: %w", i, err)
		}
		for j := uint32(0); j < docCnt; j++ {
			d, err := r.str()
			if err != nil {
				return nil, fmt.Errorf("node %d doc %d: %w", i, j, err)
			}
			n.Documents = append(n.Documents, d)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// encodeEdges encodes the edge table.
func encodeEdges(edges []rolegraph.EdgeSnap) []byte {
	var buf bytes.Buffer
	writeU32(&buf, uint32(len(edges)))
	for _, e := range edges {
		writeU64(&buf, e.ID)
		writeU64(&buf, e.A)
		writeU64(&buf, e.B)
		writeU64(&buf, e.Rank)
		writeU32(&buf, uint32(len(e.DocIDs)))
		for i, d := range e.DocIDs {
			writeStr(&buf, d)
			writeU64(&buf, e.DocRank[i])
		}
	}
	return buf.Bytes()
}

// decodeEdges decodes an edge blob with bounds checking.
func decodeEdges(data []byte) ([]rolegraph.EdgeSnap, error) {
	r := &reader{data: data}
	count, err := r.u32()
	if err != nil {
		return nil, fmt.Errorf("edge count: %w", err)
	}
	edges := make([]rolegraph.EdgeSnap, 0, count)
	for i := uint32(0); i < count; i++ {
		var e rolegraph.EdgeSnap
		if e.ID, err = r.u64(); err != nil {
			return nil, fmt.Errorf("edge %d id: %w", i, err)
		}
		if e.A, err = r.u64(); err != nil {
			return nil, fmt.Errorf("edge %d a: %w", i, err)
		}
		if e.B, err = r.u64(); err != nil {
			return nil, fmt.Errorf("edge %d b: %w", i, err)
		}
		if e.Rank, err = r.u64(); err != nil {
			return nil, fmt.Errorf("edge %d rank: %w", i, err)
		}
		docCnt, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("edge %d doc count: %w", i, err)
		}
		for j := uint32(0); j < docCnt; j++ {
			d, err := r.str()
			if err != nil {
				return nil, fmt.Errorf("edge %d doc %d: %w", i, j, err)
			}
			rank, err := r.u64()
			if err != nil {
				return nil, fmt.Errorf("edge %d doc %d rank: %w", i, j, err)
			}
			e.DocIDs = append(e.DocIDs, d)
			e.DocRank = append(e.DocRank, rank)
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeStr(buf *bytes.Buffer, s string) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(len(s)))
	buf.Write(b[:])
	buf.WriteString(s)
}

// reader is a bounds-checked cursor over a blob.
type reader struct {
	data   []byte
	offset int
}

func (r *reader) u32() (uint32, error) {
	if r.offset+4 > len(r.data) {
		return 0, fmt.Errorf("truncated at offset %d", r.offset)
	}
	v := binary.LittleEndian.Uint32(r.data[r.offset:])
	r.offset += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.offset+8 > len(r.data) {
		return 0, fmt.Errorf("truncated at offset %d", r.offset)
	}
	v := binary.LittleEndian.Uint64(r.data[r.offset:])
	r.offset += 8
	return v, nil
}

func (r *reader) str() (string, error) {
	if r.offset+2 > len(r.data) {
		return "", fmt.Errorf("truncated at offset %d", r.offset)
	}
	n := int(binary.LittleEndian.Uint16(r.data[r.offset:]))
	r.offset += 2
	if r.offset+n > len(r.data) {
		return "", fmt.Errorf("truncated at offset %d, need %d", r.offset, n)
	}
	s := string(r.data[r.offset : r.offset+n])
	r.offset += n
	return s, nil
}
