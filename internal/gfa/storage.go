package gfa

import (
	appErrors "github.com/panacus-go/pkg/errors"
)

// GraphStorage is the dense-id index built while the scanner reads a
// GFA1 file's S/L lines and then its P/W lines: node lengths keyed by NodeId, the list of
// path segments in file order, and (when edges are being counted) the
// canonical-edge-to-EdgeId map.
//
// Lookups are slice-indexed wherever possible (NodeId/PathIndex are
// dense small integers), following the same indexed-store idiom the
// teacher uses for its object store: avoid a map on the hot path.
type GraphStorage struct {
	nodeName   map[string]NodeId
	nodeLen    []uint32 // indexed by NodeId; index 0 unused
	pathSegs   []PathSegment
	edge2id    map[CanonicalEdge]EdgeId
	nextEdgeID EdgeId
}

// NewGraphStorage returns an empty storage ready for incremental population.
func NewGraphStorage(withEdges bool) *GraphStorage {
	gs := &GraphStorage{
		nodeName: make(map[string]NodeId),
		nodeLen:  []uint32{0}, // index 0 unused, NodeId is 1-based
	}
	if withEdges {
		gs.edge2id = make(map[CanonicalEdge]EdgeId)
	}
	return gs
}

// AddNode registers a segment (S) line, assigning it the next dense
// NodeId. Re-registering an existing name is an error (duplicate segment).
func (g *GraphStorage) AddNode(name string, length uint32) (NodeId, error) {
	if _, ok := g.nodeName[name]; ok {
		return 0, appErrors.Wrap(appErrors.CodeBadGFA, "duplicate segment name "+name, nil)
	}
	id := NodeId(len(g.nodeLen))
	g.nodeName[name] = id
	g.nodeLen = append(g.nodeLen, length)
	return id, nil
}

// NodeIdOf returns the dense id for a segment name, if known.
func (g *GraphStorage) NodeIdOf(name []byte) (NodeId, bool) {
	id, ok := g.nodeName[string(name)]
	return id, ok
}

// NodeLen returns the length in bp of a node.
func (g *GraphStorage) NodeLen(id NodeId) uint32 {
	return g.nodeLen[id]
}

// NodeCount returns the number of distinct nodes registered.
func (g *GraphStorage) NodeCount() int {
	return len(g.nodeLen) - 1
}

// AddPathSegment appends a path/walk segment, returning its dense PathIndex.
func (g *GraphStorage) AddPathSegment(seg PathSegment) PathIndex {
	idx := PathIndex(len(g.pathSegs))
	g.pathSegs = append(g.pathSegs, seg)
	return idx
}

// PathSegments returns all registered path segments in file order.
func (g *GraphStorage) PathSegments() []PathSegment {
	return g.pathSegs
}

// PathCount returns the number of path/walk lines registered.
func (g *GraphStorage) PathCount() int {
	return len(g.pathSegs)
}

// EdgeID returns the dense id of a canonical edge previously recorded by
// RegisterEdge; an edge that was never registered is a CodeUnknownEdge
// error. Requires the storage to have been built with edge tracking enabled.
func (g *GraphStorage) EdgeID(e CanonicalEdge) (EdgeId, error) {
	if g.edge2id == nil {
		return 0, appErrors.New(appErrors.CodeBadGFA, "edge tracking not enabled on this GraphStorage")
	}
	if id, ok := g.edge2id[e]; ok {
		return id, nil
	}
	return 0, missingEdgeErr(g, e)
}

// RegisterEdge records a canonical edge observed while scanning an L line,
// assigning it a dense EdgeId the first time it is seen.
func (g *GraphStorage) RegisterEdge(e CanonicalEdge) EdgeId {
	if id, ok := g.edge2id[e]; ok {
		return id
	}
	id := g.nextEdgeID
	g.edge2id[e] = id
	g.nextEdgeID++
	return id
}

// EdgeCount returns the number of distinct canonical edges registered.
func (g *GraphStorage) EdgeCount() int {
	return len(g.edge2id)
}

func missingEdgeErr(g *GraphStorage, e CanonicalEdge) error {
	_, flippedKnown := g.edge2id[e.Flip()]
	msg := "unknown edge " + e.String() + ". Is flipped edge known? "
	if flippedKnown {
		msg += "yes"
	} else {
		msg += "no"
	}
	return appErrors.New(appErrors.CodeUnknownEdge, msg)
}
