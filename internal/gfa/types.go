// Package gfa holds the dense-id graph model parsed out of a GFA1 file:
// node/edge/path id spaces, canonical edges and path segment coordinates.
package gfa

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeId is a dense, 1-based identifier assigned to a segment (S) line in
// order of first appearance.
type NodeId uint32

// EdgeId is a dense, 0-based identifier assigned to a canonical edge in
// order of first appearance among the link (L) lines.
type EdgeId uint32

// PathIndex is a dense, 0-based identifier assigned to a path/walk (P/W)
// line in file order.
type PathIndex uint32

// GroupIndex is a dense, 0-based identifier assigned to a group of paths
// by the active grouping strategy.
type GroupIndex uint32

// Orientation is the strand a node is traversed in along a path.
type Orientation bool

const (
	Forward  Orientation = false
	Backward Orientation = true
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	return !o
}

func (o Orientation) String() string {
	if o == Forward {
		return "+"
	}
	return "-"
}

// ParseOrientation parses the single-byte '+'/'-' and '>'/'<' orientation
// markers used by GFA P and W lines respectively.
func ParseOrientation(b byte) (Orientation, error) {
	switch b {
	case '+', '>':
		return Forward, nil
	case '-', '<':
		return Backward, nil
	default:
		return Forward, fmt.Errorf("gfa: invalid orientation marker %q", b)
	}
}

// CanonicalEdge is an edge between two node termini, canonicalized so that
// (a, b) and its flip describe the same undirected GFA edge exactly once:
// the endpoint with the smaller NodeId comes first, and ties are broken so
// the Forward-oriented endpoint sorts first.
type CanonicalEdge struct {
	From   NodeId
	FromO  Orientation
	To     NodeId
	ToO    Orientation
}

// Canonical builds the canonical form of the edge between two oriented
// node termini, mirroring Edge::canonical in the reference implementation.
func Canonical(sid1 NodeId, o1 Orientation, sid2 NodeId, o2 Orientation) CanonicalEdge {
	if sid1 < sid2 || (sid1 == sid2 && o1 == Forward) {
		return CanonicalEdge{From: sid1, FromO: o1, To: sid2, ToO: o2}
	}
	return CanonicalEdge{From: sid2, FromO: o2.Flip(), To: sid1, ToO: o1.Flip()}
}

// Flip returns the edge traversed in the opposite direction.
func (e CanonicalEdge) Flip() CanonicalEdge {
	return CanonicalEdge{From: e.To, FromO: e.ToO.Flip(), To: e.From, ToO: e.FromO.Flip()}
}

func (e CanonicalEdge) String() string {
	return fmt.Sprintf("%d%s%d%s", e.From, e.FromO, e.To, e.ToO)
}

// PathSegment identifies a path or walk line, optionally restricted to a
// sub-range of its coordinate space (as produced by W lines, which carry
// an explicit seq_start/seq_end, or by a subset/exclude coordinate file).
type PathSegment struct {
	Sample    string
	Haplotype string
	SeqName   string
	Start     *int
	End       *int
}

// NewPathSegment builds a 4-field walk-style path segment.
func NewPathSegment(sample, haplotype, seqName string, start, end *int) PathSegment {
	return PathSegment{Sample: sample, Haplotype: haplotype, SeqName: seqName, Start: start, End: end}
}

// ParsePathSegmentName parses a bare P-line path name, which may itself
// encode coordinates as "name[start-end]".
func ParsePathSegmentName(name string) PathSegment {
	if i := strings.IndexByte(name, '['); i >= 0 && strings.HasSuffix(name, "]") {
		coordPart := name[i+1 : len(name)-1]
		if dash := strings.IndexByte(coordPart, '-'); dash > 0 {
			start, errA := strconv.Atoi(coordPart[:dash])
			end, errB := strconv.Atoi(coordPart[dash+1:])
			if errA == nil && errB == nil {
				return PathSegment{SeqName: name[:i], Start: &start, End: &end}
			}
		}
	}
	return PathSegment{SeqName: name}
}

// ID returns the identifier used to key include/exclude coordinate maps:
// the path's name without its own coordinate suffix.
func (p PathSegment) ID() string {
	if p.Sample == "" && p.Haplotype == "" {
		return p.SeqName
	}
	return p.Sample + "#" + p.Haplotype + "#" + p.SeqName
}

// Coords returns the segment's own [start, end) range if known.
func (p PathSegment) Coords() (int, int, bool) {
	if p.Start == nil || p.End == nil {
		return 0, 0, false
	}
	return *p.Start, *p.End, true
}

func (p PathSegment) String() string {
	if p.Start != nil && p.End != nil {
		return fmt.Sprintf("%s[%d-%d]", p.ID(), *p.Start, *p.End)
	}
	return p.ID()
}

// CountType selects which countable items the pipeline indexes and scans.
type CountType int

const (
	CountNode CountType = iota
	CountEdge
	CountBp
	CountAll
)

func (c CountType) String() string {
	switch c {
	case CountNode:
		return "node"
	case CountEdge:
		return "edge"
	case CountBp:
		return "bp"
	case CountAll:
		return "all"
	default:
		return "unknown"
	}
}

// ParseCountType parses the --count flag value.
func ParseCountType(s string) (CountType, error) {
	switch strings.ToLower(s) {
	case "node":
		return CountNode, nil
	case "edge":
		return CountEdge, nil
	case "bp":
		return CountBp, nil
	case "all":
		return CountAll, nil
	default:
		return 0, fmt.Errorf("gfa: unknown count type %q", s)
	}
}

// Expand returns the concrete count types CountAll requests.
func (c CountType) Expand() []CountType {
	if c == CountAll {
		return []CountType{CountBp, CountNode, CountEdge}
	}
	return []CountType{c}
}
