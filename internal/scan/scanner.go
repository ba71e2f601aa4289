// Package scan implements the two-pass GFA1 reader that drives
// internal/abacus's table construction: it recognizes S/L/P/W records,
// feeds GraphStorage, and streams each path's node tokens through the
// include/exclude masking logic, choosing between the cursor-based
// partial-inclusion path and a fully-contained fast path per spec.
package scan

import (
	"bufio"
	"context"
	"io"

	"github.com/panacus-go/internal/abacus"
	"github.com/panacus-go/internal/gfa"
	"github.com/panacus-go/internal/mask"
	appErrors "github.com/panacus-go/pkg/errors"
	"github.com/panacus-go/pkg/parallel"
)

func unknownNodeErr(name []byte) error {
	return appErrors.New(appErrors.CodeUnknownNode, "link references unknown node "+string(name))
}

// Opener returns a fresh reader over the same GFA content; the scanner
// calls it twice (once per structural/path pass), which lets callers
// back it with a re-openable file or a decompression wrapper without
// buffering the whole input in memory.
type Opener func() (io.Reader, error)

// Scanner walks a GFA1 stream and builds the tables internal/abacus
// needs for the requested countables.
type Scanner struct {
	Mask   *mask.GraphMask
	Counts gfa.CountType
	Config parallel.PoolConfig
}

// NewScanner returns a scanner for the given mask and requested countable(s).
func NewScanner(m *mask.GraphMask, counts gfa.CountType) *Scanner {
	return &Scanner{Mask: m, Counts: counts, Config: parallel.DefaultPoolConfig()}
}

// Result bundles the storage and per-countable tables a scan produces.
// NodeItems/NodeExclude/Covered serve both Node and Bp counting (their
// items are always NodeId, per spec.md §4.3); EdgeItems/EdgeExclude
// serve Edge counting independently.
type Result struct {
	Storage *gfa.GraphStorage

	NodeItems   *abacus.ItemTable
	NodeExclude *abacus.ActiveTable
	Covered     *abacus.IntervalContainer // non-nil only when Bp is requested

	EdgeItems   *abacus.ItemTable
	EdgeExclude *abacus.ActiveTable

	PathGroups []gfa.GroupIndex
	GroupNames []string
	NumGroups  int
}

// Scan performs the structural pass (S/L lines) followed by the path
// pass (P/W lines), returning the populated tables.
func (s *Scanner) Scan(ctx context.Context, open Opener) (*Result, error) {
	needNode := false
	needBp := false
	needEdge := false
	for _, c := range s.Counts.Expand() {
		switch c {
		case gfa.CountNode:
			needNode = true
		case gfa.CountBp:
			needBp = true
		case gfa.CountEdge:
			needEdge = true
		}
	}

	storage := gfa.NewGraphStorage(needEdge)
	if err := s.scanStructural(storage, open, needEdge); err != nil {
		return nil, err
	}

	res := &Result{Storage: storage}

	r, err := open()
	if err != nil {
		return nil, err
	}
	if err := s.scanPaths(ctx, storage, r, res, needNode, needBp, needEdge); err != nil {
		return nil, err
	}

	res.PathGroups, res.GroupNames, res.NumGroups = assignGroups(s.Mask, storage.PathSegments())
	return res, nil
}

func (s *Scanner) scanStructural(storage *gfa.GraphStorage, open Opener, needEdge bool) error {
	r, err := open()
	if err != nil {
		return err
	}
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		line, readErr := br.ReadBytes('\n')
		if len(line) > 0 {
			switch line[0] {
			case 'S':
				name, length, perr := parseSegment(fields(line))
				if perr != nil {
					return perr
				}
				if _, aerr := storage.AddNode(name, length); aerr != nil {
					return aerr
				}
			case 'L':
				if needEdge {
					uName, uo, vName, vo, perr := parseLink(fields(line))
					if perr != nil {
						return perr
					}
					uid, ok := storage.NodeIdOf(uName)
					if !ok {
						return unknownNodeErr(uName)
					}
					vid, ok := storage.NodeIdOf(vName)
					if !ok {
						return unknownNodeErr(vName)
					}
					storage.RegisterEdge(gfa.Canonical(uid, uo, vid, vo))
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return readErr
		}
	}
}

func (s *Scanner) scanPaths(ctx context.Context, storage *gfa.GraphStorage, r io.Reader, res *Result, needNode, needBp, needEdge bool) error {
	// First collect every path/walk line's segment + sequence field,
	// so the dense path count is known before tables are sized, and
	// groups can be assigned once all segments are in hand.
	type rawPath struct {
		seg gfa.PathSegment
		seq []byte
		w   bool
	}
	br := bufio.NewReaderSize(r, 1<<20)
	var raw []rawPath
	for {
		line, readErr := br.ReadBytes('\n')
		if len(line) > 0 && (line[0] == 'P' || line[0] == 'W') {
			f := fields(line)
			var seg gfa.PathSegment
			var seq []byte
			var perr error
			isW := line[0] == 'W'
			if isW {
				seg, seq, perr = parseWalkIdentifier(f)
			} else {
				seg, seq, perr = parsePathIdentifier(f)
			}
			if perr != nil {
				return perr
			}
			raw = append(raw, rawPath{seg: seg, seq: seq, w: isW})
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return readErr
		}
	}

	numPaths := len(raw)
	if needNode || needBp {
		res.NodeItems = abacus.NewItemTable(numPaths)
		res.NodeExclude = abacus.NewActiveTable(storage.NodeCount()+1, false)
		if needBp {
			res.Covered = abacus.NewIntervalContainer()
		}
	}
	if needEdge {
		res.EdgeItems = abacus.NewItemTable(numPaths)
		res.EdgeExclude = abacus.NewActiveTable(storage.EdgeCount(), false)
	}

	const maxEnd = int(^uint(0) >> 1)

	for _, rp := range raw {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		pathIdx := int(storage.AddPathSegment(rp.seg))

		pathID := rp.seg.ID()
		include := s.Mask.IncludeCoordsFor(pathID)
		exclude := s.Mask.ExcludeCoordsFor(pathID)

		start, end, ok := rp.seg.Coords()
		if !ok {
			start, end = 0, maxEnd
		}

		if s.Mask.HasInclude && !mask.Intersects(include, start, end) && !mask.Intersects(exclude, start, end) {
			if res.NodeItems != nil {
				res.NodeItems.CarryPrefixSum(pathIdx)
			}
			if res.EdgeItems != nil {
				res.EdgeItems.CarryPrefixSum(pathIdx)
			}
			continue
		}

		var occs []occurrence
		var err error
		if rp.w {
			occs, err = parseWalkSeq(storage, rp.seq)
		} else {
			occs, err = parsePathSeq(storage, rp.seq)
		}
		if err != nil {
			return err
		}

		fullyContained := mask.IsContained(include, start, end)
		excludeFullyCovers := len(exclude) == 0 || mask.IsContained(exclude, start, end)

		if (needNode || needBp) && fullyContained && excludeFullyCovers {
			ids := make([]uint32, len(occs))
			for i, o := range occs {
				ids[i] = uint32(o.sid)
			}
			_, _ = parallel.ForEach(ctx, ids, s.Config, func(ctx context.Context, id uint32) error {
				res.NodeItems.Push(id, pathIdx)
				return nil
			})
			res.NodeItems.ClosePrefixSum(pathIdx)
			if len(exclude) > 0 {
				markPathExcluded(res.NodeItems, res.NodeExclude, pathIdx)
			}
		} else if needNode || needBp {
			updateTables(res.NodeItems, res.Covered, res.NodeExclude, pathIdx, storage, occs, include, exclude, start)
			res.NodeItems.ClosePrefixSum(pathIdx)
		}

		if needEdge {
			// Edge counting never takes the fully-contained fast path
			// (an edge spans two nodes, so "this node span is inside
			// the mask" does not by itself bound the edge's position)
			// — it always walks the cursor-based pair-wise logic.
			if err := updateTablesEdgeCount(res.EdgeItems, res.EdgeExclude, pathIdx, storage, occs, include, exclude, start); err != nil {
				return err
			}
			res.EdgeItems.ClosePrefixSum(pathIdx)
		}
	}

	return nil
}

// assignGroups numbers the distinct group keys the mask resolves path
// segments to in order of first appearance among the GFA's P/W lines and
// returns the dense per-path GroupIndex assignment alongside the group
// names in that same order.
func assignGroups(m *mask.GraphMask, segs []gfa.PathSegment) ([]gfa.GroupIndex, []string, int) {
	index := make(map[string]gfa.GroupIndex, len(segs))
	names := make([]string, 0)
	groups := make([]gfa.GroupIndex, len(segs))
	for i, seg := range segs {
		k := m.GroupOf(seg)
		gi, ok := index[k]
		if !ok {
			gi = gfa.GroupIndex(len(names))
			index[k] = gi
			names = append(names, k)
		}
		groups[i] = gi
	}
	return groups, names, len(names)
}
