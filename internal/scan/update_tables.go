package scan

import (
	"github.com/panacus-go/internal/abacus"
	"github.com/panacus-go/internal/gfa"
	"github.com/panacus-go/internal/mask"
	appErrors "github.com/panacus-go/pkg/errors"
)

// updateTables is the cursor-based, per-node inclusion/exclusion pass
// for node and bp counting: it walks a path's occurrences once while
// advancing independent cursors over the (already sorted, merged)
// include and exclude interval lists, clipping each node's span
// [p, p+l) against the active interval. Returns the number of
// included nodes and the included bp mass, mirroring update_tables in
// the reference implementation.
func updateTables(items *abacus.ItemTable, covered *abacus.IntervalContainer, exclude *abacus.ActiveTable, pathIdx int, storage *gfa.GraphStorage, path []occurrence, include, excludeCoords []mask.Interval, offset int) (includedNodes, includedBp int) {
	if len(path) == 0 {
		return 0, 0
	}

	i, j := 0, 0
	p := offset

	for _, occ := range path {
		l := int(storage.NodeLen(occ.sid))

		stop := false
		for i < len(include) && include[i].Start < p+l && !stop {
			if include[i].End > p {
				a := 0
				if include[i].Start > p {
					a = include[i].Start - p
				}
				var b int
				if include[i].End < p+l {
					b = include[i].End - p
					i++
				} else {
					b = l
					stop = true
				}
				if occ.o == gfa.Backward {
					a, b = l-b, l-a
				}

				items.Push(uint32(occ.sid), pathIdx)
				if covered != nil {
					if b-a == l {
						covered.Remove(uint32(occ.sid))
					} else {
						covered.Add(uint32(occ.sid), a, b)
					}
				}
				includedNodes++
				includedBp += b - a
			} else {
				i++
			}
		}

		stop = false
		for j < len(excludeCoords) && excludeCoords[j].Start < p+l && !stop {
			if excludeCoords[j].End > p {
				a := 0
				if excludeCoords[j].Start > p {
					a = excludeCoords[j].Start - p
				}
				var b int
				if excludeCoords[j].End < p+l {
					b = excludeCoords[j].End - p
					j++
				} else {
					b = l
					stop = true
				}
				if occ.o == gfa.Backward {
					a, b = l-b, l-a
				}
				if exclude != nil {
					if exclude.WithAnnotation() {
						exclude.ActivateAndAnnotate(uint32(occ.sid), l, a, b)
					} else {
						exclude.Activate(uint32(occ.sid))
					}
				}
			} else {
				j++
			}
		}

		if i >= len(include) && j >= len(excludeCoords) {
			break
		}
		p += l
	}

	return includedNodes, includedBp
}

// updateTablesEdgeCount is the cursor-based edge-counting analogue of
// updateTables: edges sit between nodes, so the cursor starts past the
// first node and advances per consecutive pair. Edges are never
// eligible for the fully-contained fast path in the reference
// implementation, so this is the only code path edge counting uses.
func updateTablesEdgeCount(items *abacus.ItemTable, exclude *abacus.ActiveTable, pathIdx int, storage *gfa.GraphStorage, path []occurrence, include, excludeCoords []mask.Interval, offset int) error {
	if len(path) < 2 {
		return nil
	}

	i, j := 0, 0
	p := offset + int(storage.NodeLen(path[0].sid))

	for k := 0; k < len(path)-1; k++ {
		sid1, o1 := path[k].sid, path[k].o
		sid2, o2 := path[k+1].sid, path[k+1].o

		for i < len(include) && include[i].End <= p {
			i++
		}
		for j < len(excludeCoords) && excludeCoords[j].End <= p {
			j++
		}

		l := int(storage.NodeLen(sid2))

		e := gfa.Canonical(sid1, o1, sid2, o2)
		eid, err := storage.EdgeID(e)
		if err != nil {
			return appErrors.Wrap(appErrors.CodeUnknownEdge, "edge counting", err)
		}

		if i < len(include) && include[i].Start < p+l {
			items.Push(uint32(eid), pathIdx)
		}
		if exclude != nil && j < len(excludeCoords) && excludeCoords[j].Start < p+l {
			exclude.Activate(uint32(eid))
		} else if i >= len(include) && j >= len(excludeCoords) {
			break
		}
		p += l
	}

	return nil
}

// markPathExcluded flags every item id just pushed for pathIdx as
// excluded. This reproduces a deliberately coarse rule from the
// reference implementation: a path only qualifies for the fully
// contained fast path when its exclude coordinates are either absent
// or themselves fully contain the path's span — so "fast path and
// some exclude coords present" always means the entire path is
// excluded, never a partial sub-range. Must be called after
// items.ClosePrefixSum(pathIdx).
func markPathExcluded(items *abacus.ItemTable, exclude *abacus.ActiveTable, pathIdx int) {
	if exclude == nil {
		return
	}
	items.ForEachInPath(pathIdx, func(id uint32) {
		exclude.Activate(id)
	})
}
