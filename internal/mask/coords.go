// Package mask implements path-coordinate subset/exclude masking: BED
// and one-column path-list files parsed into per-path interval lists,
// merged and sorted so the scanner can intersect them against node
// spans in a single forward pass.
package mask

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	appErrors "github.com/panacus-go/pkg/errors"
	"github.com/panacus-go/internal/gfa"
)

// Interval is a half-open, 0-based [Start, End) coordinate range.
type Interval struct {
	Start int
	End   int
}

// PathCoords maps a path's id (PathSegment.ID()) to its sorted, merged
// list of include/exclude intervals.
type PathCoords map[string][]Interval

// Intersects reports whether any interval in coords overlaps [start, end).
func Intersects(coords []Interval, start, end int) bool {
	for _, c := range coords {
		if c.Start < end && c.End > start {
			return true
		}
	}
	return false
}

// IsContained reports whether [start, end) is fully covered by the union
// of coords (coords must be sorted and merged).
func IsContained(coords []Interval, start, end int) bool {
	p := start
	for _, c := range coords {
		if c.Start > p {
			return false
		}
		if c.End > p {
			p = c.End
		}
		if p >= end {
			return true
		}
	}
	return p >= end
}

// ParsePathList reads a one-column list of path names: each names the
// whole path, equivalent to an interval covering [0, MaxInt).
func ParsePathList(r io.Reader) (PathCoords, error) {
	pc := make(PathCoords)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		name := fields[0]
		if len(fields) == 1 {
			pc[name] = append(pc[name], Interval{Start: 0, End: int(^uint(0) >> 1)})
			continue
		}
		start, err1 := strconv.Atoi(fields[1])
		end, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return nil, appErrors.Wrap(appErrors.CodeBadMask, "malformed BED3 line: "+line, nil)
		}
		pc[name] = append(pc[name], Interval{Start: start, End: end})
	}
	if err := sc.Err(); err != nil {
		return nil, appErrors.Wrap(appErrors.CodeIO, "reading mask file", err)
	}
	return mergeAll(pc), nil
}

// ParseBED parses a BED3 or BED12 file. BED12's blockSizes/blockStarts
// (columns 11/12) expand into one interval per block, matching the way
// a spliced path-coordinate mask should be interpreted.
func ParseBED(r io.Reader) (PathCoords, error) {
	pc := make(PathCoords)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "track") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			fields = strings.Fields(line)
		}
		if len(fields) < 3 {
			return nil, appErrors.Wrap(appErrors.CodeBadMask, "malformed BED line: "+line, nil)
		}
		name := fields[0]
		chromStart, err1 := strconv.Atoi(fields[1])
		chromEnd, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			return nil, appErrors.Wrap(appErrors.CodeBadMask, "malformed BED coordinates: "+line, nil)
		}

		if len(fields) >= 12 {
			blockSizes := strings.Split(strings.TrimRight(fields[10], ","), ",")
			blockStarts := strings.Split(strings.TrimRight(fields[11], ","), ",")
			if len(blockSizes) == len(blockStarts) {
				ok := true
				for i := range blockSizes {
					bs, e1 := strconv.Atoi(blockSizes[i])
					bstart, e2 := strconv.Atoi(blockStarts[i])
					if e1 != nil || e2 != nil {
						ok = false
						break
					}
					pc[name] = append(pc[name], Interval{
						Start: chromStart + bstart,
						End:   chromStart + bstart + bs,
					})
				}
				if ok {
					continue
				}
				pc[name] = pc[name][:0]
			}
		}
		pc[name] = append(pc[name], Interval{Start: chromStart, End: chromEnd})
	}
	if err := sc.Err(); err != nil {
		return nil, appErrors.Wrap(appErrors.CodeIO, "reading mask file", err)
	}
	return mergeAll(pc), nil
}

// DetectAndParse inspects the first non-comment line's column count to
// pick between the 1-column path-list and BED3/BED12 formats.
func DetectAndParse(r io.Reader) (PathCoords, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	peek, _ := br.Peek(4096)
	cols := 1
	for _, line := range strings.Split(string(peek), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols = len(strings.Fields(line))
		break
	}
	if cols >= 3 {
		return ParseBED(br)
	}
	return ParsePathList(br)
}

func mergeAll(pc PathCoords) PathCoords {
	for k, ivs := range pc {
		pc[k] = mergeIntervals(ivs)
	}
	return pc
}

// mergeIntervals sorts by start and merges overlapping/adjacent ranges,
// producing the canonical sorted disjoint interval list the scanner's
// cursor algorithm assumes.
func mergeIntervals(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return ivs
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
	out := make([]Interval, 0, len(ivs))
	cur := ivs[0]
	for _, iv := range ivs[1:] {
		if iv.Start <= cur.End {
			if iv.End > cur.End {
				cur.End = iv.End
			}
			continue
		}
		out = append(out, cur)
		cur = iv
	}
	out = append(out, cur)
	return out
}

// Lookup returns the interval list for a path id, or nil if not present.
func (pc PathCoords) Lookup(pathID string) []Interval {
	return pc[pathID]
}

// PathSegmentID is a convenience forwarding to gfa.PathSegment.ID, kept
// here so callers needn't import gfa just to key a PathCoords map.
func PathSegmentID(p gfa.PathSegment) string {
	return p.ID()
}
