package mask

import (
	"bufio"
	"io"
	"strings"

	"github.com/panacus-go/internal/gfa"
	appErrors "github.com/panacus-go/pkg/errors"
)

// GroupBy selects how paths are assigned to groups for the abacus union.
type GroupBy int

const (
	// GroupByIdentity assigns each path to its own singleton group.
	GroupByIdentity GroupBy = iota
	// GroupByHaplotype groups paths sharing the PathSegment Sample#Haplotype pair.
	GroupByHaplotype
	// GroupBySample groups paths sharing the PathSegment Sample field.
	GroupBySample
	// GroupByFile groups paths by an externally supplied path->group mapping.
	GroupByFile
)

// GraphMask bundles the subset/exclude coordinate masks and the grouping
// strategy that together determine which bp/node/edge occurrences are
// counted, and how paths are folded into groups before counting.
type GraphMask struct {
	Include    PathCoords // nil means "whole graph"
	HasInclude bool
	Exclude    PathCoords // nil means "nothing excluded"
	HasExclude bool
	Grouping   GroupBy
	groupFile  map[string]string // path id -> group name, only for GroupByFile
}

// NewGraphMask returns a mask with no subset/exclude restriction and
// identity grouping (one group per path).
func NewGraphMask() *GraphMask {
	return &GraphMask{Grouping: GroupByIdentity}
}

// WithInclude sets the subset mask.
func (m *GraphMask) WithInclude(pc PathCoords) *GraphMask {
	m.Include = pc
	m.HasInclude = true
	return m
}

// WithExclude sets the exclude mask.
func (m *GraphMask) WithExclude(pc PathCoords) *GraphMask {
	m.Exclude = pc
	m.HasExclude = true
	return m
}

// WithGroupFile loads a tab-separated path-name -> group-name file and
// switches the mask to GroupByFile.
func (m *GraphMask) WithGroupFile(r io.Reader) error {
	groups := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			fields = strings.Fields(line)
		}
		if len(fields) < 2 {
			return appErrors.Wrap(appErrors.CodeBadMask, "malformed group file line: "+line, nil)
		}
		groups[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return appErrors.Wrap(appErrors.CodeIO, "reading group file", err)
	}
	m.groupFile = groups
	m.Grouping = GroupByFile
	return nil
}

// GroupOf returns the group name a path segment belongs to under the
// active grouping strategy.
func (m *GraphMask) GroupOf(p gfa.PathSegment) string {
	switch m.Grouping {
	case GroupByHaplotype:
		return p.Sample + "#" + p.Haplotype
	case GroupBySample:
		return p.Sample
	case GroupByFile:
		if g, ok := m.groupFile[p.ID()]; ok {
			return g
		}
		return p.ID()
	default:
		return p.ID()
	}
}

// IncludeCoordsFor returns the include interval list active for a path,
// substituting the "whole graph" sentinel [0, MaxInt) when no subset
// mask was configured.
func (m *GraphMask) IncludeCoordsFor(pathID string) []Interval {
	if !m.HasInclude {
		return []Interval{{Start: 0, End: int(^uint(0) >> 1)}}
	}
	return m.Include[pathID]
}

// ExcludeCoordsFor returns the exclude interval list active for a path.
func (m *GraphMask) ExcludeCoordsFor(pathID string) []Interval {
	if !m.HasExclude {
		return nil
	}
	return m.Exclude[pathID]
}
