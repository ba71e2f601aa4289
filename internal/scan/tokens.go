package scan

import (
	"bytes"

	"github.com/panacus-go/internal/gfa"
	appErrors "github.com/panacus-go/pkg/errors"
)

// occurrence is one oriented node traversal parsed out of a P or W
// line's sequence field.
type occurrence struct {
	sid gfa.NodeId
	o   gfa.Orientation
}

// parsePathSeq splits a P line's comma-separated "name+,name-,..."
// sequence field into oriented node occurrences.
func parsePathSeq(storage *gfa.GraphStorage, seq []byte) ([]occurrence, error) {
	if len(seq) == 0 {
		return nil, nil
	}
	tokens := bytes.Split(seq, []byte(","))
	out := make([]occurrence, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) == 0 {
			continue
		}
		oriByte := tok[len(tok)-1]
		name := tok[:len(tok)-1]
		o, err := gfa.ParseOrientation(oriByte)
		if err != nil {
			return nil, err
		}
		sid, ok := storage.NodeIdOf(name)
		if !ok {
			return nil, appErrors.New(appErrors.CodeUnknownNode, "path references unknown node "+string(name))
		}
		out = append(out, occurrence{sid: sid, o: o})
	}
	return out, nil
}

// parseWalkSeq splits a W line's ">name<name..." sequence field, where
// '>' is Forward and '<' is Backward, into oriented node occurrences.
func parseWalkSeq(storage *gfa.GraphStorage, seq []byte) ([]occurrence, error) {
	if len(seq) == 0 {
		return nil, nil
	}
	var out []occurrence
	i := 0
	for i < len(seq) {
		o, err := gfa.ParseOrientation(seq[i])
		if err != nil {
			return nil, appErrors.Wrap(appErrors.CodeBadGFA, "malformed walk orientation marker", err)
		}
		j := i + 1
		for j < len(seq) && seq[j] != '>' && seq[j] != '<' {
			j++
		}
		name := seq[i+1 : j]
		sid, ok := storage.NodeIdOf(name)
		if !ok {
			return nil, appErrors.New(appErrors.CodeUnknownNode, "walk references unknown node "+string(name))
		}
		out = append(out, occurrence{sid: sid, o: o})
		i = j
	}
	return out, nil
}
