package scan

import (
	"bytes"
	"strconv"

	"github.com/panacus-go/internal/gfa"
	appErrors "github.com/panacus-go/pkg/errors"
)

// fields splits one GFA line on tabs, dropping a trailing newline/CR.
func fields(line []byte) [][]byte {
	line = bytes.TrimRight(line, "\r\n")
	return bytes.Split(line, []byte("\t"))
}

// parseSegment parses an S line, returning its name and length (from
// the sequence field, or the LN:i tag when the sequence is "*").
func parseSegment(f [][]byte) (name string, length uint32, err error) {
	if len(f) < 3 {
		return "", 0, appErrors.New(appErrors.CodeBadGFA, "malformed S line: too few fields")
	}
	name = string(f[1])
	seq := f[2]
	if len(seq) == 1 && seq[0] == '*' {
		for _, tag := range f[3:] {
			if bytes.HasPrefix(tag, []byte("LN:i:")) {
				n, convErr := strconv.Atoi(string(tag[5:]))
				if convErr != nil {
					return "", 0, appErrors.Wrap(appErrors.CodeBadGFA, "malformed LN:i tag on segment "+name, convErr)
				}
				return name, uint32(n), nil
			}
		}
		return "", 0, appErrors.New(appErrors.CodeBadGFA, "segment "+name+" has no sequence and no LN:i tag")
	}
	return name, uint32(len(seq)), nil
}

// parseLink parses an L line into its two canonicalizable oriented endpoints.
func parseLink(f [][]byte) (uName []byte, uo gfa.Orientation, vName []byte, vo gfa.Orientation, err error) {
	if len(f) < 5 {
		return nil, false, nil, false, appErrors.New(appErrors.CodeBadGFA, "malformed L line: too few fields")
	}
	uo, err = gfa.ParseOrientation(orientationByte(f[2]))
	if err != nil {
		return nil, false, nil, false, appErrors.Wrap(appErrors.CodeBadGFA, "malformed L line orientation", err)
	}
	vo, err = gfa.ParseOrientation(orientationByte(f[4]))
	if err != nil {
		return nil, false, nil, false, appErrors.Wrap(appErrors.CodeBadGFA, "malformed L line orientation", err)
	}
	return f[1], uo, f[3], vo, nil
}

func orientationByte(f []byte) byte {
	if len(f) == 0 {
		return 0
	}
	return f[0]
}

// parsePathIdentifier parses a P line's name field into a PathSegment
// and returns the line's sequence field (column 3) for token parsing.
func parsePathIdentifier(f [][]byte) (gfa.PathSegment, []byte, error) {
	if len(f) < 3 {
		return gfa.PathSegment{}, nil, appErrors.New(appErrors.CodeBadGFA, "malformed P line: too few fields")
	}
	return gfa.ParsePathSegmentName(string(f[1])), f[2], nil
}

// parseWalkIdentifier parses a W line's sample/haplotype/seq/start/end
// fields into a PathSegment and returns the walk string (column 7).
func parseWalkIdentifier(f [][]byte) (gfa.PathSegment, []byte, error) {
	if len(f) < 7 {
		return gfa.PathSegment{}, nil, appErrors.New(appErrors.CodeBadGFA, "malformed W line: too few fields")
	}
	start, errA := strconv.Atoi(string(f[4]))
	end, errB := strconv.Atoi(string(f[5]))
	if errA != nil || errB != nil {
		return gfa.PathSegment{}, nil, appErrors.New(appErrors.CodeBadGFA, "malformed W line coordinates")
	}
	seg := gfa.NewPathSegment(string(f[1]), string(f[2]), string(f[3]), &start, &end)
	return seg, f[6], nil
}
