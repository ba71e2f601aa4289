package analyzer

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/panacus-go/internal/abacus"
	"github.com/panacus-go/internal/gfa"
	"github.com/panacus-go/internal/growth"
	"github.com/panacus-go/internal/histogram"
	"github.com/panacus-go/internal/mask"
	"github.com/panacus-go/internal/scan"
	"github.com/panacus-go/pkg/compression"
	appErrors "github.com/panacus-go/pkg/errors"
	"github.com/panacus-go/pkg/model"
	"github.com/panacus-go/pkg/utils"
)

// loadedGraph bundles a scan pass's output with the digest of the bytes
// it was built from, so callers can stamp AnalysisResult.Digest (and,
// eventually, internal/repository's cache key) without rescanning.
type loadedGraph struct {
	result *scan.Result
	digest string
}

// scanJob builds the GraphMask and CountType a job requests, opens its
// GFA input, and runs the single scan.Scanner pass all four analyzer
// modes share.
func scanJob(ctx context.Context, job *model.AnalysisJob, count gfa.CountType) (*loadedGraph, error) {
	m, err := buildMask(job)
	if err != nil {
		return nil, err
	}

	content, digest, err := readAndDigest(job.GFAPath)
	if err != nil {
		return nil, err
	}

	open := func() (io.Reader, error) { return bytes.NewReader(content), nil }

	scanner := scan.NewScanner(m, count)
	res, err := scanner.Scan(ctx, open)
	if err != nil {
		return nil, err
	}
	return &loadedGraph{result: res, digest: digest}, nil
}

// readAndDigest reads and decompresses a GFA file, returning its content
// alongside a SHA-256 digest of the decompressed bytes. DigestGFA exposes
// the digest half to callers that need a cache key before committing to
// a full scan.
func readAndDigest(path string) ([]byte, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", appErrors.Wrap(appErrors.CodeIO, "reading gfa input "+path, err)
	}
	content, err := maybeDecompress(raw)
	if err != nil {
		return nil, "", appErrors.Wrap(appErrors.CodeIO, "decompressing gfa input", err)
	}
	digest := sha256.Sum256(content)
	return content, hex.EncodeToString(digest[:]), nil
}

// DigestGFA returns the SHA-256 digest of a GFA file's decompressed
// bytes without running a scan pass, so a cache lookup can short-circuit
// before internal/scan.Scanner ever runs.
func DigestGFA(path string) (string, error) {
	_, digest, err := readAndDigest(path)
	return digest, err
}

// maybeDecompress auto-detects gzip/zstd magic bytes before decompressing.
// pkg/compression.AutoDecompress assumes its input is always compressed;
// GFA input is frequently plain text, so the magic bytes are checked
// directly and unrecognized input passes through unchanged.
func maybeDecompress(data []byte) ([]byte, error) {
	switch compression.DetectType(data) {
	case compression.TypeZstd:
		if len(data) >= 4 && data[0] == 0x28 && data[1] == 0xb5 && data[2] == 0x2f && data[3] == 0xfd {
			c, err := compression.NewZstdCompressor(compression.LevelDefault)
			if err != nil {
				return nil, err
			}
			defer c.Close()
			return c.Decompress(data)
		}
	case compression.TypeGzip:
		if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
			return compression.NewGzipCompressor(compression.LevelDefault).Decompress(data)
		}
	}
	return data, nil
}

// buildMask turns a job's grouping/subset/exclude fields into the
// GraphMask internal/scan.Scanner needs.
func buildMask(job *model.AnalysisJob) (*mask.GraphMask, error) {
	m := mask.NewGraphMask()

	if job.GroupFile != "" {
		f, err := os.Open(job.GroupFile)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.CodeIO, "opening group file "+job.GroupFile, err)
		}
		defer f.Close()
		if err := m.WithGroupFile(f); err != nil {
			return nil, err
		}
	} else {
		switch strings.ToLower(job.GroupBy) {
		case "haplotype":
			m.Grouping = mask.GroupByHaplotype
		case "sample":
			m.Grouping = mask.GroupBySample
		case "identity", "":
			m.Grouping = mask.GroupByIdentity
		default:
			return nil, appErrors.New(appErrors.CodeBadMask, "unknown groupby "+job.GroupBy)
		}
	}

	if job.Subset != "" {
		pc, err := parseCoordFile(job.Subset)
		if err != nil {
			return nil, err
		}
		m.WithInclude(pc)
	}
	if job.Exclude != "" {
		pc, err := parseCoordFile(job.Exclude)
		if err != nil {
			return nil, err
		}
		m.WithExclude(pc)
	}
	return m, nil
}

func parseCoordFile(path string) (mask.PathCoords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeIO, "opening mask file "+path, err)
	}
	defer f.Close()
	return mask.DetectAndParse(f)
}

// resolveOrder returns the group permutation OrderedGrowth walks: the
// job's --order file if given, else identity order over the group
// indices assigned during the scan, i.e. the order in which groups first
// appear among the GFA's P/W lines. The order of paths in a --subset
// file does not affect this default.
func resolveOrder(job *model.AnalysisJob, res *scan.Result) ([]gfa.GroupIndex, error) {
	if job.Order == "" {
		order := make([]gfa.GroupIndex, res.NumGroups)
		for i := range order {
			order[i] = gfa.GroupIndex(i)
		}
		return order, nil
	}

	f, err := os.Open(job.Order)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeIO, "opening order file "+job.Order, err)
	}
	defer f.Close()

	nameToIdx := make(map[string]gfa.GroupIndex, len(res.GroupNames))
	for i, n := range res.GroupNames {
		nameToIdx[n] = gfa.GroupIndex(i)
	}
	var order []gfa.GroupIndex
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx, ok := nameToIdx[line]; ok {
			order = append(order, idx)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, appErrors.Wrap(appErrors.CodeIO, "reading order file", err)
	}
	return order, nil
}

// tableFor returns the ItemTable/ActiveTable/item-space-size/weight
// vector a given countable draws its coverage vector from. Node and Bp
// counting share the node item table (bp weights it by bp mass instead
// of by 1); Edge counting uses the independent edge item table.
func tableFor(res *scan.Result, ct gfa.CountType) (*abacus.ItemTable, *abacus.ActiveTable, int, []uint64) {
	if ct == gfa.CountEdge {
		return res.EdgeItems, res.EdgeExclude, res.Storage.EdgeCount(), nil
	}
	var weights []uint64
	if ct == gfa.CountBp {
		weights = res.BpWeights()
	}
	return res.NodeItems, res.NodeExclude, res.Storage.NodeCount() + 1, weights
}

// buildHistogram folds one countable's coverage vector into a Histogram.
func buildHistogram(ctx context.Context, res *scan.Result, ct gfa.CountType) *histogram.Histogram {
	table, exclude, numItems, weights := tableFor(res, ct)
	builder := abacus.NewAbacusBuilder(res.PathGroups, res.NumGroups, exclude)
	cov := builder.Build(ctx, table, numItems)
	return histogram.Build(ct, cov, res.NumGroups, weights)
}

// timingMs flattens a utils.Timer's completed phases into the
// millisecond map AnalysisResult.TimingMs carries.
func timingMs(t *utils.Timer) map[string]int64 {
	out := make(map[string]int64)
	for _, p := range t.GetPhases() {
		out[p.Name] = p.Duration.Milliseconds()
	}
	return out
}

func countedHistogram(ct gfa.CountType, h *histogram.Histogram) model.CountedHistogram {
	return model.CountedHistogram{Count: ct.String(), Histogram: &model.HistogramResult{Coverage: h.Coverage}}
}

func curveResults(curves []growth.Curve) []model.CurveResult {
	out := make([]model.CurveResult, len(curves))
	for i, c := range curves {
		out[i] = model.CurveResult{Coverage: c.Threshold.Coverage, Quorum: c.Threshold.Quorum, Values: c.Values}
	}
	return out
}
