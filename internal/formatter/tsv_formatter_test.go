package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/panacus-go/pkg/model"
)

func TestTSVFormatter_HistOnly(t *testing.T) {
	job := model.NewAnalysisJob("job-1", "graph.gfa", "hist")
	result := &model.AnalysisResult{
		NumGroups: 2,
		Histograms: []model.CountedHistogram{
			{Count: "node", Histogram: &model.HistogramResult{Coverage: []uint64{0, 1, 1}}},
		},
	}

	var buf bytes.Buffer
	if err := NewTSVFormatter().Write(&buf, job, result); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "coverage\tcount") {
		t.Errorf("missing hist column header: %q", out)
	}
	if !strings.Contains(out, "1\t1\n2\t1\n") {
		t.Errorf("missing hist data rows: %q", out)
	}
}

func TestTSVFormatter_Growth(t *testing.T) {
	job := model.NewAnalysisJob("job-2", "graph.gfa", "growth")
	result := &model.AnalysisResult{
		Count:     "node",
		NumGroups: 2,
		Growth: []model.CurveResult{
			{Coverage: 1, Quorum: 0, Values: []float64{1.5, 2.0}},
		},
	}

	var buf bytes.Buffer
	if err := NewTSVFormatter().Write(&buf, job, result); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "m\tgrowth") {
		t.Errorf("missing curve kind header: %q", out)
	}
	if !strings.Contains(out, "1\t1.500000\n2\t2.000000\n") {
		t.Errorf("missing curve data rows: %q", out)
	}
}
