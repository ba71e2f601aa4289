// Package formatter renders an AnalysisResult into the tabular shape
// spec.md §6 describes for panacus-cli's stdout/-o output.
package formatter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/panacus-go/pkg/model"
)

// TSVFormatter writes a header block echoing the invocation, then:
//   - for hist-only results, a two-column coverage/count table per
//     requested countable;
//   - for results carrying growth or ordered-growth curves, a 4-row
//     header block (kind/count/coverage/quorum) followed by one row
//     per m.
// A histgrowth/ordered-histgrowth result prints both: the hist table(s)
// first, then the curve table.
type TSVFormatter struct{}

// NewTSVFormatter returns a ready-to-use formatter.
func NewTSVFormatter() *TSVFormatter {
	return &TSVFormatter{}
}

// Write renders result to w, echoing job as the invocation comment.
func (f *TSVFormatter) Write(w io.Writer, job *model.AnalysisJob, result *model.AnalysisResult) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", invocationLine(job))

	if len(result.Histograms) > 0 {
		writeHistTables(bw, result.Histograms)
	}
	if len(result.Growth) > 0 {
		writeCurveTable(bw, "growth", result)
	}
	if len(result.OrderedGrowth) > 0 {
		writeCurveTable(bw, "ordered-growth", result)
	}

	return bw.Flush()
}

func invocationLine(job *model.AnalysisJob) string {
	parts := []string{"panacus-cli", job.Mode, "-g", job.GFAPath, "--count", job.Count}
	if job.Coverage != "" {
		parts = append(parts, "--coverage", job.Coverage)
	}
	if job.Quorum != "" {
		parts = append(parts, "--quorum", job.Quorum)
	}
	if job.GroupBy != "" {
		parts = append(parts, "--groupby", job.GroupBy)
	}
	if job.Subset != "" {
		parts = append(parts, "--subset", job.Subset)
	}
	if job.Exclude != "" {
		parts = append(parts, "--exclude", job.Exclude)
	}
	return strings.Join(parts, " ")
}

func writeHistTables(w *bufio.Writer, histos []model.CountedHistogram) {
	for _, ch := range histos {
		fmt.Fprintf(w, "# hist\t%s\n", ch.Count)
		fmt.Fprintln(w, "coverage\tcount")
		cov := ch.Histogram.Coverage
		for k := 1; k < len(cov); k++ {
			fmt.Fprintf(w, "%d\t%d\n", k, cov[k])
		}
	}
}

func writeCurveTable(w *bufio.Writer, kind string, result *model.AnalysisResult) {
	curves := result.Growth
	if kind == "ordered-growth" {
		curves = result.OrderedGrowth
	}
	if len(curves) == 0 {
		return
	}

	kindRow := make([]string, len(curves)+1)
	countRow := make([]string, len(curves)+1)
	coverageRow := make([]string, len(curves)+1)
	quorumRow := make([]string, len(curves)+1)
	kindRow[0] = "m"
	for i, c := range curves {
		kindRow[i+1] = kind
		countRow[i+1] = result.Count
		coverageRow[i+1] = strconv.Itoa(c.Coverage)
		quorumRow[i+1] = strconv.FormatFloat(c.Quorum, 'g', -1, 64)
	}
	fmt.Fprintln(w, strings.Join(kindRow, "\t"))
	fmt.Fprintln(w, strings.Join(countRow, "\t"))
	fmt.Fprintln(w, strings.Join(coverageRow, "\t"))
	fmt.Fprintln(w, strings.Join(quorumRow, "\t"))

	for m := 1; m <= result.NumGroups; m++ {
		row := make([]string, len(curves)+1)
		row[0] = strconv.Itoa(m)
		for i, c := range curves {
			row[i+1] = strconv.FormatFloat(c.Values[m-1], 'f', 6, 64)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}
