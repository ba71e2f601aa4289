package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/panacus-go/internal/analyzer"
	"github.com/panacus-go/internal/formatter"
	"github.com/panacus-go/pkg/model"
)

var (
	gfaPath    string
	outputPath string
	count      string
	coverage   string
	quorum     string
	groupBy    string
	groupFile  string
	subsetFile string
	excludeFile string
	orderFile  string
	jobID      string
)

func init() {
	rootCmd.AddCommand(
		newModeCmd(analyzer.ModeHist),
		newModeCmd(analyzer.ModeGrowth),
		newModeCmd(analyzer.ModeHistgrowth),
		newModeCmd(analyzer.ModeOrderedGrowth),
	)
}

// newModeCmd builds the cobra subcommand for a single analyzer.Mode,
// sharing the same flag set the four modes all read from an AnalysisJob.
func newModeCmd(mode analyzer.Mode) *cobra.Command {
	name := mode.String()
	c := &cobra.Command{
		Use:   name,
		Short: modeShort(mode),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd.Context(), mode)
		},
	}

	c.Flags().StringVarP(&gfaPath, "gfa", "g", "", "Input GFA1 file, optionally gzip/zstd-compressed (required)")
	c.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (stdout if empty)")
	c.Flags().StringVar(&count, "count", "node", "Countable(s): node, edge, bp, or all")
	c.Flags().StringVar(&coverage, "coverage", "1", "Comma-separated coverage thresholds")
	c.Flags().StringVar(&quorum, "quorum", "0", "Comma-separated quorum thresholds")
	c.Flags().StringVar(&groupBy, "groupby", "identity", "Grouping: identity, haplotype, sample, or file (see --group-file)")
	c.Flags().StringVar(&groupFile, "group-file", "", "Explicit path-to-group assignment file")
	c.Flags().StringVar(&subsetFile, "subset", "", "Path-coordinate file restricting the graph to an included interval set")
	c.Flags().StringVar(&excludeFile, "exclude", "", "Path-coordinate file excluding an interval set from the graph")
	if mode == analyzer.ModeOrderedGrowth {
		c.Flags().StringVar(&orderFile, "order", "", "Group permutation file for ordered growth (defaults to order of first appearance in the GFA)")
	}
	c.Flags().StringVar(&jobID, "uuid", "", "Job ID (auto-generated if empty)")

	c.MarkFlagRequired("gfa")
	return c
}

func modeShort(mode analyzer.Mode) string {
	switch mode {
	case analyzer.ModeHist:
		return "Compute a coverage histogram"
	case analyzer.ModeGrowth:
		return "Compute an expected pangenome growth curve"
	case analyzer.ModeHistgrowth:
		return "Compute a coverage histogram and growth curve in one pass"
	case analyzer.ModeOrderedGrowth:
		return "Compute a single-permutation ordered growth curve"
	default:
		return "Compute pangenome statistics"
	}
}

func runMode(ctx context.Context, mode analyzer.Mode) error {
	id := jobID
	if id == "" {
		id = fmt.Sprintf("cli-%s", mode.String())
	}

	job := model.NewAnalysisJob(id, gfaPath, mode.String())
	job.Count = count
	job.Coverage = coverage
	job.Quorum = quorum
	job.GroupBy = groupBy
	job.GroupFile = groupFile
	job.Subset = subsetFile
	job.Exclude = excludeFile
	job.Order = orderFile

	factory := analyzer.NewFactory()
	a, err := factory.CreateAnalyzerForMode(mode)
	if err != nil {
		return err
	}

	result, err := a.Analyze(ctx, job)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		return formatter.NewTSVFormatter().Write(f, job, result)
	}

	return formatter.NewTSVFormatter().Write(out, job, result)
}
