// Command panacus-cli computes coverage histograms and growth curves for
// GFA1 pangenome graphs.
package main

import (
	"github.com/panacus-go/cmd/panacus-cli/cmd"
)

func main() {
	cmd.Execute()
}
