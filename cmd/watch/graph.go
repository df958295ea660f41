package watch

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solgather/solgather/cmd/gather"
	"github.com/solgather/solgather/cmd/graph/formatters"
	"github.com/solgather/solgather/depgraph"
	"github.com/solgather/solgather/imports"
)

const emptyGraphDOT = "digraph dependencies {}"

// buildGraphDOT gathers the sources from scratch and renders their
// import graph. Each call runs a fresh setup; config edits, new glob
// matches, and changed remappings take effect on the next rebuild.
func buildGraphDOT(ctx context.Context, cmd *cobra.Command, opts *watchOptions, args []string) (string, error) {
	setup, err := gather.NewSetup(cmd, gather.SetupParams{
		Base:       opts.base,
		Remappings: opts.remappings,
		Patterns:   args,
	})
	if err != nil {
		return "", err
	}

	tree, err := imports.GatherTree(ctx, setup.Roots, setup.BaseDir, setup.Resolver)
	if err != nil {
		return "", fmt.Errorf("gather failed: %w", err)
	}

	annotated, err := depgraph.Annotate(tree)
	if err != nil {
		return "", fmt.Errorf("analyzing imports: %w", err)
	}

	formatter, err := formatters.NewFormatter(formatters.OutputFormatDOT.String())
	if err != nil {
		return "", err
	}

	return formatter.Format(annotated.Graph, formatters.FormatOptions{Meta: annotated.Meta})
}
