package canonize

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/solgather/solgather/cmd/gather"
	"github.com/solgather/solgather/depgraph"
	"github.com/solgather/solgather/imports"
	"github.com/solgather/solgather/resolver"
)

type canonizeOptions struct {
	base       string
	output     string
	revision   string
	remappings []string
	showDiff   bool
}

// Cmd represents the canonize command.
var Cmd = NewCommand()

// NewCommand returns a new canonize command instance.
func NewCommand() *cobra.Command {
	opts := &canonizeOptions{}

	cmd := &cobra.Command{
		Use:   "canonize [sources...]",
		Short: "Rewrite import statements to canonical locators",
		Long: `Canonize gathers the given sources and rewrites every import statement to
the canonical locator it resolved to, so the files no longer depend on
remappings or a base directory. By default the rewritten sources are
printed as a single bundle in compile order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanonize(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.base, "base", "b", "", "Base directory for relative references (default: current directory)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write rewritten sources under this directory")
	cmd.Flags().StringVar(&opts.revision, "rev", "", "Gather local sources from this git revision instead of the working tree")
	cmd.Flags().StringArrayVarP(&opts.remappings, "remap", "m", nil, "Import remapping of the form prefix=target (repeatable)")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Show what each rewrite changes instead of the rewritten sources")

	return cmd
}

func runCanonize(cmd *cobra.Command, opts *canonizeOptions, args []string) error {
	setup, err := gather.NewSetup(cmd, gather.SetupParams{
		Base:       opts.base,
		Revision:   opts.revision,
		Remappings: opts.remappings,
		Patterns:   args,
	})
	if err != nil {
		return err
	}

	tree, err := imports.GatherTree(cmd.Context(), setup.Roots, setup.BaseDir, setup.Resolver)
	if err != nil {
		return fmt.Errorf("gather failed: %w", err)
	}

	// GatherTree returns completion order, which varies run to run.
	sort.Slice(tree, func(i, j int) bool { return tree[i].Locator < tree[j].Locator })
	rewritten := imports.CanonizeImports(tree)

	if opts.showDiff {
		printDiffs(cmd.OutOrStdout(), tree, rewritten)
		return nil
	}

	if opts.output != "" {
		written, total, err := gather.WriteSources(opts.output, rewritten)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d canonical sources (%s) under %s\n",
			written, humanize.Bytes(uint64(total)), opts.output)
		return nil
	}

	writeBundle(cmd.OutOrStdout(), bundleOrder(tree), rewritten)
	return nil
}

// bundleOrder lists the tree's locators dependencies first. Cyclic
// imports have no such order, so they fall back to name order.
func bundleOrder(tree []*imports.TreeNode) []string {
	g := depgraph.NewFromTree(tree)
	order, err := depgraph.CompileOrder(g)
	if err != nil {
		return depgraph.Locators(g)
	}
	return order
}

func writeBundle(w io.Writer, order []string, files []resolver.SourceFile) {
	byLocator := make(map[string]resolver.SourceFile, len(files))
	for _, file := range files {
		byLocator[file.Locator] = file
	}

	emitted := 0
	for _, locator := range order {
		file, ok := byLocator[locator]
		if !ok {
			continue
		}
		if emitted > 0 {
			fmt.Fprintln(w)
		}
		emitted++
		fmt.Fprintf(w, "// Source: %s\n", file.Locator)
		fmt.Fprint(w, file.Source)
		if !strings.HasSuffix(file.Source, "\n") {
			fmt.Fprintln(w)
		}
	}
}

func printDiffs(w io.Writer, tree []*imports.TreeNode, rewritten []resolver.SourceFile) {
	dmp := diffmatchpatch.New()

	changed := 0
	for i, file := range rewritten {
		if file.Source == tree[i].Source {
			continue
		}
		changed++

		diffs := dmp.DiffMain(tree[i].Source, file.Source, false)
		diffs = dmp.DiffCleanupMerge(dmp.DiffCleanupSemanticLossless(diffs))

		fmt.Fprintf(w, "--- %s\n", file.Locator)
		pretty := dmp.DiffPrettyText(diffs)
		fmt.Fprint(w, pretty)
		if !strings.HasSuffix(pretty, "\n") {
			fmt.Fprintln(w)
		}
	}

	if changed == 0 {
		fmt.Fprintln(w, "All imports are already canonical.")
	}
}
