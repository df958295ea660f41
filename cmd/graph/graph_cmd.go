package graph

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solgather/solgather/cmd/gather"
	"github.com/solgather/solgather/cmd/graph/formatters"
	"github.com/solgather/solgather/depgraph"
	"github.com/solgather/solgather/imports"
)

type graphOptions struct {
	base        string
	revision    string
	remappings  []string
	format      string
	label       string
	between     []string
	showOrder   bool
	showCycles  bool
	generateURL bool
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph [sources...]",
		Short: "Render the import graph of a source set",
		Long: `Graph gathers the given sources and renders their transitive import graph.

Examples:
  solgather graph ./contracts/main.sol            # DOT graph on stdout
  solgather graph -f mermaid ./contracts/main.sol # Mermaid flowchart
  solgather graph -u ./contracts/main.sol         # visualization URL
  solgather graph --order ./contracts/main.sol    # compile order, one locator per line
  solgather graph --cycles ./contracts/main.sol   # import cycles, if any
  solgather graph -w ./a.sol,./b.sol .            # only chains connecting a and b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.base, "base", "b", "", "Base directory for relative references (default: current directory)")
	cmd.Flags().StringVar(&opts.revision, "rev", "", "Gather local sources from this git revision instead of the working tree")
	cmd.Flags().StringArrayVarP(&opts.remappings, "remap", "m", nil, "Import remapping of the form prefix=target (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatters.OutputFormatDOT.String(),
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "Title rendered above the graph")
	cmd.Flags().StringSliceVarP(&opts.between, "between", "w", nil, "Keep only import chains between these sources (comma-separated)")
	cmd.Flags().BoolVar(&opts.showOrder, "order", false, "Print the compile order instead of a graph, dependencies first")
	cmd.Flags().BoolVar(&opts.showCycles, "cycles", false, "Print import cycles instead of a graph")
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate visualization URL (supported formats: dot, mermaid)")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions, args []string) error {
	if opts.showOrder && opts.showCycles {
		return fmt.Errorf("--order cannot be combined with --cycles")
	}

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

	annotated, err := depgraph.Annotate(tree)
	if err != nil {
		return fmt.Errorf("analyzing imports: %w", err)
	}

	g := annotated.Graph
	if len(opts.between) > 0 {
		g, err = chainsBetween(g, setup, opts.between)
		if err != nil {
			return err
		}
	}

	if opts.showOrder {
		order, err := depgraph.CompileOrder(g)
		if err != nil {
			return err
		}
		for _, locator := range order {
			fmt.Fprintln(cmd.OutOrStdout(), locator)
		}
		return nil
	}

	if opts.showCycles {
		cycles, err := depgraph.Cycles(g)
		if err != nil {
			return err
		}
		if len(cycles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No import cycles found.")
			return nil
		}
		for _, cycle := range cycles {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cycle, " -> "))
		}
		return nil
	}

	formatter, err := formatters.NewFormatter(opts.format)
	if err != nil {
		return err
	}

	output, err := formatter.Format(g, formatters.FormatOptions{
		Label: opts.label,
		Meta:  annotated.Meta,
	})
	if err != nil {
		return fmt.Errorf("formatting graph: %w", err)
	}

	if opts.generateURL {
		if urlStr, ok := formatter.GenerateURL(output); ok {
			fmt.Fprintln(cmd.OutOrStdout(), urlStr)
			return nil
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for %s format\n\n", opts.format)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// chainsBetween narrows the graph to the locators lying on an import
// chain between any pair of the given references.
func chainsBetween(g depgraph.DependencyGraph, setup *gather.Setup, refs []string) (depgraph.DependencyGraph, error) {
	var resolved, missing []string
	for _, ref := range refs {
		locator, err := setup.Resolver.Canonicalize(ref, setup.BaseDir)
		if err != nil || !depgraph.ContainsNode(g, locator) {
			missing = append(missing, ref)
			continue
		}
		resolved = append(resolved, locator)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("sources not found in graph: %v", missing)
	}
	if len(resolved) < 2 {
		return nil, fmt.Errorf("at least 2 sources required for --between, found %d in graph", len(resolved))
	}

	return depgraph.FindPathNodes(g, resolved), nil
}
