package why

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solgather/solgather/cmd/gather"
	"github.com/solgather/solgather/cmd/graph/formatters"
	"github.com/solgather/solgather/depgraph"
	"github.com/solgather/solgather/imports"
)

const formatText = "text"

type whyOptions struct {
	base         string
	revision     string
	remappings   []string
	outputFormat string
	all          bool
}

// Cmd represents the why command.
var Cmd = NewCommand()

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{
		outputFormat: formatText,
	}

	cmd := &cobra.Command{
		Use:   "why <from> <to>",
		Short: "Explain why one source depends on another",
		Long: `Why gathers the first source's import tree and shows the chain of imports
that leads from it to the second source.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.base, "base", "b", "", "Base directory for relative references (default: current directory)")
	cmd.Flags().StringVar(&opts.revision, "rev", "", "Gather local sources from this git revision instead of the working tree")
	cmd.Flags().StringArrayVarP(&opts.remappings, "remap", "m", nil, "Import remapping of the form prefix=target (repeatable)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", opts.outputFormat,
		fmt.Sprintf("Output format (%s)", supportedFormats()))
	cmd.Flags().BoolVar(&opts.all, "all", false, "Show every source on any import chain, not just the shortest")

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, fromArg, toArg string) error {
	format := strings.ToLower(opts.outputFormat)
	if !isSupportedFormat(format) {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, supportedFormats())
	}

	setup, err := gather.NewSetup(cmd, gather.SetupParams{
		Base:       opts.base,
		Revision:   opts.revision,
		Remappings: opts.remappings,
		Patterns:   []string{fromArg},
	})
	if err != nil {
		return err
	}
	if len(setup.Roots) != 1 {
		return fmt.Errorf("<from> must name a single source, %q matches %d", fromArg, len(setup.Roots))
	}

	toRefs, err := gather.ExpandRoots(setup.BaseDir, []string{toArg})
	if err != nil {
		return err
	}
	if len(toRefs) != 1 {
		return fmt.Errorf("<to> must name a single source, %q matches %d", toArg, len(toRefs))
	}

	fromLocator, err := setup.Resolver.Canonicalize(setup.Roots[0], setup.BaseDir)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", fromArg, err)
	}
	toLocator, err := setup.Resolver.Canonicalize(toRefs[0], setup.BaseDir)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", toArg, err)
	}

	tree, err := imports.GatherTree(cmd.Context(), setup.Roots, setup.BaseDir, setup.Resolver)
	if err != nil {
		return fmt.Errorf("gather failed: %w", err)
	}

	annotated, err := depgraph.Annotate(tree)
	if err != nil {
		return fmt.Errorf("analyzing imports: %w", err)
	}

	chain, ok, err := depgraph.ImportChain(annotated.Graph, fromLocator, toLocator)
	if err != nil {
		return err
	}

	fromDisplay := displayPath(setup.BaseDir, fromLocator)
	toDisplay := displayPath(setup.BaseDir, toLocator)

	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No import chain from %s to %s.\n", fromDisplay, toDisplay)
		return nil
	}

	renderGraph := chainGraph(chain)
	if opts.all {
		renderGraph = depgraph.FindPathNodes(annotated.Graph, []string{fromLocator, toLocator})
	}

	if format != formatText {
		formatter, err := formatters.NewFormatter(format)
		if err != nil {
			return err
		}
		output, err := formatter.Format(renderGraph, formatters.FormatOptions{Meta: annotated.Meta})
		if err != nil {
			return fmt.Errorf("formatting chain: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	if opts.all {
		fmt.Fprintf(cmd.OutOrStdout(), "Sources on import chains from %s to %s:\n", fromDisplay, toDisplay)
		for _, locator := range depgraph.Locators(renderGraph) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", displayPath(setup.BaseDir, locator))
		}
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Import chain from %s to %s:\n", fromDisplay, toDisplay)
	for i, locator := range chain {
		if i == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", displayPath(setup.BaseDir, locator))
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  -> %s\n", displayPath(setup.BaseDir, locator))
	}
	return nil
}

// chainGraph turns a chain of locators into a graph with one edge per
// hop.
func chainGraph(chain []string) depgraph.DependencyGraph {
	g := make(depgraph.DependencyGraph, len(chain))
	for i, locator := range chain {
		deps := []string{}
		if i+1 < len(chain) {
			deps = append(deps, chain[i+1])
		}
		g[locator] = deps
	}
	return g
}

// displayPath shortens a local locator to its path under baseDir.
// Remote locators and locators outside baseDir stay as they are.
func displayPath(baseDir, locator string) string {
	if strings.Contains(locator, "://") || strings.Contains(baseDir, "://") {
		return locator
	}
	rel, err := filepath.Rel(baseDir, locator)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return locator
	}
	return rel
}

func isSupportedFormat(format string) bool {
	switch format {
	case formatText, formatters.OutputFormatDOT.String(), formatters.OutputFormatMermaid.String():
		return true
	default:
		return false
	}
}

func supportedFormats() string {
	return strings.Join([]string{
		formatText,
		formatters.OutputFormatDOT.String(),
		formatters.OutputFormatMermaid.String(),
	}, ", ")
}
