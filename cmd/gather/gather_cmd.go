package gather

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/solgather/solgather/imports"
	"github.com/solgather/solgather/resolver"
)

type gatherOptions struct {
	base       string
	output     string
	revision   string
	remappings []string
	jsonLines  bool
}

// Cmd represents the gather command.
var Cmd = NewCommand()

// NewCommand returns a new gather command instance.
func NewCommand() *cobra.Command {
	opts := &gatherOptions{}

	cmd := &cobra.Command{
		Use:   "gather [sources...]",
		Short: "Fetch a source set and everything it imports",
		Long: `Gather resolves every transitive import of the given sources and collects
the full file set. Sources may be glob patterns, local paths, package
references, github.com paths, URLs, or s3:// locators.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGather(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.base, "base", "b", "", "Base directory for relative references (default: current directory)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write gathered sources under this directory")
	cmd.Flags().StringVar(&opts.revision, "rev", "", "Gather local sources from this git revision instead of the working tree")
	cmd.Flags().StringArrayVarP(&opts.remappings, "remap", "m", nil, "Import remapping of the form prefix=target (repeatable)")
	cmd.Flags().BoolVar(&opts.jsonLines, "json", false, "Emit one JSON object per gathered source")

	return cmd
}

func runGather(cmd *cobra.Command, opts *gatherOptions, args []string) error {
	setup, err := NewSetup(cmd, SetupParams{
		Base:       opts.base,
		Revision:   opts.revision,
		Remappings: opts.remappings,
		Patterns:   args,
	})
	if err != nil {
		return err
	}

	files, err := imports.GatherSources(cmd.Context(), setup.Roots, setup.BaseDir, setup.Resolver)
	if err != nil {
		return fmt.Errorf("gather failed: %w", err)
	}

	if opts.output != "" {
		written, total, err := WriteSources(opts.output, files)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sources (%s) under %s\n",
			written, humanize.Bytes(uint64(total)), opts.output)
		return nil
	}

	if opts.jsonLines {
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, file := range files {
			if err := enc.Encode(file); err != nil {
				return fmt.Errorf("encoding %s: %w", file.Locator, err)
			}
		}
		return nil
	}

	total := 0
	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), file.Locator)
		total += len(file.Source)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d sources, %s\n", len(files), humanize.Bytes(uint64(total)))
	return nil
}

// WriteSources writes gathered files under dir, one file per locator,
// and returns the file count and byte total.
func WriteSources(dir string, files []resolver.SourceFile) (int, int, error) {
	total := 0
	for _, file := range files {
		target := filepath.Join(dir, filepath.FromSlash(OutputPath(file.Locator)))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return 0, 0, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(file.Source), 0o644); err != nil {
			return 0, 0, fmt.Errorf("writing %s: %w", target, err)
		}
		total += len(file.Source)
	}
	return len(files), total, nil
}

// OutputPath maps a canonical locator to a relative path under the
// output directory. Scheme separators and revision colons become path
// separators so every provider's locators stay disjoint.
func OutputPath(locator string) string {
	p := strings.ReplaceAll(locator, "://", "/")
	p = strings.ReplaceAll(p, ":", "/")
	return strings.TrimLeft(p, "/")
}
