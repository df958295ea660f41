package init

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// configFileName is the starter config written into the current directory.
const configFileName = ".solgather.yaml"

// envFileName is the optional secrets template.
const envFileName = ".env"

const configTemplate = `# solgather configuration.
# Command-line flags override these values; SOLGATHER_* environment
# variables override both.

# Base directory or URL that source references resolve against.
# Empty means the current directory.
base: ""

# Root files or glob patterns gathered when none are given on the
# command line, e.g. ["src/**/*.sol"].
sources: []

# Import remappings, one prefix=target entry per line:
# remappings:
#   - "@openzeppelin/=node_modules/@openzeppelin/"
remappings: []

# Default output directory for gathered sources.
output: ""

github:
  # Token sent to raw.githubusercontent.com; leave empty for anonymous
  # access, or set SOLGATHER_GITHUB_TOKEN instead.
  token: ""
  # Ref used for GitHub references that do not pin one. Empty means
  # master.
  ref: ""

objectstore:
  # S3-compatible endpoint for s3://bucket/key references, e.g.
  # play.min.io. Empty disables the backend.
  endpoint: ""
  access_key: ""
  secret_key: ""
  use_ssl: true

cache:
  # Resolved references and fetched sources kept in memory per run.
  size: 1024

watch:
  port: 4900
  debounce_ms: 300
`

const envTemplate = `# Secrets for solgather. Loaded at startup and read as SOLGATHER_*
# environment variables, overriding .solgather.yaml entries.
# SOLGATHER_GITHUB_TOKEN=
# SOLGATHER_OBJECTSTORE_ACCESS_KEY=
# SOLGATHER_OBJECTSTORE_SECRET_KEY=
`

type initOptions struct {
	env   bool
	force bool
	quiet bool
}

// Cmd represents the init command.
var Cmd = NewCommand()

// NewCommand returns a new init command instance.
func NewCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config in the current directory",
		Long: `Write a starter .solgather.yaml in the current directory.

The generated file lists every setting with its default so the gather,
canonize, graph, why, and watch commands can be configured in one place.

With --env: Also creates a .env template for secrets such as the GitHub
token, kept out of the config file.

With --force: Overwrites existing files instead of refusing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.env, "env", false, "Also create a .env secrets template")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite existing files instead of refusing")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	if err := writeStarterFile(cmd, opts, configFileName, configTemplate); err != nil {
		return err
	}

	if opts.env {
		if err := writeStarterFile(cmd, opts, envFileName, envTemplate); err != nil {
			return err
		}
	}

	if !opts.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "")
		fmt.Fprintln(cmd.OutOrStdout(), "Next steps:")
		fmt.Fprintf(cmd.OutOrStdout(), "  - Set sources in %s\n", configFileName)
		fmt.Fprintln(cmd.OutOrStdout(), "  - Run 'solgather gather' to collect the import graph")
	}

	return nil
}

// writeStarterFile creates filename with the given content. Existing
// files are left alone unless --force is set; appending would corrupt
// YAML, so there is no merge path.
func writeStarterFile(cmd *cobra.Command, opts *initOptions, filename, content string) error {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	_, err = os.Stat(filename)
	fileExists := !os.IsNotExist(err)

	if fileExists && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", absPath)
	}

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if !opts.quiet {
		if fileExists {
			fmt.Fprintf(cmd.OutOrStdout(), "Overwrote %s\n", absPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", absPath)
		}
	}

	return nil
}
