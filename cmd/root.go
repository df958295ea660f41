package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/solgather/solgather/cmd/canonize"
	"github.com/solgather/solgather/cmd/gather"
	graphcmd "github.com/solgather/solgather/cmd/graph"
	initcmd "github.com/solgather/solgather/cmd/init"
	"github.com/solgather/solgather/cmd/watch"
	"github.com/solgather/solgather/cmd/why"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "solgather",
	Short: "Gather, flatten, and visualize source import graphs",
	Long: `Solgather resolves the transitive imports of a source set across local
directories, package installs, git revisions, GitHub, plain URLs, and
object stores, and turns the result into flattened bundles, canonical
rewrites, and dependency graphs.

Use 'solgather --help' to see all available commands, or 'solgather <command> --help'
for detailed information about a specific command.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Register subcommands
	rootCmd.AddCommand(gather.Cmd)
	rootCmd.AddCommand(canonize.Cmd)
	rootCmd.AddCommand(graphcmd.Cmd)
	rootCmd.AddCommand(why.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(initcmd.Cmd)

	// Initialize annotations for version template
	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	// Update version field dynamically (in case it was set via ldflags)
	rootCmd.Version = version

	// Customize version template to show additional build info
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	// Persistent flags shared by every gathering command
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: .solgather.yaml in current directory or $HOME)")
}
