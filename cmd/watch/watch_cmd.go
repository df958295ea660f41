package watch

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/solgather/solgather/cmd/gather"
	"github.com/solgather/solgather/internal/config"
)

type watchOptions struct {
	base       string
	remappings []string
	port       int
	debounce   int
	exts       string
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		port:     config.DefaultWatchPort,
		debounce: config.DefaultWatchDebounceMS,
		exts:     ".sol",
	}

	cmd := &cobra.Command{
		Use:   "watch [sources...]",
		Short: "Watch sources and serve a live import graph",
		Long: `Watch the base directory for source changes, regather the import graph on
every change, and serve a live-updating visualization at localhost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.base, "base", "b", "", "Base directory for relative references (default: current directory)")
	cmd.Flags().StringArrayVarP(&opts.remappings, "remap", "m", nil, "Import remapping of the form prefix=target (repeatable)")
	cmd.Flags().IntVarP(&opts.port, "port", "P", opts.port, "HTTP server port")
	cmd.Flags().IntVar(&opts.debounce, "debounce", opts.debounce, "Rebuild delay after a change, in milliseconds")
	cmd.Flags().StringVar(&opts.exts, "ext", opts.exts, "Rebuild on changes to files with these extensions (comma-separated)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, args []string) error {
	setup, err := gather.NewSetup(cmd, gather.SetupParams{
		Base:       opts.base,
		Remappings: opts.remappings,
		Patterns:   args,
	})
	if err != nil {
		return err
	}
	if strings.Contains(setup.BaseDir, "://") {
		return fmt.Errorf("watch requires a local base directory, got %s", setup.BaseDir)
	}

	port := opts.port
	if !cmd.Flags().Changed("port") {
		port = setup.Config.Watch.Port
	}
	debounceMS := opts.debounce
	if !cmd.Flags().Changed("debounce") {
		debounceMS = setup.Config.Watch.DebounceMS
	}
	exts := parseExtensions(opts.exts)
	if len(exts) == 0 {
		exts = map[string]bool{".sol": true}
	}

	b := newBroker()
	srv := newServer(b, port)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}

	go srv.Serve(ln)

	rebuild := func() (string, error) {
		return buildGraphDOT(ctx, cmd, opts, args)
	}

	dot, err := rebuild()
	if err != nil {
		b.publish(emptyGraphDOT)
		fmt.Fprintf(cmd.OutOrStdout(), "Initial build failed: %v\n", err)
		fmt.Fprintf(cmd.OutOrStdout(), "Waiting for file changes...\n")
	} else {
		b.publish(dot)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", setup.BaseDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at http://localhost:%d\n", port)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	err = watchAndRebuild(ctx, setup.BaseDir, exts, time.Duration(debounceMS)*time.Millisecond, rebuild, b, setup.Logger)

	srv.Close()
	return err
}

// parseExtensions normalizes a comma-separated extension list. Entries
// are lowercased and get a leading dot when missing.
func parseExtensions(raw string) map[string]bool {
	exts := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		ext := strings.TrimSpace(part)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	return exts
}
