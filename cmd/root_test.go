package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	expected := map[string]bool{
		"gather":   false,
		"canonize": false,
		"graph":    false,
		"why":      false,
		"watch":    false,
		"init":     false,
	}

	for _, sub := range rootCmd.Commands() {
		if _, ok := expected[sub.Name()]; ok {
			expected[sub.Name()] = true
		}
	}

	for name, seen := range expected {
		if !seen {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCommandVersionTemplate(t *testing.T) {
	rootCmd.SetArgs([]string{"--version"})

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("rootCmd.Execute() error = %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "solgather version dev") {
		t.Fatalf("expected version line, got:\n%s", output)
	}
	if !strings.Contains(output, "Build date:") {
		t.Fatalf("expected build date line, got:\n%s", output)
	}
	if !strings.Contains(output, "Commit:") {
		t.Fatalf("expected commit line, got:\n%s", output)
	}
}
