package init

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/solgather/solgather/internal/config"
)

// chdir moves the test into dir and restores the original working
// directory on cleanup. Not parallel safe: os.Chdir is process-wide.
func chdir(t *testing.T, dir string) {
	t.Helper()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("os.Getwd() error = %v", err)
	}
	t.Cleanup(func() {
		if chdirErr := os.Chdir(originalDir); chdirErr != nil {
			t.Fatalf("os.Chdir() cleanup error = %v", chdirErr)
		}
	})

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("os.Chdir() error = %v", err)
	}
}

func TestInitCommand_WritesLoadableStarterConfig(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewCommand()
	cmd.SetArgs([]string{})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("expected creation notice, got:\n%s", stdout.String())
	}

	cfg, err := config.LoadConfig(configFileName)
	if err != nil {
		t.Fatalf("config.LoadConfig() error = %v", err)
	}
	if cfg.Cache.Size != config.DefaultCacheSize {
		t.Errorf("cache size = %d, want %d", cfg.Cache.Size, config.DefaultCacheSize)
	}
	if cfg.Watch.Port != config.DefaultWatchPort {
		t.Errorf("watch port = %d, want %d", cfg.Watch.Port, config.DefaultWatchPort)
	}
	if cfg.Watch.DebounceMS != config.DefaultWatchDebounceMS {
		t.Errorf("watch debounce = %d, want %d", cfg.Watch.DebounceMS, config.DefaultWatchDebounceMS)
	}
	if !cfg.ObjectStore.UseSSL {
		t.Error("expected use_ssl default to survive the round trip")
	}
}

func TestInitCommand_RefusesExistingConfig(t *testing.T) {
	chdir(t, t.TempDir())

	existing := "base: \"contracts\"\n"
	if err := os.WriteFile(configFileName, []byte(existing), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	cmd := NewCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an existing config file")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("unexpected error: %v", err)
	}

	got, readErr := os.ReadFile(configFileName)
	if readErr != nil {
		t.Fatalf("os.ReadFile() error = %v", readErr)
	}
	if string(got) != existing {
		t.Errorf("existing config was modified:\n%s", got)
	}
}

func TestInitCommand_ForceOverwrites(t *testing.T) {
	chdir(t, t.TempDir())

	if err := os.WriteFile(configFileName, []byte("base: \"old\"\n"), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	cmd := NewCommand()
	cmd.SetArgs([]string{"--force"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "Overwrote") {
		t.Errorf("expected overwrite notice, got:\n%s", stdout.String())
	}

	got, err := os.ReadFile(configFileName)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	if strings.Contains(string(got), "old") {
		t.Errorf("expected starter template to replace old config, got:\n%s", got)
	}
}

func TestInitCommand_WritesEnvTemplate(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewCommand()
	cmd.SetArgs([]string{"--env"})
	cmd.SetOut(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	got, err := os.ReadFile(envFileName)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	if !strings.Contains(string(got), "SOLGATHER_GITHUB_TOKEN") {
		t.Errorf("expected token placeholder in .env, got:\n%s", got)
	}
}

func TestInitCommand_QuietSuppressesOutput(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := NewCommand()
	cmd.SetArgs([]string{"--quiet"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if stdout.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", stdout.String())
	}
}
