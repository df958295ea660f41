package gather

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/solgather/solgather/internal/config"
)

func configWithBase(base string) *config.Config {
	cfg := &config.Config{Base: base}
	cfg.Cache.Size = config.DefaultCacheSize
	return cfg
}

func TestExpandRoots_GlobMatchesAreDotPrefixedAndSorted(t *testing.T) {
	baseDir := t.TempDir()
	writeFile(t, baseDir, "contracts/b.sol", "contract B {}\n")
	writeFile(t, baseDir, "contracts/a.sol", "contract A {}\n")

	roots, err := ExpandRoots(baseDir, []string{"contracts/*.sol"})
	if err != nil {
		t.Fatalf("ExpandRoots() error = %v", err)
	}

	expected := []string{"./contracts/a.sol", "./contracts/b.sol"}
	if !reflect.DeepEqual(roots, expected) {
		t.Fatalf("ExpandRoots() = %v, expected %v", roots, expected)
	}
}

func TestExpandRoots_EmptyGlobIsAnError(t *testing.T) {
	baseDir := t.TempDir()

	_, err := ExpandRoots(baseDir, []string{"contracts/*.sol"})
	if err == nil {
		t.Fatal("expected an error for a glob with no matches")
	}
}

func TestExpandRoots_ExistingLiteralGetsDotPrefix(t *testing.T) {
	baseDir := t.TempDir()
	writeFile(t, baseDir, "main.sol", "contract Main {}\n")

	roots, err := ExpandRoots(baseDir, []string{"main.sol"})
	if err != nil {
		t.Fatalf("ExpandRoots() error = %v", err)
	}

	expected := []string{"./main.sol"}
	if !reflect.DeepEqual(roots, expected) {
		t.Fatalf("ExpandRoots() = %v, expected %v", roots, expected)
	}
}

func TestExpandRoots_RemoteLiteralsPassThrough(t *testing.T) {
	baseDir := t.TempDir()

	roots, err := ExpandRoots(baseDir, []string{
		"github.com/oz/contracts/token.sol",
		"https://swarm.example/safe.sol",
		"s3://audited/lib/vault.sol",
	})
	if err != nil {
		t.Fatalf("ExpandRoots() error = %v", err)
	}

	expected := []string{
		"github.com/oz/contracts/token.sol",
		"https://swarm.example/safe.sol",
		"s3://audited/lib/vault.sol",
	}
	if !reflect.DeepEqual(roots, expected) {
		t.Fatalf("ExpandRoots() = %v, expected %v", roots, expected)
	}
}

func TestExpandRoots_RemoteBaseSkipsExpansion(t *testing.T) {
	roots, err := ExpandRoots("https://swarm.example/contracts", []string{"./main.sol"})
	if err != nil {
		t.Fatalf("ExpandRoots() error = %v", err)
	}

	expected := []string{"./main.sol"}
	if !reflect.DeepEqual(roots, expected) {
		t.Fatalf("ExpandRoots() = %v, expected %v", roots, expected)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		locator  string
		expected string
	}{
		{
			name:     "absolute path",
			locator:  "/project/contracts/main.sol",
			expected: "project/contracts/main.sol",
		},
		{
			name:     "https locator",
			locator:  "https://swarm.example/safe.sol",
			expected: "https/swarm.example/safe.sol",
		},
		{
			name:     "object store locator",
			locator:  "s3://audited/lib/vault.sol",
			expected: "s3/audited/lib/vault.sol",
		},
		{
			name:     "git revision locator",
			locator:  "HEAD:contracts/token.sol",
			expected: "HEAD/contracts/token.sol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.locator); got != tt.expected {
				t.Fatalf("OutputPath(%q) = %q, expected %q", tt.locator, got, tt.expected)
			}
		})
	}
}

func TestResolveBaseDir_FlagBeatsConfig(t *testing.T) {
	flagBase := t.TempDir()

	cfg := configWithBase(t.TempDir())
	base, err := resolveBaseDir(flagBase, cfg)
	if err != nil {
		t.Fatalf("resolveBaseDir() error = %v", err)
	}
	if base != flagBase {
		t.Fatalf("resolveBaseDir() = %q, expected %q", base, flagBase)
	}
}

func TestResolveBaseDir_RemoteBasePassesThrough(t *testing.T) {
	base, err := resolveBaseDir("https://swarm.example/contracts", configWithBase(""))
	if err != nil {
		t.Fatalf("resolveBaseDir() error = %v", err)
	}
	if base != "https://swarm.example/contracts" {
		t.Fatalf("resolveBaseDir() = %q", base)
	}
}

func TestResolveBaseDir_DefaultsToWorkingDirectory(t *testing.T) {
	base, err := resolveBaseDir("", configWithBase(""))
	if err != nil {
		t.Fatalf("resolveBaseDir() error = %v", err)
	}
	if !filepath.IsAbs(base) {
		t.Fatalf("expected an absolute default base, got %q", base)
	}
}
