package gather

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolateEnv keeps a developer's real ~/.solgather.yaml out of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("os.MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	return path
}

func TestGatherCommand_ListsTransitiveImports(t *testing.T) {
	isolateEnv(t)
	baseDir := t.TempDir()
	writeFile(t, baseDir, "main.sol", "import \"./lib/math.sol\";\ncontract Main {}\n")
	writeFile(t, baseDir, "lib/math.sol", "library Math {}\n")

	cmd := NewCommand()
	cmd.SetArgs([]string{"-b", baseDir, "./main.sol"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, filepath.Join(baseDir, "main.sol")) {
		t.Fatalf("expected main.sol locator in output, got:\n%s", output)
	}
	if !strings.Contains(output, filepath.Join(baseDir, "lib", "math.sol")) {
		t.Fatalf("expected math.sol locator in output, got:\n%s", output)
	}
	if !strings.Contains(output, "2 sources") {
		t.Fatalf("expected source count in output, got:\n%s", output)
	}
}

func TestGatherCommand_ExpandsGlobPatterns(t *testing.T) {
	isolateEnv(t)
	baseDir := t.TempDir()
	writeFile(t, baseDir, "contracts/token.sol", "contract Token {}\n")
	writeFile(t, baseDir, "contracts/deep/vault.sol", "contract Vault {}\n")

	cmd := NewCommand()
	cmd.SetArgs([]string{"-b", baseDir, "contracts/**/*.sol"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "token.sol") || !strings.Contains(output, "vault.sol") {
		t.Fatalf("expected both matches in output, got:\n%s", output)
	}
}

func TestGatherCommand_JSONLines(t *testing.T) {
	isolateEnv(t)
	baseDir := t.TempDir()
	writeFile(t, baseDir, "main.sol", "contract Main {}\n")

	cmd := NewCommand()
	cmd.SetArgs([]string{"-b", baseDir, "--json", "./main.sol"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	var entry struct {
		URL      string `json:"url"`
		Source   string `json:"source"`
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &entry); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, output:\n%s", err, stdout.String())
	}
	if entry.URL != filepath.Join(baseDir, "main.sol") {
		t.Fatalf("unexpected url %q", entry.URL)
	}
	if entry.Provider != "fs" {
		t.Fatalf("unexpected provider %q", entry.Provider)
	}
	if entry.Source != "contract Main {}\n" {
		t.Fatalf("unexpected source %q", entry.Source)
	}
}

func TestGatherCommand_WritesOutputDirectory(t *testing.T) {
	isolateEnv(t)
	baseDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, baseDir, "main.sol", "import \"./dep.sol\";\n")
	writeFile(t, baseDir, "dep.sol", "contract Dep {}\n")

	cmd := NewCommand()
	cmd.SetArgs([]string{"-b", baseDir, "-o", outDir, "./main.sol"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "Wrote 2 sources") {
		t.Fatalf("expected write summary, got:\n%s", stdout.String())
	}

	written := filepath.Join(outDir, filepath.FromSlash(OutputPath(filepath.Join(baseDir, "dep.sol"))))
	contents, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	if string(contents) != "contract Dep {}\n" {
		t.Fatalf("unexpected contents %q", contents)
	}
}

func TestGatherCommand_AppliesRemapFlag(t *testing.T) {
	isolateEnv(t)
	baseDir := t.TempDir()
	writeFile(t, baseDir, "main.sol", "import \"tokens/erc20.sol\";\n")
	writeFile(t, baseDir, "vendor/tokens/erc20.sol", "contract ERC20 {}\n")

	cmd := NewCommand()
	cmd.SetArgs([]string{"-b", baseDir, "-m", "tokens/=./vendor/tokens/", "./main.sol"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), filepath.Join(baseDir, "vendor", "tokens", "erc20.sol")) {
		t.Fatalf("expected remapped locator in output, got:\n%s", stdout.String())
	}
}

func TestGatherCommand_FailsWithoutSources(t *testing.T) {
	isolateEnv(t)

	cmd := NewCommand()
	cmd.SetArgs([]string{"-b", t.TempDir()})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when no sources are given")
	}
}
