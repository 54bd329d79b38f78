package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the CLI in a clean directory with color and the TUI off.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeIn(t, t.TempDir(), args...)
}

func executeIn(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--color", "off", "--ui", "off"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDemoWithoutArguments(t *testing.T) {
	out, _, err := execute(t)
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	for _, want := range []string{
		"PUMPING LEMMA PROOF",
		"INTERSECTION DEMONSTRATION",
		"  'aaaaabbbbbccccc' → true",
		"CONCLUSION:",
		"SUMMARY",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "→ false") {
		t.Fatalf("a member failed verification:\n%s", out)
	}
}

func TestDemoQuietSkipsProof(t *testing.T) {
	out, _, err := execute(t, "--quiet")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	if strings.Contains(out, "PUMPING LEMMA PROOF") {
		t.Fatal("--quiet should omit the proof")
	}
	if !strings.Contains(out, "CONCLUSION:") {
		t.Fatalf("missing conclusion:\n%s", out)
	}
}

func TestDemoTimingsAndTrace(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "run.ndjson")
	_, stderr, err := execute(t, "--timings", "--trace", tracePath, "--trace-level", "detail")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	if !strings.Contains(stderr, "timings:") || !strings.Contains(stderr, "intersect") {
		t.Fatalf("missing timings in stderr:\n%s", stderr)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 4 {
		t.Fatalf("expected several trace events, got %d", len(lines))
	}
	for _, line := range lines {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("trace line is not JSON: %q: %v", line, err)
		}
	}
	if !strings.Contains(string(data), "generate:") {
		t.Fatal("detail trace should include grammar spans")
	}
}

func TestGenerateBuiltinGrammars(t *testing.T) {
	tests := []struct {
		args []string
		want []string
		not  []string
	}{
		{
			args: []string{"generate", "--grammar", "l1", "--max-length", "4"},
			want: []string{"  ''\n", "  'ab'\n", "  'abc'\n", "  'c'\n"},
			not:  []string{"'aabb'"},
		},
		{
			args: []string{"generate", "--grammar", "l2", "--max-length", "3"},
			want: []string{"  'a'\n", "  'bc'\n", "  'abc'\n"},
			not:  []string{"'ab'"},
		},
		{
			args: []string{"generate", "--grammar", "l1", "--max-length", "4", "--max-depth", "0"},
			not:  []string{"'"},
		},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Fatalf("missing %q in:\n%s", w, out)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(out, n) {
					t.Fatalf("unexpected %q in:\n%s", n, out)
				}
			}
		})
	}
}

func TestGenerateFromFileWithCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balanced.toml")
	data := "name = \"balanced\"\n\n[[rule]]\nhead = \"S\"\nproductions = [\"aSb\", \"\"]\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write grammar: %v", err)
	}
	out, stderr, err := execute(t, "--cache", "generate", "--grammar", path, "--max-length", "6")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, w := range []string{"  ''\n", "  'ab'\n", "  'aabb'\n"} {
		if !strings.Contains(out, w) {
			t.Fatalf("missing %q in:\n%s", w, out)
		}
	}
	if !strings.Contains(stderr, "3 strings") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestGenerateRejectsMissingFile(t *testing.T) {
	if _, _, err := execute(t, "generate", "--grammar", "no-such-grammar.toml"); err == nil {
		t.Fatal("expected error for a missing grammar file")
	}
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "check", "", "abc", "aabbc")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	want := "  ''      → true\n  'abc'   → true\n  'aabbc' → false\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	if _, _, err := execute(t, "check", "--strict", "aabbc"); err == nil {
		t.Fatal("--strict should fail on a rejected string")
	}
	if _, _, err := execute(t, "check"); err == nil {
		t.Fatal("check without arguments should fail")
	}
}

func TestIntersectSequential(t *testing.T) {
	out, _, err := execute(t, "intersect", "--jobs", "1", "--examples", "-1")
	if err != nil {
		t.Fatalf("intersect failed: %v", err)
	}
	for _, w := range []string{"  'aabbcc'\n", "  'aaaabbbbcccc' → true"} {
		if !strings.Contains(out, w) {
			t.Fatalf("missing %q in:\n%s", w, out)
		}
	}
	if strings.Contains(out, "aaaaabbbbbccccc") {
		t.Fatal("n = 5 is out of reach of the grammars and examples are disabled")
	}
	if strings.Contains(out, "→ false") {
		t.Fatalf("a member failed verification:\n%s", out)
	}
}

func TestProof(t *testing.T) {
	out, _, err := execute(t, "proof")
	if err != nil {
		t.Fatalf("proof failed: %v", err)
	}
	if !strings.Contains(out, "Case 5") {
		t.Fatalf("proof is missing the case analysis:\n%s", out)
	}
}

func TestGrammarCommand(t *testing.T) {
	out, _, err := execute(t, "grammar")
	if err != nil {
		t.Fatalf("grammar failed: %v", err)
	}
	for _, w := range []string{"Grammar for L1:", "  S → AB", "Grammar for L2:", "  B → bBc | bc | ε"} {
		if !strings.Contains(out, w) {
			t.Fatalf("missing %q in:\n%s", w, out)
		}
	}
	if strings.Contains(out, "Grammar diagnostics:") {
		t.Fatalf("built-in grammars should lint clean:\n%s", out)
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[limits]\nsample_length = 2\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, _, err := execute(t, "--config", path, "generate", "--grammar", "l1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "length ≤ 2") || strings.Contains(out, "'abc'") {
		t.Fatalf("config limits not applied:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload.Tool != "cflclosure" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}

	if _, _, err := execute(t, "version", "--format", "xml"); err == nil {
		t.Fatal("unsupported format should fail")
	}
}

func TestBadPersistentFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--color", "purple", "proof"},
		{"--trace-level", "loud", "proof"},
		{"--trace", "-", "--trace-format", "chrome", "proof"},
		{"--ui", "sometimes"},
	} {
		if _, _, err := execute(t, args...); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestCacheDirAndClear(t *testing.T) {
	cacheHome := t.TempDir()
	run := func(args ...string) string {
		t.Helper()
		t.Setenv("XDG_CACHE_HOME", cacheHome)
		root := newRootCmd()
		var stdout bytes.Buffer
		root.SetOut(&stdout)
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(append([]string{"--color", "off", "--ui", "off"}, args...))
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return stdout.String()
	}
	t.Chdir(t.TempDir())

	run("--cache", "generate", "--grammar", "l2", "--max-length", "4")
	sets := filepath.Join(cacheHome, "cflclosure", "sets")
	entries, err := os.ReadDir(sets)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one cached set in %s, got %d (%v)", sets, len(entries), err)
	}

	if got := strings.TrimSpace(run("cache", "dir")); got != filepath.Join(cacheHome, "cflclosure") {
		t.Fatalf("cache dir = %q", got)
	}
	run("cache", "clear")
	if _, err := os.Stat(sets); !os.IsNotExist(err) {
		t.Fatalf("sets dir still present: %v", err)
	}
}

func TestProfilesWritten(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	if _, _, err := execute(t, "--cpu-profile", cpu, "--mem-profile", mem, "intersect"); err != nil {
		t.Fatalf("intersect failed: %v", err)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("profile missing: %v", err)
		}
	}
}

func TestTraceFormatOverridesExtension(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "run.log")
	if _, _, err := execute(t, "--trace", tracePath, "--trace-format", "ndjson", "--quiet"); err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	first, _, _ := strings.Cut(string(data), "\n")
	var ev map[string]any
	if err := json.Unmarshal([]byte(first), &ev); err != nil {
		t.Fatalf("first trace line is not JSON: %q: %v", first, err)
	}
}

func TestDemoIgnoresBrokenDiscoveredConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "cflclosure.toml"), []byte("[limits]\nmax_len = 3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	nested := filepath.Join(root, "work")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	out, stderr, err := executeIn(t, nested, "--quiet")
	if err != nil {
		t.Fatalf("demo must not fail on a discovered config: %v", err)
	}
	if !strings.Contains(stderr, "warning: ignoring config") || !strings.Contains(stderr, "unknown key") {
		t.Fatalf("stderr = %q", stderr)
	}
	if !strings.Contains(out, "'aaaaabbbbbccccc' → true") {
		t.Fatalf("defaults not used:\n%s", out)
	}
}

func TestExplicitBrokenConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[limits]\nmax_len = 3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := execute(t, "--config", path, "--quiet"); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("err = %v, want unknown key", err)
	}
}

func TestGrammarCommandFailsOnLintErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nostart.toml")
	data := "name = \"nostart\"\n\n[[rule]]\nhead = \"A\"\nproductions = [\"a\"]\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write grammar: %v", err)
	}
	out, _, err := execute(t, "grammar", path)
	if err == nil || !strings.Contains(err.Error(), "lint errors in nostart") {
		t.Fatalf("err = %v, want lint errors", err)
	}
	if !strings.Contains(out, "GRM1001") {
		t.Fatalf("diagnostics should still be printed:\n%s", out)
	}
}
