package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ppmedit/pkg/errors"
	"github.com/matzehuels/ppmedit/pkg/observability"
)

const sample = "P3\n1 2\n255\n255 0 0\n0 200 10\n"

// newTestCLI returns a CLI wired to buffers and isolated XDG directories.
func newTestCLI(t *testing.T, stdin string) *CLI {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("PPMEDIT_CONFIG", "")
	t.Cleanup(observability.Reset)

	var errOut bytes.Buffer
	c := New(&errOut, LogInfo)
	c.In = strings.NewReader(stdin)
	c.Out = &bytes.Buffer{}
	c.isTerminal = func() bool { return false }
	return c
}

func stdout(c *CLI) string { return c.Out.(*bytes.Buffer).String() }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestEditTransforms(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"-I", "P3\n1 2\n255\n0 255 255\n255 55 245\n"},
		{"-H", "P3\n1 2\n255\n255 0 0\n0 255 0\n"},
		{"-G", "P3\n1 2\n255\n85 85 85\n70 70 70\n"},
		{"--greyscale", "P3\n1 2\n255\n85 85 85\n70 70 70\n"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			c := newTestCLI(t, "")
			dir := t.TempDir()
			in := writeFile(t, dir, "in.ppm", sample)
			out := filepath.Join(dir, "out.ppm")

			if err := c.Execute(context.Background(), []string{tt.flag, in, out}); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got := readFile(t, out); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != 0o644 {
				t.Errorf("output mode = %v, want 0644", info.Mode().Perm())
			}
		})
	}
}

func TestEditUsageErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.ppm", sample)
	out := filepath.Join(dir, "out.ppm")

	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"no transform flag", []string{in, out}},
		{"two transform flags", []string{"-I", "-G", in, out}},
		{"missing outfile", []string{"-I", in}},
		{"extra argument", []string{"-I", in, out, "more.ppm"}},
		{"unknown flag", []string{"-X", in, out}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, "")
			err := c.Execute(context.Background(), tt.args)
			if !errors.Is(err, errors.ErrCodeInvalidFlag) {
				t.Fatalf("Execute() error = %v, want %v", err, errors.ErrCodeInvalidFlag)
			}
			if !strings.HasSuffix(errors.UserMessage(err), UsageLine) {
				t.Errorf("message %q should end with the usage line", errors.UserMessage(err))
			}
			if ExitCode(err) != ExitFailure {
				t.Errorf("ExitCode() = %d, want %d", ExitCode(err), ExitFailure)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Error("usage error should not create the output")
			}
		})
	}
}

func TestEditPathErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.ppm", sample)
	txt := writeFile(t, dir, "in.txt", sample)
	missing := filepath.Join(dir, "missing.ppm")

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"input extension", []string{"-I", txt, filepath.Join(dir, "o.ppm")}, "Invalid input file extension"},
		{"output extension", []string{"-I", in, filepath.Join(dir, "o.png")}, "Invalid output file extension"},
		{"missing input", []string{"-I", missing, filepath.Join(dir, "o.ppm")}, "Unable to access input file: " + missing},
		{"directory input", []string{"-I", dir + "/sub.ppm", filepath.Join(dir, "o.ppm")}, "Unable to access input file: " + dir + "/sub.ppm"},
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.ppm"), 0o755); err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, "")
			err := c.Execute(context.Background(), tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestEditMalformedInput(t *testing.T) {
	c := newTestCLI(t, "")
	dir := t.TempDir()
	in := writeFile(t, dir, "in.ppm", "P6 1 1 255 0 0 0")
	out := filepath.Join(dir, "out.ppm")

	err := c.Execute(context.Background(), []string{"-G", in, out})
	if !errors.Is(err, errors.ErrCodeMalformed) {
		t.Fatalf("Execute() error = %v, want %v", err, errors.ErrCodeMalformed)
	}
	want := `Invalid input file: expected magic "P3", got "P6"`
	if got := errors.UserMessage(err); got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the input", len(entries))
	}
}

func TestEditOverwritePrompt(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantWrite bool
		wantAsk   bool
	}{
		{"yes", "y\n", nil, true, true},
		{"Yes with spaces", "  Yes please\n", nil, true, true},
		{"no", "n\n", nil, false, true},
		{"anything else", "sure\n", nil, false, true},
		{"no answer", "", nil, false, true},
		{"flag skips prompt", "", []string{"--yes"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, tt.stdin)
			dir := t.TempDir()
			in := writeFile(t, dir, "in.ppm", sample)
			out := writeFile(t, dir, "out.ppm", "old")

			args := append(append([]string{"-I"}, tt.args...), in, out)
			if err := c.Execute(context.Background(), args); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			asked := strings.Contains(stdout(c), out+" exists - OK to overwrite(y,n)?")
			if asked != tt.wantAsk {
				t.Errorf("prompted = %v, want %v; stdout %q", asked, tt.wantAsk, stdout(c))
			}
			written := readFile(t, out) != "old"
			if written != tt.wantWrite {
				t.Errorf("overwritten = %v, want %v", written, tt.wantWrite)
			}
		})
	}
}

func TestEditInPlace(t *testing.T) {
	c := newTestCLI(t, "y\n")
	dir := t.TempDir()
	path := writeFile(t, dir, "img.ppm", sample)

	if err := c.Execute(context.Background(), []string{"-I", path, path}); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "P3\n1 2\n255\n0 255 255\n255 55 245\n" {
		t.Errorf("in-place output = %q", got)
	}
}

func TestConfigAssumeYes(t *testing.T) {
	c := newTestCLI(t, "")
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "assume_yes = true\n")
	in := writeFile(t, dir, "in.ppm", sample)
	out := writeFile(t, dir, "out.ppm", "old")

	if err := c.Execute(context.Background(), []string{"--config", cfg, "-H", in, out}); err != nil {
		t.Fatal(err)
	}
	if readFile(t, out) == "old" {
		t.Error("assume_yes in config should overwrite without asking")
	}
	if strings.Contains(stdout(c), "overwrite") {
		t.Error("assume_yes should skip the prompt")
	}
}

func TestConfigErrorsAreReported(t *testing.T) {
	c := newTestCLI(t, "")
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "[cache]\nbackend = \"floppy\"\n")
	in := writeFile(t, dir, "in.ppm", sample)

	err := c.Execute(context.Background(), []string{"--config", cfg, "-I", in, filepath.Join(dir, "o.ppm")})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Execute() error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestEditUsesCache(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.ppm", sample)

	c := newTestCLI(t, "")
	if err := c.Execute(context.Background(), []string{"-I", in, filepath.Join(dir, "a.ppm")}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout(c), iconFresh) {
		t.Errorf("first run should be fresh: %q", stdout(c))
	}

	c2 := New(&bytes.Buffer{}, LogInfo)
	c2.In, c2.Out = strings.NewReader(""), &bytes.Buffer{}
	if err := c2.Execute(context.Background(), []string{"-I", in, filepath.Join(dir, "b.ppm")}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout(c2), iconCached) {
		t.Errorf("second run should hit the cache: %q", stdout(c2))
	}
	if readFile(t, filepath.Join(dir, "a.ppm")) != readFile(t, filepath.Join(dir, "b.ppm")) {
		t.Error("cached output differs from fresh output")
	}
}

func TestEditNoCache(t *testing.T) {
	c := newTestCLI(t, "")
	dir := t.TempDir()
	in := writeFile(t, dir, "in.ppm", sample)

	if err := c.Execute(context.Background(), []string{"--no-cache", "-I", in, filepath.Join(dir, "o.ppm")}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)); !os.IsNotExist(err) {
		t.Error("--no-cache should not create the cache directory")
	}
}

func TestEditCanceled(t *testing.T) {
	c := newTestCLI(t, "")
	dir := t.TempDir()
	in := writeFile(t, dir, "in.ppm", sample)
	out := filepath.Join(dir, "o.ppm")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Execute(ctx, []string{"-I", in, out})
	if ExitCode(err) != ExitCanceled {
		t.Fatalf("ExitCode(%v) = %d, want %d", err, ExitCode(err), ExitCanceled)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("canceled run should not create the output")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ppm", "P3\n4 2\n255\n")
	bad := writeFile(t, dir, "bad.ppm", "P3 4 2 100")
	short := writeFile(t, dir, "short.ppm", "P3 1 1 255 1 2")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		wantOut string
	}{
		{"valid header", []string{"check", good}, false, "4×2"},
		{"invalid header", []string{"check", bad}, true, "maximum color value must be 255, got 100"},
		{"header only ignores body", []string{"check", short}, false, "1×1"},
		{"full checks body", []string{"check", "--full", short}, true, "missing channel value"},
		{"mixed", []string{"check", good, bad}, true, "good.ppm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, "")
			err := c.Execute(context.Background(), tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(stdout(c), tt.wantOut) {
				t.Errorf("stdout = %q, want it to contain %q", stdout(c), tt.wantOut)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	c := newTestCLI(t, "")
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)

	if err := c.Execute(context.Background(), []string{"cache", "path"}); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(stdout(c)); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	dir := t.TempDir()
	in := writeFile(t, dir, "in.ppm", sample)
	if err := c.Execute(context.Background(), []string{"-I", in, filepath.Join(dir, "o.ppm")}); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(want)
	if len(entries) == 0 {
		t.Fatal("transform should populate the cache")
	}

	c = newTestCLI(t, "")
	t.Setenv("XDG_CACHE_HOME", filepath.Dir(want))
	if err := c.Execute(context.Background(), []string{"cache", "clear"}); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(want); len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCacheLocationRedis(t *testing.T) {
	c := newTestCLI(t, "")
	c.Config.Cache.Backend = "redis"
	c.Config.Cache.RedisAddr = "cache:6379"
	c.Config.Cache.RedisDB = 3
	if got := c.cacheLocation(); got != "redis://cache:6379/3" {
		t.Errorf("cacheLocation() = %q", got)
	}
}

func TestVersionFlag(t *testing.T) {
	c := newTestCLI(t, "")
	if err := c.Execute(context.Background(), []string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout(c), "version") {
		t.Errorf("--version output = %q", stdout(c))
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c := newTestCLI(t, "")
			if err := c.Execute(context.Background(), []string{"completion", shell}); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(stdout(c), appName) {
				t.Error("completion script should mention the program name")
			}
		})
	}

	c := newTestCLI(t, "")
	if err := c.Execute(context.Background(), []string{"completion", "tcsh"}); !errors.Is(err, errors.ErrCodeInvalidFlag) {
		t.Errorf("unsupported shell error = %v", err)
	}
}

func TestCompletePPMFiles(t *testing.T) {
	tests := []struct {
		name          string
		max           int
		args          []string
		wantDirective cobra.ShellCompDirective
		wantExt       bool
	}{
		{"first of two", 2, nil, cobra.ShellCompDirectiveFilterFileExt, true},
		{"second of two", 2, []string{"in.ppm"}, cobra.ShellCompDirectiveFilterFileExt, true},
		{"both given", 2, []string{"in.ppm", "out.ppm"}, cobra.ShellCompDirectiveNoFileComp, false},
		{"unlimited", 0, []string{"a.ppm", "b.ppm", "c.ppm"}, cobra.ShellCompDirectiveFilterFileExt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := completePPMFiles(tt.max)(nil, tt.args, "")
			if directive != tt.wantDirective {
				t.Errorf("directive = %v, want %v", directive, tt.wantDirective)
			}
			if tt.wantExt && (len(got) != 1 || got[0] != "ppm") {
				t.Errorf("completions = %v, want [ppm]", got)
			}
			if !tt.wantExt && len(got) != 0 {
				t.Errorf("completions = %v, want none", got)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"canceled", context.Canceled, ExitCanceled},
		{"wrapped cancel", errors.Wrap(errors.ErrCodeIO, context.Canceled, "read"), ExitCanceled},
		{"malformed", errors.New(errors.ErrCodeMalformed, "bad"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
