package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trussmesh/pkg/cache"
)

const triangleJSON = `{"segments": [
  {"a": {"x": 0, "y": 0, "z": 0}, "b": {"x": 10, "y": 0, "z": 0}, "tag": "chord"},
  {"a": {"x": 10, "y": 0, "z": 0}, "b": {"x": 5, "y": 0, "z": 4}, "tag": "diagonal"},
  {"a": {"x": 5, "y": 0, "z": 4}, "b": {"x": 0, "y": 0, "z": 0}, "tag": "diagonal"}
]}`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"vtk", []string{"vtk"}},
		{"vtk, json ,dxf", []string{"vtk", "json", "dxf"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default", "", []string{"vtk"}, map[string]string{"vtk": "mesh.vtk"}},
		{"matching extension", "out/roof.vtk", []string{"vtk"}, map[string]string{"vtk": "out/roof.vtk"}},
		{"case insensitive", "ROOF.DXF", []string{"dxf"}, map[string]string{"dxf": "ROOF.DXF"}},
		{"other extension", "roof.vtk", []string{"svg"}, map[string]string{"svg": "roof.svg"}},
		{"no extension", "roof", []string{"json"}, map[string]string{"json": "roof.json"}},
		{"multiple", "roof.vtk", []string{"vtk", "json"}, map[string]string{"vtk": "roof.vtk", "json": "roof.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPaths(tt.output, tt.formats); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("artifactPaths(%q, %v) = %v, want %v", tt.output, tt.formats, got, tt.want)
			}
		})
	}
}

// testEnv isolates config and cache directories and returns a scratch dir
// holding the triangle fixture.
func testEnv(t *testing.T) (dir, input string) {
	t.Helper()
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir = t.TempDir()
	input = filepath.Join(dir, "truss.json")
	if err := os.WriteFile(input, []byte(triangleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, input
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := []string{"export", "annotate", "inspect", "render", "serve", "cache", "units", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestExportCommand(t *testing.T) {
	dir, input := testEnv(t)
	out := filepath.Join(dir, "roof.vtk")

	if err := run(t, "export", input, "-o", out, "-f", "vtk,json", "--title", "roof", "--no-cache"); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	vtk := string(data)
	for _, want := range []string{"roof -- tags:chord;diagonal", "POINTS 3 float", "CELLS 3 9", "SCALARS Tag int 1"} {
		if !strings.Contains(vtk, want) {
			t.Errorf("vtk output missing %q", want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "roof.json")); err != nil {
		t.Errorf("json artifact not written: %v", err)
	}
}

func TestExportCommand_Errors(t *testing.T) {
	dir, input := testEnv(t)
	out := filepath.Join(dir, "out.vtk")

	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"export", filepath.Join(dir, "nope.json"), "-o", out, "--no-cache"}},
		{"bad unit", []string{"export", input, "-o", out, "-u", "furlong", "--no-cache"}},
		{"bad format", []string{"export", input, "-o", out, "-f", "stl", "--no-cache"}},
		{"no args", []string{"export"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("failed exports should not write %s", out)
	}
}

func TestInspectCommand(t *testing.T) {
	dir, input := testEnv(t)
	out := filepath.Join(dir, "mesh.vtk")
	if err := run(t, "export", input, "-o", out, "--no-cache"); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "inspect", out); err != nil {
		t.Errorf("inspect vtk: %v", err)
	}
	if err := run(t, "inspect", input); err != nil {
		t.Errorf("inspect segments: %v", err)
	}
}

func TestAnnotateCommand(t *testing.T) {
	dir, input := testEnv(t)
	out := filepath.Join(dir, "labels.dxf")

	if err := run(t, "annotate", input, "-o", out, "--no-cache"); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "e:0 chord") {
		t.Error("annotated dxf missing edge label")
	}

	if err := run(t, "annotate", input, "-o", out, "--list", "--no-cache"); err != nil {
		t.Errorf("annotate --list: %v", err)
	}
}

func TestNewRunnerCachePrefix(t *testing.T) {
	testEnv(t)
	c := New(io.Discard, log.InfoLevel)
	c.config = &Config{Cache: CacheConfig{Prefix: "team-a:"}}

	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if key := r.Keyer.MeshKey("h", cache.MeshKeyOpts{}); !strings.HasPrefix(key, "team-a:mesh:") {
		t.Errorf("MeshKey = %q, want team-a: namespace", key)
	}
}

func TestCacheCommands(t *testing.T) {
	dir, input := testEnv(t)
	out := filepath.Join(dir, "mesh.vtk")

	if err := run(t, "export", input, "-o", out); err != nil {
		t.Fatal(err)
	}
	cdir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(cdir); len(entries) == 0 {
		t.Fatal("export with cache enabled left the cache empty")
	}

	if err := run(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if entries, _ := os.ReadDir(cdir); len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
	if err := run(t, "cache", "path"); err != nil {
		t.Errorf("cache path: %v", err)
	}
}

func TestUnitsCommand(t *testing.T) {
	testEnv(t)
	if err := run(t, "units"); err != nil {
		t.Errorf("units: %v", err)
	}
	if err := run(t, "units", "--source-unit", "mm"); err != nil {
		t.Errorf("units --source-unit mm: %v", err)
	}
	if err := run(t, "units", "--source-unit", "parsec"); err == nil {
		t.Error("units with unknown source unit should fail")
	}
}

func TestConfigFlag(t *testing.T) {
	_, input := testEnv(t)
	if err := run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "inspect", input); err == nil {
		t.Error("missing --config file should fail")
	}
}

func TestFlagCompletion(t *testing.T) {
	testEnv(t)
	tests := []struct {
		args []string
		want []string
		skip []string
	}{
		{[]string{"export", "truss.json", "--unit", ""}, []string{"inch", "mm", "ask"}, nil},
		{[]string{"units", "--source-unit", ""}, []string{"feet", "m"}, []string{"ask"}},
		{[]string{"inspect", "truss.json", "--ordering", ""}, []string{"lexicographic", "legacy"}, nil},
		{[]string{"render", "truss.json", "--plane", ""}, []string{"xz", "xy", "yz"}, nil},
		{[]string{"export", "truss.json", "--format", "vtk,"}, []string{"vtk,json", "vtk,svg"}, []string{"vtk,vtk"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			root := New(io.Discard, log.InfoLevel).RootCommand()
			root.SetOut(&out)
			root.SetErr(io.Discard)
			root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}

			lines := strings.Split(out.String(), "\n")
			for _, w := range tt.want {
				if !slices.Contains(lines, w) {
					t.Errorf("completions %q missing %q", lines, w)
				}
			}
			for _, s := range tt.skip {
				if slices.Contains(lines, s) {
					t.Errorf("completions %q should not offer %q", lines, s)
				}
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	testEnv(t)
	var out bytes.Buffer
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "trussmesh") {
		t.Error("bash completion script does not mention the command")
	}
}
