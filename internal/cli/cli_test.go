package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hueshift/pkg/config"
	"github.com/matzehuels/hueshift/pkg/core/raster"
	"github.com/matzehuels/hueshift/pkg/errors"
	hio "github.com/matzehuels/hueshift/pkg/io"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	img := &raster.Image{Width: 2, Height: 2, Buffer: []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 255, 0, 255, 0, 0, 255, 255,
	}}
	path := filepath.Join(t.TempDir(), "sprite.png")
	if err := hio.ExportImage(img, path, hio.FormatPNG); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"generate", "palette", "rotate", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGenerateWritesVariants(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "variants")

	stdout, err := execute(t, "generate", input,
		"-n", "3", "--min", "0.1", "--max", "0.1", "--seed", "9",
		"-o", out, "--no-cache")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for i := range 3 {
		path := hio.VariantPath(out, "sprite", i, hio.FormatPNG)
		// Once as a written file, once in the shift table.
		if n := strings.Count(stdout, path); n < 2 {
			t.Errorf("output mentions %s %d times, want 2:\n%s", path, n, stdout)
		}
		img, _, err := hio.ImportImage(path)
		if err != nil {
			t.Fatalf("variant %d: %v", i, err)
		}
		if got := img.Buffer[:4]; !bytes.Equal(got, []byte{255, 153, 0, 255}) {
			t.Errorf("variant %d pixel 0 = %v, want [255 153 0 255]", i, got)
		}
	}
}

func TestGenerateUsesRecipe(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "recipe-out")
	recipe := filepath.Join(t.TempDir(), "recipe.toml")
	body := "[generation]\nhow_many = 2\nmax_hue_shift = 0.3\n\n[output]\nformat = \"tiff\"\nprefix = \"tile\"\ndir = \"" + filepath.ToSlash(out) + "\"\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(recipe, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	// -n overrides the recipe's how_many.
	if _, err := execute(t, "generate", input, "-c", recipe, "-n", "1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "tile_001.tiff")); err != nil {
		t.Errorf("expected tile_001.tiff: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "tile_002.tiff")); !os.IsNotExist(err) {
		t.Errorf("flag should override how_many, found tile_002.tiff (err %v)", err)
	}
}

func TestGenerateRejectsInvalidRange(t *testing.T) {
	_, err := execute(t, "generate", writeInput(t), "--min", "0.6", "--max", "0.2", "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidRange) {
		t.Errorf("err = %v, want INVALID_RANGE", err)
	}
}

func TestGenerateMissingInput(t *testing.T) {
	_, err := execute(t, "generate", filepath.Join(t.TempDir(), "nope.png"), "--no-cache")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPaletteJSON(t *testing.T) {
	out, err := execute(t, "palette", writeInput(t), "--json", "--no-cache", "-k", "2")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if !strings.Contains(out, `"distinct": 3`) {
		t.Errorf("palette output missing distinct count:\n%s", out)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"rotate", "red", "36"}, "#ff9900"},
		{[]string{"rotate", "#ff0000", "120"}, "#00ff00"},
		{[]string{"rotate", "rgb(0, 0, 255)", "0.3333333333333333", "--fraction"}, "#ff0000"},
		{[]string{"rotate", "gray", "90"}, "#808080"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			fields := strings.Fields(out)
			if len(fields) == 0 || fields[len(fields)-1] != tt.want {
				t.Errorf("rotate output %q, want it to end with %s", out, tt.want)
			}
		})
	}
}

func TestRotateInvalid(t *testing.T) {
	if _, err := execute(t, "rotate", "notacolor", "10"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad color err = %v", err)
	}
	if _, err := execute(t, "rotate", "red", "lots"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad amount err = %v", err)
	}
}

func TestCachePath(t *testing.T) {
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir := strings.TrimSpace(out)
	if filepath.Base(dir) != "hueshift" {
		t.Errorf("cache path = %q, want .../hueshift", dir)
	}
	want, _ := config.DefaultCacheDir()
	if dir != want {
		t.Errorf("cache path = %q, want %q", dir, want)
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "hueshift") {
		t.Error("bash completion should mention the program name")
	}
}
