package raster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

type fakeRasterizer struct {
	requests []interfaces.RasterRequest
	failOn   string
}

func (f *fakeRasterizer) Raster(_ context.Context, req interfaces.RasterRequest) (interfaces.RasterResult, error) {
	f.requests = append(f.requests, req)
	if f.failOn != "" && req.Payload == f.failOn {
		return interfaces.RasterResult{}, errors.New("render failed")
	}
	return interfaces.RasterResult{Path: "/tmp/out.png", Width: 800, Height: 200}, nil
}

func TestRunRendersJobs(t *testing.T) {
	doc := &interfaces.Document{
		RasterJobs: []interfaces.RasterJob{
			{BlockIndex: 1, Kind: interfaces.RasterCode, Payload: "print(1)", Language: "py"},
			{BlockIndex: 3, Kind: interfaces.RasterTable, Payload: "| a |", Columns: 1},
		},
	}
	backend := &fakeRasterizer{}

	report := NewService(backend, WithTheme("dracula")).Run(context.Background(), doc)

	if len(report.Images) != 2 || len(report.Failures) != 0 {
		t.Fatalf("report = %+v", report)
	}
	if report.Images[0].BlockIndex != 1 || report.Images[1].BlockIndex != 3 {
		t.Fatalf("image anchors = %d, %d", report.Images[0].BlockIndex, report.Images[1].BlockIndex)
	}
	if report.Images[0].Role != interfaces.RoleContent {
		t.Fatalf("role = %q", report.Images[0].Role)
	}
	if backend.requests[0].Language != "python" {
		t.Fatalf("language = %q, want normalized python", backend.requests[0].Language)
	}
	if backend.requests[0].Theme != "dracula" {
		t.Fatalf("theme = %q", backend.requests[0].Theme)
	}
}

func TestRunDocumentThemeOverride(t *testing.T) {
	doc := &interfaces.Document{
		Theme: "one-dark",
		RasterJobs: []interfaces.RasterJob{
			{BlockIndex: 0, Kind: interfaces.RasterCode, Payload: "x", Language: "go"},
		},
	}
	backend := &fakeRasterizer{}

	NewService(backend, WithTheme("monokai")).Run(context.Background(), doc)

	if backend.requests[0].Theme != "one-dark" {
		t.Fatalf("theme = %q, want document override", backend.requests[0].Theme)
	}
}

func TestRunIsolatesJobFailures(t *testing.T) {
	doc := &interfaces.Document{
		RasterJobs: []interfaces.RasterJob{
			{BlockIndex: 0, Kind: interfaces.RasterCode, Payload: "bad", Language: "go"},
			{BlockIndex: 1, Kind: interfaces.RasterCode, Payload: "good", Language: "go"},
		},
	}
	backend := &fakeRasterizer{failOn: "bad"}

	report := NewService(backend).Run(context.Background(), doc)

	if len(report.Images) != 1 || len(report.Failures) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if report.Failures[0].Job.BlockIndex != 0 {
		t.Fatalf("failure = %+v", report.Failures[0])
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"":       "text",
		"JS":     "javascript",
		"py":     "python",
		"golang": "go",
		"rust":   "rust",
		" yml ":  "yaml",
	}
	for in, want := range cases {
		if got := NormalizeLanguage(in); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLookupTheme(t *testing.T) {
	theme, err := LookupTheme("Monokai")
	if err != nil {
		t.Fatalf("LookupTheme() error = %v", err)
	}
	if theme.Background != "#272822" {
		t.Fatalf("background = %q", theme.Background)
	}

	if _, err := LookupTheme("neon"); !errors.Is(err, ErrThemeUnknown) {
		t.Fatalf("error = %v, want ErrThemeUnknown", err)
	}
}

func TestBuiltinThemesStableOrder(t *testing.T) {
	names := BuiltinThemes()
	want := []string{"dracula", "github-dark", "monokai", "one-dark"}
	if len(names) != len(want) {
		t.Fatalf("themes = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("themes = %v, want %v", names, want)
		}
	}
}

func TestLoadThemeFile(t *testing.T) {
	valid := `{
		"name": "custom",
		"background": "#101010",
		"text": "#eeeeee",
		"comment": "#888888",
		"keyword": "#ff0000",
		"string": "#00ff00",
		"number": "#0000ff",
		"function": "#ffff00",
		"operator": "#ff00ff",
		"class": "#00ffff",
		"variable": "#ffffff",
		"title_bar": "#050505"
	}`
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(valid), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}
	if theme.Name != "custom" || theme.Background != "#101010" {
		t.Fatalf("theme = %+v", theme)
	}
	if len(theme.Dots) != 3 {
		t.Fatalf("dots = %v, want default palette", theme.Dots)
	}
}

func TestLoadThemeFileRejectsBadColor(t *testing.T) {
	invalid := `{
		"name": "broken",
		"background": "red",
		"text": "#eeeeee",
		"comment": "#888888",
		"keyword": "#ff0000",
		"string": "#00ff00",
		"number": "#0000ff",
		"function": "#ffff00",
		"operator": "#ff00ff",
		"class": "#00ffff",
		"variable": "#ffffff",
		"title_bar": "#050505"
	}`
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(invalid), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}

	if _, err := LoadThemeFile(path); !errors.Is(err, ErrThemeInvalid) {
		t.Fatalf("error = %v, want ErrThemeInvalid", err)
	}
}
