package snapshot

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeShot struct {
	data []byte
	err  error
}

func (f *fakeShot) Screenshot(context.Context) ([]byte, error) { return f.data, f.err }

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		device, label, want string
	}{
		{"", "Mainscreen", "Mainscreen.png"},
		{"iPhone 8", "View A", "iPhone 8-View A.png"},
		{"", "a/b:c", "a_b_c.png"},
		{" Pixel ", " View B ", "Pixel-View B.png"},
	}
	for _, tt := range tests {
		if got := FileName(tt.device, tt.label); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.device, tt.label, got, tt.want)
		}
	}
}

func TestCapture_WritesInOrder(t *testing.T) {
	dir := t.TempDir()
	shot := &fakeShot{data: testPNG(t, 40, 80)}
	c, err := New(shot, Options{OutputDir: dir, Device: "sim"}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, label := range []string{"Mainscreen", "View A", "View B"} {
		if err := c.Capture(ctx, label); err != nil {
			t.Fatalf("Capture(%q): %v", label, err)
		}
	}

	labels := c.Labels()
	want := []string{"Mainscreen", "View A", "View B"}
	if len(labels) != len(want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: got %q, want %q", i, labels[i], want[i])
		}
		if _, err := os.Stat(filepath.Join(dir, "sim-"+want[i]+".png")); err != nil {
			t.Errorf("expected file for %q: %v", want[i], err)
		}
	}

	a := c.Artifacts()[0]
	if a.Width != 40 || a.Height != 80 {
		t.Errorf("expected 40x80, got %dx%d", a.Width, a.Height)
	}
}

func TestCapture_Scale(t *testing.T) {
	dir := t.TempDir()
	c, err := New(&fakeShot{data: testPNG(t, 100, 200)}, Options{OutputDir: dir, Scale: 0.5}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Capture(context.Background(), "Scaled"); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "Scaled.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 50 || cfg.Height != 100 {
		t.Errorf("expected 50x100, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestCapture_ScaleRejectsNonPNG(t *testing.T) {
	c, err := New(&fakeShot{data: []byte("not a png")}, Options{OutputDir: t.TempDir(), Scale: 0.5}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Capture(context.Background(), "x"); err == nil {
		t.Fatal("expected decode error")
	}
	if len(c.Artifacts()) != 0 {
		t.Error("failed capture must not be recorded")
	}
}

func TestCapture_ScreenshotError(t *testing.T) {
	boom := errors.New("boom")
	c, err := New(&fakeShot{err: boom}, Options{OutputDir: t.TempDir()}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Capture(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped screenshot error, got %v", err)
	}
}

func TestCapture_EmptyLabel(t *testing.T) {
	c, err := New(&fakeShot{data: []byte("x")}, Options{OutputDir: t.TempDir()}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Capture(context.Background(), "  "); err == nil {
		t.Error("expected error for empty label")
	}
}

func TestCapture_DuplicateLabelAllowed(t *testing.T) {
	c, err := New(&fakeShot{data: []byte("x")}, Options{OutputDir: t.TempDir()}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := c.Capture(ctx, "Same"); err != nil {
		t.Fatal(err)
	}
	if err := c.Capture(ctx, "Same"); err != nil {
		t.Fatal(err)
	}
	if len(c.Artifacts()) != 2 {
		t.Errorf("expected both captures recorded, got %d", len(c.Artifacts()))
	}
}

func TestCapture_FileNameCollisionWarns(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	c, err := New(&fakeShot{data: []byte("x")}, Options{OutputDir: dir}, logger)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, label := range []string{"View:A", "View_A", "View B", " View B"} {
		if err := c.Capture(ctx, label); err != nil {
			t.Fatal(err)
		}
	}

	if n := strings.Count(logs.String(), "snapshot overwrites earlier image"); n != 2 {
		t.Errorf("expected 2 overwrite warnings, got %d:\n%s", n, logs.String())
	}
	if !strings.Contains(logs.String(), "previous_label=View:A") {
		t.Errorf("expected warning to name the earlier label:\n%s", logs.String())
	}

	arts := c.Artifacts()
	wantReplaced := []bool{true, false, true, false}
	for i, a := range arts {
		if a.Replaced != wantReplaced[i] {
			t.Errorf("artifact %d (%q): replaced = %v, want %v", i, a.Label, a.Replaced, wantReplaced[i])
		}
	}
	if arts[0].File != arts[1].File {
		t.Errorf("expected shared file, got %q and %q", arts[0].File, arts[1].File)
	}
}

func TestNew_ClearPrevious(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "old.png")
	keep := filepath.Join(dir, "notes.txt")
	for _, p := range []string{stale, keep, filepath.Join(dir, ManifestFile)} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := New(&fakeShot{}, Options{OutputDir: dir, ClearPrevious: true}, quietLogger()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("old png should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestFile)); !os.IsNotExist(err) {
		t.Error("old manifest should be removed")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("non-png files should be kept")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(&fakeShot{}, Options{}, nil); err == nil {
		t.Error("expected error without output dir")
	}
	for _, scale := range []float64{-0.1, 1.5} {
		if _, err := New(&fakeShot{}, Options{OutputDir: t.TempDir(), Scale: scale}, nil); err == nil {
			t.Errorf("expected error for scale %g", scale)
		}
	}
}

func TestWriteManifest_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := New(&fakeShot{data: []byte("img")}, Options{OutputDir: dir, Device: "d", RunID: "run-1", Backend: "sim"}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = c.Capture(ctx, "Mainscreen")
	_ = c.Capture(ctx, "View A")

	path, err := c.WriteManifest()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != ManifestFile {
		t.Errorf("unexpected manifest path %s", path)
	}
	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.RunID != "run-1" || m.Backend != "sim" || m.Device != "d" {
		t.Errorf("unexpected manifest header: %+v", m)
	}
	if len(m.Artifacts) != 2 || m.Artifacts[1].Label != "View A" || m.Artifacts[1].File != "d-View A.png" {
		t.Errorf("unexpected artifacts: %+v", m.Artifacts)
	}
	if m.FinishedAt.Before(m.StartedAt) {
		t.Error("finished_at before started_at")
	}
}
