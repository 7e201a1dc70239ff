// Package snapshot persists labelled screenshots the way fastlane snapshot
// lays them out: one PNG per label named "<device>-<label>.png" in a single
// output directory, plus a manifest recording creation order.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mj1618/storeshots/internal/platform"
	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest written next to the images.
const ManifestFile = "manifest.yaml"

// Options configures where and how snapshots are written.
type Options struct {
	OutputDir     string
	Device        string  // File name prefix; empty = label only
	Scale         float64 // Downscale factor in (0, 1]; 0 = 1
	ClearPrevious bool    // Remove earlier PNGs and manifest before the first capture
	RunID         string
	Backend       string
}

// Artifact describes one written snapshot.
type Artifact struct {
	Label      string    `yaml:"label"            json:"label"`
	File       string    `yaml:"file"             json:"file"`
	Size       int64     `yaml:"size"             json:"size"`
	Width      int       `yaml:"width,omitempty"  json:"width,omitempty"`
	Height     int       `yaml:"height,omitempty" json:"height,omitempty"`
	CapturedAt time.Time `yaml:"captured_at"      json:"captured_at"`
	Replaced   bool      `yaml:"replaced,omitempty" json:"replaced,omitempty"` // A later capture wrote the same file
}

// Manifest is persisted to manifest.yaml.
type Manifest struct {
	RunID      string     `yaml:"run_id"      json:"run_id"`
	Device     string     `yaml:"device"      json:"device"`
	Backend    string     `yaml:"backend"     json:"backend"`
	StartedAt  time.Time  `yaml:"started_at"  json:"started_at"`
	FinishedAt time.Time  `yaml:"finished_at" json:"finished_at"`
	Artifacts  []Artifact `yaml:"artifacts"   json:"artifacts"`
}

// Capturer implements platform.Capturer on top of an application's
// screenshots.
type Capturer struct {
	mu        sync.Mutex
	shot      platform.Screenshotter
	opts      Options
	logger    *slog.Logger
	startedAt time.Time
	artifacts []Artifact
	files     map[string]int // File name -> index of the artifact that wrote it last
}

var _ platform.Capturer = (*Capturer)(nil)

// New prepares the output directory and returns a Capturer. A nil logger
// uses slog.Default().
func New(shot platform.Screenshotter, opts Options, logger *slog.Logger) (*Capturer, error) {
	if opts.OutputDir == "" {
		return nil, errors.New("snapshot output directory is required")
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	if opts.Scale < 0 || opts.Scale > 1 {
		return nil, fmt.Errorf("invalid scale %g: must be in (0, 1]", opts.Scale)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if opts.ClearPrevious {
		if err := clearPrevious(opts.OutputDir); err != nil {
			return nil, err
		}
		logger.Debug("cleared previous snapshots", "dir", opts.OutputDir)
	}
	return &Capturer{
		shot:      shot,
		opts:      opts,
		logger:    logger,
		startedAt: time.Now(),
		files:     make(map[string]int),
	}, nil
}

// Capture takes a screenshot and writes it under label.
func (c *Capturer) Capture(ctx context.Context, label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("snapshot label must not be empty")
	}
	data, err := c.shot.Screenshot(ctx)
	if err != nil {
		return fmt.Errorf("capture %q: %w", label, err)
	}

	width, height := 0, 0
	if c.opts.Scale < 1 {
		data, width, height, err = scalePNG(data, c.opts.Scale)
		if err != nil {
			return fmt.Errorf("capture %q: %w", label, err)
		}
	} else if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height = cfg.Width, cfg.Height
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	name := FileName(c.opts.Device, label)
	path := filepath.Join(c.opts.OutputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %q: %w", label, err)
	}

	// Labels that differ only in characters sanitize rewrites share a file.
	if prev, ok := c.files[name]; ok {
		c.artifacts[prev].Replaced = true
		c.logger.Warn("snapshot overwrites earlier image", "label", label, "previous_label", c.artifacts[prev].Label, "file", name)
	}
	c.files[name] = len(c.artifacts)

	c.artifacts = append(c.artifacts, Artifact{
		Label:      label,
		File:       name,
		Size:       int64(len(data)),
		Width:      width,
		Height:     height,
		CapturedAt: time.Now(),
	})
	c.logger.Info("snapshot captured", "label", label, "file", path, "bytes", len(data))
	return nil
}

// Artifacts returns the written snapshots in creation order.
func (c *Capturer) Artifacts() []Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Artifact, len(c.artifacts))
	copy(out, c.artifacts)
	return out
}

// Labels returns the captured labels in creation order.
func (c *Capturer) Labels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	labels := make([]string, len(c.artifacts))
	for i, a := range c.artifacts {
		labels[i] = a.Label
	}
	return labels
}

// WriteManifest writes manifest.yaml and returns its path.
func (c *Capturer) WriteManifest() (string, error) {
	c.mu.Lock()
	m := Manifest{
		RunID:      c.opts.RunID,
		Device:     c.opts.Device,
		Backend:    c.opts.Backend,
		StartedAt:  c.startedAt,
		FinishedAt: time.Now(),
		Artifacts:  append([]Artifact{}, c.artifacts...),
	}
	c.mu.Unlock()

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(c.opts.OutputDir, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// FileName returns the image file name for a label, prefixed with the
// device name when one is set.
func FileName(device, label string) string {
	name := sanitize(label)
	if device != "" {
		name = sanitize(device) + "-" + name
	}
	return name + ".png"
}

var unsafeChars = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

func sanitize(s string) string {
	return unsafeChars.Replace(strings.TrimSpace(s))
}

func clearPrevious(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return err
	}
	matches = append(matches, filepath.Join(dir, ManifestFile))
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("clear previous snapshots: %w", err)
		}
	}
	return nil
}

// scalePNG downsizes a PNG by factor and re-encodes it.
func scalePNG(data []byte, factor float64) ([]byte, int, int, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode screenshot: %w", err)
	}
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, 0, 0, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), w, h, nil
}
