package pipeline

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/forPelevin/prclips/internal/logging"
	"github.com/forPelevin/prclips/internal/ports"
	"github.com/forPelevin/prclips/internal/ports/adapters/projectfile"
	"github.com/forPelevin/prclips/internal/ports/adapters/render"
	"github.com/forPelevin/prclips/internal/usecase"
)

type Config struct {
	Input  string
	OutDir string
	Format string

	// Stdout writes the rendered report to Stdout instead of a file under OutDir.
	Stdout bool

	FrameRate      int
	TicksPerSecond int64
	Nested         bool
	MaxDepth       int
	SortByTimecode bool

	Logger *slog.Logger
	// Writer for Stdout mode. Defaults to os.Stdout.
	Writer io.Writer
	// Now is used for output naming. Defaults to time.Now.
	Now func() time.Time
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("fps must be > 0")
	}
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks per second must be > 0")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0")
	}
	if _, err := render.New(c.Format); err != nil {
		return err
	}
	return nil
}

// Run extracts the clips of cfg.Input and writes the rendered report. It
// returns the path of the written file, or "" in Stdout mode.
func Run(ctx context.Context, cfg Config) (string, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = logging.WithComponent(log, "pipeline")

	renderer, err := render.New(cfg.Format)
	if err != nil {
		return "", err
	}

	uc := usecase.New(usecase.Deps{
		Loader: projectfile.New(),
		Logger: log,
	})

	res, err := uc.Run(ctx, usecase.Input{
		Path: cfg.Input,
		Options: usecase.Options{
			FrameRate:      cfg.FrameRate,
			TicksPerSecond: cfg.TicksPerSecond,
			Nested:         cfg.Nested,
			MaxDepth:       cfg.MaxDepth,
			SortByTimecode: cfg.SortByTimecode,
		},
	})
	if err != nil {
		return "", err
	}
	res.Report.Input = filepath.Base(cfg.Input)

	// Render fully before touching the output so a failure leaves nothing behind.
	var buf bytes.Buffer
	if err := renderer.Render(&buf, res.Report); err != nil {
		return "", fmt.Errorf("render %s: %w", cfg.Format, err)
	}

	if cfg.Stdout {
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(buf.Bytes())
		return "", err
	}

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outPath := buildOutputPath(outDir, cfg.Input, renderer.Ext(), now().UTC())
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	log.Info("report written", "clips", len(res.Report.Clips), "path", outPath)
	return outPath, nil
}

func buildOutputPath(outRoot, input, ext string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "project"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s.%s", name, ts, suffix, ext))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

var _ ports.ProjectLoader = (*projectfile.Adapter)(nil)
