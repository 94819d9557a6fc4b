//go:build integration

package itest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forPelevin/prclips/internal/domain/project"
	"github.com/forPelevin/prclips/internal/domain/timecode"
	"github.com/forPelevin/prclips/internal/pipeline"
)

func TestE2E_Fixtures(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	tests := []struct {
		fixture string
		want    string
	}{
		{
			fixture: "flat.xml",
			want: "Name,Type,Source,ID,Timecodes\n" +
				"sunset,Video,Colourbox,4567,\"00:00:00 - 00:00:04\n00:00:20 - 00:00:24\"\n" +
				"artlist_theme,GraphicElement,Artlist,123456,00:00:00 - 00:00:10\n",
		},
		{
			fixture: "masterclip.xml",
			want: "Name,Type,Source,ID,Timecodes\n" +
				"drone,Video,Imago,777,00:00:00 - 00:00:04\n" +
				"Logo,Image,Other,-,00:00:20 - 00:00:24\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "out")
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			cfg := pipeline.Config{
				Input:          filepath.Join(repoRoot, "internal", "itest", "testdata", tt.fixture),
				OutDir:         outDir,
				Format:         "csv",
				FrameRate:      timecode.DefaultFrameRate,
				TicksPerSecond: timecode.TicksPerSecond,
				MaxDepth:       project.DefaultMaxDepth,
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("config: %v", err)
			}
			path, err := pipeline.Run(ctx, cfg)
			if err != nil {
				t.Fatalf("pipeline failed: %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("missing report: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("unexpected report:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestE2E_CLIStdoutJSON(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	in := filepath.Join(repoRoot, "internal", "itest", "testdata", "flat.xml")

	res := runCLI(t, repoRoot, []string{in, "--stdout", "--format", "json", "--sort"}, nil)
	if res.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\noutput:\n%s", res.exitCode, res.output)
	}
	for _, want := range []string{`"source": "Colourbox"`, `"id": "123456"`, `"frame_rate": 25`} {
		if !strings.Contains(res.output, want) {
			t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
		}
	}
}
