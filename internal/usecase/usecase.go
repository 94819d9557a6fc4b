package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forPelevin/prclips/internal/domain/aggregate"
	"github.com/forPelevin/prclips/internal/domain/project"
	"github.com/forPelevin/prclips/internal/domain/timecode"
	"github.com/forPelevin/prclips/internal/logging"
	"github.com/forPelevin/prclips/internal/ports"
	"github.com/forPelevin/prclips/internal/types"
)

type Deps struct {
	Loader ports.ProjectLoader
	Logger *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return Usecase{d: d}
}

type Options struct {
	FrameRate      int
	TicksPerSecond int64
	Nested         bool
	MaxDepth       int
	SortByTimecode bool
}

type Input struct {
	Path string
	Options
}

type Result struct {
	Report types.Report
}

// Run loads the project at in.Path and extracts its clips.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	if u.d.Loader == nil {
		return Result{}, fmt.Errorf("no project loader configured")
	}
	data, err := u.d.Loader.Load(ctx, in.Path)
	if err != nil {
		return Result{}, err
	}
	return u.Extract(ctx, in.Path, data, in.Options)
}

// Extract runs parse, resolve, walk and aggregate over one document. It
// either returns a complete report or an error, never a partial report.
func (u Usecase) Extract(ctx context.Context, name string, data []byte, opts Options) (Result, error) {
	conv, err := timecode.NewConverter(opts.FrameRate)
	if err != nil {
		return Result{}, fmt.Errorf("config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	doc, err := project.Parse(data)
	if err != nil {
		return Result{}, err
	}
	lookup := project.BuildLookup(doc)
	u.d.Logger.Debug("master clips resolved", "entries", lookup.Len(), "dropped", lookup.Dropped)

	occs, stats, err := project.Walk(doc, lookup, project.WalkOptions{
		FrameRate:      opts.FrameRate,
		TicksPerSecond: opts.TicksPerSecond,
		Nested:         opts.Nested,
		MaxDepth:       opts.MaxDepth,
		Logger:         u.d.Logger,
	})
	if err != nil {
		return Result{}, err
	}

	recs := aggregate.Aggregate(occs, conv)
	if opts.SortByTimecode {
		aggregate.SortByEarliest(recs)
	}

	u.d.Logger.Info("clips extracted",
		"input", name,
		"sequences", stats.Containers,
		"clip_nodes", stats.ClipNodes,
		"occurrences", stats.Occurrences,
		"clips", len(recs),
		"skipped_unresolved", stats.SkippedUnresolved,
		"skipped_bad_time", stats.SkippedBadTime,
		"skipped_cycles", stats.SkippedCycles,
	)

	return Result{Report: types.Report{
		Input:     name,
		FrameRate: conv.FrameRate(),
		Clips:     recs,
		Stats:     stats,
	}}, nil
}
