package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/prclips/internal/config"
	"github.com/forPelevin/prclips/internal/logging"
	"github.com/forPelevin/prclips/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	toStdout, _ := cmd.Flags().GetBool("stdout")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, 10*time.Minute)
	defer cancelTimeout()

	pcfg := pipeline.Config{
		Input:  absIn,
		OutDir: outDir,
		Format: format,
		Stdout: toStdout,

		FrameRate:      cfg.Extract.FrameRate,
		TicksPerSecond: cfg.Extract.TicksPerSecond,
		Nested:         cfg.Extract.Nested,
		MaxDepth:       cfg.Extract.MaxDepth,
		SortByTimecode: cfg.Extract.Sort,

		Logger: logging.NewLogger(cfg.Log.Level),
		Writer: cmd.OutOrStdout(),
	}

	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	path, err := pipeline.Run(ctx, pcfg)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), path)
	}
	return nil
}

// loadConfig layers explicitly set flags over file and environment settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Extract.FrameRate, _ = flags.GetInt("fps")
	}
	if flags.Changed("nested") {
		cfg.Extract.Nested, _ = flags.GetBool("nested")
	}
	if flags.Changed("sort") {
		cfg.Extract.Sort, _ = flags.GetBool("sort")
	}
	if flags.Changed("max-depth") {
		cfg.Extract.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if flags.Changed("addr") {
		cfg.Server.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
