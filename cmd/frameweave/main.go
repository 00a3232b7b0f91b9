package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/lumen-labs/frameweave/internal/cliconfig"
	"github.com/lumen-labs/frameweave/internal/imageio"
	"github.com/lumen-labs/frameweave/pkg/frameweave"
	"github.com/lumen-labs/frameweave/pkg/log"
	"github.com/lumen-labs/frameweave/plugins/paramwatcher"
)

const helpDescription = `
Synthesize intermediate video frames by estimating dense optical flow
between two input frames and warping both toward a chosen time position.

Highlights:
  - Coarse-to-fine pyramid flow estimation with tunable quality presets.
  - Generates a single in-between frame or an evenly spaced sequence.
  - Configure via file, environment (FRAMEWEAVE_*), or flags.
  - Live parameter reloading from a watched TOML file.
`

var exampleUsage = strings.TrimSpace(`
  frameweave --frame-a a.png --frame-b b.png -t 0.5 --out mid.png
  frameweave --frame-a a.png --frame-b b.png --steps 3 --out seq.png --preset high
  frameweave --config $HOME/.frameweave/config.toml --params-file live.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "frameweave",
		Short:   "Synthesize intermediate video frames via dense optical flow",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.frameweave/config.toml),
			// then environment, then flag overrides via the changed map.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl := cliconfig.Logger(cfg.LogLevel, cfg.Quiet)
			return run(cmd.Context(), cfg, changed, log.NewZerologAdapterWithLogger(zl))
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.frameweave/config.toml)")
	root.Flags().StringVarP(&cfg.FrameA, "frame-a", "a", cfg.FrameA, "path to the earlier input frame (PNG)")
	root.Flags().StringVarP(&cfg.FrameB, "frame-b", "b", cfg.FrameB, "path to the later input frame (PNG)")
	root.Flags().StringVarP(&cfg.Out, "out", "o", cfg.Out, "output path; with --steps > 1 an index is appended per frame")

	root.Flags().Float64VarP(&cfg.T, "t", "t", cfg.T, "temporal position of the synthesized frame, strictly between 0 and 1")
	root.Flags().IntVar(&cfg.Steps, "steps", cfg.Steps, "number of evenly spaced intermediate frames to generate")

	root.Flags().StringVar(&cfg.Preset, "preset", cfg.Preset, "quality preset: low, medium, or high")
	root.Flags().StringVar(&cfg.ParamsFile, "params-file", cfg.ParamsFile, "TOML file watched for live solver parameter updates")

	root.Flags().IntVar(&cfg.PyramidLevels, "levels", cfg.PyramidLevels, "pyramid depth for coarse-to-fine estimation")
	root.Flags().IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "relaxation iterations per pyramid level")
	root.Flags().Float64Var(&cfg.Lambda, "lambda", cfg.Lambda, "smoothness weight; larger values produce smoother flow")
	root.Flags().Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "stabilizer added to the relaxation denominator")

	root.Flags().IntVar(&cfg.TileSize, "tile-size", cfg.TileSize, "kernel dispatch tile edge in pixels")
	root.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "worker goroutines for kernel dispatch (default: GOMAXPROCS)")
	root.Flags().Int64Var(&cfg.MaxPixels, "max-pixels", cfg.MaxPixels, "reject inputs larger than this many pixels (0 = unlimited)")

	root.Flags().BoolVar(&cfg.UpsampleRescale, "upsample-rescale", cfg.UpsampleRescale, "rescale flow magnitude when promoting between pyramid levels")
	root.Flags().BoolVar(&cfg.SmoothFlow, "smooth-flow", cfg.SmoothFlow, "apply a final smoothing pass to the estimated flow")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	root.Flags().BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "only log warnings and errors")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "frameweave:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, changed map[string]bool, logger log.Logger) error {
	libCfg, err := cfg.Library(changed)
	if err != nil {
		return err
	}

	frameA, err := imageio.LoadPNG(cfg.FrameA)
	if err != nil {
		return err
	}
	frameB, err := imageio.LoadPNG(cfg.FrameB)
	if err != nil {
		return err
	}

	opts := []frameweave.Option{frameweave.WithLogger(logger)}
	if cfg.Steps > 1 {
		// Consecutive outputs share motion; warm-start each request with the
		// previous flow field.
		opts = append(opts, frameweave.WithSeedReuse())
	}
	if cfg.ParamsFile != "" {
		opts = append(opts, paramwatcher.WithParamFile(cfg.ParamsFile))
	}

	it, err := frameweave.New(libCfg, opts...)
	if err != nil {
		return fmt.Errorf("create interpolator: %w", err)
	}
	if err := it.Start(ctx); err != nil {
		return err
	}
	defer it.Close(context.Background())

	for k := 1; k <= cfg.Steps; k++ {
		t := cfg.T
		if cfg.Steps > 1 {
			t = float64(k) / float64(cfg.Steps+1)
		}

		res, err := it.Interpolate(ctx, frameA, frameB, t)
		if err != nil {
			return fmt.Errorf("interpolate at t=%.3f: %w", t, err)
		}

		out := outPath(cfg.Out, k, cfg.Steps)
		if err := imageio.SavePNG(out, res.Output); err != nil {
			return err
		}
		logger.Info("frame written",
			log.String("path", out),
			log.Float64("t", t),
			log.Int("pyramid_depth", res.Depth),
			log.Duration("elapsed", res.Elapsed))
	}

	snap := it.Stats()
	logger.Info("done",
		log.Int64("requests", snap.Requests),
		log.Int64("kernel_dispatches", snap.KernelDispatches),
		log.Int64("pixels_processed", snap.PixelsProcessed))
	return nil
}

// outPath derives the output file name for step k. Single-step runs use the
// configured path as-is; sequences get a zero-padded index before the
// extension, e.g. seq.png becomes seq-001.png.
func outPath(out string, k, steps int) string {
	if steps <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(out, ext), k, ext)
}
