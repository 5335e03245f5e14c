// Package main provides the CLI entry point for promoreel.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/user/promoreel/pkg/adapters/chromebrowser"
	"github.com/user/promoreel/pkg/adapters/filesink"
	"github.com/user/promoreel/pkg/adapters/framestore"
	"github.com/user/promoreel/pkg/adapters/ggrenderer"
	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/adapters/mp4encoder"
	"github.com/user/promoreel/pkg/adapters/nullsink"
	"github.com/user/promoreel/pkg/adapters/osfilesystem"
	"github.com/user/promoreel/pkg/adapters/playwrightbrowser"
	"github.com/user/promoreel/pkg/adapters/realclock"
	"github.com/user/promoreel/pkg/adapters/sysmonitor"
	"github.com/user/promoreel/pkg/config"
	"github.com/user/promoreel/pkg/orchestrator"
	"github.com/user/promoreel/pkg/ports"
	"github.com/user/promoreel/pkg/promoreel"
	"github.com/user/promoreel/pkg/stages/capture"
	"github.com/user/promoreel/pkg/stages/encode"
	"github.com/user/promoreel/pkg/stages/titlecard"
	"github.com/user/promoreel/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "promoreel",
		Usage:   l10n.T("Create scrolling promo videos from landing pages"),
		Version: version,
		Commands: []*cli.Command{
			generateCommand(),
			batchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     l10n.T("Generate a promo video from an HTML document"),
		ArgsUsage: "INPUT",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output MP4 file path")},
			&cli.StringFlag{Name: "label", Aliases: []string{"L"}, Usage: l10n.T("Business name shown on the title card and overlay")},
			&cli.StringFlag{Name: "config", Aliases: []string{"C"}, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a markdown run summary to this path")},
		}, sharedFlags()...),
		Action: runGenerate,
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     l10n.T("Generate videos for every job in a batch file"),
		ArgsUsage: "BATCH_FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "concurrency", Aliases: []string{"n"}, Usage: l10n.T("Jobs to run in parallel (overrides the batch file)")},
			&cli.StringFlag{Name: "engine", Value: "chrome", Usage: l10n.T("Rendering engine (chrome or playwright)")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runBatch,
	}
}

func sharedFlags() []cli.Flag {
	return []cli.Flag{
		// Preset and engine
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Value: "desktop", Usage: l10n.T("Preset configuration (desktop or mobile)")},
		&cli.StringFlag{Name: "engine", Value: "chrome", Usage: l10n.T("Rendering engine (chrome or playwright)")},

		// Video dimensions
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Output video width (default: viewport width)")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Output video height (default: viewport height)")},
		&cli.IntFlag{Name: "viewport-width", Usage: l10n.T("Browser viewport width")},
		&cli.IntFlag{Name: "viewport-height", Usage: l10n.T("Browser viewport height")},

		// Choreography
		&cli.IntFlag{Name: "fps", Usage: l10n.T("Capture and playback frame rate")},
		&cli.Float64Flag{Name: "pause", Usage: l10n.T("Seconds to hold the top of the page before scrolling")},
		&cli.Float64Flag{Name: "speed", Usage: l10n.T("Scroll speed in pixels per second")},
		&cli.Float64Flag{Name: "duration", Usage: l10n.T("Total video duration in seconds (fixed-duration policy)")},
		&cli.BoolFlag{Name: "stop-at-bottom", Usage: l10n.T("End the scroll the moment the page bottom is reached")},
		&cli.StringFlag{Name: "easing", Usage: l10n.T("Scroll easing curve (linear, ease-out-cubic, ease-in-out-cubic)")},

		// Encoding
		&cli.StringFlag{Name: "quality-preset", Usage: l10n.T("Quality preset (low, medium, high)")},
		&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("Video quality (CRF 0-63, lower is better)")},
		&cli.IntFlag{Name: "bitrate", Usage: l10n.T("Target bitrate in kbps (0 = CRF only)")},

		// Branding
		&cli.BoolFlag{Name: "no-title-card", Usage: l10n.T("Skip the intro title card")},
		&cli.IntFlag{Name: "lead-in-ms", Usage: l10n.T("Duration to hold the title card in milliseconds")},
		&cli.IntFlag{Name: "outro-ms", Usage: l10n.T("Duration to hold the final frame in milliseconds")},

		// Browser
		&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run the browser in visible mode")},
		&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable (falls back to CHROME_PATH env, then system default)")},
		&cli.StringFlag{Name: "user-agent", Usage: l10n.T("Override the browser user agent")},
		&cli.IntFlag{Name: "timeout-sec", Usage: l10n.T("Page load timeout in seconds")},

		// Debug
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},

		// Logging
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
	}
}

func runGenerate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one INPUT argument")
	}
	inputPath := c.Args().First()

	html, err := readDocument(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	orchConfig, err := buildOrchestratorConfig(c, html)
	if err != nil {
		return err
	}

	log := newLogger(c)
	ctx, cancel := signalContext(log)
	defer cancel()

	orch, err := buildOrchestrator(c.String("engine"), c.Bool("debug"), c.String("debug-dir"), log)
	if err != nil {
		return err
	}

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Done: %d frames, %.2f s, %d bytes", result.FrameCount, result.DurationSeconds, result.VideoFileSize))

	if path := c.String("summary"); path != "" {
		if err := writeSummary(path, c, orchConfig, result); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		log.Info(l10n.F("Summary saved to %s", path))
	}

	return nil
}

func runBatch(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one BATCH_FILE argument")
	}

	batch, err := config.LoadBatchFromFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("load batch file: %w", err)
	}
	if n := c.Int("concurrency"); n > 0 {
		batch.Concurrency = n
	}

	log := newLogger(c)
	ctx, cancel := signalContext(log)
	defer cancel()

	log.Info(l10n.F("Running %d jobs with concurrency %d", len(batch.Jobs), batch.Concurrency))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batch.Concurrency)

	for _, job := range batch.Jobs {
		job := job
		g.Go(func() error {
			html, err := readDocument(job.InputPath)
			if err != nil {
				return fmt.Errorf("%s: read input: %w", job.InputPath, err)
			}

			// Each job gets its own browser and encoder: the adapters
			// hold per-session state and are not safe to share.
			orch, err := buildOrchestrator(c.String("engine"), job.Debug, job.DebugDir, log.WithComponent(filepath.Base(job.OutputPath)))
			if err != nil {
				return err
			}

			result, err := orch.Run(gctx, job.ToOrchestratorConfig(html))
			if err != nil {
				return fmt.Errorf("%s: %w", job.OutputPath, err)
			}
			log.Info(l10n.F("Video saved to %s (%d frames)", result.OutputPath, result.FrameCount))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info(l10n.T("Batch completed"))
	return nil
}

// buildOrchestratorConfig resolves the layered configuration: a YAML
// file when given, otherwise preset defaults, then CLI flag overrides.
func buildOrchestratorConfig(c *cli.Context, html string) (orchestrator.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return orchestrator.Config{}, fmt.Errorf("load config: %w", err)
		}
		if c.IsSet("label") {
			cfg.Label = c.String("label")
		}
		cfg.OutputPath = c.String("output")
		if c.IsSet("debug") {
			cfg.Debug = c.Bool("debug")
		}
		return cfg.ToOrchestratorConfig(html), nil
	}

	var builder *promoreel.ConfigBuilder
	switch c.String("preset") {
	case "mobile":
		builder = promoreel.NewMobileConfigBuilder()
	default:
		builder = promoreel.NewConfigBuilder()
	}

	if c.IsSet("width") || c.IsSet("height") {
		builder.WithSize(c.Int("width"), c.Int("height"))
	}
	if c.IsSet("viewport-width") || c.IsSet("viewport-height") {
		cfg := builder.Build()
		w, h := cfg.ViewportWidth, cfg.ViewportHeight
		if c.IsSet("viewport-width") {
			w = c.Int("viewport-width")
		}
		if c.IsSet("viewport-height") {
			h = c.Int("viewport-height")
		}
		builder.WithViewport(w, h)
	}
	if c.IsSet("fps") {
		builder.WithFrameRate(c.Int("fps"))
	}
	if c.IsSet("pause") {
		builder.WithPauseSeconds(c.Float64("pause"))
	}
	if c.IsSet("duration") {
		builder.WithFixedDuration(c.Float64("duration"))
	}
	if c.Bool("stop-at-bottom") {
		speed := builder.Build().ScrollSpeed
		if c.IsSet("speed") {
			speed = c.Float64("speed")
		}
		builder.WithStopAtBottom(speed)
	} else if c.IsSet("speed") {
		builder.WithScrollSpeed(c.Float64("speed"))
	}
	if c.IsSet("easing") {
		builder.WithEasing(c.String("easing"))
	}
	if c.IsSet("quality-preset") {
		builder.WithQualityPreset(promoreel.QualityPreset(c.String("quality-preset")))
	}
	if c.IsSet("quality") {
		builder.WithVideoCRF(c.Int("quality"))
	}
	if c.IsSet("bitrate") {
		builder.WithBitrate(c.Int("bitrate"))
	}
	if c.Bool("no-title-card") {
		builder.WithTitleCard(false)
	}
	if c.IsSet("lead-in-ms") {
		builder.WithLeadInMs(c.Int("lead-in-ms"))
	}
	if c.IsSet("outro-ms") {
		builder.WithOutroMs(c.Int("outro-ms"))
	}
	if c.Bool("no-headless") {
		builder.WithHeadless(false)
	}
	if c.IsSet("chrome-path") {
		builder.WithChromePath(c.String("chrome-path"))
	}
	if c.IsSet("user-agent") {
		builder.WithUserAgent(c.String("user-agent"))
	}
	if c.IsSet("timeout-sec") {
		builder.WithLoadTimeoutSec(c.Int("timeout-sec"))
	}

	cfg := builder.Build()
	return cfg.ToOrchestratorConfig(html, c.String("label"), c.String("output")), nil
}

// buildOrchestrator wires the adapters and stages for one generation job.
func buildOrchestrator(engine string, debug bool, debugDir string, log ports.Logger) (*orchestrator.Orchestrator, error) {
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	clock := realclock.New()
	monitor := sysmonitor.New()

	var browser ports.Browser
	switch engine {
	case "chrome", "":
		browser = chromebrowser.New()
	case "playwright":
		browser = playwrightbrowser.New()
	default:
		return nil, fmt.Errorf("unknown engine %q (chrome or playwright)", engine)
	}

	var sink ports.DebugSink
	if debug {
		if err := fs.MkdirAll(debugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(debugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	pickStore := func(scratchDir string, estimatedBytes uint64) ports.FrameStore {
		if monitor.FitsInMemory(estimatedBytes, 0.5) {
			return framestore.NewMemory()
		}
		log.Warn(l10n.T("Captured frames exceed the memory budget, spilling to disk"))
		return framestore.NewDisk(filepath.Join(scratchDir, "frames"), fs)
	}

	captureStage := capture.New(browser, pickStore, clock, sink, log)
	titleCardStage := titlecard.NewStage(renderer, sink, log)
	encodeStage := encode.NewStage(mp4encoder.New(), renderer, sink, log)

	return orchestrator.New(captureStage, titleCardStage, encodeStage, fs, sink, log), nil
}

func writeSummary(path string, c *cli.Context, cfg orchestrator.Config, result orchestrator.RunResult) error {
	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = cfg.Browser.ViewportWidth
	}
	if height == 0 {
		height = cfg.Browser.ViewportHeight
	}

	summary := summarizer.NewBuilder().
		WithPage(result.PageTitle, cfg.Label, result.PageHeight).
		WithChoreo(summarizer.ChoreoInfo{
			CapturedFrames: result.CapturedFrames,
			CaptureTimeMs:  result.CaptureTimeMs,
		}).
		WithSettings(summarizer.Settings{
			Preset:         c.String("preset"),
			Quality:        c.String("quality-preset"),
			Policy:         string(cfg.Plan.Policy),
			Easing:         string(cfg.Plan.Easing),
			FrameRate:      cfg.Plan.FrameRate,
			ViewportWidth:  cfg.Browser.ViewportWidth,
			ViewportHeight: cfg.Browser.ViewportHeight,
			ScrollSpeed:    cfg.Plan.ScrollSpeed,
		}).
		WithVideo(summarizer.VideoInfo{
			Path:       result.OutputPath,
			FrameCount: result.FrameCount,
			DurationMs: int(result.DurationSeconds * 1000),
			FileSize:   int64(result.VideoFileSize),
			Width:      width,
			Height:     height,
			CRF:        cfg.VideoCRF,
		}).
		Build()

	return summarizer.NewWriter(summarizer.NewMarkdownFormatter()).Write(path, summary)
}

// readDocument reads an HTML document from a file, or from stdin when
// the path is "-".
func readDocument(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newLogger(c *cli.Context) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
}

func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}
