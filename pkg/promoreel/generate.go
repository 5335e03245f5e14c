package promoreel

import (
	"context"
	"path/filepath"

	"github.com/user/promoreel/pkg/adapters/chromebrowser"
	"github.com/user/promoreel/pkg/adapters/framestore"
	"github.com/user/promoreel/pkg/adapters/ggrenderer"
	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/adapters/mp4encoder"
	"github.com/user/promoreel/pkg/adapters/nullsink"
	"github.com/user/promoreel/pkg/adapters/osfilesystem"
	"github.com/user/promoreel/pkg/adapters/realclock"
	"github.com/user/promoreel/pkg/adapters/sysmonitor"
	"github.com/user/promoreel/pkg/orchestrator"
	"github.com/user/promoreel/pkg/ports"
	"github.com/user/promoreel/pkg/stages/capture"
	"github.com/user/promoreel/pkg/stages/encode"
	"github.com/user/promoreel/pkg/stages/titlecard"
)

// Result describes a completed generation run.
type Result struct {
	OutputPath      string
	FrameCount      int
	DurationSeconds float64
	PageHeight      int
}

// Generate creates a promo video from an HTML document using the
// desktop preset. The label is the business name shown on the title
// card and the frame overlay; an empty label disables both.
func Generate(ctx context.Context, html, label, outputPath string) (Result, error) {
	return GenerateWithConfig(ctx, html, label, outputPath, NewConfigBuilder().Build())
}

// GenerateWithConfig is Generate with explicit configuration.
func GenerateWithConfig(ctx context.Context, html, label, outputPath string, cfg Config) (Result, error) {
	orch := newDefaultOrchestrator(logger.NewNoop())

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig(html, label, outputPath))
	if err != nil {
		return Result{}, err
	}

	return Result{
		OutputPath:      result.OutputPath,
		FrameCount:      result.FrameCount,
		DurationSeconds: result.DurationSeconds,
		PageHeight:      result.PageHeight,
	}, nil
}

// newDefaultOrchestrator wires the production adapters: Chrome for
// rendering, ffmpeg+mp4ff for encoding, with frames spilling to disk
// when they would not fit in memory.
func newDefaultOrchestrator(log ports.Logger) *orchestrator.Orchestrator {
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	sink := nullsink.New()
	monitor := sysmonitor.New()

	pickStore := func(scratchDir string, estimatedBytes uint64) ports.FrameStore {
		if monitor.FitsInMemory(estimatedBytes, 0.5) {
			return framestore.NewMemory()
		}
		return framestore.NewDisk(filepath.Join(scratchDir, "frames"), fs)
	}

	return orchestrator.New(
		capture.New(chromebrowser.New(), pickStore, realclock.New(), sink, log),
		titlecard.NewStage(renderer, sink, log),
		encode.NewStage(mp4encoder.New(), renderer, sink, log),
		fs,
		sink,
		log,
	)
}
