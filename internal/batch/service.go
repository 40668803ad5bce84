package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/cache"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/job"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

// JobService runs queued batch jobs. Each run builds its pipeline from the
// live settings, so configuration changes apply to the next job without a
// restart.
type JobService struct {
	Store     *settings.Store
	Workspace *storage.Workspace
	Cache     *cache.Cache // optional
	OutputDir string
}

// HandleJob processes one batch job from the queue
func (s *JobService) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.BatchParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	runner.OnProgress = func(done, total int) {
		updateProgress(float64(done) / float64(total))
	}

	// Inputs are workspace-relative; resolve before touching the filesystem.
	inputs := make([]string, len(params.Inputs))
	for i, rel := range params.Inputs {
		abs, err := s.Workspace.Resolve(rel)
		if err != nil {
			return fmt.Errorf("input %q: %w", rel, err)
		}
		inputs[i] = abs
	}

	report, err := runner.Run(ctx, inputs, s.OutputDir, params.Format)
	if err != nil {
		return err
	}

	// Report workspace-relative inputs and bare artifact names, not
	// server paths.
	for i := range report.Results {
		report.Results[i].Input = params.Inputs[i]
		if report.Results[i].Output != "" {
			report.Results[i].Output = filepath.Base(report.Results[i].Output)
		}
	}

	result, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	j.Result = result

	if report.Failed > 0 && report.Succeeded == 0 {
		return fmt.Errorf("all %d files failed", report.Failed)
	}
	updateProgress(1.0)
	return nil
}

// runner assembles the pipeline from the current settings
func (s *JobService) runner() (*Runner, error) {
	cfg := s.Store.Current()

	detector, err := cfg.NewDetector()
	if err != nil {
		return nil, fmt.Errorf("detector: %w", err)
	}
	analyzer, err := analysis.New(detector, cfg.AnalysisOptions())
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	t, err := cfg.Theme()
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	pipe := &Pipeline{
		Analyzer: analyzer,
		Resolver: theme.NewResolver(t, cfg.ResolverOptions()),
		Cache:    s.Cache,
		Profiles: cfg.Export.Profiles,
	}
	return New(pipe,
		cfg.Performance.Batch.MaxFiles,
		cfg.Performance.Batch.MaxWorkers,
		cfg.Performance.Batch.Parallel,
	), nil
}
