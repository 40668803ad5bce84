package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/cache"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/export"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

// ErrTooManyFiles is returned when a batch exceeds the configured file cap
var ErrTooManyFiles = errors.New("too many files for one batch")

// Pipeline is the per-file parse, analyze, export chain shared by batch
// runs and watch mode.
type Pipeline struct {
	Analyzer *analysis.Analyzer
	Resolver *theme.Resolver
	Cache    *cache.Cache // optional
	Profiles map[string]export.Options
}

// FileResult is one file's outcome in the batch report
type FileResult struct {
	Input    string `json:"input"`
	Output   string `json:"output,omitempty"`
	Language string `json:"language,omitempty"`
	Cues     int    `json:"cues"`
	Words    int    `json:"words"`
	Error    string `json:"error,omitempty"`
}

// Report aggregates one batch run
type Report struct {
	Results   []FileResult `json:"results"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	ElapsedMS int64        `json:"elapsed_ms"`
}

// Runner applies the pipeline across multiple inputs under the configured
// file and worker caps.
type Runner struct {
	pipe     *Pipeline
	maxFiles int
	workers  int
	parallel bool

	// OnProgress, when set, is called after each file completes with the
	// number done so far and the total.
	OnProgress func(done, total int)
}

// New builds a runner. maxFiles and maxWorkers fall back to 10 and 1.
func New(pipe *Pipeline, maxFiles, maxWorkers int, parallel bool) *Runner {
	if maxFiles < 1 {
		maxFiles = 10
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Runner{pipe: pipe, maxFiles: maxFiles, workers: maxWorkers, parallel: parallel}
}

// Run processes the inputs and writes one artifact per file into outputDir.
// The report carries one result per input at the input's index regardless
// of completion order. Exceeding the file cap fails the whole batch.
func (r *Runner) Run(ctx context.Context, inputs []string, outputDir, format string) (*Report, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no input files")
	}
	if len(inputs) > r.maxFiles {
		return nil, fmt.Errorf("%w: %d inputs, limit %d", ErrTooManyFiles, len(inputs), r.maxFiles)
	}
	if !export.Supported(format) {
		return nil, fmt.Errorf("%w: %q", export.ErrExportFormatUnavailable, format)
	}

	workers := r.workers
	if !r.parallel {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	started := time.Now()
	results := make([]FileResult, len(inputs))
	var done atomic.Int32

	var wg sync.WaitGroup
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := r.pipe.ProcessFile(ctx, input, outputDir, format)
			if err != nil {
				res.Input = input
				res.Error = err.Error()
			}
			results[i] = res
			if r.OnProgress != nil {
				r.OnProgress(int(done.Add(1)), len(inputs))
			}
		}(i, input)
	}
	wg.Wait()

	report := &Report{Results: results, ElapsedMS: time.Since(started).Milliseconds()}
	for _, res := range results {
		if res.Error == "" {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	log.Printf("[batch] %d files done (%d ok, %d failed) in %dms",
		len(inputs), report.Succeeded, report.Failed, report.ElapsedMS)
	return report, nil
}

// ProcessFile runs one input through the pipeline and writes the export
// artifact next to its siblings in outputDir.
func (p *Pipeline) ProcessFile(ctx context.Context, input, outputDir, format string) (FileResult, error) {
	res := FileResult{Input: input}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}
	result, err := p.analyze(input, data)
	if err != nil {
		return res, err
	}
	res.Language = result.Language
	res.Cues = len(result.Cues)
	res.Words = len(result.Words)

	outPath := filepath.Join(outputDir, OutputName(input, format))
	req := export.Request{Result: result, Resolver: p.Resolver, Options: p.Profiles[format]}
	if err := export.RenderFile(outPath, format, req); err != nil {
		return res, err
	}
	res.Output = outPath
	return res, nil
}

// analyze parses and scores one file, going through the cache when one is
// configured. The cache key is the raw content; the analyzer's options are
// fixed for the pipeline's lifetime.
func (p *Pipeline) analyze(name string, data []byte) (*analysis.Result, error) {
	var key string
	if p.Cache != nil {
		key = cache.Key(string(data))
		if hit, ok := p.Cache.Lookup(key); ok {
			return hit, nil
		}
	}

	cues, err := subtitle.Parse(name, data)
	if err != nil {
		return nil, err
	}
	result, err := p.Analyzer.Analyze(cues)
	if err != nil {
		return nil, err
	}

	if p.Cache != nil {
		p.Cache.Store(key, result)
	}
	return result, nil
}

// OutputName maps an input path to the artifact file name for a format
func OutputName(input, format string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + export.Extension(format)
}
