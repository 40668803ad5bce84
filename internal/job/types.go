package job

import (
	"context"
	"encoding/json"
	"time"
)

// Type names the kind of work a job performs
type Type string

const (
	TypeAnalyze   Type = "analyze"
	TypeExport    Type = "export"
	TypeConvert   Type = "convert"
	TypeBatch     Type = "batch"
	TypeTranslate Type = "translate"
)

// Status is the lifecycle state of a job
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Job is a queued unit of subtitle work
type Job struct {
	ID          string          `json:"id"`
	Type        Type            `json:"type"`
	Status      Status          `json:"status"`
	FilePath    string          `json:"file_path"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// ExportParams drive an export job: render one stored subtitle to a format
type ExportParams struct {
	Format string `json:"format"`
}

// BatchParams drive a batch job over multiple workspace files
type BatchParams struct {
	Inputs []string `json:"inputs"`
	Format string   `json:"format"`
}

// TranslateParams drive a translation job
type TranslateParams struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Provider   string `json:"provider"` // "deepl", "openai"
}

// OutputResult is the output of jobs that produce a single artifact
type OutputResult struct {
	OutputPath string  `json:"output_path"`
	Duration   float64 `json:"duration"` // processing time in seconds
}

// Handler processes a job. The context is cancelled when the job is
// cancelled or the queue shuts down.
type Handler func(ctx context.Context, j *Job, updateProgress func(float64)) error
