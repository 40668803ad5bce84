package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/export"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/job"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
)

func testJobService(t *testing.T) (*JobService, *storage.Workspace) {
	t.Helper()

	store, err := settings.NewStore(filepath.Join(t.TempDir(), "settings.yml"), nil)
	if err != nil {
		t.Fatalf("settings store: %v", err)
	}
	ws, err := storage.NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	return &JobService{Store: store, Workspace: ws, OutputDir: t.TempDir()}, ws
}

func batchJob(t *testing.T, params job.BatchParams) *job.Job {
	t.Helper()
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return &job.Job{ID: "b1", Type: job.TypeBatch, Params: raw}
}

func TestJobServiceHandleJob(t *testing.T) {
	svc, ws := testJobService(t)
	for _, name := range []string{"a.srt", "b.srt"} {
		if err := ws.Save(name, []byte(sampleSRT)); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	j := batchJob(t, job.BatchParams{Inputs: []string{"a.srt", "b.srt"}, Format: export.FormatStandardSRT})
	var last float64
	if err := svc.HandleJob(context.Background(), j, func(p float64) { last = p }); err != nil {
		t.Fatalf("HandleJob: %v", err)
	}
	if last != 1.0 {
		t.Errorf("final progress = %v", last)
	}

	var report Report
	if err := json.Unmarshal(j.Result, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if report.Succeeded != 2 || report.Failed != 0 {
		t.Fatalf("report counts = %d/%d", report.Succeeded, report.Failed)
	}
	if report.Results[0].Input != "a.srt" || report.Results[0].Output != "a.srt" {
		t.Errorf("paths not relativized: %+v", report.Results[0])
	}

	if _, err := os.Stat(filepath.Join(svc.OutputDir, "a.srt")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestJobServiceRejectsTraversal(t *testing.T) {
	svc, _ := testJobService(t)
	j := batchJob(t, job.BatchParams{Inputs: []string{"../outside.srt"}, Format: export.FormatStandardSRT})
	if err := svc.HandleJob(context.Background(), j, func(float64) {}); err == nil {
		t.Fatal("traversal input accepted")
	}
}

func TestJobServiceAllFilesFailed(t *testing.T) {
	svc, ws := testJobService(t)
	if err := ws.Save("bad.srt", []byte("not a subtitle")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	j := batchJob(t, job.BatchParams{Inputs: []string{"bad.srt"}, Format: export.FormatStandardSRT})
	if err := svc.HandleJob(context.Background(), j, func(float64) {}); err == nil {
		t.Fatal("all-failed batch reported success")
	}
}
