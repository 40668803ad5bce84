package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/batch"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/export"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/job"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
)

type BatchHandler struct {
	queue *job.Queue
	store *settings.Store
}

func NewBatchHandler(queue *job.Queue, store *settings.Store) *BatchHandler {
	return &BatchHandler{queue: queue, store: store}
}

// Submit validates a batch request and queues it for the worker
func (h *BatchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var params job.BatchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(params.Inputs) == 0 {
		jsonError(w, "inputs is required", http.StatusBadRequest)
		return
	}

	cfg := h.store.Current()
	if params.Format == "" {
		params.Format = cfg.Export.DefaultFormat
	}
	if !export.Supported(params.Format) {
		domainError(w, fmt.Errorf("%w: %q", export.ErrExportFormatUnavailable, params.Format))
		return
	}
	if max := cfg.Performance.Batch.MaxFiles; len(params.Inputs) > max {
		domainError(w, fmt.Errorf("%w: %d inputs, limit %d", batch.ErrTooManyFiles, len(params.Inputs), max))
		return
	}

	j, err := h.queue.Enqueue(job.TypeBatch, "", params)
	if err != nil {
		jsonError(w, "failed to queue batch: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}
