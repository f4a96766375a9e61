// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/store"
)

const defaultCleanupQueueSize = 256

// FileCleanupWorker removes uploaded files in the background after their
// submission or form is gone. Requests are queued; when the queue is full
// the paths are dropped and logged so the caller never waits on storage.
type FileCleanupWorker struct {
	uploads store.UploadStorage
	queue   chan cleanupTask

	logger *logger.Logger
}

func NewFileCleanupWorker(uploads store.UploadStorage, queueSize int, log *logger.Logger) *FileCleanupWorker {
	if queueSize <= 0 {
		queueSize = defaultCleanupQueueSize
	}

	return &FileCleanupWorker{
		uploads: uploads,
		queue:   make(chan cleanupTask, queueSize),
		logger:  log,
	}
}

type cleanupTask struct {
	formID string
	path   string
}

// Clean enqueues uploads of formID for removal. It never blocks.
func (w *FileCleanupWorker) Clean(ctx context.Context, formID string, paths []string) {
	for _, path := range paths {
		if path == "" {
			continue
		}

		select {
		case w.queue <- cleanupTask{formID: formID, path: path}:
		default:
			logger.FromContext(ctx).Warn().
				Str("func", "FileCleanupWorker.Clean").
				Str("form_id", formID).
				Str("path", path).
				Msg("cleanup queue is full, file left in place")
		}
	}
}

// Run removes queued files until ctx is cancelled, then drains what is
// left in the queue before returning.
func (w *FileCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Int("queue_size", cap(w.queue)).Msg("file cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.logger.Info().Msg("file cleanup worker stopped")
			return
		case task := <-w.queue:
			w.remove(ctx, task)
		}
	}
}

func (w *FileCleanupWorker) drain() {
	// ctx is already cancelled; removals get their own background context.
	ctx := context.Background()
	for {
		select {
		case task := <-w.queue:
			w.remove(ctx, task)
		default:
			return
		}
	}
}

func (w *FileCleanupWorker) remove(ctx context.Context, task cleanupTask) {
	if err := w.uploads.Remove(ctx, task.formID, task.path); err != nil {
		w.logger.Err(err).
			Str("func", "FileCleanupWorker.remove").
			Str("form_id", task.formID).
			Str("path", task.path).
			Msg("failed to remove uploaded file")
		return
	}

	w.logger.Debug().Str("form_id", task.formID).Str("path", task.path).Msg("uploaded file removed")
}
