package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/campus/internal/model"
)

// ErrNotFound is returned when a requested export record does not exist.
var ErrNotFound = errors.New("not found")

// ExportLog defines the persistence interface for the export audit log.
type ExportLog interface {
	RecordExport(ctx context.Context, rec *model.ExportRecord) error
	GetExport(ctx context.Context, id string) (*model.ExportRecord, error)
	// ListExports returns the newest records first. An empty view lists
	// every view; limit <= 0 means no limit.
	ListExports(ctx context.Context, view string, limit int) ([]*model.ExportRecord, error)

	// Lifecycle
	Close() error
}
