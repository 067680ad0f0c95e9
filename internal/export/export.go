package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/campus/internal/events"
	"github.com/alfredjeanlab/campus/internal/idgen"
	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/store"
)

// Exporter delivers CSV exports and records them. Log and Publisher are
// optional.
type Exporter struct {
	Dest      Destination
	Log       store.ExportLog
	Publisher events.Publisher
	Logger    *slog.Logger
	Actor     string
	Now       func() time.Time
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Export serializes records (the filtered set, not one page) and writes
// them to the destination. Audit and event failures are logged only.
func Export[T any](ctx context.Context, e *Exporter, view string, columns []Column[T], records []T) (*model.ExportRecord, error) {
	if e.Dest == nil {
		return nil, fmt.Errorf("export %s: no destination configured", view)
	}
	data, err := Encode(columns, records)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", view, err)
	}

	now := e.now()
	name := FileName(view, now)
	location, err := e.Dest.Write(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", view, err)
	}

	id, err := idgen.ExportID()
	if err != nil {
		return nil, err
	}
	rec := &model.ExportRecord{
		ID:          id,
		View:        view,
		FileName:    name,
		Destination: location,
		Rows:        len(records),
		Actor:       e.Actor,
		CreatedAt:   now.UTC(),
	}
	e.logger().Info("export written", "view", view, "rows", rec.Rows, "destination", location)

	if e.Log != nil {
		if err := e.Log.RecordExport(ctx, rec); err != nil {
			e.logger().Warn("recording export", "id", rec.ID, "error", err)
		}
	}
	events.Emit(ctx, e.Publisher, e.logger(), events.TopicExportCompleted, events.ExportCompleted{Export: rec})
	return rec, nil
}
