// Package dashboard wires each role's list views to the portal client: it
// defines the per-view field configuration and runs loads and mutations
// through a listview.Store.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/events"
	"github.com/alfredjeanlab/campus/internal/export"
	"github.com/alfredjeanlab/campus/internal/listview"
	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/notify"
)

// View is the static description of one list view.
type View[T model.Record] struct {
	Name     string
	Role     model.Role
	Title    string
	PageSize int
	Fields   listview.Fields[T]
	// Columns drive both the table and the CSV export.
	Columns []export.Column[T]
	// Fallback is shown when a load fails without a server message.
	Fallback string
	// Noun names the records in empty-state messages ("jobs").
	Noun  string
	Fetch func(ctx context.Context, c client.PortalClient) ([]T, error)
}

// Deps are the collaborators every dashboard shares.
type Deps struct {
	Client    client.PortalClient
	Notifier  notify.Notifier
	Publisher events.Publisher
	Logger    *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d Deps) notifier() notify.Notifier {
	if d.Notifier != nil {
		return d.Notifier
	}
	return &notify.Recorder{}
}

// Dashboard is a live view: its description, its store and its deps.
type Dashboard[T model.Record] struct {
	View  *View[T]
	Store *listview.Store[T]
	Deps
}

// New creates a dashboard with an idle store.
func New[T model.Record](v *View[T], deps Deps) *Dashboard[T] {
	store := listview.NewStore(v.Name, v.PageSize, v.Fields, recordID[T], listview.WithLogger(deps.logger()))
	return &Dashboard[T]{View: v, Store: store, Deps: deps}
}

func recordID[T model.Record](r T) string { return r.RecordID() }

// Load fetches the view's records. A failure is shown to the user, recorded
// in the store and returned; records from an earlier load are kept. A load
// superseded by a newer one is discarded without a notification.
func (d *Dashboard[T]) Load(ctx context.Context) error {
	f, fctx := d.Store.Begin(ctx)
	data, err := d.View.Fetch(fctx, d.Client)
	if err != nil {
		msg := client.UserMessage(err, d.View.Fallback)
		if d.Store.Fail(f, err, msg) {
			d.notifier().Error(err, d.View.Fallback)
		}
		return err
	}
	d.Store.Succeed(f, data)
	return nil
}

// EmptyMessage explains an empty window, or returns "" when there is
// something to show.
func (d *Dashboard[T]) EmptyMessage() string {
	switch d.Store.Empty() {
	case listview.EmptyNoData:
		return "No " + d.View.Noun + " found."
	case listview.EmptyNoMatches:
		return "No " + d.View.Noun + " match the current filters."
	}
	return ""
}

// Export writes the filtered set, not just the current page.
func (d *Dashboard[T]) Export(ctx context.Context, e *export.Exporter) (*model.ExportRecord, error) {
	rec, err := export.Export(ctx, e, d.View.Name, d.View.Columns, d.Store.Filtered())
	if err != nil {
		d.notifier().Error(err, "Failed to export "+d.View.Noun)
		return nil, err
	}
	return rec, nil
}
