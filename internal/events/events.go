package events

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/campus/internal/model"
)

// Event topic constants
const (
	TopicApplicationCreated       = "campus.application.created"
	TopicApplicationStatusUpdated = "campus.application.status_updated"
	TopicApplicationWithdrawn     = "campus.application.withdrawn"

	TopicOfferResponded = "campus.offer.responded"

	TopicCompanyAssigned   = "campus.company.assigned"
	TopicCompanyUnassigned = "campus.company.unassigned"

	TopicExportCompleted = "campus.export.completed"

	// TopicAll matches every campus topic.
	TopicAll = "campus.>"
)

// Event types

type ApplicationCreated struct {
	Application *model.Application `json:"application"`
}

type ApplicationStatusUpdated struct {
	ApplicationID string                  `json:"application_id"`
	From          model.ApplicationStatus `json:"from"`
	To            model.ApplicationStatus `json:"to"`
}

type ApplicationWithdrawn struct {
	ApplicationID string `json:"application_id"`
}

type OfferResponded struct {
	OfferID string            `json:"offer_id"`
	Status  model.OfferStatus `json:"status"`
}

type CompanyAssignment struct {
	CompanyID string `json:"company_id"`
}

type ExportCompleted struct {
	Export *model.ExportRecord `json:"export"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Emit publishes event and logs a failure instead of returning it. A
// mutation that already succeeded against the backend is never failed by
// the event bus.
func Emit(ctx context.Context, pub Publisher, logger *slog.Logger, topic string, event any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, topic, event); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("publishing event", "topic", topic, "error", err)
	}
}

// NoopPublisher discards events; it stands in when CAMPUS_NATS_URL is unset.
type NoopPublisher struct{}

func (*NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (*NoopPublisher) Close() error { return nil }
