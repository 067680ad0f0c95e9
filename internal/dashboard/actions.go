package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/events"
	"github.com/alfredjeanlab/campus/internal/listview"
	"github.com/alfredjeanlab/campus/internal/model"
)

// optimistic applies patch locally, then runs call. On failure the patch
// is rolled back and the user notified; on success it is committed.
func optimistic[T model.Record](ctx context.Context, d *Dashboard[T], id, field string, patch func(*T), call func(context.Context) error, fallback string) error {
	pending, err := d.Store.Patch(id, field, patch)
	if err != nil {
		return fmt.Errorf("%s %s: %w", d.View.Noun, id, err)
	}
	if err := call(ctx); err != nil {
		if rbErr := pending.Rollback(); rbErr != nil {
			d.logger().Warn("rollback", "id", id, "error", rbErr)
		}
		d.notifier().Error(err, fallback)
		return err
	}
	return pending.Commit()
}

// SetApplicationStatus moves an application to status. The row changes
// immediately and reverts if the server rejects the update.
func SetApplicationStatus(ctx context.Context, d *Dashboard[model.Application], id string, status model.ApplicationStatus) error {
	if err := model.ValidateStatusUpdate(id, status); err != nil {
		d.notifier().Error(err, ValidationMessage(err))
		return err
	}
	var from model.ApplicationStatus
	var updated *model.Application
	err := optimistic(ctx, d, id, "status",
		func(a *model.Application) {
			from = a.Status
			a.Status = status
		},
		func(ctx context.Context) (err error) {
			updated, err = d.Client.UpdateApplicationStatus(ctx, id, status)
			return err
		},
		"Failed to update application status",
	)
	if err != nil {
		return err
	}
	if updated != nil && updated.Status != "" && updated.Status != status {
		d.logger().Warn("server reported a different status", "id", id, "sent", status, "got", updated.Status)
	}
	d.notifier().Success(fmt.Sprintf("Application %s moved to %s", id, status))
	events.Emit(ctx, d.Publisher, d.logger(), events.TopicApplicationStatusUpdated,
		events.ApplicationStatusUpdated{ApplicationID: id, From: from, To: status})
	return nil
}

// Withdraw withdraws one of the student's applications.
func Withdraw(ctx context.Context, d *Dashboard[model.Application], id string) error {
	err := optimistic(ctx, d, id, "status",
		func(a *model.Application) { a.Status = model.ApplicationWithdrawn },
		func(ctx context.Context) error { return d.Client.WithdrawApplication(ctx, id) },
		"Failed to withdraw application",
	)
	if err != nil {
		return err
	}
	d.notifier().Success("Application withdrawn")
	events.Emit(ctx, d.Publisher, d.logger(), events.TopicApplicationWithdrawn,
		events.ApplicationWithdrawn{ApplicationID: id})
	return nil
}

// RespondToOffer records the student's answer to an offer.
func RespondToOffer(ctx context.Context, d *Dashboard[model.Offer], id string, answer model.OfferStatus) error {
	if err := model.ValidateOfferResponse(id, answer); err != nil {
		d.notifier().Error(err, ValidationMessage(err))
		return err
	}
	err := optimistic(ctx, d, id, "status",
		func(o *model.Offer) { o.Status = answer },
		func(ctx context.Context) error {
			_, err := d.Client.RespondToOffer(ctx, id, answer)
			return err
		},
		"Failed to respond to offer",
	)
	if err != nil {
		return err
	}
	d.notifier().Success(fmt.Sprintf("Offer %s", answer))
	events.Emit(ctx, d.Publisher, d.logger(), events.TopicOfferResponded,
		events.OfferResponded{OfferID: id, Status: answer})
	return nil
}

// SetAssignment assigns or unassigns a company to the officer and then
// reloads the companies view so the assigned marks come from the server.
func SetAssignment(ctx context.Context, d *Dashboard[model.Company], id string, assign bool) error {
	call, topic, verb := d.Client.AssignCompany, events.TopicCompanyAssigned, "assigned"
	if !assign {
		call, topic, verb = d.Client.UnassignCompany, events.TopicCompanyUnassigned, "unassigned"
	}
	if err := call(ctx, id); err != nil {
		d.notifier().Error(err, "Failed to update assignment")
		return err
	}
	d.notifier().Success(fmt.Sprintf("Company %s %s", id, verb))
	events.Emit(ctx, d.Publisher, d.logger(), topic, events.CompanyAssignment{CompanyID: id})
	return d.Load(ctx)
}

// Apply submits a job application. Invalid input is reported and nothing
// is sent.
func Apply(ctx context.Context, deps Deps, req *client.ApplyRequest) (*model.Application, error) {
	if err := req.Validate(); err != nil {
		deps.notifier().Error(err, ValidationMessage(err))
		return nil, err
	}
	app, err := deps.Client.Apply(ctx, req)
	if err != nil {
		deps.notifier().Error(err, "Failed to submit application")
		return nil, err
	}
	deps.notifier().Success("Application submitted")
	events.Emit(ctx, deps.Publisher, deps.logger(), events.TopicApplicationCreated, events.ApplicationCreated{Application: app})
	return app, nil
}

// Page moves the view to page n, reporting whether it changed.
func (d *Dashboard[T]) Page(n int) bool {
	return d.Store.Goto(n)
}

// Filter replaces the view's criteria.
func (d *Dashboard[T]) Filter(c listview.Criteria) {
	d.Store.SetCriteria(c)
}

// ValidationMessage renders field errors as "field problem; field problem".
func ValidationMessage(err error) string {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	parts := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		parts[i] = fe.Field + " " + fe.Err.Error()
	}
	return strings.Join(parts, "; ")
}
