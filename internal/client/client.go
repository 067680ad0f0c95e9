// Package client provides the interface dashboards use to talk to the
// placement portal backend and an HTTP/JSON implementation of it.
package client

import (
	"context"

	"github.com/alfredjeanlab/campus/internal/model"
)

// TokenSource supplies the bearer token for outgoing requests. The session
// is handed to the client explicitly rather than looked up globally.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token returns the token.
func (t StaticToken) Token() string { return string(t) }

// PortalClient is the interface every dashboard uses to reach the portal
// backend. It is implemented by HTTPClient.
type PortalClient interface {
	// Jobs
	ListJobs(ctx context.Context) ([]model.Job, error)
	ListPostedJobs(ctx context.Context) ([]model.Job, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)

	// Applications
	ListApplications(ctx context.Context, jobID string) ([]model.Application, error)
	ListMyApplications(ctx context.Context) ([]model.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error)
	Apply(ctx context.Context, req *ApplyRequest) (*model.Application, error)
	WithdrawApplication(ctx context.Context, id string) error

	// Offers
	ListOffers(ctx context.Context, role model.Role) ([]model.Offer, error)
	RespondToOffer(ctx context.Context, id string, status model.OfferStatus) (*model.Offer, error)

	// Companies
	ListCompanies(ctx context.Context) ([]model.Company, error)
	ListAssignedCompanies(ctx context.Context) ([]model.Company, error)
	AssignCompany(ctx context.Context, id string) error
	UnassignCompany(ctx context.Context, id string) error

	// Students
	ListStudents(ctx context.Context) ([]model.Student, error)
	GetStudent(ctx context.Context, id string) (*model.Student, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ApplyRequest holds a student's application to a job.
type ApplyRequest struct {
	JobID       string `json:"jobId"`
	ResumeLink  string `json:"resumeLink"`
	CoverLetter string `json:"coverLetter,omitempty"`
}

// Validate checks the request before it is sent.
func (r *ApplyRequest) Validate() error {
	return model.ValidateApply(r.JobID, r.ResumeLink)
}
