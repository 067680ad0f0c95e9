package dashboard

import (
	"context"
	"sync"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/model"
)

// fakeClient is an in-memory PortalClient. Each list method returns its
// slice or its error; calls records mutating calls in order.
type fakeClient struct {
	mu sync.Mutex

	jobs         []model.Job
	applications []model.Application
	offers       []model.Offer
	companies    []model.Company
	assigned     []model.Company
	students     []model.Student

	listErr      error
	assignedErr  error
	mutateErr    error
	block        chan struct{} // when set, list calls wait on it or ctx
	calls        []string
	lastJobID    string
	lastOfferFor model.Role
}

var _ client.PortalClient = (*fakeClient)(nil)

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func list[T any](ctx context.Context, f *fakeClient, items []T, err error) ([]T, error) {
	if werr := f.wait(ctx); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

func (f *fakeClient) ListJobs(ctx context.Context) ([]model.Job, error) {
	return list(ctx, f, f.jobs, f.listErr)
}

func (f *fakeClient) ListPostedJobs(ctx context.Context) ([]model.Job, error) {
	return list(ctx, f, f.jobs, f.listErr)
}

func (f *fakeClient) GetJob(ctx context.Context, id string) (*model.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "Job not found", FromServer: true}
}

func (f *fakeClient) ListApplications(ctx context.Context, jobID string) ([]model.Application, error) {
	f.mu.Lock()
	f.lastJobID = jobID
	f.mu.Unlock()
	return list(ctx, f, f.applications, f.listErr)
}

func (f *fakeClient) ListMyApplications(ctx context.Context) ([]model.Application, error) {
	return list(ctx, f, f.applications, f.listErr)
}

func (f *fakeClient) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	f.record("status " + id + " " + status.String())
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return &model.Application{ID: id, Status: status}, nil
}

func (f *fakeClient) Apply(ctx context.Context, req *client.ApplyRequest) (*model.Application, error) {
	f.record("apply " + req.JobID)
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return &model.Application{ID: "a-new", JobID: req.JobID, Status: model.ApplicationApplied}, nil
}

func (f *fakeClient) WithdrawApplication(ctx context.Context, id string) error {
	f.record("withdraw " + id)
	return f.mutateErr
}

func (f *fakeClient) ListOffers(ctx context.Context, role model.Role) ([]model.Offer, error) {
	f.mu.Lock()
	f.lastOfferFor = role
	f.mu.Unlock()
	return list(ctx, f, f.offers, f.listErr)
}

func (f *fakeClient) RespondToOffer(ctx context.Context, id string, status model.OfferStatus) (*model.Offer, error) {
	f.record("respond " + id + " " + status.String())
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return &model.Offer{ID: id, Status: status}, nil
}

func (f *fakeClient) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return list(ctx, f, f.companies, f.listErr)
}

func (f *fakeClient) ListAssignedCompanies(ctx context.Context) ([]model.Company, error) {
	return list(ctx, f, f.assigned, f.assignedErr)
}

func (f *fakeClient) AssignCompany(ctx context.Context, id string) error {
	f.record("assign " + id)
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.companies {
		if c.ID == id {
			f.assigned = append(f.assigned, c)
		}
	}
	return nil
}

func (f *fakeClient) UnassignCompany(ctx context.Context, id string) error {
	f.record("unassign " + id)
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.assigned[:0]
	for _, c := range f.assigned {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.assigned = kept
	return nil
}

func (f *fakeClient) ListStudents(ctx context.Context) ([]model.Student, error) {
	return list(ctx, f, f.students, f.listErr)
}

func (f *fakeClient) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	return nil, &client.APIError{StatusCode: 404, Message: "Not Found"}
}

func (f *fakeClient) Health(ctx context.Context) (string, error) { return "ok", nil }

func (f *fakeClient) Close() error { return nil }

// capturePublisher records published topics.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }
