package dashboard

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/export"
	"github.com/alfredjeanlab/campus/internal/listview"
	"github.com/alfredjeanlab/campus/internal/model"
)

// View names.
const (
	ViewHRJobs              = "hr-jobs"
	ViewHRApplications      = "hr-applications"
	ViewHROffers            = "hr-offers"
	ViewOfficerCompanies    = "officer-companies"
	ViewOfficerStudents     = "officer-students"
	ViewOfficerOffers       = "officer-offers"
	ViewStudentJobs         = "student-jobs"
	ViewStudentApplications = "student-applications"
	ViewStudentOffers       = "student-offers"
)

// Names lists every view in dashboard order.
var Names = []string{
	ViewHRJobs, ViewHRApplications, ViewHROffers,
	ViewOfficerCompanies, ViewOfficerStudents, ViewOfficerOffers,
	ViewStudentJobs, ViewStudentApplications, ViewStudentOffers,
}

// --- accessors shared by several views ---

func text(s string) (string, bool) { return s, s != "" }

func number(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func instant(p *time.Time) (time.Time, bool) {
	if p == nil || p.IsZero() {
		return time.Time{}, false
	}
	return *p, true
}

func fmtNumber(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func fmtDate(p *time.Time) string {
	if p == nil || p.IsZero() {
		return ""
	}
	return p.Format(time.DateOnly)
}

func col[T any](header string, fn func(T) string) export.Column[T] {
	return export.Column[T]{Header: header, Value: fn}
}

// --- jobs ---

var jobFieldsHR = listview.Fields[model.Job]{
	Equality: map[string]func(model.Job) string{
		"status":  func(j model.Job) string { return j.Status.String() },
		"jobType": func(j model.Job) string { return j.JobType.String() },
	},
	Searchable: []listview.SearchField[model.Job]{
		{Name: "title", Value: func(j model.Job) (string, bool) { return text(j.Title) }},
		{Name: "location", Value: func(j model.Job) (string, bool) { return text(j.Location) }},
	},
	Ranges: map[string]listview.RangeField[model.Job]{
		"salary":   listview.NumberField(func(j model.Job) (float64, bool) { return number(j.Salary) }),
		"deadline": listview.TimeField(func(j model.Job) (time.Time, bool) { return instant(j.Deadline) }),
	},
}

var jobFieldsStudent = listview.Fields[model.Job]{
	Equality: map[string]func(model.Job) string{
		"jobType":  func(j model.Job) string { return j.JobType.String() },
		"location": func(j model.Job) string { return j.Location },
	},
	Searchable: []listview.SearchField[model.Job]{
		{Name: "title", Value: func(j model.Job) (string, bool) { return text(j.Title) }},
		{Name: "companyName", Value: func(j model.Job) (string, bool) { return text(j.CompanyName) }},
		{Name: "location", Value: func(j model.Job) (string, bool) { return text(j.Location) }},
	},
	Ranges: jobFieldsHR.Ranges,
}

var jobColumns = []export.Column[model.Job]{
	col("ID", func(j model.Job) string { return j.ID }),
	col("Title", func(j model.Job) string { return j.Title }),
	col("Company", func(j model.Job) string { return j.CompanyName }),
	col("Location", func(j model.Job) string { return j.Location }),
	col("Type", func(j model.Job) string { return j.JobType.String() }),
	col("Status", func(j model.Job) string { return j.Status.String() }),
	col("Salary (LPA)", func(j model.Job) string { return fmtNumber(j.Salary) }),
	col("Deadline", func(j model.Job) string { return fmtDate(j.Deadline) }),
}

// HRJobs lists the jobs the HR user has posted.
func HRJobs() *View[model.Job] {
	return &View[model.Job]{
		Name: ViewHRJobs, Role: model.RoleHR, Title: "Posted jobs", PageSize: 10,
		Fields: jobFieldsHR, Columns: jobColumns,
		Fallback: "Failed to load jobs", Noun: "jobs",
		Fetch: func(ctx context.Context, c client.PortalClient) ([]model.Job, error) {
			return c.ListPostedJobs(ctx)
		},
	}
}

// StudentJobs lists open jobs for students, six to a page.
func StudentJobs() *View[model.Job] {
	return &View[model.Job]{
		Name: ViewStudentJobs, Role: model.RoleStudent, Title: "Job openings", PageSize: 6,
		Fields: jobFieldsStudent, Columns: jobColumns,
		Fallback: "Failed to load jobs", Noun: "jobs",
		Fetch: func(ctx context.Context, c client.PortalClient) ([]model.Job, error) {
			return c.ListJobs(ctx)
		},
	}
}

// --- applications ---

var applicationStatusEq = map[string]func(model.Application) string{
	"status": func(a model.Application) string { return a.Status.String() },
}

var applicationColumns = []export.Column[model.Application]{
	col("ID", func(a model.Application) string { return a.ID }),
	col("Student", func(a model.Application) string { return a.StudentName }),
	col("Email", func(a model.Application) string { return a.StudentEmail }),
	col("Job", func(a model.Application) string { return a.JobTitle }),
	col("Company", func(a model.Application) string { return a.CompanyName }),
	col("CGPA", func(a model.Application) string { return fmtNumber(a.CGPA) }),
	col("Status", func(a model.Application) string { return a.Status.String() }),
	col("Applied", func(a model.Application) string { return fmtDate(a.AppliedAt) }),
}

// HRApplications lists applications to the HR user's jobs, or to one job
// when jobID is set.
func HRApplications(jobID string) *View[model.Application] {
	return &View[model.Application]{
		Name: ViewHRApplications, Role: model.RoleHR, Title: "Applications", PageSize: 10,
		Fields: listview.Fields[model.Application]{
			Equality: applicationStatusEq,
			Searchable: []listview.SearchField[model.Application]{
				{Name: "studentName", Value: func(a model.Application) (string, bool) { return text(a.StudentName) }},
				{Name: "studentEmail", Value: func(a model.Application) (string, bool) { return text(a.StudentEmail) }},
				{Name: "jobTitle", Value: func(a model.Application) (string, bool) { return text(a.JobTitle) }},
			},
			Ranges: map[string]listview.RangeField[model.Application]{
				"appliedAt": listview.TimeField(func(a model.Application) (time.Time, bool) { return instant(a.AppliedAt) }),
				"cgpa":      listview.NumberField(func(a model.Application) (float64, bool) { return number(a.CGPA) }),
			},
		},
		Columns:  applicationColumns,
		Fallback: "Failed to load applications", Noun: "applications",
		Fetch: func(ctx context.Context, c client.PortalClient) ([]model.Application, error) {
			return c.ListApplications(ctx, jobID)
		},
	}
}

// StudentApplications lists the signed-in student's applications.
func StudentApplications() *View[model.Application] {
	return &View[model.Application]{
		Name: ViewStudentApplications, Role: model.RoleStudent, Title: "My applications", PageSize: 10,
		Fields: listview.Fields[model.Application]{
			Equality: applicationStatusEq,
			Searchable: []listview.SearchField[model.Application]{
				{Name: "jobTitle", Value: func(a model.Application) (string, bool) { return text(a.JobTitle) }},
				{Name: "companyName", Value: func(a model.Application) (string, bool) { return text(a.CompanyName) }},
			},
			Ranges: map[string]listview.RangeField[model.Application]{
				"appliedAt": listview.TimeField(func(a model.Application) (time.Time, bool) { return instant(a.AppliedAt) }),
			},
		},
		Columns:  applicationColumns,
		Fallback: "Failed to load applications", Noun: "applications",
		Fetch: func(ctx context.Context, c client.PortalClient) ([]model.Application, error) {
			return c.ListMyApplications(ctx)
		},
	}
}

// --- offers ---

var offerColumns = []export.Column[model.Offer]{
	col("ID", func(o model.Offer) string { return o.ID }),
	col("Student", func(o model.Offer) string { return o.StudentName }),
	col("Job", func(o model.Offer) string { return o.JobTitle }),
	col("Company", func(o model.Offer) string { return o.CompanyName }),
	col("CTC (LPA)", func(o model.Offer) string { return fmtNumber(o.CTC) }),
	col("Status", func(o model.Offer) string { return o.Status.String() }),
	col("Offered", func(o model.Offer) string { return fmtDate(o.OfferedAt) }),
}

var (
	offerStatus = func(o model.Offer) string { return o.Status.String() }
	offerCTC    = listview.NumberField(func(o model.Offer) (float64, bool) { return number(o.CTC) })
	offeredAt   = listview.TimeField(func(o model.Offer) (time.Time, bool) { return instant(o.OfferedAt) })

	offerStudent = listview.SearchField[model.Offer]{Name: "studentName", Value: func(o model.Offer) (string, bool) { return text(o.StudentName) }}
	offerJob     = listview.SearchField[model.Offer]{Name: "jobTitle", Value: func(o model.Offer) (string, bool) { return text(o.JobTitle) }}
	offerCompany = listview.SearchField[model.Offer]{Name: "companyName", Value: func(o model.Offer) (string, bool) { return text(o.CompanyName) }}
)

func offersView(name string, role model.Role, fields listview.Fields[model.Offer]) *View[model.Offer] {
	return &View[model.Offer]{
		Name: name, Role: role, Title: "Offers", PageSize: 10,
		Fields: fields, Columns: offerColumns,
		Fallback: "Failed to load offers", Noun: "offers",
		Fetch: func(ctx context.Context, c client.PortalClient) ([]model.Offer, error) {
			return c.ListOffers(ctx, role)
		},
	}
}

// HROffers lists offers extended by the HR user's company.
func HROffers() *View[model.Offer] {
	return offersView(ViewHROffers, model.RoleHR, listview.Fields[model.Offer]{
		Equality:   map[string]func(model.Offer) string{"status": offerStatus},
		Searchable: []listview.SearchField[model.Offer]{offerStudent, offerJob},
		Ranges:     map[string]listview.RangeField[model.Offer]{"ctc": offerCTC, "offeredAt": offeredAt},
	})
}

// OfficerOffers lists every offer across companies.
func OfficerOffers() *View[model.Offer] {
	return offersView(ViewOfficerOffers, model.RoleOfficer, listview.Fields[model.Offer]{
		Equality: map[string]func(model.Offer) string{
			"status":      offerStatus,
			"companyName": func(o model.Offer) string { return o.CompanyName },
		},
		Searchable: []listview.SearchField[model.Offer]{offerStudent, offerCompany, offerJob},
		Ranges:     map[string]listview.RangeField[model.Offer]{"ctc": offerCTC, "offeredAt": offeredAt},
	})
}

// StudentOffers lists offers made to the signed-in student.
func StudentOffers() *View[model.Offer] {
	return offersView(ViewStudentOffers, model.RoleStudent, listview.Fields[model.Offer]{
		Equality:   map[string]func(model.Offer) string{"status": offerStatus},
		Searchable: []listview.SearchField[model.Offer]{offerCompany, offerJob},
		Ranges:     map[string]listview.RangeField[model.Offer]{"ctc": offerCTC},
	})
}

// --- companies ---

// OfficerCompanies lists every company, marking the ones assigned to the
// officer. Both lists are fetched together; if either fails the load fails.
func OfficerCompanies() *View[model.Company] {
	return &View[model.Company]{
		Name: ViewOfficerCompanies, Role: model.RoleOfficer, Title: "Companies", PageSize: 9,
		Fields: listview.Fields[model.Company]{
			Equality: map[string]func(model.Company) string{
				"status":   func(c model.Company) string { return c.Status.String() },
				"industry": func(c model.Company) string { return c.Industry },
				"assigned": func(c model.Company) string { return strconv.FormatBool(c.Assigned) },
			},
			Searchable: []listview.SearchField[model.Company]{
				{Name: "name", Value: func(c model.Company) (string, bool) { return text(c.Name) }},
				{Name: "location", Value: func(c model.Company) (string, bool) { return text(c.Location) }},
				{Name: "industry", Value: func(c model.Company) (string, bool) { return text(c.Industry) }},
			},
			Ranges: map[string]listview.RangeField[model.Company]{
				"openings": listview.NumberField(func(c model.Company) (float64, bool) { return float64(c.Openings), true }),
			},
		},
		Columns: []export.Column[model.Company]{
			col("ID", func(c model.Company) string { return c.ID }),
			col("Name", func(c model.Company) string { return c.Name }),
			col("Industry", func(c model.Company) string { return c.Industry }),
			col("Location", func(c model.Company) string { return c.Location }),
			col("Status", func(c model.Company) string { return c.Status.String() }),
			col("Openings", func(c model.Company) string { return strconv.Itoa(c.Openings) }),
			col("Assigned", func(c model.Company) string { return strconv.FormatBool(c.Assigned) }),
		},
		Fallback: "Failed to load companies", Noun: "companies",
		Fetch: fetchCompanies,
	}
}

func fetchCompanies(ctx context.Context, c client.PortalClient) ([]model.Company, error) {
	var all, assigned []model.Company
	err := client.Join(ctx,
		func(ctx context.Context) (err error) {
			all, err = c.ListCompanies(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			assigned, err = c.ListAssignedCompanies(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	mine := make(map[string]bool, len(assigned))
	for _, a := range assigned {
		mine[a.ID] = true
	}
	for i := range all {
		all[i].Assigned = mine[all[i].ID]
	}
	return all, nil
}

// --- students ---

// OfficerStudents lists student profiles for the placement officer.
func OfficerStudents() *View[model.Student] {
	return &View[model.Student]{
		Name: ViewOfficerStudents, Role: model.RoleOfficer, Title: "Students", PageSize: 10,
		Fields: listview.Fields[model.Student]{
			Equality: map[string]func(model.Student) string{
				"department":      func(s model.Student) string { return s.Department },
				"placementStatus": func(s model.Student) string { return s.PlacementStatus.String() },
				"batch":           func(s model.Student) string { return strconv.Itoa(s.Batch) },
			},
			Searchable: []listview.SearchField[model.Student]{
				{Name: "name", Value: func(s model.Student) (string, bool) { return text(s.Name) }},
				{Name: "email", Value: func(s model.Student) (string, bool) { return text(s.Email) }},
				{Name: "rollNumber", Value: func(s model.Student) (string, bool) { return text(s.RollNumber) }},
			},
			Ranges: map[string]listview.RangeField[model.Student]{
				"cgpa": listview.NumberField(func(s model.Student) (float64, bool) { return number(s.CGPA) }),
			},
		},
		Columns: []export.Column[model.Student]{
			col("ID", func(s model.Student) string { return s.ID }),
			col("Name", func(s model.Student) string { return s.Name }),
			col("Email", func(s model.Student) string { return s.Email }),
			col("Roll No", func(s model.Student) string { return s.RollNumber }),
			col("Department", func(s model.Student) string { return s.Department }),
			col("Batch", func(s model.Student) string { return batch(s.Batch) }),
			col("CGPA", func(s model.Student) string { return fmtNumber(s.CGPA) }),
			col("Placement", func(s model.Student) string { return s.PlacementStatus.String() }),
			col("Skills", func(s model.Student) string { return strings.Join(s.Skills, "; ") }),
		},
		Fallback: "Failed to load students", Noun: "students",
		Fetch: func(ctx context.Context, c client.PortalClient) ([]model.Student, error) {
			return c.ListStudents(ctx)
		},
	}
}

func batch(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
