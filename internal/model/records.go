package model

import "time"

// Record is implemented by every entity a dashboard lists.
type Record interface {
	RecordID() string
}

// Job is a job opening posted by a company.
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CompanyID   string     `json:"companyId,omitempty"`
	CompanyName string     `json:"companyName"`
	Location    string     `json:"location,omitempty"`
	JobType     JobType    `json:"jobType"`
	Status      JobStatus  `json:"status"`
	Salary      *float64   `json:"salary,omitempty"` // LPA
	Openings    int        `json:"openings,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	Description string     `json:"description,omitempty"`
	Skills      []string   `json:"skills,omitempty"`
}

// RecordID returns the job id.
func (j Job) RecordID() string { return j.ID }

// Application is a student's application to a job.
type Application struct {
	ID           string            `json:"id"`
	JobID        string            `json:"jobId"`
	JobTitle     string            `json:"jobTitle"`
	CompanyName  string            `json:"companyName,omitempty"`
	StudentID    string            `json:"studentId"`
	StudentName  string            `json:"studentName"`
	StudentEmail string            `json:"studentEmail,omitempty"`
	ResumeLink   string            `json:"resumeLink,omitempty"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    *time.Time        `json:"appliedAt,omitempty"`
	CGPA         *float64          `json:"cgpa,omitempty"`
}

// RecordID returns the application id.
func (a Application) RecordID() string { return a.ID }

// Offer is an offer letter extended against an application.
type Offer struct {
	ID            string      `json:"id"`
	ApplicationID string      `json:"applicationId,omitempty"`
	JobTitle      string      `json:"jobTitle"`
	CompanyName   string      `json:"companyName"`
	StudentName   string      `json:"studentName,omitempty"`
	CTC           *float64    `json:"ctc,omitempty"`
	Status        OfferStatus `json:"status"`
	OfferedAt     *time.Time  `json:"offeredAt,omitempty"`
	JoiningDate   *time.Time  `json:"joiningDate,omitempty"`
}

// RecordID returns the offer id.
func (o Offer) RecordID() string { return o.ID }

// Company is a recruiter registered with the placement cell.
type Company struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Industry     string        `json:"industry,omitempty"`
	Location     string        `json:"location,omitempty"`
	Website      string        `json:"website,omitempty"`
	ContactEmail string        `json:"contactEmail,omitempty"`
	Status       CompanyStatus `json:"status"`
	Openings     int           `json:"openings,omitempty"`

	// Assigned is derived client-side from the officer's assigned list.
	Assigned bool `json:"assigned,omitempty"`
}

// RecordID returns the company id.
func (c Company) RecordID() string { return c.ID }

// Student is a student profile as seen by the placement officer.
type Student struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	RollNumber      string          `json:"rollNumber,omitempty"`
	Department      string          `json:"department,omitempty"`
	Batch           int             `json:"batch,omitempty"`
	CGPA            *float64        `json:"cgpa,omitempty"`
	PlacementStatus PlacementStatus `json:"placementStatus,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
	ResumeLink      string          `json:"resumeLink,omitempty"`
}

// RecordID returns the student id.
func (s Student) RecordID() string { return s.ID }

// ExportRecord is one row of the export audit log.
type ExportRecord struct {
	ID          string    `json:"id"`
	View        string    `json:"view"`
	FileName    string    `json:"file_name"`
	Destination string    `json:"destination"`
	Rows        int       `json:"rows"`
	Actor       string    `json:"actor,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
