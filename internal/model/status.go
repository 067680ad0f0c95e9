package model

// JobStatus is the publication state of a job opening.
type JobStatus string

const (
	JobOpen   JobStatus = "OPEN"
	JobClosed JobStatus = "CLOSED"
	JobDraft  JobStatus = "DRAFT"
)

// String returns the string representation of the job status.
func (s JobStatus) String() string {
	return string(s)
}

// IsValid checks whether the job status is a known value.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobOpen, JobClosed, JobDraft:
		return true
	}
	return false
}

// JobType classifies the engagement offered by a job opening.
type JobType string

const (
	JobFullTime   JobType = "FULL_TIME"
	JobInternship JobType = "INTERNSHIP"
	JobPartTime   JobType = "PART_TIME"
	JobContract   JobType = "CONTRACT"
)

// String returns the string representation of the job type.
func (t JobType) String() string {
	return string(t)
}

// IsValid checks whether the job type is a known value.
func (t JobType) IsValid() bool {
	switch t {
	case JobFullTime, JobInternship, JobPartTime, JobContract:
		return true
	}
	return false
}

// ApplicationStatus tracks a job application through the hiring pipeline.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "APPLIED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationInterview   ApplicationStatus = "INTERVIEW"
	ApplicationOffered     ApplicationStatus = "OFFERED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
	ApplicationWithdrawn   ApplicationStatus = "WITHDRAWN"
)

// String returns the string representation of the application status.
func (s ApplicationStatus) String() string {
	return string(s)
}

// IsValid checks whether the application status is a known value.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationApplied, ApplicationShortlisted, ApplicationInterview,
		ApplicationOffered, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether no further HR transition is expected.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationRejected || s == ApplicationWithdrawn
}

// OfferStatus is the state of an offer extended to a student.
type OfferStatus string

const (
	OfferPending  OfferStatus = "PENDING"
	OfferAccepted OfferStatus = "ACCEPTED"
	OfferDeclined OfferStatus = "DECLINED"
	OfferRevoked  OfferStatus = "REVOKED"
)

// String returns the string representation of the offer status.
func (s OfferStatus) String() string {
	return string(s)
}

// IsValid checks whether the offer status is a known value.
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferPending, OfferAccepted, OfferDeclined, OfferRevoked:
		return true
	}
	return false
}

// CompanyStatus marks whether a company is currently recruiting on campus.
type CompanyStatus string

const (
	CompanyActive   CompanyStatus = "ACTIVE"
	CompanyInactive CompanyStatus = "INACTIVE"
)

// String returns the string representation of the company status.
func (s CompanyStatus) String() string {
	return string(s)
}

// IsValid checks whether the company status is a known value.
func (s CompanyStatus) IsValid() bool {
	return s == CompanyActive || s == CompanyInactive
}

// PlacementStatus is a student's overall placement outcome.
type PlacementStatus string

const (
	StudentPlaced   PlacementStatus = "PLACED"
	StudentUnplaced PlacementStatus = "UNPLACED"
	StudentOptedOut PlacementStatus = "OPTED_OUT"
)

// String returns the string representation of the placement status.
func (s PlacementStatus) String() string {
	return string(s)
}

// IsValid checks whether the placement status is a known value.
func (s PlacementStatus) IsValid() bool {
	switch s {
	case StudentPlaced, StudentUnplaced, StudentOptedOut:
		return true
	}
	return false
}

// Role identifies which dashboard a session belongs to.
type Role string

const (
	RoleHR      Role = "HR"
	RoleOfficer Role = "PLACEMENT_OFFICER"
	RoleStudent Role = "STUDENT"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks whether the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleHR, RoleOfficer, RoleStudent:
		return true
	}
	return false
}
