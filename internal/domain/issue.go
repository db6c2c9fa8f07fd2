package domain

import "time"

// IssueSeverity ranks how serious an issue is.
type IssueSeverity string

const (
	IssueSeverityMinor    IssueSeverity = "minor"
	IssueSeverityMajor    IssueSeverity = "major"
	IssueSeverityCritical IssueSeverity = "critical"
)

// IssueStatus represents the lifecycle state of an issue.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusResolved   IssueStatus = "resolved"
)

// Issue represents a problem reported at a trial site.
type Issue struct {
	ID          int64         `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Site        *string       `json:"site,omitempty" db:"site"`
	Severity    IssueSeverity `json:"severity" db:"severity"`
	Status      IssueStatus   `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// NewIssue holds the fields of an issue that has not been persisted yet.
type NewIssue struct {
	Title       string        `json:"title" validate:"required,max=255"`
	Description string        `json:"description" validate:"required,max=5000"`
	Site        *string       `json:"site,omitempty" validate:"omitempty,max=100"`
	Severity    IssueSeverity `json:"severity" validate:"required,oneof=minor major critical"`
	Status      IssueStatus   `json:"status" validate:"required,oneof=open in_progress resolved"`
	CreatedAt   time.Time     `json:"created_at"`
}
