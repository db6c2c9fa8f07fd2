package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/royi-klein/ClinicalTrial/internal/domain"
)

const issueColumns = `id, title, description, site, severity, status, created_at`

// IssueRepository handles issue data access operations.
type IssueRepository struct {
	db *sqlx.DB
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(db *sqlx.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Create inserts a new issue and returns it with its assigned ID.
// Every call inserts a new row; identical issues are not merged.
func (r *IssueRepository) Create(ctx context.Context, issue domain.NewIssue) (*domain.Issue, error) {
	var result domain.Issue
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO issues (title, description, site, severity, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+issueColumns,
		issue.Title, issue.Description, issue.Site, issue.Severity, issue.Status, issue.CreatedAt,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("insert issue: %w", translateError(err))
	}
	return &result, nil
}

// Ping checks that the database is reachable.
func (r *IssueRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// PostgreSQL error codes surfaced as domain errors.
const (
	codeNotNullViolation    = "23502"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeStringDataTooLong   = "22001"
	codeInvalidTextValue    = "22P02"
	codeInvalidDatetimeText = "22007"
)

// translateError maps constraint failures onto domain sentinels while
// keeping the server's message for the caller.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeNotNullViolation, codeCheckViolation, codeStringDataTooLong,
		codeInvalidTextValue, codeInvalidDatetimeText:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Message)
	default:
		return err
	}
}
