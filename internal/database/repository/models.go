package repository

import (
	"context"
	"database/sql"
	"time"
)

// User represents a users row.
type User struct {
	ID                string
	Name              string
	Email             string
	PhoneNumber       string
	BusinessName      string
	PasswordHash      string
	ProfilePictureURI string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PaymentLink represents a payment_links row.
type PaymentLink struct {
	ID          string
	UserID      string
	Title       string
	Description string
	AmountCents int64
	Link        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LinkSummary aggregates a user's links for the home header.
type LinkSummary struct {
	Count      int
	TotalCents int64
}

// DBTX is satisfied by both *sql.DB and *sql.Tx so repos can join a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// scanner handles both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}
