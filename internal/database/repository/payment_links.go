package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const linkColumns = "id, user_id, title, description, amount_cents, link, created_at, updated_at"

// LinkFilters defines list filters. Zero values disable a filter.
type LinkFilters struct {
	UserID         string
	CreatedFrom    time.Time // inclusive
	CreatedTo      time.Time // exclusive
	MinAmountCents int64     // strictly greater than
}

// PaymentLinkRepo handles payment links.
type PaymentLinkRepo struct {
	db DBTX
}

func NewPaymentLinkRepo(db DBTX) *PaymentLinkRepo { return &PaymentLinkRepo{db: db} }

// WithTx returns a repo bound to tx.
func (r *PaymentLinkRepo) WithTx(tx *sql.Tx) *PaymentLinkRepo { return &PaymentLinkRepo{db: tx} }

func (r *PaymentLinkRepo) Insert(ctx context.Context, l PaymentLink) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO payment_links(`+linkColumns+`)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`, l.ID, l.UserID, l.Title, l.Description, l.AmountCents, l.Link, l.CreatedAt, l.UpdatedAt)
	return err
}

// Update rewrites the editable fields. Ownership and created_at never change.
func (r *PaymentLinkRepo) Update(ctx context.Context, l PaymentLink) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE payment_links SET title = ?, description = ?, amount_cents = ?, link = ?, updated_at = ?
	WHERE id = ?
	`, l.Title, l.Description, l.AmountCents, l.Link, l.UpdatedAt, l.ID)
	return err
}

func (r *PaymentLinkRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payment_links WHERE id = ?`, id)
	return err
}

// DeleteByUser removes every link owned by userID and reports how many went.
func (r *PaymentLinkRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_links WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PaymentLinkRepo) Get(ctx context.Context, id string) (*PaymentLink, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+linkColumns+` FROM payment_links WHERE id = ?`, id)
	l, err := scanLink(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// List returns links newest first.
func (r *PaymentLinkRepo) List(ctx context.Context, f LinkFilters) ([]PaymentLink, error) {
	where, args := f.clauses()

	query := "SELECT " + linkColumns + " FROM payment_links"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PaymentLink
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Summary counts and totals the links matching f.
func (r *PaymentLinkRepo) Summary(ctx context.Context, f LinkFilters) (LinkSummary, error) {
	where, args := f.clauses()
	query := "SELECT COUNT(*), COALESCE(SUM(amount_cents), 0) FROM payment_links"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	var s LinkSummary
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Count, &s.TotalCents)
	return s, err
}

// Titles returns the distinct link titles owned by userID, most recent first.
func (r *PaymentLinkRepo) Titles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT title FROM payment_links WHERE user_id = ?
	GROUP BY title COLLATE NOCASE
	ORDER BY MAX(created_at) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (f LinkFilters) clauses() ([]string, []interface{}) {
	var where []string
	var args []interface{}

	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if !f.CreatedFrom.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, f.CreatedFrom.UTC())
	}
	if !f.CreatedTo.IsZero() {
		where = append(where, "created_at < ?")
		args = append(args, f.CreatedTo.UTC())
	}
	if f.MinAmountCents > 0 {
		where = append(where, "amount_cents > ?")
		args = append(args, f.MinAmountCents)
	}
	return where, args
}

func scanLink(row scanner) (PaymentLink, error) {
	var l PaymentLink
	err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.Description, &l.AmountCents, &l.Link, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}
