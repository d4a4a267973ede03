package repository

import (
	"context"
	"database/sql"
)

const userColumns = "id, name, email, phone_number, business_name, password_hash, profile_picture_uri, created_at, updated_at"

// UserRepo handles users.
type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo { return &UserRepo{db: db} }

// WithTx returns a repo bound to tx.
func (r *UserRepo) WithTx(tx *sql.Tx) *UserRepo { return &UserRepo{db: tx} }

func (r *UserRepo) Insert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users(`+userColumns+`)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, u.ID, u.Name, u.Email, u.PhoneNumber, u.BusinessName, u.PasswordHash, u.ProfilePictureURI, u.CreatedAt, u.UpdatedAt)
	return err
}

// Update rewrites the profile fields. The password hash is left alone.
func (r *UserRepo) Update(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE users SET name = ?, email = ?, phone_number = ?, business_name = ?, profile_picture_uri = ?, updated_at = ?
	WHERE id = ?
	`, u.Name, u.Email, u.PhoneNumber, u.BusinessName, u.ProfilePictureURI, u.UpdatedAt, u.ID)
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return oneUser(row)
}

// ByName looks a user up by name, ignoring case.
func (r *UserRepo) ByName(ctx context.Context, name string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = ? COLLATE NOCASE`, name)
	return oneUser(row)
}

func oneUser(row scanner) (*User, error) {
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func scanUser(row scanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.BusinessName, &u.PasswordHash,
		&u.ProfilePictureURI, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
