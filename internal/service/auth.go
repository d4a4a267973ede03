package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/harry/pay/internal/database"
	"github.com/harry/pay/internal/database/repository"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Name              string
	Email             string
	PhoneNumber       string
	BusinessName      string
	ProfilePictureURI string
	Password          string
	ConfirmPassword   string
}

// AuthService registers users, checks credentials and manages profiles.
type AuthService struct {
	DB             *sql.DB
	Users          *repository.UserRepo
	Links          *repository.PaymentLinkRepo
	PasswordLength int
	Cost           int // bcrypt cost; zero means bcrypt.DefaultCost
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*repository.User, error) {
	if anyBlank(in.Name, in.Email, in.PhoneNumber, in.Password, in.ConfirmPassword, in.BusinessName, in.ProfilePictureURI) {
		return nil, ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !s.validPassword(in.Password) {
		return nil, fmt.Errorf("%w: must be %d digits", ErrPasswordFormat, s.passwordLength())
	}

	name := strings.TrimSpace(in.Name)
	existing, err := s.Users.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := database.Now()
	u := repository.User{
		ID:                uuid.NewString(),
		Name:              name,
		Email:             strings.TrimSpace(in.Email),
		PhoneNumber:       strings.TrimSpace(in.PhoneNumber),
		BusinessName:      strings.TrimSpace(in.BusinessName),
		PasswordHash:      string(hash),
		ProfilePictureURI: strings.TrimSpace(in.ProfilePictureURI),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

// Login returns the user whose name and password match.
func (s *AuthService) Login(ctx context.Context, name, password string) (*repository.User, error) {
	if anyBlank(name, password) {
		return nil, ErrMissingFields
	}
	u, err := s.Users.ByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *AuthService) Get(ctx context.Context, id string) (*repository.User, error) {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile saves the editable profile fields of u.
func (s *AuthService) UpdateProfile(ctx context.Context, u repository.User) (*repository.User, error) {
	if anyBlank(u.Name, u.Email, u.PhoneNumber, u.BusinessName) {
		return nil, ErrMissingFields
	}
	u.Name = strings.TrimSpace(u.Name)
	other, err := s.Users.ByName(ctx, u.Name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != u.ID {
		return nil, ErrNameTaken
	}
	current, err := s.Get(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	current.Name = u.Name
	current.Email = strings.TrimSpace(u.Email)
	current.PhoneNumber = strings.TrimSpace(u.PhoneNumber)
	current.BusinessName = strings.TrimSpace(u.BusinessName)
	if uri := strings.TrimSpace(u.ProfilePictureURI); uri != "" {
		current.ProfilePictureURI = uri
	}
	current.UpdatedAt = database.Now()
	if err := s.Users.Update(ctx, *current); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return current, nil
}

// DeleteAccount removes the user and every link they own.
func (s *AuthService) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return database.WithTx(s.DB, func(tx *sql.Tx) error {
		if _, err := s.Links.WithTx(tx).DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("delete links: %w", err)
		}
		if err := s.Users.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

func (s *AuthService) validPassword(p string) bool {
	if len(p) != s.passwordLength() {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *AuthService) passwordLength() int {
	if s.PasswordLength <= 0 {
		return 4
	}
	return s.PasswordLength
}

func (s *AuthService) cost() int {
	if s.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return s.Cost
}

func anyBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}
