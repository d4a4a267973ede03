package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harry/pay/internal/database"
	"github.com/harry/pay/internal/database/repository"
)

type fixture struct {
	db    *sql.DB
	auth  *AuthService
	links *LinkService
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	t.Log("migrations applied")

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := repository.NewUserRepo(db)
	links := repository.NewPaymentLinkRepo(db)
	loc, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	f := &fixture{
		db:    db,
		clock: time.Date(2026, 4, 10, 9, 30, 0, 0, loc),
	}
	f.auth = &AuthService{DB: db, Users: users, Links: links, PasswordLength: 4, Cost: bcrypt.MinCost}
	f.links = &LinkService{Links: links, BaseURL: "https://paylink.app", TZ: loc, Now: func() time.Time { return f.clock }}
	return f
}

func (f *fixture) register(t *testing.T, ctx context.Context, name string) *repository.User {
	t.Helper()
	u, err := f.auth.Register(ctx, RegisterInput{
		Name: name, Email: name + "@example.com", PhoneNumber: "0712345678",
		BusinessName: name + " Studio", ProfilePictureURI: "avatar.png",
		Password: "1234", ConfirmPassword: "1234",
	})
	require.NoError(t, err)
	return u
}
