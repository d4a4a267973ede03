package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, ctx, "Amina")
	_, err := f.links.Create(ctx, u.ID, LinkDraft{Title: "James", Description: "d", Amount: "10"})
	require.NoError(t, err)

	require.NoError(t, (&MaintenanceService{DB: f.db}).Reset(ctx))

	var users, links int
	require.NoError(t, f.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&users))
	require.NoError(t, f.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payment_links").Scan(&links))
	require.Zero(t, users)
	require.Zero(t, links)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
