package testdata

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/service"
)

// DemoName and DemoPassword are the credentials of the seeded account.
const (
	DemoName     = "demo"
	DemoPassword = "1234"
)

var (
	recipients = []string{"James Otieno", "Mary Wambui", "Acme Supplies", "Mike", "Grace Njeri"}
	reasons    = []string{"branding", "logo design", "website hosting", "groceries", "consulting", "printing"}
)

// Seed creates the demo account with n sample links. An existing demo account is reused.
func Seed(ctx context.Context, auth *service.AuthService, links *service.LinkService, n int, rng *rand.Rand) (*repository.User, error) {
	u, err := auth.Login(ctx, DemoName, DemoPassword)
	if errors.Is(err, service.ErrInvalidCredentials) {
		u, err = auth.Register(ctx, service.RegisterInput{
			Name:              DemoName,
			Email:             "demo@paylink.app",
			PhoneNumber:       "0700000000",
			BusinessName:      "Demo Ventures",
			ProfilePictureURI: "demo.png",
			Password:          DemoPassword,
			ConfirmPassword:   DemoPassword,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("demo user: %w", err)
	}

	for i := 0; i < n; i++ {
		d := service.LinkDraft{
			Title:       recipients[rng.Intn(len(recipients))],
			Description: reasons[rng.Intn(len(reasons))],
			Amount:      fmt.Sprintf("%d", (rng.Intn(40)+1)*250),
		}
		if _, err := links.Create(ctx, u.ID, d); err != nil {
			return nil, fmt.Errorf("seed link %d: %w", i, err)
		}
	}
	return u, nil
}
