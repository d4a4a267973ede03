package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harry/pay/internal/database"
	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/money"
)

// Filter selects which links the home screen shows.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterToday    Filter = "today"
	FilterOver1000 Filter = "over1000"
)

const (
	bigAmountCents  = 1000 * 100
	defaultLinkBase = "https://paylink.app"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterToday, FilterOver1000}

// Label is the chip text for f.
func (f Filter) Label() string {
	switch f {
	case FilterToday:
		return "Today"
	case FilterOver1000:
		return "Amount > 1000"
	default:
		return "All"
	}
}

// ParseFilter maps a stored preference back to a Filter, falling back to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterToday:
		return FilterToday
	case FilterOver1000:
		return FilterOver1000
	default:
		return FilterAll
	}
}

// LinkDraft is the link editor form.
type LinkDraft struct {
	Title       string
	Description string
	Amount      string
}

var spaceRun = regexp.MustCompile(`\s+`)

// GenerateURL builds base/<slug>/<amount>. It returns "" until both title and amount are present.
func GenerateURL(base, title, amount string) string {
	slug := spaceRun.ReplaceAllString(strings.TrimSpace(title), "-")
	amount = strings.TrimSpace(amount)
	if slug == "" || amount == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + slug + "/" + amount
}

// LinkService owns payment link rules.
type LinkService struct {
	Links   *repository.PaymentLinkRepo
	BaseURL string
	TZ      *time.Location
	Now     func() time.Time
}

func (s *LinkService) URL(title, amount string) string {
	base := s.BaseURL
	if base == "" {
		base = defaultLinkBase
	}
	return GenerateURL(base, title, amount)
}

func (s *LinkService) Create(ctx context.Context, userID string, d LinkDraft) (*repository.PaymentLink, error) {
	cents, err := validateDraft(d)
	if err != nil {
		return nil, err
	}
	now := s.now()
	l := repository.PaymentLink{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		AmountCents: cents,
		Link:        s.URL(d.Title, d.Amount),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Links.Insert(ctx, l); err != nil {
		return nil, fmt.Errorf("insert link: %w", err)
	}
	return &l, nil
}

// Update applies d to an existing link and regenerates its URL.
func (s *LinkService) Update(ctx context.Context, userID, id string, d LinkDraft) (*repository.PaymentLink, error) {
	cents, err := validateDraft(d)
	if err != nil {
		return nil, err
	}
	l, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	l.Title = strings.TrimSpace(d.Title)
	l.Description = strings.TrimSpace(d.Description)
	l.AmountCents = cents
	l.Link = s.URL(d.Title, d.Amount)
	l.UpdatedAt = s.now()
	if err := s.Links.Update(ctx, *l); err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}
	return l, nil
}

func (s *LinkService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.Links.Delete(ctx, id)
}

// Get returns the link only if userID owns it.
func (s *LinkService) Get(ctx context.Context, userID, id string) (*repository.PaymentLink, error) {
	l, err := s.Links.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil || l.UserID != userID {
		return nil, ErrNotFound
	}
	return l, nil
}

func (s *LinkService) List(ctx context.Context, userID string, f Filter) ([]repository.PaymentLink, error) {
	return s.Links.List(ctx, s.filters(userID, f))
}

// Summary totals every link the user owns, regardless of the active filter.
func (s *LinkService) Summary(ctx context.Context, userID string) (repository.LinkSummary, error) {
	return s.Links.Summary(ctx, repository.LinkFilters{UserID: userID})
}

// Recipients returns the titles already used by the user.
func (s *LinkService) Recipients(ctx context.Context, userID string) ([]string, error) {
	return s.Links.Titles(ctx, userID)
}

func (s *LinkService) filters(userID string, f Filter) repository.LinkFilters {
	lf := repository.LinkFilters{UserID: userID}
	switch f {
	case FilterToday:
		now := s.now().In(s.loc())
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc())
		lf.CreatedFrom = start
		lf.CreatedTo = start.AddDate(0, 0, 1)
	case FilterOver1000:
		lf.MinAmountCents = bigAmountCents
	}
	return lf
}

func (s *LinkService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Second)
	}
	return database.Now()
}

func (s *LinkService) loc() *time.Location {
	if s.TZ == nil {
		return time.Local
	}
	return s.TZ
}

func validateDraft(d LinkDraft) (int64, error) {
	if anyBlank(d.Title, d.Description, d.Amount) {
		return 0, ErrMissingFields
	}
	amt, err := money.Parse(d.Amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	return money.ToCents(amt), nil
}
