package service

import (
	"context"
	"strconv"

	"github.com/harry/pay/internal/assistant"
)

// AssistantService fills the link editor from a one-line request.
type AssistantService struct {
	Links     *LinkService
	Extractor assistant.Extractor
}

// Fill parses input into a LinkDraft. Recipients the user has billed before are
// matched even when slightly misspelled.
func (s *AssistantService) Fill(ctx context.Context, userID, input string) (LinkDraft, error) {
	d, err := s.Extractor.Extract(ctx, input)
	if err != nil {
		return LinkDraft{}, err
	}
	recipient := d.Recipient
	if s.Links != nil {
		if known, err := s.Links.Recipients(ctx, userID); err == nil {
			recipient = assistant.SnapRecipient(recipient, known)
		}
	}
	return LinkDraft{
		Title:       recipient,
		Description: d.Reason,
		Amount:      strconv.Itoa(d.Amount),
	}, nil
}
