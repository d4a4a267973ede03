// Package assistant turns short natural-language requests into payment link drafts.
package assistant

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// ErrNoMatch is returned when the input does not look like a payment request.
var ErrNoMatch = errors.New("couldn't parse input. Try: 'Request 3000 from James for branding'")

// Draft is what an Extractor pulls out of the input.
type Draft struct {
	Amount    int
	Recipient string
	Reason    string
}

// Extractor parses free text into a Draft.
type Extractor interface {
	Extract(ctx context.Context, input string) (Draft, error)
}

var requestRe = regexp.MustCompile(`(?i)request\s+(\d+)\s+from\s+([\w\s]+?)\s+for\s+(.+)`)

// RegexExtractor understands "request <amount> from <recipient> for <reason>".
type RegexExtractor struct{}

func NewRegexExtractor() *RegexExtractor { return &RegexExtractor{} }

func (RegexExtractor) Extract(ctx context.Context, input string) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	m := requestRe.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return Draft{}, ErrNoMatch
	}
	amount, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return Draft{}, ErrNoMatch
	}
	return Draft{
		Amount:    int(amount),
		Recipient: strings.TrimSpace(m[2]),
		Reason:    strings.TrimSpace(m[3]),
	}, nil
}

// snapThreshold is the largest normalized edit distance still treated as a typo.
const snapThreshold = 0.34

// SnapRecipient returns the known recipient closest to name when it is a near miss,
// otherwise name unchanged.
func SnapRecipient(name string, known []string) string {
	if name == "" || len(known) == 0 {
		return name
	}
	lower := strings.ToLower(name)
	best, bestScore := "", 1.0
	for _, k := range known {
		kl := strings.ToLower(k)
		if kl == lower {
			return k
		}
		longest := max(utf8.RuneCountInString(lower), utf8.RuneCountInString(kl))
		if longest == 0 {
			continue
		}
		score := float64(levenshtein.ComputeDistance(lower, kl)) / float64(longest)
		if score < bestScore {
			best, bestScore = k, score
		}
	}
	if bestScore < snapThreshold {
		return best
	}
	return name
}
