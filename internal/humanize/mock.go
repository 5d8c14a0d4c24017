package humanize

import (
	"context"
	"regexp"
	"unicode/utf8"

	"humanizer-backend/internal/credits"
	"humanizer-backend/internal/shared/telemetry"
)

// MockService is the offline strategy: local phrase substitution instead of
// a provider round trip. It is selected by configuration for development and
// demos and shares the credit ledger with the live workflow, but charges by
// text length rather than a flat rate.
type MockService struct {
	Credits *credits.Service
}

// NewMockService constructs the offline strategy.
func NewMockService(creditsSvc *credits.Service) *MockService {
	return &MockService{Credits: creditsSvc}
}

type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

var toneSubstitutions = map[string][]substitution{
	"professional": {
		{regexp.MustCompile(`\bcan't\b`), "cannot"},
		{regexp.MustCompile(`\bwon't\b`), "will not"},
		{regexp.MustCompile(`\bdon't\b`), "do not"},
		{regexp.MustCompile(`\bgonna\b`), "going to"},
		{regexp.MustCompile(`\bwanna\b`), "want to"},
		{regexp.MustCompile(`\bkinda\b`), "somewhat"},
	},
	"casual": {
		{regexp.MustCompile(`\bcannot\b`), "can't"},
		{regexp.MustCompile(`\bwill not\b`), "won't"},
		{regexp.MustCompile(`\bdo not\b`), "don't"},
		{regexp.MustCompile(`\bit is\b`), "it's"},
		{regexp.MustCompile(`\bthat is\b`), "that's"},
	},
	"friendly": {
		{regexp.MustCompile(`\bHello\b`), "Hey"},
		{regexp.MustCompile(`\bFurthermore\b`), "Also"},
		{regexp.MustCompile(`\bMoreover\b`), "Plus"},
		{regexp.MustCompile(`\bTherefore\b`), "So"},
	},
}

// MockCreditCost charges one credit per 100 characters, rounded up.
func MockCreditCost(text string) int {
	count := utf8.RuneCountInString(text)
	if count == 0 {
		return 0
	}
	return (count + 99) / 100
}

// Humanize applies the tone's substitutions and debits by text length.
// Unknown tones pass the text through unchanged.
func (m *MockService) Humanize(ctx context.Context, req Request, id credits.Identity) Response {
	if err := ValidateInput(req.Text); err != nil {
		return failure(err)
	}

	output := req.Text
	for _, sub := range toneSubstitutions[req.Tone] {
		output = sub.pattern.ReplaceAllString(output, sub.replacement)
	}

	cost := MockCreditCost(req.Text)
	if _, err := m.Credits.Debit(ctx, id, cost); err != nil {
		telemetry.Error("humanize.mock_debit_failed", map[string]any{
			"user_id": id.UserID,
			"error":   err.Error(),
		})
	}
	telemetry.Info("humanize.mock_completed", map[string]any{
		"user_id":      id.UserID,
		"tone":         req.Tone,
		"credits_used": cost,
	})
	return Response{Success: true, Output: output, CreditsUsed: cost}
}
