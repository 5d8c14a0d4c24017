package humanize

import (
	"context"
	"time"

	"humanizer-backend/internal/credits"
	"humanizer-backend/internal/provider"
	"humanizer-backend/internal/shared/metrics"
	"humanizer-backend/internal/shared/telemetry"
)

// liveCreditCost is the fixed application-side charge per successful
// humanization, independent of text length.
const liveCreditCost = 1

// Humanizer runs the full humanization workflow for an identity. Both
// implementations absorb every internal error into the Response; callers
// never see a Go error from Humanize.
type Humanizer interface {
	Humanize(ctx context.Context, req Request, id credits.Identity) Response
}

// Service is the live-provider workflow: validate, pre-check provider
// credits, submit, poll to completion, then debit the identity's pool.
type Service struct {
	Provider provider.Client
	Credits  *credits.Service
	Poller   *Poller
}

// NewService constructs the live workflow.
func NewService(client provider.Client, creditsSvc *credits.Service, poller *Poller) *Service {
	return &Service{Provider: client, Credits: creditsSvc, Poller: poller}
}

// Humanize runs the workflow end to end. Validation happens before any
// network call; the provider credit pre-check is best effort and only blocks
// on a definitive zero balance; the debit happens only after a completed
// document.
func (s *Service) Humanize(ctx context.Context, req Request, id credits.Identity) Response {
	if err := ValidateInput(req.Text); err != nil {
		return failure(err)
	}

	if info, err := s.Provider.CheckCredits(ctx); err != nil {
		telemetry.Warn("humanize.provider_credits_check_failed", map[string]any{
			"error": err.Error(),
		})
	} else if info.Credits <= 0 {
		return failure(ErrInsufficientProviderCredits)
	}

	metrics.IncHumanizeStarted()
	start := time.Now()

	submitted, err := s.Provider.Submit(ctx, provider.SubmitRequest{
		Content:     req.Text,
		Readability: provider.MapReadability(req.Readability),
		Purpose:     provider.MapPurpose(req.Purpose),
		Strength:    provider.MapStrength(req.Strength),
		Model:       provider.DefaultModel,
	})
	if err != nil {
		metrics.IncHumanizeFailed()
		telemetry.Error("humanize.submit_failed", map[string]any{
			"user_id": id.UserID,
			"error":   err.Error(),
		})
		return failure(err)
	}
	if submitted.ID == "" {
		metrics.IncHumanizeFailed()
		return failure(ErrSubmissionFailed)
	}

	doc, attempts, err := s.Poller.Await(ctx, submitted.ID)
	metrics.ObservePollAttempts(attempts)
	if err != nil {
		if err == ErrProcessingTimeout {
			metrics.IncHumanizeTimedOut()
		} else {
			metrics.IncHumanizeFailed()
		}
		telemetry.Error("humanize.poll_failed", map[string]any{
			"user_id":     id.UserID,
			"document_id": submitted.ID,
			"attempts":    attempts,
			"error":       err.Error(),
		})
		return failure(err)
	}

	if _, err := s.Credits.Debit(ctx, id, liveCreditCost); err != nil {
		// The user already has their output; a billing write failure is
		// logged for reconciliation rather than surfaced as a failure.
		telemetry.Error("humanize.debit_failed", map[string]any{
			"user_id": id.UserID,
			"error":   err.Error(),
		})
	}

	metrics.IncHumanizeCompleted()
	metrics.ObserveHumanizeDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("humanize.completed", map[string]any{
		"user_id":     id.UserID,
		"document_id": submitted.ID,
		"attempts":    attempts,
	})
	return Response{Success: true, Output: doc.Output, CreditsUsed: liveCreditCost}
}
