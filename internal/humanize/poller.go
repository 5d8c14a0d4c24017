package humanize

import (
	"context"
	"time"

	"humanizer-backend/internal/provider"
	"humanizer-backend/internal/shared/telemetry"
)

// SleepFunc waits for d or until the context is done. Tests inject a
// non-blocking implementation to run the full retry schedule instantly.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poller drives a submitted document to a terminal state by fetching it
// repeatedly with capped linear backoff. The first fetch happens immediately;
// sleeping only occurs between fetches, never after the last one.
type Poller struct {
	Client      provider.Client
	MaxAttempts int
	BaseDelay   time.Duration
	DelayStep   time.Duration
	MaxDelay    time.Duration
	Sleep       SleepFunc
}

// NewPoller builds a Poller with the given retry schedule.
func NewPoller(client provider.Client, maxAttempts int, base, step, max time.Duration) *Poller {
	return &Poller{
		Client:      client,
		MaxAttempts: maxAttempts,
		BaseDelay:   base,
		DelayStep:   step,
		MaxDelay:    max,
		Sleep:       defaultSleep,
	}
}

// delay computes the wait before fetch number attempt+1 (attempt is
// zero-based). Linear growth, capped at MaxDelay.
func (p *Poller) delay(attempt int) time.Duration {
	d := p.BaseDelay + time.Duration(attempt)*p.DelayStep
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Await polls the document until it completes, fails, or the attempt budget
// is exhausted. It returns the final document, the number of fetches made,
// and a terminal error for the failed and timed-out outcomes. A fetch error
// aborts polling and is returned as-is.
func (p *Poller) Await(ctx context.Context, id string) (provider.Document, int, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}
	var doc provider.Document
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		var err error
		doc, err = p.Client.FetchDocument(ctx, id)
		if err != nil {
			return doc, attempt + 1, err
		}
		if doc.Complete() {
			return doc, attempt + 1, nil
		}
		if doc.Failed() {
			return doc, attempt + 1, ErrProcessingFailed
		}
		telemetry.Info("humanize.poll_pending", map[string]any{
			"document_id": id,
			"attempt":     attempt + 1,
		})
		if attempt+1 < p.MaxAttempts {
			if err := sleep(ctx, p.delay(attempt)); err != nil {
				return doc, attempt + 1, err
			}
		}
	}
	return doc, p.MaxAttempts, ErrProcessingTimeout
}
