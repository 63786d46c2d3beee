package webhook

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gastos-labs/gastos-gateway/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 5 * time.Second

// OutcomeKind classifies the result of a single dispatch attempt.
type OutcomeKind string

const (
	OutcomeSuccess    OutcomeKind = "success"
	OutcomeTimeout    OutcomeKind = "timeout"
	OutcomeConnError  OutcomeKind = "connection_error"
	OutcomeBadStatus  OutcomeKind = "non_2xx"
	OutcomeOtherError OutcomeKind = "error"
)

// Outcome is the per-target dispatch result. Failures are captured here and
// logged; they are never raised to the caller of DispatchAll.
type Outcome struct {
	Target     Target
	Kind       OutcomeKind
	StatusCode int
	Err        error
}

// Dispatcher fans an event out to webhook destinations.
type Dispatcher interface {
	DispatchAll(ctx context.Context, event *Event, targets []Target) []Outcome
}

// HTTPDispatcher posts JSON events over a shared resty client with a fixed
// short timeout per request. Safe for concurrent use.
type HTTPDispatcher struct {
	client *resty.Client
}

// NewHTTPDispatcher creates a dispatcher with the given per-request timeout.
// A non-positive timeout falls back to the default.
func NewHTTPDispatcher(timeout time.Duration) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &HTTPDispatcher{client: client}
}

// DispatchAll sends one POST per target, all targets in parallel, so one slow
// or failing destination does not delay the others. Each outcome is captured
// independently; the aggregate call always succeeds from the caller's
// perspective. Zero targets is a no-op logged as skipped.
func (d *HTTPDispatcher) DispatchAll(ctx context.Context, event *Event, targets []Target) []Outcome {
	log := logger.FromContext(ctx)
	if len(targets) == 0 {
		log.Warn("skipping webhook dispatch, no destinations configured", "event_type", event.Type)
		return nil
	}
	outcomes := make([]Outcome, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target Target) {
			defer wg.Done()
			outcomes[i] = d.dispatch(ctx, event, target)
		}(i, target)
	}
	wg.Wait()
	for _, outcome := range outcomes {
		if outcome.Kind == OutcomeSuccess {
			log.Info("webhook dispatched",
				"target", outcome.Target.Label,
				"status", outcome.StatusCode,
				"event_type", event.Type,
			)
			continue
		}
		log.Error("webhook dispatch failed",
			"target", outcome.Target.Label,
			"kind", outcome.Kind,
			"status", outcome.StatusCode,
			"error", outcome.Err,
		)
	}
	return outcomes
}

func (d *HTTPDispatcher) dispatch(ctx context.Context, event *Event, target Target) Outcome {
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(target.URL)
	if err != nil {
		return Outcome{Target: target, Kind: classifyError(err), Err: err}
	}
	if !resp.IsSuccess() {
		return Outcome{Target: target, Kind: OutcomeBadStatus, StatusCode: resp.StatusCode()}
	}
	return Outcome{Target: target, Kind: OutcomeSuccess, StatusCode: resp.StatusCode()}
}

func classifyError(err error) OutcomeKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return OutcomeTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return OutcomeConnError
	}
	return OutcomeOtherError
}
