package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// timeSleep wraps time.After so tests can run the retry loop without real
// delays.
var timeSleep = func(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// retryState tracks one domain's attempt sequence. It lives only for the
// duration of a single Resolve call.
type retryState struct {
	attempt int
	lastErr error
	waited  time.Duration
}

// Resolver produces the terminal Result for a domain: one lookup per attempt,
// bounded retry on transient failure, classification on success. It performs
// no inter-domain pacing; callers serialize domains themselves.
type Resolver struct {
	client     LookupClient
	classifier *Classifier
	maxRetries int
	retryDelay time.Duration
	logger     zerolog.Logger
}

func NewResolver(client LookupClient, classifier *Classifier, maxRetries int, retryDelay time.Duration, logger zerolog.Logger) *Resolver {
	return &Resolver{
		client:     client,
		classifier: classifier,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Resolve blocks until the domain reaches a terminal category. It performs at
// most maxRetries+1 attempts; a success on the final attempt still yields the
// classified result, not a failure.
func (r *Resolver) Resolve(ctx context.Context, domain string) Result {
	state := retryState{}
	for {
		payload, err := r.client.Lookup(ctx, domain)
		if err == nil {
			result := r.classifier.Classify(domain, payload)
			r.logger.Debug().
				Str("domain", domain).
				Str("category", string(result.Category)).
				Int("attempts", state.attempt+1).
				Msg("Domain classified")
			return result
		}

		var malformed *MalformedPayloadError
		if errors.As(err, &malformed) {
			r.logger.Warn().Str("domain", domain).Err(err).Msg("Unexpected provider payload")
			return Result{
				Domain:   domain,
				Category: CategoryUnknown,
				Detail:   err.Error(),
			}
		}

		if ctx.Err() != nil {
			return Result{
				Domain:   domain,
				Category: CategoryQueryFailed,
				Detail:   fmt.Sprintf("lookup interrupted: %v", ctx.Err()),
			}
		}

		state.lastErr = err
		if state.attempt >= r.maxRetries {
			r.logger.Warn().
				Str("domain", domain).
				Int("attempts", state.attempt+1).
				Err(state.lastErr).
				Msg("Retry budget exhausted")
			return Result{
				Domain:   domain,
				Category: CategoryQueryFailed,
				Detail:   fmt.Sprintf("query failed after %d attempts: %v", state.attempt+1, state.lastErr),
			}
		}

		r.logger.Debug().
			Str("domain", domain).
			Int("attempt", state.attempt+1).
			Dur("retry_delay", r.retryDelay).
			Err(err).
			Msg("Transient lookup failure, retrying")
		select {
		case <-timeSleep(r.retryDelay):
			state.waited += r.retryDelay
		case <-ctx.Done():
			return Result{
				Domain:   domain,
				Category: CategoryQueryFailed,
				Detail:   fmt.Sprintf("lookup interrupted: %v", ctx.Err()),
			}
		}
		state.attempt++
	}
}
