package check

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type lookupStep struct {
	payload *Payload
	err     error
}

// scriptedClient replays a fixed sequence of lookup outcomes.
type scriptedClient struct {
	steps []lookupStep
	calls int
}

func (c *scriptedClient) Lookup(_ context.Context, _ string) (*Payload, error) {
	step := c.steps[c.calls]
	c.calls++
	return step.payload, step.err
}

// stubSleep replaces timeSleep with an immediate tick and records the
// requested delays. Returns a restore func.
func stubSleep(delays *[]time.Duration) func() {
	orig := timeSleep
	timeSleep = func(d time.Duration) <-chan time.Time {
		*delays = append(*delays, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
	return func() { timeSleep = orig }
}

func newTestResolver(client LookupClient, maxRetries int) *Resolver {
	return NewResolver(client, newTestClassifier(), maxRetries, 2*time.Second, zerolog.Nop())
}

func TestResolve_SuccessFirstAttempt(t *testing.T) {
	client := &scriptedClient{steps: []lookupStep{
		{payload: &Payload{StatusCode: "1", StatusText: "ok", ExpiresAt: expiryIn(100)}},
	}}
	r := newTestResolver(client, 3)

	result := r.Resolve(context.Background(), "example.com")

	assert.Equal(t, CategoryRegistered, result.Category)
	assert.Equal(t, 1, client.calls)
}

func TestResolve_SucceedsOnFinalAttempt(t *testing.T) {
	var delays []time.Duration
	defer stubSleep(&delays)()

	client := &scriptedClient{steps: []lookupStep{
		{err: NewTransientError("lookup", errors.New("timeout"))},
		{err: NewTransientError("lookup", errors.New("timeout"))},
		{err: NewTransientError("lookup", errors.New("timeout"))},
		{payload: &Payload{StatusText: "Domain is available"}},
	}}
	r := newTestResolver(client, 3)

	result := r.Resolve(context.Background(), "example.com")

	assert.Equal(t, CategoryUnregistered, result.Category)
	assert.Equal(t, 4, client.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}, delays)
}

func TestResolve_RetryBudgetExhausted(t *testing.T) {
	var delays []time.Duration
	defer stubSleep(&delays)()

	client := &scriptedClient{steps: []lookupStep{
		{err: NewTransientError("lookup", errors.New("connection timed out"))},
		{err: NewTransientError("lookup", errors.New("connection timed out"))},
		{err: NewTransientError("lookup", errors.New("connection timed out"))},
		{err: NewTransientError("lookup", errors.New("connection timed out"))},
	}}
	r := newTestResolver(client, 3)

	result := r.Resolve(context.Background(), "example.com")

	assert.Equal(t, CategoryQueryFailed, result.Category)
	assert.Equal(t, 4, client.calls, "at most maxRetries+1 attempts")
	assert.Contains(t, result.Detail, "timed out")
	assert.Contains(t, result.Detail, "4 attempts")
	assert.Len(t, delays, 3)
}

func TestResolve_ProviderErrorRetriedLikeTransient(t *testing.T) {
	var delays []time.Duration
	defer stubSleep(&delays)()

	client := &scriptedClient{steps: []lookupStep{
		{err: NewProviderError("500", "backend busy")},
		{payload: &Payload{StatusText: "ok", ExpiresAt: expiryIn(5)}},
	}}
	r := newTestResolver(client, 3)

	result := r.Resolve(context.Background(), "example.com")

	assert.Equal(t, CategoryExpiring, result.Category)
	assert.Equal(t, 2, client.calls)
}

func TestResolve_MalformedPayloadNotRetried(t *testing.T) {
	var delays []time.Duration
	defer stubSleep(&delays)()

	client := &scriptedClient{steps: []lookupStep{
		{err: NewMalformedPayloadError("missing data object", nil)},
	}}
	r := newTestResolver(client, 3)

	result := r.Resolve(context.Background(), "example.com")

	assert.Equal(t, CategoryUnknown, result.Category)
	assert.Contains(t, result.Detail, "missing data object")
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, delays)
}

func TestResolve_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &scriptedClient{steps: []lookupStep{
		{err: NewTransientError("lookup", errors.New("timeout"))},
	}}
	r := newTestResolver(client, 3)

	result := r.Resolve(ctx, "example.com")

	assert.Equal(t, CategoryQueryFailed, result.Category)
	assert.Contains(t, result.Detail, "interrupted")
	assert.Equal(t, 1, client.calls)
}

func TestResolve_ZeroRetriesFailsImmediately(t *testing.T) {
	client := &scriptedClient{steps: []lookupStep{
		{err: NewTransientError("lookup", errors.New("timeout"))},
	}}
	r := newTestResolver(client, 0)

	result := r.Resolve(context.Background(), "example.com")

	assert.Equal(t, CategoryQueryFailed, result.Category)
	assert.Equal(t, 1, client.calls)
}
