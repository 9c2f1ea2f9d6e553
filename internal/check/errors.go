package check

import "fmt"

// TransientError covers timeouts and network-level failures. The resolver
// retries these up to its configured attempt budget.
type TransientError struct {
	Op    string
	Cause error
}

func NewTransientError(op string, cause error) *TransientError {
	return &TransientError{Op: op, Cause: cause}
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient %s failure: %v", e.Op, e.Cause)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// ProviderError is a non-success status code in the provider's JSON envelope.
// It is retried exactly like a transient network failure.
type ProviderError struct {
	Code    string
	Message string
}

func NewProviderError(code, message string) *ProviderError {
	return &ProviderError{Code: code, Message: message}
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider returned error code %s", e.Code)
	}
	return fmt.Sprintf("provider returned error code %s: %s", e.Code, e.Message)
}

// MalformedPayloadError is an unexpected response shape. Never retried; the
// domain is reported as Unknown.
type MalformedPayloadError struct {
	Reason string
	Cause  error
}

func NewMalformedPayloadError(reason string, cause error) *MalformedPayloadError {
	return &MalformedPayloadError{Reason: reason, Cause: cause}
}

func (e *MalformedPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed provider payload: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed provider payload: %s", e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Cause
}

// DateParseError is an expiration timestamp that matched none of the accepted
// layouts. Never retried; the result is downgraded to Registered.
type DateParseError struct {
	Input string
}

func NewDateParseError(input string) *DateParseError {
	return &DateParseError{Input: input}
}

func (e *DateParseError) Error() string {
	if e.Input == "" {
		return "empty expiration timestamp"
	}
	return fmt.Sprintf("unparsable expiration timestamp %q", e.Input)
}
