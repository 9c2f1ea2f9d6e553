package check

import "time"

// Category is the mutually exclusive lifecycle bucket for a domain's
// registration state.
type Category string

const (
	CategoryUnregistered      Category = "unregistered"
	CategoryRegistered        Category = "registered"
	CategoryRegisteredSpecial Category = "registered_special"
	CategoryExpiring          Category = "expiring"
	CategoryQueryFailed       Category = "query_failed"
	CategoryUnknown           Category = "unknown"
)

// Payload is the decoded lookup response for a single attempt. It is handed
// to the classifier and not retained afterward.
type Payload struct {
	StatusCode string
	StatusText string
	ExpiresAt  string
}

// Result is the terminal outcome for one domain. DaysRemaining is set exactly
// when Expiry is set; it may be negative for a domain already past expiry.
type Result struct {
	Domain        string
	Category      Category
	Tags          []string
	Expiry        *time.Time
	DaysRemaining *int
	Detail        string
}

// HasExpiry reports whether the provider supplied a parsable expiry.
func (r Result) HasExpiry() bool {
	return r.Expiry != nil
}
