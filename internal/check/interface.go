package check

import "context"

// LookupClient issues one provider lookup for a domain. Implementations
// signal failure kind through the error types in this package: transport
// problems as *TransientError, envelope error codes as *ProviderError, and
// undecodable bodies as *MalformedPayloadError.
type LookupClient interface {
	Lookup(ctx context.Context, domain string) (*Payload, error)
}
