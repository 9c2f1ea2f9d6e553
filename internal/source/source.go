package source

import "context"

// Source yields the ordered list of domain names to check. A failure here is
// fatal for the run; there is nothing to report without a domain list.
type Source interface {
	Domains(ctx context.Context) ([]string, error)
}
