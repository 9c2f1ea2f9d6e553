package main

import "context"

// application is what the root command needs from the wired app: one
// blocking run over the domain list.
type application interface {
	Run(ctx context.Context) error
}
