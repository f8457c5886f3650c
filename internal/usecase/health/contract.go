package health

import "context"

// StorePinger checks result store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// InputChecker checks that the renderer pool is reachable.
type InputChecker interface {
	CheckInput(ctx context.Context) error
}
