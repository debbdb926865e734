// Package lock serializes scans and batches, in process or across replicas.
package lock

import (
	"context"
	"fmt"

	"catalog_writer/internal/domain"
)

// Local is an in-process lock backed by a one-slot channel.
type Local struct {
	sem chan struct{}
}

func NewLocal() *Local {
	return &Local{sem: make(chan struct{}, 1)}
}

func (l *Local) Lock(ctx context.Context) (func(), error) {
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrBusy, ctx.Err())
	}
}
