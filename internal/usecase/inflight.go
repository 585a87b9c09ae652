package usecase

import (
	"context"
	"sync"

	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
)

// InFlightGuard admits one mutating operation per key at a time. A second Acquire
// for a held key fails fast with ErrOperationInProgress instead of waiting.
type InFlightGuard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LocalGuard is an InFlightGuard for a single process.
type LocalGuard struct {
	held sync.Map
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{}
}

func (g *LocalGuard) Acquire(ctx context.Context, key string) (func(), error) {
	if _, loaded := g.held.LoadOrStore(key, struct{}{}); loaded {
		return nil, domainErrors.ErrOperationInProgress
	}
	var once sync.Once
	return func() {
		once.Do(func() { g.held.Delete(key) })
	}, nil
}
