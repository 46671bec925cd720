package service

import "sync/atomic"

// Guard admits one call at a time and rejects the rest with ErrBusy.
type Guard struct {
	busy atomic.Bool
}

func (g *Guard) Run(fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return fn()
}

func (g *Guard) Busy() bool {
	return g.busy.Load()
}
