// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"os"
	"os/signal"
	"sync/atomic"
)

// CancelFlag is the single process-wide cancellation flag: an atomic
// boolean polled at the start of every residual callback.
type CancelFlag struct {
	set atomic.Bool
}

// NewCancelFlag returns a fresh, unset flag.
func NewCancelFlag() *CancelFlag {
	return &CancelFlag{}
}

// IsSet reports whether cancellation has been requested.
func (c *CancelFlag) IsSet() bool { return c.set.Load() }

// Request latches the cancellation flag; idempotent.
func (c *CancelFlag) Request() { c.set.Store(true) }

// Reset clears the flag, for reuse across separate Run calls.
func (c *CancelFlag) Reset() { c.set.Store(false) }

// SignalBinder installs an OS signal handler that requests cancellation on
// the bound flag for the duration of a solve, restoring the previous
// handler on all exit paths.
type SignalBinder struct {
	flag *CancelFlag
	ch   chan os.Signal
	done chan struct{}
}

// Bind installs the handler for sig on flag and returns a binder whose
// Unbind must be deferred by the caller.
func Bind(flag *CancelFlag, sig ...os.Signal) *SignalBinder {
	b := &SignalBinder{
		flag: flag,
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	signal.Notify(b.ch, sig...)
	go func() {
		select {
		case <-b.ch:
			flag.Request()
		case <-b.done:
		}
	}()
	return b
}

// Unbind restores the previous signal disposition and stops the goroutine
// started by Bind. Safe to call exactly once.
func (b *SignalBinder) Unbind() {
	signal.Stop(b.ch)
	close(b.done)
}
