// Package actor provides a minimal single-threaded mailbox actor:
// a bounded inbox, one goroutine draining it in send order, and
// typed message envelopes. It exists because the neighborhood database
// and the CORES pipeline are each owned by exactly one actor with no
// internal suspension points — this package is the whole "framework"
// that requires.
package actor

import (
	"context"
	"sync"
)

// Envelope is one unit of mailbox work: Run executes synchronously on
// the actor's goroutine and must not block on anything but the work
// itself.
type Envelope struct {
	Run  func()
	done chan struct{}
}

// Mailbox is a single-threaded executor reading Envelopes off a bounded
// channel in FIFO order. Messages between two specific callers are
// delivered in send order; no ordering is implied between unrelated
// callers beyond the bound of this one mailbox.
type Mailbox struct {
	inbox  chan Envelope
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMailbox starts a mailbox with the given inbox capacity and begins
// its receive loop immediately.
func NewMailbox(capacity int) *Mailbox {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Mailbox{
		inbox:  make(chan Envelope, capacity),
		ctx:    ctx,
		cancel: cancel,
	}
	m.wg.Add(1)
	go m.run()
	return m
}

func (m *Mailbox) run() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case env := <-m.inbox:
			if m.ctx.Err() != nil {
				return
			}
			env.Run()
			if env.done != nil {
				close(env.done)
			}
		}
	}
}

// Send enqueues fn to run on the mailbox goroutine and returns without
// waiting for it to execute.
func (m *Mailbox) Send(fn func()) {
	select {
	case m.inbox <- Envelope{Run: fn}:
	case <-m.ctx.Done():
	}
}

// SendWait enqueues fn and blocks until it has run to completion, or
// until ctx is canceled. A dequeued message always runs to completion
// once started — there is no cooperative cancellation of in-flight
// work — ctx only bounds how long the caller waits to observe that,
// not the work itself.
func (m *Mailbox) SendWait(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	env := Envelope{Run: fn, done: done}
	select {
	case m.inbox <- env:
	case <-m.ctx.Done():
		return m.ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop ends the receive loop and waits for the goroutine to exit. Any
// envelope already dequeued completes first; anything still sitting in
// the inbox is dropped.
func (m *Mailbox) Stop() {
	m.cancel()
	m.wg.Wait()
}
