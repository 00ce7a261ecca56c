// Package view holds the page controllers that keep a Loading/Ready/Failed
// state in step with the server. Reads are last-request-wins: a result is
// applied only while its generation is still current.
package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/Prateek11234/hrms/internal/pkg/apifetch"
	"github.com/Prateek11234/hrms/internal/pkg/notify"
)

type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// State is a snapshot of a page. Data keeps the last successful read while
// a newer read is loading or after it failed.
type State[T any] struct {
	Phase Phase
	Data  T
	Err   string
}

// Notifier receives one notification per failure and per successful mutation.
// *notify.Bus implements it.
type Notifier interface {
	Notify(n notify.Notification)
}

type page[T any] struct {
	mu       sync.Mutex
	state    State[T]
	gen      uint64
	closed   bool
	notifier Notifier

	readTitle    string // e.g. "Employees error"
	readFallback string // e.g. "Failed to load employees"
}

func newPage[T any](notifier Notifier, readTitle, readFallback string, empty T) *page[T] {
	return &page[T]{
		state:        State[T]{Phase: Loading, Data: empty},
		notifier:     notifier,
		readTitle:    readTitle,
		readFallback: readFallback,
	}
}

// State returns a copy of the current state.
func (p *page[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Unmount invalidates every in-flight read. Their results are dropped
// without notification.
func (p *page[T]) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.gen++
}

func (p *page[T]) remount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = false
	p.state.Phase = Loading
	p.state.Err = ""
}

// begin starts a read and makes it the current one. capture, when non-nil,
// runs under the page lock so the read sees a consistent identity.
func (p *page[T]) begin(capture func()) (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, false
	}
	p.gen++
	p.state.Phase = Loading
	p.state.Err = ""
	if capture != nil {
		capture()
	}
	return p.gen, true
}

// finish applies a read result if gen is still current and reports whether
// it did.
func (p *page[T]) finish(gen uint64, data T, err error) bool {
	p.mu.Lock()
	if p.closed || gen != p.gen {
		p.mu.Unlock()
		return false
	}
	if err != nil {
		msg := errorMessage(err, p.readFallback)
		p.state.Phase = Failed
		p.state.Err = msg
		p.mu.Unlock()
		p.notify(notify.Failure(p.readTitle, msg))
		return true
	}
	p.state = State[T]{Phase: Ready, Data: data}
	p.mu.Unlock()
	return true
}

// invalidate makes any in-flight read stale without starting a new one.
func (p *page[T]) invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
}

// mutate runs a write. Success emits the notification built by do; failure
// emits one failure notification and leaves the state untouched.
func (p *page[T]) mutate(ctx context.Context, failTitle, failFallback string, do func(ctx context.Context) (notify.Notification, error)) error {
	n, err := do(ctx)
	if err != nil {
		p.notify(notify.Failure(failTitle, errorMessage(err, failFallback)))
		return err
	}
	p.notify(n)
	return nil
}

func (p *page[T]) notify(n notify.Notification) {
	if p.notifier != nil {
		p.notifier.Notify(n)
	}
}

// errorMessage prefers the classified API message and falls back to a
// page-specific text for anything else.
func errorMessage(err error, fallback string) string {
	if msg, ok := apifetch.Message(err); ok {
		return msg
	}
	return fallback
}
