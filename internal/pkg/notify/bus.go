// Package notify holds the transient notification shown to the operator
// after a page read fails or a mutation completes.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notification stays current.
const DefaultTTL = 4200 * time.Millisecond

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	Title   string
	Message string
	Kind    Kind
	At      time.Time
}

func Success(title, message string) Notification {
	return Notification{Title: title, Message: message, Kind: KindSuccess}
}

func Failure(title, message string) Notification {
	return Notification{Title: title, Message: message, Kind: KindError}
}

// Timer is the subset of *time.Timer the bus uses.
type Timer interface {
	Stop() bool
}

type Option func(*Bus)

func WithClock(now func() time.Time) Option {
	return func(b *Bus) { b.now = now }
}

// WithAfterFunc replaces time.AfterFunc for scheduling expiry.
func WithAfterFunc(afterFunc func(d time.Duration, f func()) Timer) Option {
	return func(b *Bus) { b.afterFunc = afterFunc }
}

// Bus keeps a single current notification and fans every new one out to
// subscribers.
type Bus struct {
	mu          sync.RWMutex
	ttl         time.Duration
	now         func() time.Time
	afterFunc   func(d time.Duration, f func()) Timer
	current     *Notification
	seq         uint64
	timer       Timer
	subscribers map[chan Notification]struct{}
}

// NewBus creates a Bus whose notifications expire after ttl (DefaultTTL when
// ttl is not positive).
func NewBus(ttl time.Duration, opts ...Option) *Bus {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b := &Bus{
		ttl: ttl,
		now: time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		subscribers: make(map[chan Notification]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Notify replaces the current notification and schedules its expiry. An
// older expiry never clears a newer notification.
func (b *Bus) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n.At.IsZero() {
		n.At = b.now()
	}
	b.seq++
	b.current = &n
	if b.timer != nil {
		b.timer.Stop()
	}
	id := b.seq
	b.timer = b.afterFunc(b.ttl, func() { b.expire(id) })

	for ch := range b.subscribers {
		select {
		case ch <- n:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}

func (b *Bus) expire(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.seq == id {
		b.current = nil
		b.timer = nil
	}
}

// Current returns the notification that has not yet expired, if any.
func (b *Bus) Current() (Notification, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.current == nil {
		return Notification{}, false
	}
	return *b.current, true
}

// Dismiss clears the current notification early.
func (b *Bus) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.current = nil
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Subscribe registers a subscriber and returns its channel and cleanup function
func (b *Bus) Subscribe() (<-chan Notification, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Notification, 10)
	b.subscribers[ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, ch)
			close(ch)
		})
	}
	return ch, cleanup
}

func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
