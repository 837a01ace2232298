package dateinput

import (
	"context"
	"sync"
)

// Feed is a latest-value source for live bounds. New subscribers receive the
// current value first, then every published value. Subscribers that fall
// behind only keep the most recent value. All methods are safe for concurrent
// use.
type Feed struct {
	mu     sync.Mutex
	value  string
	set    bool
	subs   map[chan string]struct{}
	closed bool
}

// NewFeed creates a feed. When initial is given the first entry becomes the
// current value.
func NewFeed(initial ...string) *Feed {
	f := &Feed{subs: make(map[chan string]struct{})}
	if len(initial) > 0 {
		f.value = initial[0]
		f.set = true
	}
	return f
}

// Value returns the most recently published value.
func (f *Feed) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Publish stores value and delivers it to every subscriber.
func (f *Feed) Publish(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.value = value
	f.set = true
	for ch := range f.subs {
		offerLatest(ch, value)
	}
}

// Subscribe returns a channel of values. The channel is closed when ctx is
// done or the feed is closed.
func (f *Feed) Subscribe(ctx context.Context) <-chan string {
	ch := make(chan string, 1)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(ch)
		return ch
	}
	if f.set {
		ch <- f.value
	}
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			f.unsubscribe(ch)
		}()
	}
	return ch
}

// Close closes every subscriber channel. Later Publish calls are ignored.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for ch := range f.subs {
		delete(f.subs, ch)
		close(ch)
	}
}

func (f *Feed) unsubscribe(ch chan string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[ch]; !ok {
		return
	}
	delete(f.subs, ch)
	close(ch)
}

// offerLatest replaces a pending value instead of blocking. Callers hold f.mu,
// so there is a single sender per channel.
func offerLatest(ch chan string, value string) {
	select {
	case ch <- value:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- value:
	default:
	}
}
