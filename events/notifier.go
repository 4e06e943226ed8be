package events

import (
	"context"
	"sync"
)

// ISubscription is a single listener of a Notifier
type ISubscription interface {
	// Chan delivers one signal per notification. Signals coalesce when the
	// listener is slower than the notifier.
	Chan() <-chan struct{}
	// Cancel detaches the listener and closes its channel. Safe to call twice.
	Cancel()
	// Watch calls cb for every signal until ctx is done
	Watch(ctx context.Context, cb func()) ISubscription
}

// Notifier fans a "something changed" signal out to every subscriber
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

func (n *Notifier) Subscribe() ISubscription {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()

	return &subscription{ch: ch, notifier: n}
}

// Len is the number of attached listeners
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Notify signals every listener without blocking on full channels
func (n *Notifier) Notify(ctx context.Context) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case <-ctx.Done():
			return
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *Notifier) detach(ch chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[ch]; ok {
		delete(n.listeners, ch)
		close(ch)
	}
}

type subscription struct {
	ch       chan struct{}
	notifier *Notifier
	stop     context.CancelFunc
	once     sync.Once
}

func (s *subscription) Chan() <-chan struct{} { return s.ch }

func (s *subscription) Cancel() {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
		s.notifier.detach(s.ch)
	})
}

func (s *subscription) Watch(ctx context.Context, cb func()) ISubscription {
	ctx, s.stop = context.WithCancel(ctx)

	go func() {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-s.ch:
				if !ok {
					return
				}
				cb()
			}
		}
	}()

	return s
}
