package countdown

import (
	"context"
	"sync"
	"time"
)

const defaultInterval = time.Second

type options struct {
	clock    Clock
	interval time.Duration
}

// Option configures Start.
type Option func(*options)

// WithClock runs the subscription on c instead of the wall clock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithInterval changes the recompute interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// Subscription is a running countdown towards a fixed target instant.
//
// Updates yields the initial breakdown first and then one breakdown per tick.
// Once the target is reached it yields the zero Breakdown a single time and
// the channel is closed. Stop, or cancelling the context given to Start,
// ends the subscription early; the channel is closed in that case too.
type Subscription struct {
	target  time.Time
	updates chan Breakdown
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Start derives target = now + initial and begins ticking. Exactly one ticker
// backs each subscription.
func Start(ctx context.Context, initial time.Duration, opts ...Option) *Subscription {
	o := options{clock: RealClock(), interval: defaultInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s := &Subscription{
		target:  o.clock.Now().Add(max(initial, 0)),
		updates: make(chan Breakdown),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	ticker := o.clock.NewTicker(o.interval)
	go s.run(ctx, o.clock, ticker, max(initial, 0))
	return s
}

// Updates returns the breakdown stream. It is closed when the subscription
// ends for any reason.
func (s *Subscription) Updates() <-chan Breakdown { return s.updates }

// Done is closed after the ticker has been released.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Target returns the instant the countdown runs towards.
func (s *Subscription) Target() time.Time { return s.target }

// Stop ends the subscription and waits for its goroutine to exit. It is safe
// to call more than once and on a nil Subscription.
func (s *Subscription) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Subscription) run(ctx context.Context, clock Clock, ticker Ticker, initial time.Duration) {
	defer close(s.done)
	defer close(s.updates)
	defer ticker.Stop()

	first := Decompose(initial)
	if !s.emit(ctx, first) || first.IsZero() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C():
			// Under a second left already reads as zero, so it ends the run.
			b := Decompose(s.target.Sub(clock.Now()))
			if !s.emit(ctx, b) || b.IsZero() {
				return
			}
		}
	}
}

// emit blocks until the breakdown is received or the subscription ends.
func (s *Subscription) emit(ctx context.Context, b Breakdown) bool {
	select {
	case s.updates <- b:
		return true
	case <-ctx.Done():
		return false
	case <-s.stop:
		return false
	}
}
