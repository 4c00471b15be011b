package countdown

import (
	"context"
	"sync"
	"testing"
	"time"
)

type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves time forward by d and delivers one tick to every live ticker.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	tickers := append([]*manualTicker(nil), c.tickers...)
	c.mu.Unlock()
	for _, t := range tickers {
		select {
		case t.c <- now:
		case <-t.stopped:
		}
	}
}

func (c *manualClock) liveTickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		select {
		case <-t.stopped:
		default:
			n++
		}
	}
	return n
}

type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.once.Do(func() { close(t.stopped) }) }

func recv(t *testing.T, s *Subscription) (Breakdown, bool) {
	t.Helper()
	select {
	case b, ok := <-s.Updates():
		return b, ok
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for countdown update")
		return Breakdown{}, false
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want Breakdown
	}{
		{0, Breakdown{}},
		{-3 * time.Second, Breakdown{}},
		{999 * time.Millisecond, Breakdown{}},
		{1500 * time.Millisecond, Breakdown{Seconds: 1}},
		{59 * time.Second, Breakdown{Seconds: 59}},
		{time.Hour + time.Minute + time.Second, Breakdown{Hours: 1, Minutes: 1, Seconds: 1}},
		{3*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second, Breakdown{Days: 3, Hours: 23, Minutes: 59, Seconds: 59}},
	}
	for _, tc := range tests {
		if got := Decompose(tc.in); got != tc.want {
			t.Errorf("Decompose(%v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestBreakdown_Helpers(t *testing.T) {
	b := FromParts(1, 2, 3, 4)
	if b.TotalSeconds() != 93784 {
		t.Fatalf("TotalSeconds() = %d, want 93784", b.TotalSeconds())
	}
	if Decompose(b.Duration()) != b {
		t.Fatalf("Decompose(Duration()) did not round trip %+v", b)
	}
	if FromParts(-1, -1, -1, -1) != (Breakdown{}) {
		t.Fatalf("negative parts were not clamped")
	}
	if got := b.String(); got != "1d 02h 03m 04s" {
		t.Fatalf("String() = %q", got)
	}
}

func TestStart_FiveSecondsReachesZeroAndStays(t *testing.T) {
	clock := newManualClock()
	sub := Start(context.Background(), FromParts(0, 0, 0, 5).Duration(), WithClock(clock))
	defer sub.Stop()

	if b, _ := recv(t, sub); b != (Breakdown{Seconds: 5}) {
		t.Fatalf("initial = %+v, want 5s", b)
	}
	for want := 4; want >= 0; want-- {
		clock.Advance(time.Second)
		b, ok := recv(t, sub)
		if !ok {
			t.Fatalf("updates closed early at %ds", want)
		}
		if b != (Breakdown{Seconds: want}) {
			t.Fatalf("update = %+v, want %ds", b, want)
		}
	}

	if _, ok := recv(t, sub); ok {
		t.Fatalf("update received after reaching zero")
	}
	<-sub.Done()
	clock.Advance(time.Second)
	if clock.liveTickers() != 0 {
		t.Fatalf("ticker still running after zero")
	}
}

func TestStart_DecompositionReconstructsRemaining(t *testing.T) {
	clock := newManualClock()
	initial := FromParts(1, 2, 3, 4)
	sub := Start(context.Background(), initial.Duration(), WithClock(clock))
	defer sub.Stop()

	first, _ := recv(t, sub)
	if first != initial {
		t.Fatalf("initial = %+v, want %+v", first, initial)
	}
	for k := int64(1); k <= 130; k++ {
		clock.Advance(time.Second)
		b, ok := recv(t, sub)
		if !ok {
			t.Fatalf("updates closed at tick %d", k)
		}
		if got, want := b.TotalSeconds(), initial.TotalSeconds()-k; got != want {
			t.Fatalf("tick %d: %+v reconstructs %d, want %d", k, b, got, want)
		}
		if b.Hours > 23 || b.Minutes > 59 || b.Seconds > 59 {
			t.Fatalf("tick %d: column out of range %+v", k, b)
		}
	}
}

func TestStart_LargeJumpEmitsZeroOnce(t *testing.T) {
	clock := newManualClock()
	sub := Start(context.Background(), 10*time.Second, WithClock(clock))
	defer sub.Stop()

	recv(t, sub)
	clock.Advance(time.Minute)
	if b, ok := recv(t, sub); !ok || !b.IsZero() {
		t.Fatalf("update = %+v, %v; want zero", b, ok)
	}
	if _, ok := recv(t, sub); ok {
		t.Fatalf("second update after zero")
	}
}

func TestStart_ZeroInitialClosesImmediately(t *testing.T) {
	clock := newManualClock()
	sub := Start(context.Background(), 0, WithClock(clock))

	if b, ok := recv(t, sub); !ok || !b.IsZero() {
		t.Fatalf("initial = %+v, %v; want zero", b, ok)
	}
	if _, ok := recv(t, sub); ok {
		t.Fatalf("update after zero initial")
	}
	sub.Stop()
	if clock.liveTickers() != 0 {
		t.Fatalf("ticker leaked")
	}
}

func TestSubscription_StopLeavesNoResidualTick(t *testing.T) {
	clock := newManualClock()
	sub := Start(context.Background(), time.Hour, WithClock(clock))
	recv(t, sub)
	clock.Advance(time.Second)
	recv(t, sub)

	sub.Stop()
	sub.Stop()

	clock.Advance(time.Second)
	if _, ok := recv(t, sub); ok {
		t.Fatalf("update received after Stop")
	}
	if clock.liveTickers() != 0 {
		t.Fatalf("ticker still running after Stop")
	}
}

func TestSubscription_ReplaceKeepsOneTicker(t *testing.T) {
	clock := newManualClock()
	first := Start(context.Background(), time.Hour, WithClock(clock))
	recv(t, first)

	first.Stop()
	second := Start(context.Background(), 30*time.Second, WithClock(clock))
	defer second.Stop()
	if b, _ := recv(t, second); b != (Breakdown{Seconds: 30}) {
		t.Fatalf("replacement initial = %+v", b)
	}
	if clock.liveTickers() != 1 {
		t.Fatalf("live tickers = %d, want 1", clock.liveTickers())
	}
	if _, ok := recv(t, first); ok {
		t.Fatalf("replaced subscription still delivering")
	}
}

func TestSubscription_ContextCancelStops(t *testing.T) {
	clock := newManualClock()
	ctx, cancel := context.WithCancel(context.Background())
	sub := Start(ctx, time.Hour, WithClock(clock))
	recv(t, sub)

	cancel()
	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription did not stop on cancel")
	}
	if _, ok := recv(t, sub); ok {
		t.Fatalf("update after cancel")
	}
	sub.Stop()
}

func TestSubscription_TargetIsNowPlusInitial(t *testing.T) {
	clock := newManualClock()
	start := clock.Now()
	sub := Start(context.Background(), 90*time.Second, WithClock(clock))
	defer sub.Stop()
	if !sub.Target().Equal(start.Add(90 * time.Second)) {
		t.Fatalf("Target() = %v", sub.Target())
	}
}

func TestSubscription_NilStop(t *testing.T) {
	var s *Subscription
	s.Stop()
}

func TestRealClock_Ticks(t *testing.T) {
	sub := Start(context.Background(), 2*time.Second, WithInterval(10*time.Millisecond))
	defer sub.Stop()
	first, _ := recv(t, sub)
	if first != (Breakdown{Seconds: 2}) {
		t.Fatalf("initial = %+v", first)
	}
	next, ok := recv(t, sub)
	if !ok || next.TotalSeconds() > 2 {
		t.Fatalf("tick = %+v, %v", next, ok)
	}
}
