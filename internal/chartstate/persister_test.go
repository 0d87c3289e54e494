package chartstate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/storage"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

// fakeClock runs scheduled calls when Advance passes their deadline.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			t.fn()
		}
	}
}

type countingStorage struct {
	*storage.Memory
	writes []string
}

func (c *countingStorage) SetItem(key, value string) error {
	c.writes = append(c.writes, key+"="+value)
	return c.Memory.SetItem(key, value)
}

type stubWidget struct{ opts Options }

func (w *stubWidget) GetOptions() Options { return w.opts }

func newPersister(t *testing.T) (*Persister, *fakeClock, *countingStorage) {
	t.Helper()
	backend := &countingStorage{Memory: storage.NewMemory(0)}
	clock := &fakeClock{}
	store := viewstate.New(backend, logger.Nop())
	p := NewPersister(store, "AAPL", WithAfterFunc(clock.AfterFunc), WithLogger(logger.Nop()))
	return p, clock, backend
}

func TestBurstCoalescesIntoOneWrite(t *testing.T) {
	p, clock, backend := newPersister(t)
	w := &stubWidget{opts: Options{ChartKind: Candlestick, Range: &Range{Start: 1, End: 2}}}

	p.Notify(w)
	clock.Advance(100 * time.Millisecond)
	w.opts = Options{ChartKind: Line, Range: &Range{Start: 10, End: 20}}
	p.Notify(w)

	clock.Advance(499 * time.Millisecond)
	assert.Empty(t, backend.writes)
	assert.True(t, p.Pending())

	clock.Advance(time.Millisecond)
	require.Len(t, backend.writes, 1)
	assert.Equal(t, `candlestick-chart-state-AAPL={"chartKind":"line","dateRange":{"start":10,"end":20}}`, backend.writes[0])
	assert.False(t, p.Pending())

	state, ok := p.Load()
	require.True(t, ok)
	assert.Equal(t, Line, state.ChartKind)
	assert.Equal(t, &Range{Start: 10, End: 20}, state.DateRange)
}

func TestNotifySnapshotsAtCallTime(t *testing.T) {
	p, clock, _ := newPersister(t)
	r := &Range{Start: 1, End: 5}
	w := &stubWidget{opts: Options{ChartKind: OHLC, Range: r}}

	p.Notify(w)
	r.End = 99
	w.opts.ChartKind = Line
	clock.Advance(DefaultQuietPeriod)

	state, ok := p.Load()
	require.True(t, ok)
	assert.Equal(t, OHLC, state.ChartKind)
	assert.Equal(t, int64(5), state.DateRange.End)
}

func TestStopCancelsPendingWrite(t *testing.T) {
	p, clock, backend := newPersister(t)
	w := &stubWidget{opts: Options{ChartKind: Candlestick}}

	p.Notify(w)
	p.Stop()
	clock.Advance(time.Second)
	p.Notify(w)
	clock.Advance(time.Second)

	assert.Empty(t, backend.writes)
	assert.False(t, p.Pending())
}

func TestLoadRejectsBadState(t *testing.T) {
	p, _, backend := newPersister(t)

	_, ok := p.Load()
	assert.False(t, ok)

	require.NoError(t, backend.Memory.SetItem(p.Namespace(), `{"chartKind":"pie","dateRange":{"start":9,"end":1}}`))
	state, ok := p.Load()
	require.True(t, ok)
	assert.Empty(t, state.ChartKind)
	assert.Nil(t, state.DateRange)

	require.NoError(t, backend.Memory.SetItem(p.Namespace(), `not json`))
	_, ok = p.Load()
	assert.False(t, ok)
}

func TestRealTimerWrites(t *testing.T) {
	backend := storage.NewMemory(0)
	store := viewstate.New(backend, logger.Nop())
	p := NewPersister(store, "TSLA", WithQuietPeriod(5*time.Millisecond))
	p.Notify(&stubWidget{opts: Options{ChartKind: OHLC}})

	require.Eventually(t, func() bool {
		var state ViewState
		return store.Decode(p.Namespace(), &state) && state.ChartKind == OHLC
	}, time.Second, 5*time.Millisecond)
}

func TestConcurrentNotify(t *testing.T) {
	backend := storage.NewMemory(0)
	store := viewstate.New(backend, logger.Nop())
	p := NewPersister(store, "MSFT", WithQuietPeriod(time.Millisecond))
	defer p.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Notify(&stubWidget{opts: Options{ChartKind: Line}})
		}()
	}
	wg.Wait()
}

type blockingStorage struct {
	*storage.Memory
	started chan struct{}
	release chan struct{}
}

func (b *blockingStorage) SetItem(key, value string) error {
	close(b.started)
	<-b.release
	return b.Memory.SetItem(key, value)
}

func TestStopWaitsForRunningWrite(t *testing.T) {
	backend := &blockingStorage{Memory: storage.NewMemory(0), started: make(chan struct{}), release: make(chan struct{})}
	clock := &fakeClock{}
	p := NewPersister(viewstate.New(backend, logger.Nop()), "AAPL", WithAfterFunc(clock.AfterFunc))

	p.Notify(&stubWidget{opts: Options{ChartKind: Line}})
	go clock.Advance(DefaultQuietPeriod)
	<-backend.started

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a write was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(backend.release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the write finished")
	}

	_, saved, err := backend.Memory.GetItem(p.Namespace())
	require.NoError(t, err)
	assert.True(t, saved)
}
