package watch

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of triggers into one request on a channel of
// capacity one. A request already pending absorbs later ones.
type debouncer struct {
	mu     sync.Mutex
	timer  *time.Timer
	delay  time.Duration
	req    chan struct{}
	closed bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, req: make(chan struct{}, 1)}
}

// trigger restarts the quiet window.
func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.request)
}

// request enqueues a rebuild immediately.
func (d *debouncer) request() {
	select {
	case d.req <- struct{}{}:
	default:
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
