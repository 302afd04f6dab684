package dispatcher

import (
	"sync"
	"time"
)

// wakeCond is the janitor's wake condition: a timed wait that returns early
// and permanently once signaled. It is paired with its own mutex,
// independent of the cache's lock, so a pending age pass never blocks
// shutdown on cache contention.
type wakeCond struct {
	mu   sync.Mutex
	cond *sync.Cond
	fire bool
}

func newWakeCond() *wakeCond {
	w := &wakeCond{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// wait blocks until d elapses or signal is called, whichever comes first. It
// reports whether it returned because of signal.
func (w *wakeCond) wait(d time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fire {
		return true
	}

	deadline := time.Now().Add(d)
	timer := time.AfterFunc(d, func() {
		w.mu.Lock()
		w.cond.Broadcast()
		w.mu.Unlock()
	})
	defer timer.Stop()

	for !w.fire && time.Now().Before(deadline) {
		w.cond.Wait()
	}
	return w.fire
}

// signal wakes any current or future waiter immediately; used once, on shutdown.
func (w *wakeCond) signal() {
	w.mu.Lock()
	w.fire = true
	w.cond.Broadcast()
	w.mu.Unlock()
}
