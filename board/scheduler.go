package board

// Scheduler holds per-frame callbacks. The core performs no timing of
// its own; the host invokes Tick once per render tick.
type Scheduler struct {
	nextID    int
	callbacks []frameCallback
}

type frameCallback struct {
	id int
	fn func()
}

// FrameCallback is the cancelable handle for one registered callback.
type FrameCallback struct {
	s  *Scheduler
	id int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RegisterFrameCallback adds fn to the tick list. Callbacks run in
// registration order.
func (s *Scheduler) RegisterFrameCallback(fn func()) *FrameCallback {
	s.nextID++
	s.callbacks = append(s.callbacks, frameCallback{id: s.nextID, fn: fn})
	return &FrameCallback{s: s, id: s.nextID}
}

// Cancel removes the callback. Safe to call more than once.
func (h *FrameCallback) Cancel() {
	if h == nil || h.s == nil {
		return
	}
	for i, cb := range h.s.callbacks {
		if cb.id == h.id {
			h.s.callbacks = append(h.s.callbacks[:i], h.s.callbacks[i+1:]...)
			break
		}
	}
	h.s = nil
}

// Tick invokes every live callback once. Iterates over a snapshot so
// callbacks may register or cancel while the tick is in flight.
func (s *Scheduler) Tick() {
	for _, cb := range append([]frameCallback(nil), s.callbacks...) {
		if s.alive(cb.id) {
			cb.fn()
		}
	}
}

func (s *Scheduler) alive(id int) bool {
	for _, cb := range s.callbacks {
		if cb.id == id {
			return true
		}
	}
	return false
}
