package board

import (
	"github.com/jakecoffman/cp"
)

// Subscriber receives global pointer events for the duration of a
// gesture. Any of the callbacks may be nil.
type Subscriber struct {
	Move  func(pt cp.Vector)
	Up    func(pt cp.Vector)
	Leave func()
}

// Subscription is the handle for one attached subscriber. Release is
// idempotent so gestures can detach on every exit path without
// bookkeeping.
type Subscription struct {
	d        *Dispatcher
	fns      Subscriber
	released bool
}

// Release detaches the subscriber. Safe to call more than once.
func (sub *Subscription) Release() {
	if sub == nil || sub.released {
		return
	}
	sub.released = true
	subs := sub.d.subs
	for i, other := range subs {
		if other == sub {
			sub.d.subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// Dispatcher routes global pointer move/up/leave events to the
// subscribers of currently active gestures. The host feeds it from its
// input loop; everything runs on the single event-loop goroutine.
type Dispatcher struct {
	subs []*Subscription
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe attaches a subscriber and returns its handle.
func (d *Dispatcher) Subscribe(fns Subscriber) *Subscription {
	sub := &Subscription{d: d, fns: fns}
	d.subs = append(d.subs, sub)
	return sub
}

// Active returns the number of attached subscribers.
func (d *Dispatcher) Active() int {
	return len(d.subs)
}

// snapshot copies the subscriber list so handlers may release
// subscriptions while a dispatch is in flight.
func (d *Dispatcher) snapshot() []*Subscription {
	out := make([]*Subscription, len(d.subs))
	copy(out, d.subs)
	return out
}

// PointerMove delivers a pointer-move event to all subscribers.
func (d *Dispatcher) PointerMove(pt cp.Vector) {
	for _, sub := range d.snapshot() {
		if !sub.released && sub.fns.Move != nil {
			sub.fns.Move(pt)
		}
	}
}

// PointerUp delivers a pointer-up event to all subscribers.
func (d *Dispatcher) PointerUp(pt cp.Vector) {
	for _, sub := range d.snapshot() {
		if !sub.released && sub.fns.Up != nil {
			sub.fns.Up(pt)
		}
	}
}

// PointerLeave delivers a pointer-leave event, e.g. when the cursor
// exits the window during a gesture.
func (d *Dispatcher) PointerLeave() {
	for _, sub := range d.snapshot() {
		if !sub.released && sub.fns.Leave != nil {
			sub.fns.Leave()
		}
	}
}
