package button

import "sync/atomic"

// EdgeLatch is the interrupt-to-main-loop handoff: a single-producer /
// single-consumer flag plus the timestamp latched when the edge fired.
// Note is the only thing the pin ISR does; it must stay O(1), allocation
// free, and never block. Single-word atomics are sufficient on this class
// of hardware; no locks are used.
type EdgeLatch struct {
	changed uint32
	tsMs    uint32
}

// Note latches the event time and raises the changed flag. Safe to call
// from interrupt context.
func (l *EdgeLatch) Note(nowMs uint32) {
	atomic.StoreUint32(&l.tsMs, nowMs)
	atomic.StoreUint32(&l.changed, 1)
}

// Take clears the flag and returns the latched timestamp. A second edge
// arriving between the two loads simply re-raises the flag and is picked
// up on the next poll.
func (l *EdgeLatch) Take() (uint32, bool) {
	if atomic.SwapUint32(&l.changed, 0) == 0 {
		return 0, false
	}
	return atomic.LoadUint32(&l.tsMs), true
}
