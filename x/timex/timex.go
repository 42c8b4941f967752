package timex

// Millisecond timestamps on the pendant are uint32 and wrap at 2^32.
// All comparisons must go through unsigned subtraction so a wrapped clock
// still yields correct durations.

// Elapsed returns the milliseconds between since and now, tolerant of the
// counter wrapping in between.
func Elapsed(now, since uint32) uint32 { return now - since }

// Reached reports whether at least d milliseconds have passed since since.
func Reached(now, since, d uint32) bool { return now-since >= d }
