package convert

import "time"

// IDAllocator hands out the millisecond identifiers used as filename
// stems. It is owned by the batch driver and threaded through calls; ids
// are strictly increasing across a batch even when source conversations
// share a timestamp, so filesystem sort order matches source order.
type IDAllocator struct {
	last int64
}

// Next derives an epoch-millisecond id from a source timestamp, bumping
// by the minimum needed to stay ahead of every id handed out before it.
func (a *IDAllocator) Next(ts float64) int64 {
	id := ToMillis(ts)
	if id <= a.last {
		id = a.last + 1
	}
	a.last = id
	return id
}

// ToMillis converts an export timestamp to integer epoch milliseconds.
// Exports store seconds as floats, but some fields already carry
// milliseconds; anything past 1e12 is assumed converted. A missing
// timestamp falls back to now.
func ToMillis(ts float64) int64 {
	if ts <= 0 {
		return time.Now().UnixMilli()
	}
	if ts > 1e12 {
		return int64(ts)
	}
	return int64(ts*1000 + 0.5)
}
