// Package frame abstracts the host's "run before the next visual refresh"
// primitive. Recurring work re-requests itself from inside its callback and
// stops by cancelling the handle it last received.
package frame

// Callback receives a monotonic timestamp in milliseconds.
type Callback func(nowMs float64)

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

// Scheduler requests and cancels frame callbacks.
type Scheduler interface {
	Request(cb Callback) Handle
	Cancel(h Handle)
}

// Queue is a Scheduler whose callbacks run when the host calls Flush.
// Callbacks requested while a flush is in progress run on the next flush.
// Queue is not safe for concurrent use.
type Queue struct {
	next    Handle
	pending []entry
	// inflight holds the handles of the batch being flushed that have not
	// run or been cancelled yet.
	inflight map[Handle]bool
}

type entry struct {
	handle Handle
	cb     Callback
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Request queues cb for the next flush.
func (q *Queue) Request(cb Callback) Handle {
	q.next++
	q.pending = append(q.pending, entry{handle: q.next, cb: cb})
	return q.next
}

// Cancel drops a queued callback. Unknown or already-run handles are ignored.
func (q *Queue) Cancel(h Handle) {
	if q.inflight[h] {
		delete(q.inflight, h)
		return
	}
	for i, e := range q.pending {
		if e.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next flush.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Flush runs every callback queued before the call, in request order.
// A callback cancelled by an earlier callback of the same flush is skipped.
func (q *Queue) Flush(nowMs float64) {
	batch := q.pending
	q.pending = nil
	q.inflight = make(map[Handle]bool, len(batch))
	for _, e := range batch {
		q.inflight[e.handle] = true
	}
	for _, e := range batch {
		if !q.inflight[e.handle] {
			continue
		}
		delete(q.inflight, e.handle)
		e.cb(nowMs)
	}
	q.inflight = nil
}
