package io

const (
	INPUT_QUEUE_CAPACITY = 4096 // Matches the memory size.
)

// InputEvent is a single entry of the input queue.
type InputEvent struct {
	Device uint16
	Data   uint16
}

// InputQueue stores input events for the GIN instruction.
//
// Despite the name it is LIFO: Pop returns the most recently pushed
// event first. Push never evicts; once more than INPUT_QUEUE_CAPACITY
// events are stored, new events overwrite old ones at the same slot.
type InputQueue struct {
	Data   [INPUT_QUEUE_CAPACITY]InputEvent
	Cursor int // Slot of the most recently pushed event.
	Stored int // Number of events pushed and not yet popped.
}

var _ Input = (*InputQueue)(nil)

// Push stores an event.
func (q *InputQueue) Push(device, data uint16) {
	q.Cursor = (q.Cursor + 1) % INPUT_QUEUE_CAPACITY
	q.Data[q.Cursor] = InputEvent{Device: device, Data: data}
	q.Stored++
}

// Pop removes the most recently pushed event.
// Returns the zero event and false when nothing is stored.
func (q *InputQueue) Pop() (event InputEvent, ok bool) {
	event, ok = q.Peek()
	if ok {
		q.Cursor = (q.Cursor + INPUT_QUEUE_CAPACITY - 1) % INPUT_QUEUE_CAPACITY
		q.Stored--
	}
	return
}

// Peek returns the event Pop would return, without removing it.
func (q *InputQueue) Peek() (event InputEvent, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[q.Cursor], true
}

// Empty returns true when no events are stored.
func (q *InputQueue) Empty() bool {
	return q.Stored == 0
}

// Len returns the number of stored events.
func (q *InputQueue) Len() int {
	return q.Stored
}

// Reset discards all events.
func (q *InputQueue) Reset() {
	clear(q.Data[:])
	q.Cursor = 0
	q.Stored = 0
}
