package dispatch

import (
	"container/heap"
	"errors"
	"sync"
	"time"
)

var (
	ErrInvalidDueTime = errors.New("dispatch: invalid due time")
	ErrStopped        = errors.New("dispatch: mailbox stopped")
)

type envelope[T any] struct {
	value T
	due   time.Time
	seq   uint64
}

type queue[T any] []envelope[T]

func (q queue[T]) Len() int { return len(q) }

func (q queue[T]) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q queue[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *queue[T]) Push(x any) {
	*q = append(*q, x.(envelope[T]))
}

func (q *queue[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Mailbox delivers posted values on C once they are due, earliest first and in
// posting order among values due at the same instant. Delivery blocks on a
// slow consumer rather than dropping.
type Mailbox[T any] struct {
	mu      sync.Mutex
	queue   queue[T]
	seq     uint64
	out     chan T
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	now     func() time.Time
}

func NewMailbox[T any](bufferSize int) *Mailbox[T] {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Mailbox[T]{
		queue:  make(queue[T], 0),
		out:    make(chan T, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

func (b *Mailbox[T]) C() <-chan T {
	return b.out
}

func (b *Mailbox[T]) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started || b.stopped {
		return
	}
	b.started = true
	heap.Init(&b.queue)
	go b.loop()
}

// Stop ends delivery and closes C. Values still queued are discarded.
func (b *Mailbox[T]) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	close(b.stopCh)
	started := b.started
	b.mu.Unlock()
	if started {
		<-b.doneCh
		return
	}
	close(b.out)
}

func (b *Mailbox[T]) Post(v T) error {
	return b.PostAt(v, b.now())
}

func (b *Mailbox[T]) PostAfter(v T, d time.Duration) error {
	if d < 0 {
		d = 0
	}
	return b.PostAt(v, b.now().Add(d))
}

func (b *Mailbox[T]) PostAt(v T, due time.Time) error {
	if due.IsZero() {
		return ErrInvalidDueTime
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return ErrStopped
	}

	b.seq++
	heap.Push(&b.queue, envelope[T]{value: v, due: due, seq: b.seq})
	b.signalWakeup()
	return nil
}

// Pending reports how many values are queued and not yet handed to C.
func (b *Mailbox[T]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

func (b *Mailbox[T]) loop() {
	defer close(b.doneCh)
	defer close(b.out)

	var timer *time.Timer
	defer func() { stopTimer(timer) }()
	for {
		next, hasNext := b.peek()
		if !hasNext {
			select {
			case <-b.wakeup:
				continue
			case <-b.stopCh:
				return
			}
		}

		wait := next.due.Sub(b.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, v := range b.popDue(b.now()) {
				select {
				case b.out <- v:
				case <-b.stopCh:
					return
				}
			}
		case <-b.wakeup:
			continue
		case <-b.stopCh:
			return
		}
	}
}

func (b *Mailbox[T]) signalWakeup() {
	select {
	case b.wakeup <- struct{}{}:
	default:
	}
}

func (b *Mailbox[T]) peek() (envelope[T], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return envelope[T]{}, false
	}
	return b.queue[0], true
}

func (b *Mailbox[T]) popDue(now time.Time) []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]T, 0)
	for len(b.queue) > 0 {
		next := b.queue[0]
		if next.due.After(now) {
			break
		}
		item := heap.Pop(&b.queue).(envelope[T])
		out = append(out, item.value)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
