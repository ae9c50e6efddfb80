package goap

import "sync"

// SearchOutcome is the result of one background search task (§4.9, §6).
type SearchOutcome struct {
	Path  []Node
	Cost  uint64
	Found bool
	// NodesExpanded holds the length of the returned path (len(Path)), not
	// a count of the nodes the search expanded.
	NodesExpanded int
}

// SearchTask is a handle to a submitted search. Poll is the harness's only
// suspension point: a non-blocking check, deferred to the next tick if the
// task is not yet complete (§5).
type SearchTask interface {
	Poll() (SearchOutcome, bool)
}

// WorkerPool runs search tasks on a background pool of goroutines so that
// expensive searches do not stall the host's frame loop (§5). Submit
// returns ok=false when the pool is saturated; the caller is expected to
// retry on a later tick, and the idempotent plan_next_tick flag survives
// the skip (§4.11).
type WorkerPool interface {
	Submit(fn func() SearchOutcome) (SearchTask, bool)
}

// task implements SearchTask over a buffered result channel.
type task struct {
	done chan SearchOutcome
	mu   sync.Mutex
	res  *SearchOutcome
}

func (t *task) Poll() (SearchOutcome, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.res != nil {
		return *t.res, true
	}
	select {
	case r := <-t.done:
		t.res = &r
		return r, true
	default:
		return SearchOutcome{}, false
	}
}

// FixedPool is a WorkerPool bounded to a fixed number of concurrent
// goroutines via a counting semaphore. Each task owns its closure's
// captured (state, actions, goal) snapshot by value; there is no shared
// mutable state between concurrent searches (§5 Shared-resource policy).
type FixedPool struct {
	slots chan struct{}
}

// NewFixedPool builds a FixedPool with room for size concurrent searches.
func NewFixedPool(size int) *FixedPool {
	if size < 1 {
		size = 1
	}
	return &FixedPool{slots: make(chan struct{}, size)}
}

// Submit attempts to claim a slot and run fn on a new goroutine, returning
// immediately with ok=false if every slot is currently in use.
func (p *FixedPool) Submit(fn func() SearchOutcome) (SearchTask, bool) {
	select {
	case p.slots <- struct{}{}:
	default:
		return nil, false
	}

	t := &task{done: make(chan SearchOutcome, 1)}
	go func() {
		defer func() { <-p.slots }()
		t.done <- fn()
	}()
	return t, true
}
