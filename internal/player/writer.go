package player

import (
	"sync"

	"github.com/sourcegraph/conc"
)

type writeKind int

const (
	writePosition writeKind = iota
	writeCompletion
)

type writeOp struct {
	kind     writeKind
	position float64
	duration float64
}

// serialWriter runs backend writes one at a time in FIFO order. A position
// write still waiting in the queue is replaced by a newer one; completion
// writes are never dropped.
type serialWriter struct {
	run func(writeOp)

	mu      sync.Mutex
	queue   []writeOp
	running bool
	wg      conc.WaitGroup
}

func newSerialWriter(run func(writeOp)) *serialWriter {
	return &serialWriter{run: run}
}

func (w *serialWriter) enqueue(op writeOp) {
	w.mu.Lock()
	if n := len(w.queue); op.kind == writePosition && n > 0 && w.queue[n-1].kind == writePosition {
		w.queue[n-1] = op
	} else {
		w.queue = append(w.queue, op)
	}
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Go(w.drain)
}

func (w *serialWriter) drain() {
	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			w.running = false
			w.mu.Unlock()
			return
		}
		op := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.run(op)
	}
}

// wait blocks until the queue has drained.
func (w *serialWriter) wait() {
	w.wg.Wait()
}
