// Package journal writes mount and dispatch records to the journal store off
// the UI goroutine while keeping them in dispatch order.
package journal

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jask/countdemo/internal/database/repository"
)

// Store is the persistence the Writer drains into.
type Store interface {
	CreateSession(ctx context.Context, s repository.Session) error
	Append(ctx context.Context, e repository.ActionEntry) error
}

type record struct {
	session *repository.Session
	action  *repository.ActionEntry
}

// Writer serializes journal records through a single goroutine. Session and
// Action must be called from one goroutine and never after Close.
type Writer struct {
	ctx   context.Context
	store Store
	queue chan record
	errs  chan error
	wg    sync.WaitGroup

	mu     sync.Mutex
	failed int
}

// NewWriter starts the drain goroutine. buffer bounds how far the UI may run
// ahead of the store; records offered to a full queue are dropped and counted
// in Failed.
func NewWriter(ctx context.Context, store Store, buffer int) *Writer {
	if buffer < 1 {
		buffer = 1
	}
	w := &Writer{
		ctx:   ctx,
		store: store,
		queue: make(chan record, buffer),
		errs:  make(chan error, 16),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Session queues a mount record without blocking.
func (w *Writer) Session(s repository.Session) {
	w.enqueue(record{session: &s}, fmt.Sprintf("session %s", s.ID))
}

// Action queues a dispatch record without blocking.
func (w *Writer) Action(e repository.ActionEntry) {
	w.enqueue(record{action: &e}, fmt.Sprintf("action %d", e.Seq))
}

func (w *Writer) enqueue(r record, what string) {
	select {
	case w.queue <- r:
	default:
		w.fail(fmt.Errorf("queue full, dropped %s", what))
	}
}

// Errors delivers write failures. It is closed once Close has drained the queue.
func (w *Writer) Errors() <-chan error { return w.errs }

// Failed is the number of records that could not be written.
func (w *Writer) Failed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failed
}

// Close flushes queued records and stops the writer.
func (w *Writer) Close() error {
	close(w.queue)
	w.wg.Wait()
	if n := w.Failed(); n > 0 {
		return fmt.Errorf("journal: %d records not written", n)
	}
	return nil
}

func (w *Writer) run() {
	defer w.wg.Done()
	defer close(w.errs)
	for r := range w.queue {
		if err := w.write(r); err != nil {
			w.fail(err)
		}
	}
}

func (w *Writer) fail(err error) {
	w.mu.Lock()
	w.failed++
	w.mu.Unlock()
	log.Printf("journal: %v", err)
	select {
	case w.errs <- err:
	default:
	}
}

func (w *Writer) write(r record) error {
	switch {
	case r.session != nil:
		if err := w.store.CreateSession(w.ctx, *r.session); err != nil {
			return fmt.Errorf("create session %s: %w", r.session.ID, err)
		}
	case r.action != nil:
		if err := w.store.Append(w.ctx, *r.action); err != nil {
			return fmt.Errorf("append action %d: %w", r.action.Seq, err)
		}
	}
	return nil
}
