package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// fanoutWriter duplicates every log line to one or more buffered sinks.
// Lines are flushed per write; Flush exists for tests and shutdown.
type fanoutWriter struct {
	mu       sync.Mutex
	sinks    []*bufio.Writer
	writeErr error
}

func newFanoutWriter(writers []io.Writer, bufSize int) *fanoutWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
	}
	return &fanoutWriter{sinks: sinks}
}

// Write fans the payload out to all sinks, keeping the first error.
func (w *fanoutWriter) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr != nil {
		return w.writeErr
	}
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil {
			w.writeErr = err
			return err
		}
		if err := sink.Flush(); err != nil {
			w.writeErr = err
			return err
		}
	}
	return nil
}

// Flush drains all buffered content to the underlying sinks.
func (w *fanoutWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr != nil {
		return w.writeErr
	}
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
