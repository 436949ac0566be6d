// Package capture redirects the process standard streams through pipes
// and forwards everything written to them to caller-supplied handlers.
package capture

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

const readBufferSize = 512

// chunk is one batch of bytes read from a captured stream, paired with
// the handler that should receive it.
type chunk struct {
	handler func(string)
	data    string
}

// Capture owns the redirected streams. One reader goroutine per
// captured stream blocks on the pipe's read end and forwards chunks
// through a channel to a single dispatch goroutine, so handlers are
// never invoked concurrently. Close restores the original streams.
type Capture struct {
	stdout *capturedStream
	stderr *capturedStream

	chunks       chan chunk
	readers      sync.WaitGroup
	dispatchDone chan struct{}
	closing      atomic.Bool
	closeOnce    sync.Once
	closeErr     error
}

type capturedStream struct {
	orig    *os.File
	r, w    *os.File
	restore func(*os.File)
}

// CaptureStandardStreams redirects stdout, and stderr when a handler is
// given, through pipes. A nil stderrHandler leaves stderr untouched.
// Handlers are invoked synchronously on the dispatch goroutine for
// every chunk received.
func CaptureStandardStreams(stdoutHandler, stderrHandler func(string)) (*Capture, error) {
	if stdoutHandler == nil {
		return nil, fmt.Errorf("stdout handler is required")
	}

	c := &Capture{
		chunks:       make(chan chunk, 16),
		dispatchDone: make(chan struct{}),
	}

	stdout, err := redirect(os.Stdout, func(f *os.File) { os.Stdout = f })
	if err != nil {
		return nil, fmt.Errorf("failed to redirect stdout: %w", err)
	}
	c.stdout = stdout

	if stderrHandler != nil {
		stderr, err := redirect(os.Stderr, func(f *os.File) { os.Stderr = f })
		if err != nil {
			stdout.undo()
			return nil, fmt.Errorf("failed to redirect stderr: %w", err)
		}
		c.stderr = stderr
	}

	c.readers.Add(1)
	go c.readLoop(c.stdout.r, stdoutHandler)
	if c.stderr != nil {
		c.readers.Add(1)
		go c.readLoop(c.stderr.r, stderrHandler)
	}
	go c.dispatch()

	return c, nil
}

// OriginalStdout returns the stdout file that was in place before the
// capture started. Writes to it bypass the capture entirely.
func (c *Capture) OriginalStdout() *os.File {
	return c.stdout.orig
}

// redirect swaps a standard stream for the write end of a fresh pipe.
func redirect(orig *os.File, assign func(*os.File)) (*capturedStream, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	assign(w)
	return &capturedStream{orig: orig, r: r, w: w, restore: assign}, nil
}

func (s *capturedStream) undo() {
	s.restore(s.orig)
	s.w.Close()
}

// readLoop blocks on the pipe until end-of-stream. Read errors are
// logged and retried; EOF outside shutdown is logged as unexpected.
func (c *Capture) readLoop(r *os.File, handler func(string)) {
	defer c.readers.Done()
	buf := make([]byte, readBufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			c.chunks <- chunk{handler: handler, data: string(buf[:n])}
		}
		if err != nil {
			if err == io.EOF || c.closing.Load() {
				if !c.closing.Load() {
					slog.Warn("Reached end of input on standard stream")
				}
				return
			}
			slog.Error("Failed to read from captured stream", "error", err)
		}
	}
}

func (c *Capture) dispatch() {
	defer close(c.dispatchDone)
	for ch := range c.chunks {
		ch.handler(ch.data)
	}
}

// Close restores the original streams, drains outstanding chunks, and
// waits for the reader and dispatch goroutines to exit.
func (c *Capture) Close() error {
	c.closeOnce.Do(func() {
		c.closing.Store(true)

		c.stdout.undo()
		if c.stderr != nil {
			c.stderr.undo()
		}

		c.readers.Wait()
		close(c.chunks)
		<-c.dispatchDone

		if err := c.stdout.r.Close(); err != nil {
			c.closeErr = err
		}
		if c.stderr != nil {
			if err := c.stderr.r.Close(); err != nil && c.closeErr == nil {
				c.closeErr = err
			}
		}
	})
	return c.closeErr
}
