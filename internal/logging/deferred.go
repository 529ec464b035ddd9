package logging

import (
	"bytes"
	"io"
	"sync"
)

// Deferred is a writer that can hold log output while a full-screen
// renderer owns the terminal and replay it once the terminal is restored.
type Deferred struct {
	mu   sync.Mutex
	dst  io.Writer
	buf  bytes.Buffer
	held bool
}

// NewDeferred creates a Deferred that passes writes through to dst until
// Hold is called.
func NewDeferred(dst io.Writer) *Deferred {
	return &Deferred{dst: dst}
}

// Hold starts buffering writes.
func (d *Deferred) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

// Release writes everything buffered to the destination and resumes
// passing writes through.
func (d *Deferred) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.held = false
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(d.dst)
	return err
}

// Held reports whether writes are currently buffered.
func (d *Deferred) Held() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.held
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held {
		return d.buf.Write(p)
	}
	return d.dst.Write(p)
}
