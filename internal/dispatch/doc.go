// Package dispatch turns key activations into output bytes.
//
// Every key shares the same behavior: write the descriptor's output to the
// output stream, byte for byte. Engine.Dispatch is that one operation. It
// has no state between calls beyond counters; each activation is written
// completely or reported as a *WriteError.
//
// Short writes are retried until the whole sequence is delivered, and
// transient errors (EINTR, EAGAIN) are retried too. A write that keeps
// making no progress gives up with io.ErrShortWrite.
//
// Writes are serialised, so two activations never interleave their bytes
// even if a renderer calls Dispatch from more than one goroutine.
//
// A renderer does not call Dispatch directly; it is given Callback, which
// reports failures without unwinding the renderer's event loop:
//
//	engine := dispatch.New(os.Stdout, dispatch.WithLogger(logger))
//	r.OnActivate(handle, engine.Callback())
package dispatch
