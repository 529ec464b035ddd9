package dispatch

import (
	"errors"
	"io"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/keypad/internal/keytable"
	"github.com/dshills/keypad/internal/logging"
)

// DefaultMaxStalls is how many consecutive writes may deliver nothing
// before Dispatch gives up.
const DefaultMaxStalls = 8

// Engine writes descriptor output to a single output stream.
type Engine struct {
	mu sync.Mutex

	out       io.Writer
	maxStalls int
	onError   func(*WriteError)
	log       *zerolog.Logger
	metrics   *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = logging.Component(l, "dispatch")
		}
	}
}

// WithMaxStalls sets how many consecutive zero-progress writes are
// tolerated.
func WithMaxStalls(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxStalls = n
		}
	}
}

// WithErrorHandler registers a function that Callback reports write
// failures to, in addition to logging them.
func WithErrorHandler(fn func(*WriteError)) Option {
	return func(e *Engine) {
		e.onError = fn
	}
}

// New creates an engine writing to out, normally os.Stdout.
func New(out io.Writer, opts ...Option) *Engine {
	e := &Engine{
		out:       out,
		maxStalls: DefaultMaxStalls,
		log:       logging.Nop(),
		metrics:   NewMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Metrics returns the engine's counters.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Dispatch writes the full output of d. It returns nil only when every byte
// was delivered; otherwise it returns a *WriteError saying how far it got.
func (e *Engine) Dispatch(d keytable.Descriptor) error {
	if d.OutputLen() == 0 {
		return &WriteError{ID: d.ID(), Err: ErrNoOutput}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	buf := d.Output()
	written, err := e.writeFull(buf)
	e.metrics.recordDispatch(written, time.Since(start), err != nil)

	if err != nil {
		return &WriteError{ID: d.ID(), Written: written, Total: len(buf), Err: err}
	}
	e.log.Debug().Str("id", d.ID()).Int("bytes", written).Msg("dispatched")
	return nil
}

// writeFull loops until buf is delivered. Callers hold e.mu.
func (e *Engine) writeFull(buf []byte) (int, error) {
	written := 0
	stalls := 0
	for written < len(buf) {
		n, err := e.out.Write(buf[written:])
		if n < 0 || n > len(buf)-written {
			return written, io.ErrShortWrite
		}
		written += n

		if err != nil && !isTransient(err) {
			return written, err
		}
		if written == len(buf) {
			break
		}

		if n == 0 {
			stalls++
			if stalls >= e.maxStalls {
				if err != nil {
					return written, err
				}
				return written, io.ErrShortWrite
			}
		} else {
			stalls = 0
		}
		e.metrics.recordRetry()
	}
	return written, nil
}

func isTransient(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}

// Callback returns the activation function handed to a renderer. Failures
// are logged and passed to the error handler; they never propagate into the
// renderer's event loop.
func (e *Engine) Callback() func(keytable.Descriptor) {
	return func(d keytable.Descriptor) {
		err := e.Dispatch(d)
		if err == nil {
			return
		}
		var werr *WriteError
		if !errors.As(err, &werr) {
			werr = &WriteError{ID: d.ID(), Total: d.OutputLen(), Err: err}
		}
		e.log.Error().Err(werr.Err).
			Str("id", werr.ID).
			Int("written", werr.Written).
			Int("total", werr.Total).
			Msg("key output not delivered")
		if e.onError != nil {
			e.onError(werr)
		}
	}
}
