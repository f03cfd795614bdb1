package transform

import (
	"sync"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/internal/ioerr"
	"github.com/kopia/okio-sub006/iotimeout"
)

// Pipe pairs a Sink and a Source over one shared, capped Buffer,
// synchronized with a single mutex and condition variable — the same
// monitor-based handoff cas/object_reader.go and cas/object_writer.go
// would need if they ran on independent goroutines instead of sharing
// a call stack, generalized here into a standalone producer/consumer
// primitive.
type Pipe struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf          *buffer.Buffer
	maxByteCount int64

	sinkClosed   bool
	sourceClosed bool

	timeout iotimeout.Timeout
}

// NewPipe returns a Pipe whose shared buffer never exceeds
// maxByteCount bytes before a writer blocks.
func NewPipe(maxByteCount int64) *Pipe {
	p := &Pipe{buf: buffer.New(), maxByteCount: maxByteCount}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Sink returns the write side of the pipe.
func (p *Pipe) Sink() buffer.Sink { return &pipeSink{p: p} }

// Source returns the read side of the pipe.
func (p *Pipe) Source() buffer.Source { return &pipeSource{p: p} }

type pipeSink struct{ p *Pipe }

func (s *pipeSink) Write(source *buffer.Buffer, byteCount int64) error {
	p := s.p
	p.mu.Lock()
	defer p.mu.Unlock()

	for byteCount > 0 {
		if p.sinkClosed || p.sourceClosed {
			return ioerr.ErrClosedStream
		}
		avail := p.maxByteCount - p.buf.Size()
		if avail <= 0 {
			p.cond.Wait()
			continue
		}
		n := byteCount
		if n > avail {
			n = avail
		}
		if err := p.buf.Write(source, n); err != nil {
			return err
		}
		byteCount -= n
		p.cond.Broadcast()
	}
	return nil
}

func (s *pipeSink) Flush() error { return nil }

func (s *pipeSink) Timeout() *iotimeout.Timeout { return &s.p.timeout }

// Close marks the sink closed; pending and future reads drain
// whatever remains buffered, then return -1.
func (s *pipeSink) Close() error {
	p := s.p
	p.mu.Lock()
	p.sinkClosed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	return nil
}

type pipeSource struct{ p *Pipe }

func (s *pipeSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	p := s.p
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.buf.Size() == 0 {
		if p.sourceClosed {
			return 0, ioerr.ErrClosedStream
		}
		if p.sinkClosed {
			return -1, nil
		}
		p.cond.Wait()
	}

	n := byteCount
	if n > p.buf.Size() {
		n = p.buf.Size()
	}
	if err := sink.Write(p.buf, n); err != nil {
		return 0, err
	}
	p.cond.Broadcast()
	return n, nil
}

func (s *pipeSource) Timeout() *iotimeout.Timeout { return &s.p.timeout }

// Close marks the source closed; subsequent writes on the sink fail.
func (s *pipeSource) Close() error {
	p := s.p
	p.mu.Lock()
	p.sourceClosed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	return nil
}
