// Package publisher delivers audit entries to a sink, synchronously or via a
// bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"medtrust/internal/audit"
)

var (
	ErrBufferFull = errors.New("audit buffer full")
	ErrClosed     = errors.New("audit publisher closed")
)

// Publisher stamps entries (ID, timestamp), seals the justification when a
// Sealer is configured, and hands them to the sink. Emit failures are
// reported to the caller, which decides whether to swallow them.
type Publisher struct {
	sink   audit.Sink
	sealer *audit.Sealer
	logger *slog.Logger
	now    func() time.Time

	bufferSize int
	queue      chan audit.Entry
	wg         sync.WaitGroup
	mu         sync.RWMutex
	closed     bool
}

type Option func(*Publisher)

// WithAsyncBuffer switches to asynchronous delivery through a buffer of n
// entries. Emit returns ErrBufferFull instead of blocking when it is full.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

func WithSealer(s *audit.Sealer) Option {
	return func(p *Publisher) {
		p.sealer = s
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(sink audit.Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sink:   sink,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.queue = make(chan audit.Entry, p.bufferSize)
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit prepares the entry and delivers or enqueues it.
func (p *Publisher) Emit(ctx context.Context, entry audit.Entry) error {
	entry, err := p.prepare(entry)
	if err != nil {
		return err
	}

	if p.queue == nil {
		return p.sink.Append(ctx, entry)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.queue <- entry:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// List returns entries for actor when the sink is queryable.
func (p *Publisher) List(ctx context.Context, actor string) ([]audit.Entry, error) {
	store, ok := p.sink.(audit.Store)
	if !ok {
		return nil, errors.New("audit sink is not queryable")
	}
	return store.ListByActor(ctx, actor)
}

// Close stops accepting entries and waits for the buffer to drain.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.queue != nil {
		close(p.queue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Publisher) prepare(entry audit.Entry) (audit.Entry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = p.now().UTC()
	}
	if p.sealer != nil && entry.Justification != "" && !entry.Sealed {
		sealed, err := p.sealer.Seal(entry.Justification, entry.ID.String())
		if err != nil {
			return entry, err
		}
		entry.Justification = sealed
		entry.Sealed = true
	}
	return entry, nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for entry := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.sink.Append(ctx, entry); err != nil {
			p.logger.Error("audit entry dropped",
				"entry_id", entry.ID,
				"action", entry.Action,
				"error", err,
			)
		}
		cancel()
	}
}
