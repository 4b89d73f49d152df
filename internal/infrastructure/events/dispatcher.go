package events

import (
	"context"
	"log"
	"sync"
	"time"

	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

type Sink interface {
	HandleUserCreated(ctx context.Context, event domain.UserCreated) error
}

type DispatcherConfig struct {
	Buffer      int
	SinkTimeout time.Duration
}

// Dispatcher fans user.created events out to its sinks on a background
// goroutine. Publishing never blocks; when the buffer is full the event is
// dropped and logged.
type Dispatcher struct {
	sinks []Sink
	cfg   DispatcherConfig
	queue chan domain.UserCreated

	mu     sync.RWMutex
	closed bool

	once sync.Once
	done chan struct{}
}

func NewDispatcher(cfg DispatcherConfig, sinks ...Sink) *Dispatcher {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 256
	}
	if cfg.SinkTimeout <= 0 {
		cfg.SinkTimeout = 5 * time.Second
	}
	return &Dispatcher{
		sinks: sinks,
		cfg:   cfg,
		queue: make(chan domain.UserCreated, cfg.Buffer),
		done:  make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	d.once.Do(func() {
		go d.loop()
	})
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event domain.UserCreated) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.SinkTimeout)
		if err := sink.HandleUserCreated(ctx, event); err != nil {
			log.Printf("deliver %s event for user %s failed: %v", domain.EventUserCreated, event.UserID, err)
		}
		cancel()
	}
}

// PublishUserCreated ignores ctx; delivery outlives the request that
// produced the event.
func (d *Dispatcher) PublishUserCreated(_ context.Context, event domain.UserCreated) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- event:
	default:
		log.Printf("event buffer full, dropping %s event for user %s", domain.EventUserCreated, event.UserID)
	}
}

// Close stops accepting events and waits for queued ones to be delivered or
// for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.Start()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
