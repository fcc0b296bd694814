// Package tracking - асинхронный учет просмотров и кликов.
// Вызывающий никогда не ждет и не получает результат: переполнение буфера
// и ошибки хранилища только логируются.
package tracking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/metrics"
	"hostmarket_backend/internal/repositories"
)

const sinkTimeout = 5 * time.Second

type Event struct {
	Kind   string
	ID     string
	Metric string
}

// Sink сохраняет одно событие
type Sink func(ctx context.Context, ev Event) error

// CounterSink пишет событие инкрементом счетчика в таблице сущности
func CounterSink(db *gorm.DB, counters repositories.CounterRepository) Sink {
	return func(ctx context.Context, ev Event) error {
		tx := db
		if tx != nil {
			tx = tx.WithContext(ctx)
		}
		return counters.Increment(tx, ev.Kind, ev.ID, ev.Metric)
	}
}

type Dispatcher struct {
	events    chan Event
	sink      Sink
	stop      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewDispatcher(bufferSize int, sink Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	return &Dispatcher{
		events: make(chan Event, bufferSize),
		sink:   sink,
		stop:   make(chan struct{}),
	}
}

// Start запускает единственный воркер
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go d.run(ctx)
}

// Track ставит событие в очередь и сразу возвращается. false - событие отброшено.
func (d *Dispatcher) Track(kind, id, metric string) bool {
	if d.closed.Load() {
		metrics.RecordTracking(kind, metric, "dropped")
		return false
	}
	if _, _, err := repositories.CounterTarget(kind, metric); err != nil || id == "" {
		metrics.RecordTracking(kind, metric, "rejected")
		return false
	}

	select {
	case d.events <- Event{Kind: kind, ID: id, Metric: metric}:
		metrics.RecordTracking(kind, metric, "accepted")
		return true
	default:
		metrics.RecordTracking(kind, metric, "dropped")
		logger.Warn("tracking buffer full, event dropped", "kind", kind, "id", id, "metric", metric)
		return false
	}
}

// Close останавливает воркер и ждет, пока он дообработает буфер
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.stop)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case ev := <-d.events:
			d.handle(ctx, ev)
		case <-d.stop:
			d.drain(ctx)
			return
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case ev := <-d.events:
			d.handle(ctx, ev)
		default:
			return
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev Event) {
	sinkCtx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()

	if err := d.sink(sinkCtx, ev); err != nil {
		metrics.RecordTracking(ev.Kind, ev.Metric, "failed")
		logger.WorkerLog("tracking", "increment", err, "kind", ev.Kind, "id", ev.ID, "metric", ev.Metric)
		return
	}
	metrics.RecordTracking(ev.Kind, ev.Metric, "stored")
}
