package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
	"github.com/sabor/restaurant-orders/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

var _ ports.StatusEventPublisher = (*Dispatcher)(nil)

// Dispatcher routes status events to a fixed set of workers using consistent
// hashing on the order ID, so events of one order are recorded in the order
// their transitions were accepted.
type Dispatcher struct {
	workers []chan domain.StatusEvent
	service ports.StatusEventService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.StatusEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.StatusEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StatusEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// records whatever is still buffered and exits.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands an event to the worker responsible for its order. It never
// blocks; when the worker's buffer is full the event is dropped and counted.
func (d *Dispatcher) Publish(event domain.StatusEvent) {
	idx := d.shardIndex(event.OrderID)
	select {
	case d.workers[idx] <- event:
		metrics.StatusEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.StatusEventsErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("order_id", event.OrderID).
			Int("worker_id", idx).
			Msg("status event dropped: queue full")
	}
}

// shardIndex maps an order ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StatusEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx), id, ch)
			return
		case event := <-ch:
			d.process(ctx, id, event)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.StatusEvent) {
	ctx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-ch:
			d.process(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.StatusEvent) {
	metrics.StatusEventsQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()

	start := time.Now()
	err := d.service.Record(ctx, event)
	result := "success"
	if err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("order_id", event.OrderID).
			Int("worker_id", id).
			Msg("status event recording failed")
	}
	metrics.StatusEventProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
