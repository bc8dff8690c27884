package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/featherback/featherback-api/internal/api/metrics"
	"github.com/featherback/featherback-api/internal/core/domain"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Publisher delivers a notification to its fan-out destination.
type Publisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the owning user id, guaranteeing per-user delivery ordering.
type Dispatcher struct {
	workers   []chan domain.Notification
	publisher Publisher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher Publisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Notification, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its user.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	i := d.shardIndex(n.UserID)
	d.workers[i] <- n
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.publisher.Publish(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("notification_id", n.ID).
					Str("user_id", n.UserID).
					Int("worker_id", id).
					Msg("notification publish failed")
			}
		}
	}
}
