package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	QueueKey = "jobs:queue"

	// Job types
	JobEmailSend     = "email:send"
	JobLowStockAlert = "alert:low_stock"

	maxAttempts = 3
	popTimeout  = 5 * time.Second
)

// Job is the envelope pushed onto the redis queue. Payload is type-specific
// JSON decoded by the matching handler.
type Job struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}

// Handler processes one job. A returned error triggers a retry, and after
// maxAttempts the job lands in the dead letter queue.
type Handler func(ctx context.Context, job *Job) error

// Dispatcher pushes jobs onto the queue. It is safe for concurrent use and
// a nil redis client turns every enqueue into a logged no-op, so the API
// keeps working without a broker.
type Dispatcher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewDispatcher(rdb *redis.Client, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{rdb: rdb, log: log}
}

func (d *Dispatcher) Enqueue(ctx context.Context, jobType string, payload interface{}) error {
	if d.rdb == nil {
		d.log.Debug().Str("type", jobType).Msg("job dropped, queue not configured")
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("worker: marshal payload: %w", err)
	}
	job := Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		Payload:    raw,
		EnqueuedAt: time.Now(),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("worker: marshal job: %w", err)
	}
	if err := d.rdb.LPush(ctx, QueueKey, data).Err(); err != nil {
		return fmt.Errorf("worker: enqueue: %w", err)
	}
	d.log.Debug().Str("job_id", job.ID).Str("type", jobType).Msg("job enqueued")
	return nil
}

// EnqueueReportEmail satisfies the report service's delivery interface.
func (d *Dispatcher) EnqueueReportEmail(ctx context.Context, to, subject, body, attachPath string) error {
	return d.Enqueue(ctx, JobEmailSend, EmailPayload{
		To:         to,
		Subject:    subject,
		Body:       body,
		AttachPath: attachPath,
	})
}

// NotifyLowStock satisfies the ledger's alert interface. Enqueue failures
// are logged, not returned: the ledger mutation has already committed.
func (d *Dispatcher) NotifyLowStock(ctx context.Context, productID uuid.UUID, name string, stock int) {
	err := d.Enqueue(ctx, JobLowStockAlert, LowStockPayload{
		ProductID: productID.String(),
		Name:      name,
		Stock:     stock,
	})
	if err != nil {
		d.log.Error().Err(err).Str("product_id", productID.String()).Msg("low stock alert enqueue failed")
	}
}

// Pool consumes the queue with a fixed number of BRPOP workers.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	size     int
	log      zerolog.Logger
}

func NewPool(rdb *redis.Client, size int, handlers map[string]Handler, log zerolog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{rdb: rdb, handlers: handlers, size: size, log: log}
}

// Start launches the workers. They run until ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	if p.rdb == nil {
		p.log.Warn().Msg("worker pool disabled, no redis connection")
		return
	}
	for i := 0; i < p.size; i++ {
		go p.worker(ctx, i)
	}
	p.log.Info().Int("workers", p.size).Msg("worker pool started")
}

func (p *Pool) worker(ctx context.Context, id int) {
	log := p.log.With().Int("worker", id).Logger()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.rdb.BRPop(ctx, popTimeout, QueueKey).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Msg("queue pop failed")
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value]
		if len(res) != 2 {
			continue
		}

		job := &Job{}
		if err := json.Unmarshal([]byte(res[1]), job); err != nil {
			log.Error().Err(err).Msg("malformed job discarded")
			continue
		}
		p.process(ctx, log, job)
	}
}

func (p *Pool) process(ctx context.Context, log zerolog.Logger, job *Job) {
	handler, ok := p.handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Str("job_id", job.ID).Msg("no handler for job type")
		sendToDLQ(ctx, p.rdb, log, job, "no handler registered")
		return
	}

	if err := handler(ctx, job); err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			log.Error().Err(err).Str("job_id", job.ID).Int("attempts", job.Attempts).Msg("job moved to dead letter queue")
			sendToDLQ(ctx, p.rdb, log, job, err.Error())
			return
		}
		log.Warn().Err(err).Str("job_id", job.ID).Int("attempt", job.Attempts).Msg("job failed, requeueing")
		if data, merr := json.Marshal(job); merr == nil {
			if perr := p.rdb.LPush(ctx, QueueKey, data).Err(); perr != nil {
				log.Error().Err(perr).Str("job_id", job.ID).Msg("requeue failed")
			}
		}
		return
	}
	log.Debug().Str("job_id", job.ID).Str("type", job.Type).Msg("job processed")
}
