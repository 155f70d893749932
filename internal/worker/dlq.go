package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const DLQKey = "dlq:jobs"

// deadJob wraps the failed job with its final error for inspection.
type deadJob struct {
	Job    Job       `json:"job"`
	Error  string    `json:"error"`
	DeadAt time.Time `json:"deadAt"`
}

func sendToDLQ(ctx context.Context, rdb *redis.Client, log zerolog.Logger, job *Job, reason string) {
	data, err := json.Marshal(deadJob{Job: *job, Error: reason, DeadAt: time.Now()})
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("dead letter marshal failed")
		return
	}
	if err := rdb.LPush(ctx, DLQKey, data).Err(); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("dead letter push failed")
	}
}

// RequeueDeadLetters moves every dead job back onto the main queue with a
// reset attempt counter. Meant for operator use after fixing the cause.
func RequeueDeadLetters(ctx context.Context, rdb *redis.Client, log zerolog.Logger) (int, error) {
	moved := 0
	for {
		raw, err := rdb.RPop(ctx, DLQKey).Result()
		if err == redis.Nil {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}

		dead := deadJob{}
		if err := json.Unmarshal([]byte(raw), &dead); err != nil {
			log.Error().Err(err).Msg("malformed dead letter discarded")
			continue
		}
		dead.Job.Attempts = 0
		data, err := json.Marshal(dead.Job)
		if err != nil {
			continue
		}
		if err := rdb.LPush(ctx, QueueKey, data).Err(); err != nil {
			return moved, err
		}
		moved++
	}
}
