package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zeu5/offline-subopt/types"
)

const DefaultQueuePrefix = "offline-subopt"

// Queue is a redis list of jobs shared by the workers of an experiment.
// Results go to a second list next to it
type Queue struct {
	client     *redis.Client
	key        string
	resultsKey string
}

func NewQueue(client *redis.Client, prefix, experiment string) *Queue {
	return &Queue{
		client:     client,
		key:        fmt.Sprintf("%s:%s:jobs", prefix, experiment),
		resultsKey: fmt.Sprintf("%s:%s:results", prefix, experiment),
	}
}

func (q *Queue) Key() string {
	return q.key
}

func (q *Queue) Push(ctx context.Context, jobs ...types.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	values := make([]interface{}, len(jobs))
	for i, j := range jobs {
		bs, err := json.Marshal(j)
		if err != nil {
			return err
		}
		values[i] = bs
	}
	if err := q.client.RPush(ctx, q.key, values...).Err(); err != nil {
		return fmt.Errorf("push to %s: %w", q.key, err)
	}
	return nil
}

// Pop waits up to timeout for a job, returns nil when none came
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*types.Job, error) {
	res, err := q.client.BLPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop from %s: %w", q.key, err)
	}
	// [key, value]
	job := &types.Job{}
	if err := json.Unmarshal([]byte(res[1]), job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

func (q *Queue) PushResult(ctx context.Context, r types.Result) error {
	bs, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, q.resultsKey, bs).Err()
}

func (q *Queue) Results(ctx context.Context) ([]types.Result, error) {
	raw, err := q.client.LRange(ctx, q.resultsKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]types.Result, 0, len(raw))
	for _, r := range raw {
		res := types.Result{}
		if err := json.Unmarshal([]byte(r), &res); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		out = append(out, res)
	}
	return out, nil
}
