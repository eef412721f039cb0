package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"path"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/offline-subopt/types"
	"github.com/zeu5/offline-subopt/util"
)

func newTestQueue(t *testing.T) (*miniredis.Miniredis, *Queue) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewQueue(client, DefaultQueuePrefix, "exp")
}

func TestQueuePushPop(t *testing.T) {
	_, q := newTestQueue(t)
	ctx := context.Background()

	jobs := echoJobs(2, 3)
	require.NoError(t, q.Push(ctx, jobs...))
	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	j, err := q.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, jobs[0], *j)

	j, err = q.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, jobs[1], *j)

	j, err = q.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Nil(t, j)
}

func TestQueueResults(t *testing.T) {
	_, q := newTestQueue(t)
	ctx := context.Background()

	r := types.Result{JobID: "exp-0000", Device: 1, ExitCode: 0, Duration: time.Second, Worker: "w"}
	require.NoError(t, q.PushResult(ctx, r))

	results, err := q.Results(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, r.JobID, results[0].JobID)
	assert.Equal(t, r.Duration, results[0].Duration)
}

func TestWorkerDrainsQueue(t *testing.T) {
	_, q := newTestQueue(t)
	ctx := context.Background()
	require.NoError(t, q.Push(ctx, echoJobs(3, 0)...))

	device := 2
	w := NewWorker(WorkerConfig{
		Name:          "w1",
		Device:        &device,
		PollTimeout:   time.Second,
		ExitWhenEmpty: true,
		Out:           new(bytes.Buffer),
	}, q, NewExecutor("/bin/sh", t.TempDir()))
	require.NoError(t, w.Run(ctx))

	assert.Equal(t, 3, w.Counts()[types.JobDone])
	results, err := q.Results(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, "w1", r.Worker)
		assert.Equal(t, 2, r.Device)
	}
}

func TestWorkerMaxJobs(t *testing.T) {
	_, q := newTestQueue(t)
	ctx := context.Background()
	require.NoError(t, q.Push(ctx, echoJobs(3, 0)...))

	w := NewWorker(WorkerConfig{Name: "w", MaxJobs: 1, Out: new(bytes.Buffer)}, q, NewExecutor("/bin/sh", t.TempDir()))
	require.NoError(t, w.Run(ctx))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestLaunchRedis(t *testing.T) {
	mr, _ := newTestQueue(t)
	out := new(bytes.Buffer)

	cfg := &Config{
		Experiment: "exp",
		Mode:       RedisMode,
		RecordPath: t.TempDir(),
		Redis:      &redis.Options{Addr: mr.Addr()},
		Out:        out,
	}
	jobs := echoJobs(4, 0, 1)
	require.NoError(t, Launch(context.Background(), cfg, jobs))
	assert.Contains(t, out.String(), "Queued 4 jobs on offline-subopt:exp:jobs")

	items, err := mr.List("offline-subopt:exp:jobs")
	require.NoError(t, err)
	assert.Len(t, items, 4)

	lines, err := util.ReadLines(path.Join(cfg.RecordPath, "queued.jsonl"))
	require.NoError(t, err)
	require.Len(t, lines, 4)
	for i, l := range lines {
		status := JobStatus{}
		require.NoError(t, json.Unmarshal([]byte(l), &status))
		assert.Equal(t, types.JobQueued, status.State)
		assert.Equal(t, jobs[i].ID, status.Job.ID)
	}
}
