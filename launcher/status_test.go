package launcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/offline-subopt/types"
)

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatusServer(t *testing.T) {
	tracker := NewTracker()
	jobs := echoJobs(3, 0)
	tracker.Add(types.JobPending, jobs...)
	tracker.Start(jobs[0], "gpu:0 slot:0")
	tracker.Finish(types.Result{JobID: jobs[0].ID, ExitCode: 2, Duration: time.Second})
	tracker.Start(jobs[1], "gpu:0 slot:0")

	h := NewStatusServer("127.0.0.1:0", tracker).Handler()

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, h, "/jobs")
	require.Equal(t, http.StatusOK, rec.Code)
	body := struct {
		Counts map[types.JobState]int `json:"counts"`
		Jobs   []JobStatus            `json:"jobs"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Jobs, 3)
	assert.Equal(t, 1, body.Counts[types.JobFailed])
	assert.Equal(t, 1, body.Counts[types.JobRunning])
	assert.Equal(t, 1, body.Counts[types.JobPending])

	rec = get(t, h, "/jobs?state=failed")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Jobs, 1)
	assert.Equal(t, jobs[0].ID, body.Jobs[0].Job.ID)

	rec = get(t, h, "/jobs/"+jobs[1].ID)
	require.Equal(t, http.StatusOK, rec.Code)
	status := JobStatus{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, types.JobRunning, status.State)
	assert.Equal(t, "gpu:0 slot:0", status.Slot)

	rec = get(t, h, "/jobs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusServerStartStop(t *testing.T) {
	s := NewStatusServer("127.0.0.1:0", NewTracker())
	require.NoError(t, s.Start())

	resp, err := http.Get("http://" + s.Addr + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Stop(context.Background()))
}
