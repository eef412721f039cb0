package launcher

import (
	"sync"
	"time"

	"github.com/zeu5/offline-subopt/types"
)

// JobStatus is the tracked view of one job
type JobStatus struct {
	Job     types.Job      `json:"job"`
	State   types.JobState `json:"state"`
	Slot    string         `json:"slot,omitempty"`
	Started *time.Time     `json:"started,omitempty"`
	Result  *types.Result  `json:"result,omitempty"`
}

// Tracker keeps the state of every job of a launch, safe for concurrent use
type Tracker struct {
	mu    sync.RWMutex
	jobs  map[string]*JobStatus
	order []string
}

func NewTracker() *Tracker {
	return &Tracker{
		jobs:  make(map[string]*JobStatus),
		order: make([]string, 0),
	}
}

func (t *Tracker) Add(state types.JobState, jobs ...types.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, j := range jobs {
		if _, ok := t.jobs[j.ID]; !ok {
			t.order = append(t.order, j.ID)
		}
		t.jobs[j.ID] = &JobStatus{Job: j, State: state}
	}
}

func (t *Tracker) Start(job types.Job, slot string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.jobs[job.ID]
	if !ok {
		s = &JobStatus{Job: job}
		t.jobs[job.ID] = s
		t.order = append(t.order, job.ID)
	}
	now := time.Now()
	s.Job = job
	s.State = types.JobRunning
	s.Slot = slot
	s.Started = &now
}

func (t *Tracker) Finish(r types.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.jobs[r.JobID]
	if !ok {
		s = &JobStatus{Job: types.Job{ID: r.JobID, Device: r.Device}}
		t.jobs[r.JobID] = s
		t.order = append(t.order, r.JobID)
	}
	s.State = r.State()
	s.Result = &r
}

func (t *Tracker) Get(id string) (JobStatus, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.jobs[id]
	if !ok {
		return JobStatus{}, false
	}
	return *s, true
}

// List returns the jobs in insertion order, filtered by state when given
func (t *Tracker) List(states ...types.JobState) []JobStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]JobStatus, 0, len(t.order))
	for _, id := range t.order {
		s := t.jobs[id]
		if len(states) > 0 && !hasState(states, s.State) {
			continue
		}
		out = append(out, *s)
	}
	return out
}

func (t *Tracker) Counts() map[types.JobState]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[types.JobState]int)
	for _, s := range t.jobs {
		out[s.State]++
	}
	return out
}

func hasState(states []types.JobState, s types.JobState) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}
