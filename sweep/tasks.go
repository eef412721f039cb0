package sweep

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeu5/offline-subopt/types"
)

var ErrInvalidTaskID = errors.New("invalid task id")

// ParseTaskIDs reads the "index:count" shard description used when the same
// sweep is launched from several machines. Empty means the whole sweep
func ParseTaskIDs(taskID string) (int, int, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return 0, 1, nil
	}
	iS, nS, ok := strings.Cut(taskID, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q, expected index:count", ErrInvalidTaskID, taskID)
	}
	i, err := strconv.Atoi(iS)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidTaskID, taskID, err)
	}
	n, err := strconv.Atoi(nS)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidTaskID, taskID, err)
	}
	if n < 1 || i < 0 || i >= n {
		return 0, 0, fmt.Errorf("%w: %q, index must be in [0, count)", ErrInvalidTaskID, taskID)
	}
	return i, n, nil
}

// Shard keeps the jobs belonging to shard index out of count
func Shard(jobs []types.Job, index, count int) []types.Job {
	if count <= 1 {
		return jobs
	}
	out := make([]types.Job, 0, len(jobs)/count+1)
	for _, j := range jobs {
		if j.Index%count == index {
			out = append(out, j)
		}
	}
	return out
}
