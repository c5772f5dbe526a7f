package jobs

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MemoryRepo keeps jobs in process memory. Unparsable ids never match.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	jobs   map[int64]Job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[int64]Job)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, copyJob(j))
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, ok := parseID(id)
	if !ok {
		return []Job{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, found := r.jobs[key]
	if !found {
		return []Job{}, nil
	}
	return []Job{copyJob(j)}, nil
}

func (r *MemoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	list, err := r.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return len(list) > 0, nil
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	job.ID = r.nextID
	r.jobs[job.ID] = copyJob(job)
	return job.ID, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, job Job) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	key, ok := parseID(id)
	if !ok {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.jobs[key]; !found {
		return 0, nil
	}
	job.ID = key
	r.jobs[key] = copyJob(job)
	return 1, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	key, ok := parseID(id)
	if !ok {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.jobs[key]; !found {
		return 0, nil
	}
	delete(r.jobs, key)
	return 1, nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func copyJob(j Job) Job {
	if j.EndDate != nil {
		end := *j.EndDate
		j.EndDate = &end
	}
	return j
}
