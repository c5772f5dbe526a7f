package jobs

import (
	"context"
	"errors"
	"strconv"
	"time"

	"cv-backend/internal/events"
	"cv-backend/internal/shared/metrics"
	"cv-backend/internal/shared/telemetry"
)

type Service struct {
	Repo   Repo
	Events events.Publisher
	Now    func() time.Time
}

func NewService(repo Repo, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{Repo: repo, Events: publisher, Now: time.Now}
}

var errNotConfigured = errors.New("jobs service not configured")

// List returns every job ordered by id. An empty table yields ErrNotFound.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	if s == nil || s.Repo == nil {
		return nil, errNotConfigured
	}
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list, nil
}

// Get returns the rows matching id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) ([]Job, error) {
	if s == nil || s.Repo == nil {
		return nil, errNotConfigured
	}
	list, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list, nil
}

// Create validates in and inserts it, returning the stored job with its new id.
func (s *Service) Create(ctx context.Context, in Input) (Job, error) {
	if s == nil || s.Repo == nil {
		return Job{}, errNotConfigured
	}
	job, err := Validate(in)
	if err != nil {
		return Job{}, err
	}
	id, err := s.Repo.Create(ctx, job)
	if err != nil {
		return Job{}, err
	}
	job.ID = id
	metrics.IncJobsCreated()
	s.publish(ctx, events.JobCreated, id)
	return job, nil
}

// Update validates in, checks that id exists, then replaces the row.
// The check and the update are separate statements.
func (s *Service) Update(ctx context.Context, id string, in Input) (Job, int64, error) {
	if s == nil || s.Repo == nil {
		return Job{}, 0, errNotConfigured
	}
	job, err := Validate(in)
	if err != nil {
		return Job{}, 0, err
	}
	if err := s.mustExist(ctx, id); err != nil {
		return Job{}, 0, err
	}
	affected, err := s.Repo.Update(ctx, id, job)
	if err != nil {
		return Job{}, 0, err
	}
	metrics.IncJobsUpdated()
	s.publish(ctx, events.JobUpdated, jobID(id))
	return job, affected, nil
}

// Delete checks that id exists, then removes the row.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, errNotConfigured
	}
	if err := s.mustExist(ctx, id); err != nil {
		return 0, err
	}
	affected, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	metrics.IncJobsDeleted()
	s.publish(ctx, events.JobDeleted, jobID(id))
	return affected, nil
}

func (s *Service) mustExist(ctx context.Context, id string) error {
	ok, err := s.Repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// publish never fails the caller; delivery problems are logged and counted.
func (s *Service) publish(ctx context.Context, t events.Type, id int64) {
	if s.Events == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	requestID := telemetry.RequestID(ctx)
	evt := events.NewEvent(t, id, requestID, now())
	if err := s.Events.Publish(ctx, evt); err != nil {
		metrics.IncEventsFailed()
		telemetry.Warn("events.publish_failed", map[string]any{
			"type":       string(t),
			"job_id":     id,
			"event_id":   evt.EventID,
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

func jobID(raw string) int64 {
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id
}
