package jobs

import "context"

// Repo persists job entries. Ids are passed through as received from the URL.
type Repo interface {
	List(ctx context.Context) ([]Job, error)
	Get(ctx context.Context, id string) ([]Job, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, job Job) (int64, error)
	Update(ctx context.Context, id string, job Job) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
