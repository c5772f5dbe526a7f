package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cv-backend/internal/shared/storage/object"
)

const exportPrefix = "exports/"

// Snapshot is the document written by Export.
type Snapshot struct {
	ExportedAt string `json:"exportedAt"`
	Count      int    `json:"count"`
	Jobs       []Row  `json:"jobs"`
}

// ExportKey names the object for a snapshot taken at now.
func ExportKey(now time.Time) string {
	return exportPrefix + "cv-" + now.UTC().Format("20060102T150405Z") + ".json"
}

// Export writes every job as a JSON snapshot into store and returns its key.
// An empty table still produces a snapshot.
func Export(ctx context.Context, repo Repo, store object.Store, now time.Time) (string, Snapshot, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return "", Snapshot{}, fmt.Errorf("list jobs: %w", err)
	}
	snap := Snapshot{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(list),
		Jobs:       toRows(list),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	key := ExportKey(now)
	if _, err := store.Put(ctx, key, "application/json", bytes.NewReader(data)); err != nil {
		return "", Snapshot{}, fmt.Errorf("store snapshot: %w", err)
	}
	return key, snap, nil
}
