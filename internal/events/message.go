package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type names a job lifecycle transition.
type Type string

const (
	JobCreated Type = "job.created"
	JobUpdated Type = "job.updated"
	JobDeleted Type = "job.deleted"
)

// CurrentVersion is the payload version written by this service.
const CurrentVersion = 1

// Event is the payload sent to downstream consumers.
type Event struct {
	EventID    string `json:"eventId"`
	Type       Type   `json:"type"`
	JobID      int64  `json:"jobId"`
	RequestID  string `json:"requestId,omitempty"`
	OccurredAt string `json:"occurredAt"`
	Version    int    `json:"version"`
}

// NewEvent stamps a fresh event for jobID.
func NewEvent(t Type, jobID int64, requestID string, now time.Time) Event {
	return Event{
		EventID:    uuid.NewString(),
		Type:       t,
		JobID:      jobID,
		RequestID:  requestID,
		OccurredAt: now.UTC().Format(time.RFC3339),
		Version:    CurrentVersion,
	}
}

// EncodeEvent returns the JSON representation of an event.
func EncodeEvent(evt Event) ([]byte, error) {
	return json.Marshal(evt)
}

// DecodeEvent parses a JSON payload into an Event.
func DecodeEvent(payload []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return Event{}, err
	}
	return evt, nil
}
