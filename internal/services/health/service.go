package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/shared/server/respond"
)

const pingTimeout = 2 * time.Second

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Service reports whether the job store is reachable.
type Service struct {
	DB *sql.DB
	// Backend names the store: a dialect, or "memory".
	Backend string
}

// NewService constructs a new health service. db may be nil for the memory store.
func NewService(db *sql.DB, backend string) *Service {
	return &Service{DB: db, Backend: backend}
}

// Status pings the database when one is configured.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: s.Backend}
	if s.DB == nil {
		return st
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		st.OK = false
		st.Error = err.Error()
	}
	return st
}

// Handle serves the status as JSON, with 503 when the database is unreachable.
func (s *Service) Handle(c *gin.Context) {
	st := s.Status(c.Request.Context())
	code := http.StatusOK
	if !st.OK {
		code = http.StatusServiceUnavailable
	}
	respond.JSON(c, code, st)
}
