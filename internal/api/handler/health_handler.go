package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB and *redis.Client.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// PingContext calls f.
func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler liveness plus dependency status
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a HealthHandler; nil pingers are reported as
// "disabled".
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health GET /health
// 503 when the database is unreachable; a failing cache only degrades.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}

	body["database"] = probe(ctx, h.db)
	if body["database"] == "down" {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	}
	body["cache"] = probe(ctx, h.cache)
	if body["cache"] == "down" && status == http.StatusOK {
		body["status"] = "degraded"
	}

	c.JSON(status, body)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.PingContext(ctx); err != nil {
		return "down"
	}
	return "up"
}
