package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invoiceqa/models"
)

const readyCacheKey = "ready:ping"

// HealthHandler reports that the process is up
// @Summary      Health check
// @Description  Always healthy; no dependency is checked
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.HealthResponse  "Service health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "healthy"})
}

// ReadyHandler checks that the invoice store is reachable
// @Summary      Readiness check
// @Description  Pings PostgreSQL; the outcome is cached briefly
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.HealthResponse  "Store reachable"
// @Failure      503  {object}  models.HealthResponse  "Store unreachable or not configured"
// @Router       /ready [get]
func (h *Handlers) ReadyHandler(c *gin.Context) {
	// The result is shared with later readiness checks, so one client hanging up must
	// not cancel the ping.
	ping := func() error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 3*time.Second)
		defer cancel()
		return h.queries.Ping(ctx)
	}

	var err error
	if h.readyCache != nil {
		err = h.readyCache.Remember(readyCacheKey, ping)
	} else {
		err = ping()
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable", Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{Status: "ready"})
}
