package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// HistoryHandler lists recently answered questions
// @Summary      Question history
// @Description  Most recent questions with the rule that matched, the SQL run and the row count, newest first
// @Tags         Query
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 20, max 200)"
// @Success      200    {object}  map[string][]models.HistoryEntry  "History entries"
// @Failure      400    {object}  models.ErrorResponse              "Invalid limit"
// @Failure      503    {object}  models.ErrorResponse              "History disabled"
// @Failure      500    {object}  models.ErrorResponse              "Failed to read history"
// @Router       /query/history [get]
func (h *Handlers) HistoryHandler(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Question history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := h.history.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to read history: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}
