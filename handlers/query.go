package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoiceqa/models"
)

// QueryHandler answers a natural-language question about invoices
// @Summary      Answer an invoice question
// @Description  Maps the question onto a fixed SQL template, runs it and returns the rows
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      models.QueryRequest    true  "Question"
// @Success      200      {object}  models.QueryResponse   "Executed SQL and result rows"
// @Failure      422      {object}  models.ErrorResponse   "Invalid request"
// @Failure      500      {object}  models.ErrorResponse   "Error processing query"
// @Router       /query [post]
func (h *Handlers) QueryHandler(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.queries.Answer(c.Request.Context(), *req.Question)
	if err != nil {
		h.logger.Error("Error processing query",
			zap.String("question", *req.Question),
			zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: "Error processing query: " + err.Error()})
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("Error encoding query results",
			zap.String("question", *req.Question),
			zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: "Error processing query: " + err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
