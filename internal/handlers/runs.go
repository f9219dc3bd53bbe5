package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/middleware"
)

// ListRunsRequest represents query parameters for listing ingestion runs
type ListRunsRequest struct {
	Limit int `form:"limit" json:"limit" binding:"omitempty,min=1,max=100" jsonschema:"minimum=1,maximum=100"`
}

// ListRunsResponse represents the response for listing ingestion runs
type ListRunsResponse struct {
	Runs  []database.IngestionRun `json:"runs" jsonschema:"required"`
	Total int                     `json:"total" jsonschema:"required"`
}

// ListRuns returns the caller's recent ingestion runs, newest first
// @Summary List ingestion runs
// @Tags ingestion
// @Produce json
// @Param limit query int false "Number of runs to return" default(20) minimum(1) maximum(100)
// @Success 200 {object} ListRunsResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Router /api/ingest/runs [get]
func ListRuns(c *gin.Context) {
	var req ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	runs := database.NewRunStore(database.Pool())
	list, err := runs.ListRuns(c.Request.Context(), middleware.UserID(c), req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ingestion runs"})
		return
	}
	if list == nil {
		list = []database.IngestionRun{}
	}

	c.JSON(http.StatusOK, ListRunsResponse{Runs: list, Total: len(list)})
}

// GetRun returns one ingestion run, for polling after an upload
// @Summary Get an ingestion run
// @Tags ingestion
// @Produce json
// @Param runId path string true "Run ID"
// @Success 200 {object} database.IngestionRun
// @Failure 404 {object} map[string]string "Run not found"
// @Router /api/ingest/runs/{runId} [get]
func GetRun(c *gin.Context) {
	runs := database.NewRunStore(database.Pool())
	run, err := runs.GetRun(c.Request.Context(), middleware.UserID(c), c.Param("runId"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingestion run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up ingestion run"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListRunErrors returns the recorded errors of one ingestion run
// @Summary List errors recorded for an ingestion run
// @Tags ingestion
// @Produce json
// @Param runId path string true "Run ID"
// @Success 200 {object} map[string][]database.IngestionError
// @Router /api/ingest/runs/{runId}/errors [get]
func ListRunErrors(c *gin.Context) {
	runs := database.NewRunStore(database.Pool())
	errs, err := runs.ListErrors(c.Request.Context(), middleware.UserID(c), c.Param("runId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list run errors"})
		return
	}
	if errs == nil {
		errs = []database.IngestionError{}
	}

	c.JSON(http.StatusOK, gin.H{"errors": errs})
}
