package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/extraction"
	"github.com/tyredesk/tyre-service/internal/ingest"
	"github.com/tyredesk/tyre-service/internal/middleware"
	"github.com/tyredesk/tyre-service/internal/storage"
	"github.com/tyredesk/tyre-service/internal/types"
)

// ingestionSem limits concurrent ingestion goroutines to prevent resource exhaustion
var ingestionSem = make(chan struct{}, 10)

// extractor and archive are wired at startup.
var (
	extractor extraction.Extractor
	archive   storage.Archive
)

// Configure injects the extraction client and document archive the ingest
// handlers use. The archive may be nil to disable archival.
func Configure(ext extraction.Extractor, arc storage.Archive) {
	extractor = ext
	archive = arc
}

// maxUploadSize caps price list uploads at 20 MB.
const maxUploadSize = 20 << 20

// IngestStartedResponse represents the 202 response when ingestion is started
type IngestStartedResponse struct {
	RunID   string `json:"runId"`
	Status  string `json:"status"`
	PollURL string `json:"pollUrl"`
}

// IngestPriceList accepts a supplier price list upload and processes it
// asynchronously
// @Summary Ingest a supplier price list
// @Description Uploads a price list (PDF, image, CSV or XLSX) and starts an asynchronous ingestion run
// @Tags ingestion
// @Accept multipart/form-data
// @Produce json
// @Param supplierId formData string true "Supplier ID"
// @Param file formData file true "Price list document"
// @Success 202 {object} IngestStartedResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Supplier not found"
// @Router /api/ingest [post]
func IngestPriceList(c *gin.Context) {
	userID := middleware.UserID(c)

	supplierID := c.PostForm("supplierId")
	if supplierID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplierId is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 20 MB upload limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	pool := database.Pool()
	ctx := c.Request.Context()

	// The supplier must exist and belong to the caller.
	suppliers := database.NewSupplierStore(pool)
	if _, err := suppliers.Get(ctx, userID, supplierID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up supplier"})
		return
	}

	runs := database.NewRunStore(pool)
	runID, err := runs.CreateRun(ctx, userID, supplierID, types.SourceAPI, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to create ingestion run: %v", err)})
		return
	}

	input := ingest.Input{
		UserID:     userID,
		SupplierID: supplierID,
		FileName:   fileHeader.Filename,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		Content:    content,
		Source:     types.SourceAPI,
		RunID:      runID,
	}

	go func() {
		ingestionSem <- struct{}{}
		defer func() { <-ingestionSem }()

		// Detached from the request: the upload response has already gone out.
		bgCtx := context.Background()
		reconciler := ingest.NewReconciler(database.NewCatalogStore(pool), log.Logger)
		pipeline := ingest.NewPipeline(extractor, reconciler, runs, log.Logger)
		if archive != nil {
			pipeline.WithArchive(archive)
		}

		if _, err := pipeline.Run(bgCtx, input); err != nil {
			log.Error().Err(err).
				Str("run_id", runID).
				Str("supplier_id", supplierID).
				Msg("Ingestion run failed")
		}
	}()

	c.JSON(http.StatusAccepted, IngestStartedResponse{
		RunID:   runID,
		Status:  string(types.StatusRunning),
		PollURL: fmt.Sprintf("/api/ingest/runs/%s", runID),
	})
}
