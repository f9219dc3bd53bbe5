package main

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tyredesk/tyre-service/internal/database"
	"github.com/tyredesk/tyre-service/internal/extraction"
	"github.com/tyredesk/tyre-service/internal/ingest"
	"github.com/tyredesk/tyre-service/internal/storage"
	"github.com/tyredesk/tyre-service/internal/types"
)

var (
	ingestSupplier string
	ingestUser     string
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a supplier price list file",
	Long: `Run the complete ingestion pipeline for a local price list file: extract
or parse the rows, validate them, reconcile sizes, brands and models against
the shared catalog, and upsert the supplier's prices.`,
	Example: `  tyre-service ingest ./lists/michelin-june.pdf --supplier 6f3a... --user 9c1b...
  tyre-service ingest ./lists/continental.csv --supplier 6f3a... --user 9c1b...`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestSupplier, "supplier", "", "Supplier ID (required)")
	ingestCmd.Flags().StringVar(&ingestUser, "user", "", "User ID owning the supplier (required)")
	ingestCmd.MarkFlagRequired("supplier")
	ingestCmd.MarkFlagRequired("user")
}

func runIngest(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	ctx := context.Background()
	pool := database.Pool()

	// The supplier must exist and belong to the user.
	if _, err := database.NewSupplierStore(pool).Get(ctx, ingestUser, ingestSupplier); err != nil {
		return fmt.Errorf("supplier %s not found for user %s: %w", ingestSupplier, ingestUser, err)
	}

	extractor := extraction.NewClient(extraction.Options{
		APIKey:  cfg.Extraction.APIKey,
		BaseURL: cfg.Extraction.BaseURL,
		Model:   cfg.Extraction.Model,
		Timeout: cfg.Extraction.Timeout,
	}, *logger)

	reconciler := ingest.NewReconciler(database.NewCatalogStore(pool), *logger)
	pipeline := ingest.NewPipeline(extractor, reconciler, database.NewRunStore(pool), *logger)

	if archive, err := storage.NewLocalArchive(cfg.Storage.BasePath); err == nil {
		pipeline.WithArchive(archive)
	} else {
		logger.Warn().Err(err).Msg("Document archive disabled")
	}

	result, err := pipeline.Run(ctx, ingest.Input{
		UserID:     ingestUser,
		SupplierID: ingestSupplier,
		FileName:   filepath.Base(filePath),
		MimeType:   mime.TypeByExtension(filepath.Ext(filePath)),
		Content:    content,
		Source:     types.SourceCLI,
	})
	if err != nil {
		if errors.Is(err, ingest.ErrNoValidData) {
			return fmt.Errorf("every row in %s failed validation; see run errors for details", filePath)
		}
		return err
	}

	logger.Info().
		Str("run_id", result.RunID).
		Int("total", result.TotalRows).
		Int("persisted", result.Persisted).
		Int("invalid", len(result.InvalidRows)).
		Int("failed", result.Failed).
		Msg("Ingestion completed")

	for _, inv := range result.InvalidRows {
		logger.Warn().
			Str("size", inv.Row.Size).
			Str("brand", inv.Row.Brand).
			Str("model", inv.Row.Model).
			Strs("reasons", inv.Reasons).
			Msg("Row rejected")
	}

	if result.Created.Sizes+result.Created.Brands+result.Created.Models > 0 {
		logger.Info().
			Int("sizes", result.Created.Sizes).
			Int("brands", result.Created.Brands).
			Int("models", result.Created.Models).
			Msg("Catalog entities created")
	}

	return nil
}
