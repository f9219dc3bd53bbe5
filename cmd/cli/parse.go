package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tyredesk/tyre-service/internal/ingest"
	csvparser "github.com/tyredesk/tyre-service/internal/parsers/csv"
	xlsxparser "github.com/tyredesk/tyre-service/internal/parsers/xlsx"
	"github.com/tyredesk/tyre-service/internal/types"
	"github.com/tyredesk/tyre-service/internal/tyres"
)

var parseOutput string

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file|size>",
	Short: "Parse a size string or validate a local price list without persisting",
	Long: `Parse a structured CSV or XLSX price list locally and run the rows through
validation. Nothing is written to the database; the output shows which rows
would be ingested and why the rest would be rejected. Useful for checking a
supplier's export before uploading it.

A bare tyre size like 205/55R16 is parsed into its components instead.`,
	Example: `  tyre-service parse 205/55R16
  tyre-service parse ./lists/continental.csv
  tyre-service parse ./lists/michelin.xlsx --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseOutput, "output", "table", "Output format: table or json")
}

func runParse(cmd *cobra.Command, args []string) error {
	if size, err := tyres.ParseSize(args[0]); err == nil {
		if parseOutput == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(size)
		}
		fmt.Printf("canonical: %s\nwidth: %d\naspect ratio: %d\ndiameter: %d\n",
			size.Canonical, size.Width, size.AspectRatio, size.Diameter)
		return nil
	}

	filePath := args[0]

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var rows []types.PriceListRow
	switch ingest.DetectFileType(filepath.Base(filePath), "") {
	case types.FileTypeCSV:
		rows, err = csvparser.Parse(content)
	case types.FileTypeXLSX:
		rows, err = xlsxparser.Parse(content)
	default:
		return fmt.Errorf("parse only handles CSV and XLSX files; use ingest for %s", filepath.Ext(filePath))
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	valid, invalid := ingest.ValidateRows(rows)

	if parseOutput == "json" {
		out := struct {
			Total   int                  `json:"total"`
			Valid   []types.PriceListRow `json:"valid"`
			Invalid []types.InvalidRow   `json:"invalid"`
		}{len(rows), valid, invalid}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SIZE\tBRAND\tMODEL\tCOST\tSTATUS")
	for _, row := range valid {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\tok\n", row.Size, row.Brand, row.Model, row.Cost)
	}
	for _, inv := range invalid {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\trejected: %s\n",
			inv.Row.Size, inv.Row.Brand, inv.Row.Model, inv.Row.Cost, strings.Join(inv.Reasons, "; "))
	}
	w.Flush()

	fmt.Printf("\n%d rows: %d valid, %d invalid\n", len(rows), len(valid), len(invalid))
	return nil
}
