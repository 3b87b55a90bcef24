package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/soulfile-vault/backend/internal/app"
	"github.com/soulfile-vault/backend/internal/models"
)

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// readUploads loads files from disk; the media type comes from the extension and is left
// empty when unknown so the pipeline can sniff it.
func readUploads(paths []string) ([]models.Upload, error) {
	uploads := make([]models.Upload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		uploads = append(uploads, models.Upload{
			Name:      filepath.Base(p),
			MediaType: mime.TypeByExtension(filepath.Ext(p)),
			Data:      data,
		})
	}
	return uploads, nil
}

// ingestFiles processes each file in order and returns how many failed.
func ingestFiles(ctx context.Context, vault *app.App, paths []string, out io.Writer) int {
	uploads, err := readUploads(paths)
	if err != nil {
		color.Red("%v", err)
		return len(paths)
	}

	color.Blue("\nIngesting %d file(s)\n", len(uploads))
	bar := getProgressBar(len(uploads), "Processing...")

	results := make([]models.ItemResult, 0, len(uploads))
	for _, u := range uploads {
		results = append(results, vault.Pipeline.ProcessItem(ctx, u))
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(out)

	failed := 0
	for _, r := range results {
		if r.Status == models.ItemStatusComplete {
			fmt.Fprintln(out, color.GreenString("✓ %s", r.Summary()))
		} else {
			failed++
			fmt.Fprintln(out, color.RedString("✗ %s", r.Summary()))
		}
	}
	return failed
}

func printRecords(out io.Writer, records []models.FileRecord) {
	if len(records) == 0 {
		color.Yellow("No files stored yet")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tSIZE (KB)\tDOMAIN")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\n", r.Name, r.Path, r.CompressedSize, r.Domain)
	}
	w.Flush()
}

func printSymbols(out io.Writer, entries []models.SymbolEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPHYSICS\tBIOLOGY\tECONOMICS\tTRIGGERS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Symbol, e.Physics, e.Biology, e.Economics, e.Triggers)
	}
	w.Flush()
}
