// Package app implements the command-line operations of diet-planner.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"diet-planner/internal/export"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/profile"
	"diet-planner/internal/shared"
)

// App holds the application's dependencies.
type App struct {
	planner  *planner.Planner
	recorder *metrics.Recorder
	out      io.Writer
	now      func() time.Time
}

// NewApp creates and initializes a new App instance. recorder may be nil.
func NewApp(p *planner.Planner, recorder *metrics.Recorder, out io.Writer) *App {
	return &App{
		planner:  p,
		recorder: recorder,
		out:      out,
		now:      time.Now,
	}
}

// GeneratePlan reads a profile answer file, generates a plan, prints it and
// writes the text and PDF downloads to outDir.
func (a *App) GeneratePlan(ctx context.Context, profilePath, outDir string) error {
	data, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	answers, err := profile.ParseYAML(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Generating diet plan for %q...\n", answers.Name)
	plan, err := a.planner.Generate(ctx, answers)
	if err != nil {
		return err
	}

	txt, pdf, err := plan.Artifacts()
	a.recorder.RecordExport("pdf", err)
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s\n\n", plan.Text)
	return a.writeAll(outDir, txt, pdf)
}

// ExportPlan turns an existing plain-text plan into both downloads, named
// after name and today's date.
func (a *App) ExportPlan(inPath, name, outDir string) error {
	if name == "" {
		return &shared.ValidationError{Field: "name", Reason: "required"}
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}
	text := string(data)
	today := a.now()

	pdf, err := export.PDF(text)
	a.recorder.RecordExport("pdf", err)
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}
	pdf.FileName = export.FileName(name, today, "pdf")

	txt := export.Text(text)
	txt.FileName = export.FileName(name, today, "txt")
	return a.writeAll(outDir, txt, pdf)
}

// writeAll writes the text download then the PDF.
func (a *App) writeAll(dir string, txt, pdf export.Artifact) error {
	err := a.write(dir, txt)
	a.recorder.RecordExport("txt", err)
	if err != nil {
		return err
	}
	return a.write(dir, pdf)
}

func (a *App) write(dir string, artifact export.Artifact) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, artifact.FileName)
	if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", artifact.FileName, err)
	}
	log.Printf("Wrote %s (%s, %d bytes)", path, artifact.MIMEType, len(artifact.Data))
	fmt.Fprintf(a.out, "Saved %s\n", path)
	return nil
}
