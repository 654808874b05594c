package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/ingestion"
	"github.com/Haloween-arch/Jobtune/internal/rendering"
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Render resume text as a PDF",
	Long:  "Render a resume as an A4 PDF, one line per row in 12pt Helvetica, starting a new page when the current one is full.",
	RunE:  runExportPDF,
}

var (
	exportInput  string
	exportOutput string
)

func init() {
	exportPDFCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to resume file (required)")
	exportPDFCmd.Flags().StringVarP(&exportOutput, "out", "o", "improved_resume.pdf", "Path to output PDF")
	_ = exportPDFCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(exportPDFCmd)
}

func runExportPDF(_ *cobra.Command, _ []string) error {
	text, err := ingestion.LoadResume(exportInput)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	if text == "" {
		return fmt.Errorf("resume text missing")
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := rendering.RenderPDF(f, text); err != nil {
		_ = f.Close()
		_ = os.Remove(exportOutput)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	appLogger.Debug("pdf exported", zap.String("path", exportOutput), zap.Int("pages", len(rendering.Paginate(text))))
	if verbose {
		_, _ = fmt.Fprintf(os.Stderr, "PDF written to %s\n", exportOutput)
	}
	return nil
}
