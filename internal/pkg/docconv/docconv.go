// Package docconv wraps the external office-to-PDF conversion routine.
package docconv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pradipta/banksoal/internal/pkg/logger"
)

// Converter converts an office document on disk into PDF bytes.
type Converter interface {
	ConvertToPDF(ctx context.Context, inputPath string) ([]byte, error)
}

// SofficeConverter shells out to a LibreOffice binary in headless mode.
// Each conversion writes into its own uniquely named output directory so
// concurrent requests never collide, and the directory is removed on every
// exit path.
type SofficeConverter struct {
	binary  string
	timeout time.Duration
}

// NewSofficeConverter creates a converter using the given binary (usually
// "soffice") and per-conversion timeout.
func NewSofficeConverter(binary string, timeout time.Duration) *SofficeConverter {
	if binary == "" {
		binary = "soffice"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &SofficeConverter{binary: binary, timeout: timeout}
}

// ConvertToPDF converts the document at inputPath and returns the produced
// PDF bytes.
func (c *SofficeConverter) ConvertToPDF(ctx context.Context, inputPath string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outDir, err := os.MkdirTemp("", "docconv-"+uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to create conversion output dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(outDir); rmErr != nil {
			logger.Warn().Err(rmErr).Str("dir", outDir).Msg("Failed to remove conversion output dir")
		}
	}()

	cmd := exec.CommandContext(ctx, c.binary,
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		inputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("conversion command failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	// soffice names the output after the input basename
	base := filepath.Base(inputPath)
	pdfName := strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
	pdfPath := filepath.Join(outDir, pdfName)

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("conversion produced no output for %s: %w", base, err)
	}

	return data, nil
}
