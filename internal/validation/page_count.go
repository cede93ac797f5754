package validation

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/abdellahzou/HiResume/internal/ingestion"
)

// CountPDFPages counts the number of pages in a PDF file.
// It parses the file directly and falls back to pdfinfo.
func CountPDFPages(pdfPath string) (int, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return 0, &FileReadError{Message: fmt.Sprintf("failed to read PDF: %s", pdfPath), Cause: err}
	}
	if count, err := ingestion.CountPages(data); err == nil && count > 0 {
		return count, nil
	}
	count, err := countPagesWithPdfinfo(pdfPath)
	if err != nil {
		return 0, &PageCountError{Path: pdfPath, Cause: err}
	}
	return count, nil
}

// countPagesWithPdfinfo uses pdfinfo (poppler-utils) to count PDF pages
func countPagesWithPdfinfo(pdfPath string) (int, error) {
	output, err := exec.Command("pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}
