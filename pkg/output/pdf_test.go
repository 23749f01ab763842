package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGeneratePDFReport(t *testing.T) {
	report := buildReport(t, true)
	generated := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	data, err := GeneratePDFReport(report.Results[0], report.Results, generated)
	if err != nil {
		t.Fatalf("GeneratePDFReport() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF document")
	}

	single, err := GeneratePDFReport(report.Results[0], nil, generated)
	if err != nil {
		t.Fatalf("GeneratePDFReport() error = %v", err)
	}
	if len(single) >= len(data) {
		t.Errorf("expected the comparison table to enlarge the report")
	}
}

func TestPDFFormat(t *testing.T) {
	report := buildReport(t, false)
	path := filepath.Join(t.TempDir(), "schedule.pdf")

	if err := PDFFormat(report, path); err != nil {
		t.Fatalf("PDFFormat() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("PDF is empty")
	}

	if err := PDFFormat(Report{}, path); err == nil {
		t.Errorf("expected error for empty report")
	}
}
