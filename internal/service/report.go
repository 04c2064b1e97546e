package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"sellerops/internal/excel"
	"sellerops/internal/ledger"
)

// ErrStorage marks filesystem failures in the report pipeline so the handler
// can answer with a service-unavailable class error instead of a bad-request.
var ErrStorage = errors.New("report storage failure")

// MonthlyReportResult is the finished workbook plus the download name the
// finance side expects.
type MonthlyReportResult struct {
	Content  []byte
	Filename string
}

// GenerateMonthlyReport runs the full reconciliation pipeline: archive the
// upload, load and classify the ledger, build the statement and rollups,
// write the workbook under the project folder and return its bytes. Styling
// failures are logged and swallowed, the unstyled workbook is still correct.
func (s *Service) GenerateMonthlyReport(projectName, reportDate string, upload io.Reader) (*MonthlyReportResult, error) {
	raw, err := io.ReadAll(upload)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	records, err := ledger.Load(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse payment range report: %w", err)
	}

	buckets := ledger.Classify(records)
	statement := ledger.BuildStatement(buckets)
	report := excel.MonthlyReport{
		Statement:  statement,
		SalesSKUs:  ledger.RollupQuantities(buckets.Orders),
		RefundSKUs: ledger.RollupQuantities(buckets.Refunds),
		Records:    records,
		Buckets:    buckets,
	}

	timeSuffix := time.Now().Format("15-04-05")
	projectDir := filepath.Join(s.dataDir, projectName)
	reportDir := filepath.Join(projectDir, "月报")
	archiveDir := filepath.Join(projectDir, "tmp")
	for _, dir := range []string{reportDir, archiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", ErrStorage, dir, err)
		}
	}

	// Keep the raw feed next to the report so a disputed statement can be
	// re-run from the exact input.
	archiveName := fmt.Sprintf("%s_payment_range_report_%s_%s.csv", projectName, reportDate, timeSuffix)
	if err := os.WriteFile(filepath.Join(archiveDir, archiveName), raw, 0o644); err != nil {
		return nil, fmt.Errorf("%w: archive upload: %v", ErrStorage, err)
	}

	workbookPath := filepath.Join(reportDir, fmt.Sprintf("%s_%s_monthly_%s.xlsx", projectName, reportDate, timeSuffix))
	if err := excel.WriteMonthly(workbookPath, report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := excel.ApplyStyles(workbookPath); err != nil {
		s.logger.Warn("workbook styling failed, returning unstyled report",
			"project", projectName, "path", workbookPath, "error", err)
	}

	content, err := os.ReadFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read workbook: %v", ErrStorage, err)
	}

	return &MonthlyReportResult{
		Content:  content,
		Filename: fmt.Sprintf("月度财务报表_%s_美国站_%s.xlsx", projectName, reportDate),
	}, nil
}
