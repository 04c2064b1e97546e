package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sellerops/internal/log"

	"github.com/xuri/excelize/v2"
)

const sampleReportCSV = `"Includes Amazon Marketplace transactions"
line
line
line
line
line
line
"type","fulfillment","description","sku","quantity","product sales","shipping credits","gift wrap credits","promotional rebates","selling fees","fba fees","other transaction fees","other","total"
"Order","Amazon","","A1","1","10.00","0","0","0","-1.50","-2.00","0","0","6.50"
"Order","Seller","","B1","5","50.00","0","0","0","-7.50","0","0","0","42.50"
"Service Fee","","Cost of Advertising","","","","","","","","","","","-9.00"
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		logger:  log.New("test"),
		dataDir: t.TempDir(),
	}
}

func TestGenerateMonthlyReport(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.GenerateMonthlyReport("ProjectX", "2024-05", strings.NewReader(sampleReportCSV))
	if err != nil {
		t.Fatalf("GenerateMonthlyReport: %v", err)
	}
	if result.Filename != "月度财务报表_ProjectX_美国站_2024-05.xlsx" {
		t.Errorf("filename = %q", result.Filename)
	}
	if len(result.Content) == 0 {
		t.Fatal("empty workbook content")
	}

	t.Run("workbook is stored under the project folder", func(t *testing.T) {
		matches, err := filepath.Glob(filepath.Join(svc.dataDir, "ProjectX", "月报", "*.xlsx"))
		if err != nil || len(matches) != 1 {
			t.Fatalf("stored workbooks = %v (%v), want exactly one", matches, err)
		}
		f, err := excelize.OpenFile(matches[0])
		if err != nil {
			t.Fatalf("open stored workbook: %v", err)
		}
		defer f.Close()
		if sheets := f.GetSheetList(); len(sheets) != 18 {
			t.Errorf("sheet count = %d, want 18", len(sheets))
		}
	})

	t.Run("upload is archived for re-runs", func(t *testing.T) {
		matches, err := filepath.Glob(filepath.Join(svc.dataDir, "ProjectX", "tmp", "*.csv"))
		if err != nil || len(matches) != 1 {
			t.Fatalf("archived uploads = %v (%v), want exactly one", matches, err)
		}
		raw, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read archive: %v", err)
		}
		if string(raw) != sampleReportCSV {
			t.Error("archived upload differs from the original bytes")
		}
	})
}

func TestGenerateMonthlyReportParseFailure(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GenerateMonthlyReport("ProjectX", "2024-05", strings.NewReader("not a report"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrStorage) {
		t.Errorf("parse failure must not be a storage error: %v", err)
	}
	if !strings.Contains(err.Error(), "parse payment range report") {
		t.Errorf("error should name the parse stage: %v", err)
	}
}
