package excel

import (
	"path/filepath"
	"testing"

	"sellerops/internal/ledger"

	"github.com/xuri/excelize/v2"
)

func sampleReport() MonthlyReport {
	records := []ledger.Record{
		{Type: ledger.TypeOrder, Fulfillment: ledger.FulfillmentAmazon, SKU: "A1", Quantity: 1, ProductSales: 10.00, Total: 10.00},
		{Type: ledger.TypeOrder, Fulfillment: ledger.FulfillmentSeller, SKU: "B1", Quantity: 5, ProductSales: 50.00, Total: 50.00},
		{Type: ledger.TypeRefund, Fulfillment: ledger.FulfillmentAmazon, SKU: "A1", Quantity: 1, ProductSales: -10.00, Total: -10.00},
	}
	buckets := ledger.Classify(records)
	return MonthlyReport{
		Statement:  ledger.BuildStatement(buckets),
		SalesSKUs:  ledger.RollupQuantities(buckets.Orders),
		RefundSKUs: ledger.RollupQuantities(buckets.Refunds),
		Records:    records,
		Buckets:    buckets,
	}
}

func TestWriteMonthly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteMonthly(path, sampleReport()); err != nil {
		t.Fatalf("WriteMonthly: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	t.Run("all sheets present in order", func(t *testing.T) {
		sheets := f.GetSheetList()
		if len(sheets) != 18 {
			t.Fatalf("sheet count = %d, want 18", len(sheets))
		}
		if sheets[0] != SheetOverview {
			t.Errorf("first sheet = %q, want %q", sheets[0], SheetOverview)
		}
		if sheets[3] != SheetLedger {
			t.Errorf("fourth sheet = %q, want %q", sheets[3], SheetLedger)
		}
	})

	t.Run("overview carries headers and totals", func(t *testing.T) {
		got, err := f.GetCellValue(SheetOverview, "A1")
		if err != nil || got != "Income" {
			t.Errorf("A1 = %q (%v), want Income", got, err)
		}
		got, err = f.GetCellValue(SheetOverview, "F1")
		if err != nil || got != "Expense" {
			t.Errorf("F1 = %q (%v), want Expense", got, err)
		}
		rows, err := f.GetRows(SheetOverview)
		if err != nil {
			t.Fatalf("GetRows: %v", err)
		}
		last := rows[len(rows)-1]
		if last[0] != "Total_Income" {
			t.Errorf("last row starts with %q, want Total_Income", last[0])
		}
	})

	t.Run("ledger sheet mirrors the report columns", func(t *testing.T) {
		got, err := f.GetCellValue(SheetLedger, "A1")
		if err != nil || got != "type" {
			t.Errorf("ledger A1 = %q (%v), want type", got, err)
		}
		got, err = f.GetCellValue(SheetLedger, "N1")
		if err != nil || got != "total" {
			t.Errorf("ledger N1 = %q (%v), want total", got, err)
		}
	})
}

func TestWriteMonthlyEmptyLedger(t *testing.T) {
	buckets := ledger.Classify(nil)
	report := MonthlyReport{
		Statement: ledger.BuildStatement(buckets),
		Buckets:   buckets,
	}
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteMonthly(path, report); err != nil {
		t.Fatalf("WriteMonthly on empty ledger: %v", err)
	}
	if err := ApplyStyles(path); err != nil {
		t.Fatalf("ApplyStyles on empty ledger: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 18 {
		t.Errorf("sheet count = %d, want 18", len(sheets))
	}
}
