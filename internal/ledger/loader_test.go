package ledger

import (
	"strings"
	"testing"
)

const reportHeader = `"type","fulfillment","description","sku","quantity","product sales","shipping credits","gift wrap credits","promotional rebates","selling fees","fba fees","other transaction fees","other","total"`

// buildReport prepends the fixed export preamble so fixtures read like a real
// payment range report download.
func buildReport(rows ...string) string {
	var sb strings.Builder
	for i := 0; i < preambleLines; i++ {
		sb.WriteString("\"Includes Amazon Marketplace transactions\"\n")
	}
	sb.WriteString(reportHeader)
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestLoad(t *testing.T) {
	t.Run("parses rows after the preamble", func(t *testing.T) {
		report := buildReport(
			`"Order","Amazon","desc","SKU-1","2","1,234.56","1.00","0","-.5","-3.21","-4.00","0","0","1,227.85"`,
		)
		records, err := Load(strings.NewReader(report))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("got %d records, want 1", len(records))
		}
		r := records[0]
		if r.Type != TypeOrder || r.Fulfillment != FulfillmentAmazon || r.SKU != "SKU-1" {
			t.Errorf("unexpected record identity: %+v", r)
		}
		if r.Quantity != 2 {
			t.Errorf("quantity = %d, want 2", r.Quantity)
		}
		if r.ProductSales != 1234.56 {
			t.Errorf("product sales = %v, want 1234.56 (thousands separator)", r.ProductSales)
		}
		if r.Total != 1227.85 {
			t.Errorf("total = %v, want 1227.85", r.Total)
		}
	})

	t.Run("empty numeric cells coerce to zero", func(t *testing.T) {
		report := buildReport(
			`"Adjustment","","FBA Inventory Reimbursement - Lost","SKU-2","","","","","","","","","","12.50"`,
		)
		records, err := Load(strings.NewReader(report))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		r := records[0]
		if r.Quantity != 0 || r.ProductSales != 0 || r.SellingFees != 0 {
			t.Errorf("empty cells should be zero: %+v", r)
		}
		if r.Total != 12.50 {
			t.Errorf("total = %v, want 12.50", r.Total)
		}
	})

	t.Run("fractional quantity truncates to whole units", func(t *testing.T) {
		report := buildReport(
			`"Order","Seller","","SKU-3","2.0","10.00","0","0","0","0","0","0","0","10.00"`,
		)
		records, err := Load(strings.NewReader(report))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if records[0].Quantity != 2 {
			t.Errorf("quantity = %d, want 2", records[0].Quantity)
		}
	})

	t.Run("missing required column names the column", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < preambleLines; i++ {
			sb.WriteString("preamble\n")
		}
		sb.WriteString(`"type","fulfillment","description","sku","quantity"` + "\n")
		_, err := Load(strings.NewReader(sb.String()))
		if err == nil {
			t.Fatal("expected error for missing columns")
		}
		if !strings.Contains(err.Error(), "missing required column: product sales") {
			t.Errorf("error should name the first missing column, got: %v", err)
		}
	})

	t.Run("truncated preamble fails fast", func(t *testing.T) {
		_, err := Load(strings.NewReader("only one line"))
		if err == nil {
			t.Fatal("expected error for truncated report")
		}
		if !strings.Contains(err.Error(), "truncated") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("non-numeric amount is rejected with row context", func(t *testing.T) {
		report := buildReport(
			`"Order","Amazon","","SKU-4","1","abc","0","0","0","0","0","0","0","0"`,
		)
		_, err := Load(strings.NewReader(report))
		if err == nil {
			t.Fatal("expected error for non-numeric product sales")
		}
		if !strings.Contains(err.Error(), "row 1") {
			t.Errorf("error should carry the row number, got: %v", err)
		}
	})

	t.Run("BOM and casing on the header are tolerated", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < preambleLines; i++ {
			sb.WriteString("preamble\n")
		}
		sb.WriteString("\ufeff" + `Type,Fulfillment,Description,SKU,Quantity,Product Sales,Shipping Credits,Gift Wrap Credits,Promotional Rebates,Selling Fees,FBA Fees,Other Transaction Fees,Other,Total` + "\n")
		sb.WriteString(`Order,Amazon,,SKU-5,1,5.00,0,0,0,0,0,0,0,5.00` + "\n")
		records, err := Load(strings.NewReader(sb.String()))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(records) != 1 || records[0].ProductSales != 5.00 {
			t.Errorf("unexpected records: %+v", records)
		}
	})
}
