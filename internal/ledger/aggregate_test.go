package ledger

import (
	"math"
	"testing"
)

func lineAmount(t *testing.T, lines []Line, labelEN string) float64 {
	t.Helper()
	for _, line := range lines {
		if line.LabelEN == labelEN {
			return line.Amount
		}
	}
	t.Fatalf("no line labeled %q", labelEN)
	return 0
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildStatement(t *testing.T) {
	t.Run("three order scenario", func(t *testing.T) {
		records := []Record{
			{Type: TypeOrder, Fulfillment: FulfillmentSeller, SKU: "A1", Quantity: 2, ProductSales: 20.00},
			{Type: TypeOrder, Fulfillment: FulfillmentAmazon, SKU: "A1", Quantity: 1, ProductSales: 10.00},
			{Type: TypeOrder, Fulfillment: FulfillmentSeller, SKU: "B1", Quantity: 5, ProductSales: 50.00},
		}
		stmt := BuildStatement(Classify(records))

		if got := lineAmount(t, stmt.Income, "Product sales (non-FBA)"); !almostEqual(got, 70.00) {
			t.Errorf("non-FBA product sales = %v, want 70.00", got)
		}
		if got := lineAmount(t, stmt.Income, "FBA product sales"); !almostEqual(got, 10.00) {
			t.Errorf("FBA product sales = %v, want 10.00", got)
		}
		if stmt.OrderQuantity != 8 {
			t.Errorf("order quantity = %d, want 8", stmt.OrderQuantity)
		}

		rollup := RollupQuantities(records)
		want := []SKURollup{{SKU: "B1", Quantity: 5}, {SKU: "A1", Quantity: 3}}
		if len(rollup) != len(want) {
			t.Fatalf("rollup rows = %d, want %d", len(rollup), len(want))
		}
		for i := range want {
			if rollup[i] != want[i] {
				t.Errorf("rollup[%d] = %+v, want %+v", i, rollup[i], want[i])
			}
		}
	})

	t.Run("advertising spend share", func(t *testing.T) {
		records := []Record{
			{Type: TypeOrder, Fulfillment: FulfillmentSeller, ProductSales: 100.00},
			{Type: TypeServiceFee, Description: DescCostOfAdvertising, Total: -15.00},
		}
		stmt := BuildStatement(Classify(records))
		if !almostEqual(stmt.IncomeTotal, 100.00) {
			t.Fatalf("income total = %v, want 100.00", stmt.IncomeTotal)
		}
		if stmt.AdSpendShare != "15.00%" {
			t.Errorf("ad spend share = %q, want %q", stmt.AdSpendShare, "15.00%")
		}
	})

	t.Run("empty ledger yields zero statement", func(t *testing.T) {
		stmt := BuildStatement(Classify(nil))
		if stmt.IncomeTotal != 0 || stmt.ExpenseTotal != 0 {
			t.Errorf("totals = %v/%v, want 0/0", stmt.IncomeTotal, stmt.ExpenseTotal)
		}
		if stmt.AdSpendShare != "" {
			t.Errorf("ad spend share = %q, want empty on zero income", stmt.AdSpendShare)
		}
		if len(stmt.Income) != 15 || len(stmt.Expense) != 20 {
			t.Errorf("line counts = %d/%d, want 15/20", len(stmt.Income), len(stmt.Expense))
		}
	})

	t.Run("totals are rounded sums of the rounded lines", func(t *testing.T) {
		records := []Record{
			{Type: TypeOrder, Fulfillment: FulfillmentSeller, ProductSales: 10.004},
			{Type: TypeOrder, Fulfillment: FulfillmentAmazon, ProductSales: 20.004},
			{Type: TypeOrder, Fulfillment: FulfillmentAmazon, ShippingCredits: 1.115},
		}
		stmt := BuildStatement(Classify(records))

		var fromLines float64
		for _, line := range stmt.Income {
			fromLines += line.Amount
		}
		if !almostEqual(stmt.IncomeTotal, round2(fromLines)) {
			t.Errorf("income total %v does not reconcile with line sum %v", stmt.IncomeTotal, round2(fromLines))
		}
		// Each line is rounded before the total, so the sub-cent residue in
		// each product-sales line drops independently.
		if got := lineAmount(t, stmt.Income, "Product sales (non-FBA)"); !almostEqual(got, 10.00) {
			t.Errorf("non-FBA line = %v, want 10.00", got)
		}
		if got := lineAmount(t, stmt.Income, "FBA product sales"); !almostEqual(got, 20.00) {
			t.Errorf("FBA line = %v, want 20.00", got)
		}
	})

	t.Run("fba refund line includes the other column", func(t *testing.T) {
		records := []Record{
			{Type: TypeRefund, Fulfillment: FulfillmentAmazon, ProductSales: -30.00, Other: -2.00},
		}
		stmt := BuildStatement(Classify(records))
		if got := lineAmount(t, stmt.Income, "FBA product sale refunds"); !almostEqual(got, -32.00) {
			t.Errorf("FBA refund line = %v, want -32.00", got)
		}
	})

	t.Run("weight dimension credit folds into inventory credit", func(t *testing.T) {
		records := []Record{
			{Type: TypeAdjustment, Description: "FBA Inventory Reimbursement - Lost:Warehouse", Total: 8.00},
			{Type: TypeAdjustment, Description: DescGeneralAdjustment, Total: -3.00},
			{Type: TypeFeeAdjustment, Description: DescWeightDimensionChange, Total: 1.25},
		}
		stmt := BuildStatement(Classify(records))
		if got := lineAmount(t, stmt.Income, "FBA inventory credit"); !almostEqual(got, 9.25) {
			t.Errorf("inventory credit = %v, want 9.25", got)
		}
		if got := lineAmount(t, stmt.Expense, "Adjustments"); !almostEqual(got, -3.00) {
			t.Errorf("adjustments = %v, want -3.00", got)
		}
	})

	t.Run("service fee line combines four components", func(t *testing.T) {
		records := []Record{
			{Type: TypeAmazonFees, Description: "Coupon redemption fee", Total: -4.00},
			{Type: TypeServiceFee, Description: DescSubscription, Total: -39.99},
			{Type: TypeDealFee, Total: -150.00},
			{Type: "", Description: "Price Discount", Total: -2.50},
		}
		stmt := BuildStatement(Classify(records))
		if got := lineAmount(t, stmt.Expense, "Service fees"); !almostEqual(got, -196.49) {
			t.Errorf("service fees = %v, want -196.49", got)
		}
	})

	t.Run("null numeric fields contribute nothing", func(t *testing.T) {
		base := []Record{
			{Type: TypeOrder, Fulfillment: FulfillmentAmazon, ProductSales: 50.00, Quantity: 1},
		}
		withNullRow := append([]Record{}, base...)
		withNullRow = append(withNullRow, Record{Type: TypeOrder, Fulfillment: FulfillmentAmazon})

		stmtBase := BuildStatement(Classify(base))
		stmtNull := BuildStatement(Classify(withNullRow))
		if stmtBase.IncomeTotal != stmtNull.IncomeTotal || stmtBase.ExpenseTotal != stmtNull.ExpenseTotal {
			t.Errorf("zero-valued row changed totals: %v/%v vs %v/%v",
				stmtBase.IncomeTotal, stmtBase.ExpenseTotal, stmtNull.IncomeTotal, stmtNull.ExpenseTotal)
		}
	})

	t.Run("aggregation is idempotent", func(t *testing.T) {
		records := []Record{
			{Type: TypeOrder, Fulfillment: FulfillmentAmazon, ProductSales: 33.33, Quantity: 3},
			{Type: TypeRefund, Fulfillment: FulfillmentSeller, ProductSales: -11.11, Quantity: 1},
			{Type: TypeServiceFee, Description: DescCostOfAdvertising, Total: -7.77},
			{Type: TypeDebt, Total: -5.00},
		}
		first := BuildStatement(Classify(records))
		second := BuildStatement(Classify(records))
		if first.IncomeTotal != second.IncomeTotal ||
			first.ExpenseTotal != second.ExpenseTotal ||
			first.AdSpendShare != second.AdSpendShare ||
			first.CardDebits != second.CardDebits {
			t.Error("repeated aggregation diverged")
		}
	})
}
