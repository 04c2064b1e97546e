// Package excel emits the monthly reconciliation workbook: the bilingual
// statement overview, the SKU detail sheets, the full ledger and one audit
// sheet per classification bucket.
package excel

import (
	"fmt"

	"sellerops/internal/ledger"

	"github.com/xuri/excelize/v2"
)

// Sheet names, bilingual to match the statement the finance side reads.
const (
	SheetOverview    = "报表总览"
	SheetSalesSKUs   = "销售SKU明细"
	SheetRefundSKUs  = "退款SKU明细"
	SheetLedger      = "交易一览"
	SheetOrders      = "所有订单"
	SheetRefunds     = "所有退款"
	SheetFBMOrders   = "FBM 订单"
	SheetFBMRefunds  = "FBM 退款"
	SheetFBAOrders   = "FBA 订单"
	SheetFBARefunds  = "FBA 退款"
	SheetInvCredit   = "FBA库存赔偿"
	SheetAdjustments = "其他赔偿"
	SheetLiquidation = "清算费用"
	SheetChargebacks = "拒付退款"
	SheetStorageFees = "FBA仓储及入库服务费"
	SheetServiceFees = "服务费（不含广告）"
	SheetAdvertising = "广告费"
	SheetAdRefunds   = "广告退款"
)

var ledgerHeader = []any{
	"type", "fulfillment", "description", "sku", "quantity",
	"product sales", "shipping credits", "gift wrap credits",
	"promotional rebates", "selling fees", "fba fees",
	"other transaction fees", "other", "total",
}

// MonthlyReport bundles everything one workbook run writes.
type MonthlyReport struct {
	Statement  ledger.Statement
	SalesSKUs  []ledger.SKURollup
	RefundSKUs []ledger.SKURollup
	Records    []ledger.Record
	Buckets    ledger.Buckets
}

// WriteMonthly writes the full multi-sheet workbook to path. Styling is a
// separate pass (ApplyStyles) so a styling failure never loses the data.
func WriteMonthly(path string, report MonthlyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return fmt.Errorf("rename overview sheet: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetOverview, overviewRows(report.Statement)},
		{SheetSalesSKUs, rollupRows(report.SalesSKUs)},
		{SheetRefundSKUs, rollupRows(report.RefundSKUs)},
		{SheetLedger, recordRows(report.Records)},
		{SheetOrders, recordRows(report.Buckets.Orders)},
		{SheetRefunds, recordRows(report.Buckets.Refunds)},
		{SheetFBMOrders, recordRows(report.Buckets.FBMOrders)},
		{SheetFBMRefunds, recordRows(report.Buckets.FBMRefunds)},
		{SheetFBAOrders, recordRows(report.Buckets.FBAOrders)},
		{SheetFBARefunds, recordRows(report.Buckets.FBARefunds)},
		{SheetInvCredit, recordRows(report.Buckets.AdjustmentIncome)},
		{SheetAdjustments, recordRows(report.Buckets.AdjustmentExpense)},
		{SheetLiquidation, recordRows(report.Buckets.Liquidations)},
		{SheetChargebacks, recordRows(report.Buckets.ChargebackRefunds)},
		{SheetStorageFees, recordRows(report.Buckets.FBAInventoryFees)},
		{SheetServiceFees, recordRows(report.Buckets.FeesWithoutAdvertising)},
		{SheetAdvertising, recordRows(report.Buckets.Advertising)},
		{SheetAdRefunds, recordRows(report.Buckets.RefundForAdvertiser)},
	}

	for _, sheet := range sheets {
		if sheet.name != SheetOverview {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		for idx, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, idx+1)
			if err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sheet.name, idx+1, err)
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("write sheet %s row %d: %w", sheet.name, idx+1, err)
			}
		}
	}

	overviewIndex, err := f.GetSheetIndex(SheetOverview)
	if err != nil {
		return fmt.Errorf("locate overview sheet: %w", err)
	}
	f.SetActiveSheet(overviewIndex)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// overviewRows zips the income and expense sides into the nine-column
// statement table: EN label, CN label, amount and source note per side with a
// spacer column between. Both sides are padded to the same height and end in
// a totals row.
func overviewRows(stmt ledger.Statement) [][]any {
	bodyRows := len(stmt.Income)
	if len(stmt.Expense) > bodyRows {
		bodyRows = len(stmt.Expense)
	}
	// One spacer row between the longest side and the totals row.
	height := bodyRows + 2

	rows := make([][]any, 0, height+1)
	rows = append(rows, []any{
		"Income", "收入", "In金额（USD）", "In源表", "",
		"Expense", "支出", "Ex金额（USD）", "Ex源表",
	})
	for i := 0; i < height; i++ {
		row := []any{"", "", "", "", "", "", "", "", ""}
		if i < len(stmt.Income) {
			line := stmt.Income[i]
			row[0], row[1], row[2], row[3] = line.LabelEN, line.LabelCN, line.Amount, line.Source
		}
		if i < len(stmt.Expense) {
			line := stmt.Expense[i]
			row[5], row[6], row[7], row[8] = line.LabelEN, line.LabelCN, line.Amount, line.Source
		}
		if i == height-1 {
			row[0], row[1], row[2] = "Total_Income", "合计销售额", stmt.IncomeTotal
			row[5], row[6], row[7] = "Total_Expense", "合计费用", stmt.ExpenseTotal
		}
		rows = append(rows, row)
	}
	return rows
}

func rollupRows(rollup []ledger.SKURollup) [][]any {
	rows := make([][]any, 0, len(rollup)+1)
	rows = append(rows, []any{"sku", "quantity"})
	for _, entry := range rollup {
		rows = append(rows, []any{entry.SKU, entry.Quantity})
	}
	return rows
}

func recordRows(records []ledger.Record) [][]any {
	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, ledgerHeader)
	for _, r := range records {
		rows = append(rows, []any{
			r.Type, r.Fulfillment, r.Description, r.SKU, r.Quantity,
			r.ProductSales, r.ShippingCredits, r.GiftWrapCredits,
			r.PromotionalRebates, r.SellingFees, r.FBAFees,
			r.OtherTransactionFees, r.Other, r.Total,
		})
	}
	return rows
}
