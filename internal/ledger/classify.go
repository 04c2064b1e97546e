package ledger

import "strings"

// Buckets holds every named classification subset the aggregator and the
// audit sheets consume. Each bucket is an independent filter over the full
// ledger; the description-level buckets are nested inside their type bucket.
type Buckets struct {
	// Type-level buckets.
	Orders             []Record
	Refunds            []Record
	Blank              []Record // rows whose type cell is empty
	ChargebackRefunds  []Record
	Liquidations       []Record
	Adjustments        []Record
	FeeAdjustments     []Record
	ServiceFees        []Record
	FBAInventoryFees   []Record
	AmazonFees         []Record
	DealFees           []Record
	Debts              []Record
	FBATransactionFees []Record

	// Fulfillment split inside Order and Refund.
	FBAOrders  []Record
	FBMOrders  []Record
	FBARefunds []Record
	FBMRefunds []Record

	// Adjustment split: only the general-adjustment description is a
	// deduction, every other adjustment counts as income credit.
	AdjustmentIncome  []Record
	AdjustmentExpense []Record

	// Service Fee description splits.
	Advertising         []Record
	Subscriptions       []Record
	FBAInboundPlacement []Record
	AGLSelection        []Record
	RefundForAdvertiser []Record
	// Service Fee rows that are neither advertising cost nor advertiser
	// refunds; feeds the statement's service-fee line.
	ServiceFeesWithoutAds []Record

	// Fee Adjustment rows credited back after a weight/dimension remeasure.
	WeightDimensionChange []Record

	// Blank-type rows whose description starts with "Price Discount".
	PriceDiscounts []Record

	// Amazon Fees + Service Fee excluding advertising, written to one audit
	// sheet only; never part of the statement totals.
	FeesWithoutAdvertising []Record
}

// Classify derives every bucket from the normalized ledger. Pure function:
// the same ledger always produces the same buckets.
func Classify(records []Record) Buckets {
	b := Buckets{
		Orders:             filterType(records, TypeOrder),
		Refunds:            filterType(records, TypeRefund),
		Blank:              filterType(records, ""),
		ChargebackRefunds:  filterType(records, TypeChargebackRefund),
		Liquidations:       filterType(records, TypeLiquidations),
		Adjustments:        filterType(records, TypeAdjustment),
		FeeAdjustments:     filterType(records, TypeFeeAdjustment),
		ServiceFees:        filterType(records, TypeServiceFee),
		FBAInventoryFees:   filterType(records, TypeFBAInventoryFee),
		AmazonFees:         filterType(records, TypeAmazonFees),
		DealFees:           filterType(records, TypeDealFee),
		Debts:              filterType(records, TypeDebt),
		FBATransactionFees: filterType(records, TypeFBATransactionFees),
	}

	b.FBAOrders = filterFulfillment(b.Orders, FulfillmentAmazon)
	b.FBMOrders = filterFulfillment(b.Orders, FulfillmentSeller)
	b.FBARefunds = filterFulfillment(b.Refunds, FulfillmentAmazon)
	b.FBMRefunds = filterFulfillment(b.Refunds, FulfillmentSeller)

	b.AdjustmentIncome = filter(b.Adjustments, func(r Record) bool {
		return r.Description != DescGeneralAdjustment
	})
	b.AdjustmentExpense = filter(b.Adjustments, func(r Record) bool {
		return r.Description == DescGeneralAdjustment
	})

	b.Advertising = filterDescription(b.ServiceFees, DescCostOfAdvertising)
	b.Subscriptions = filterDescription(b.ServiceFees, DescSubscription)
	b.FBAInboundPlacement = filterDescription(b.ServiceFees, DescFBAInboundPlacement)
	b.AGLSelection = filter(b.ServiceFees, func(r Record) bool {
		for _, desc := range aglSelectionDescriptions {
			if r.Description == desc {
				return true
			}
		}
		return false
	})
	b.RefundForAdvertiser = filterDescription(b.ServiceFees, DescRefundForAdvertiser)
	b.ServiceFeesWithoutAds = filter(b.ServiceFees, excludesAdvertising)

	b.WeightDimensionChange = filterDescription(b.FeeAdjustments, DescWeightDimensionChange)

	b.PriceDiscounts = filter(b.Blank, func(r Record) bool {
		return strings.HasPrefix(r.Description, PriceDiscountPrefix)
	})

	b.FeesWithoutAdvertising = filter(records, func(r Record) bool {
		if r.Type != TypeAmazonFees && r.Type != TypeServiceFee {
			return false
		}
		return excludesAdvertising(r)
	})

	return b
}

func excludesAdvertising(r Record) bool {
	return r.Description != DescCostOfAdvertising && r.Description != DescRefundForAdvertiser
}

func filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0)
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterType(records []Record, transactionType string) []Record {
	return filter(records, func(r Record) bool { return r.Type == transactionType })
}

func filterFulfillment(records []Record, channel string) []Record {
	return filter(records, func(r Record) bool { return r.Fulfillment == channel })
}

func filterDescription(records []Record, description string) []Record {
	return filter(records, func(r Record) bool { return r.Description == description })
}
