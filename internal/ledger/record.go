// Package ledger implements the monthly reconciliation engine: it loads the
// marketplace payment range report, classifies every transaction into named
// buckets and reduces them to the bilingual income/expense statement that has
// to match Amazon's settlement PDF line for line.
package ledger

// Transaction type vocabulary as it appears in the payment range report.
const (
	TypeOrder                     = "Order"
	TypeRefund                    = "Refund"
	TypeChargebackRefund          = "Chargeback Refund"
	TypeLiquidations              = "Liquidations"
	TypeAdjustment                = "Adjustment"
	TypeFeeAdjustment             = "Fee Adjustment"
	TypeServiceFee                = "Service Fee"
	TypeFBAInventoryReimbursement = "FBA Inventory Reimbursement"
	TypeFBAInventoryFee           = "FBA Inventory Fee"
	TypeAmazonFees                = "Amazon Fees"
	TypeDealFee                   = "Deal Fee"
	TypeDebt                      = "Debt"
	TypeFBATransactionFees        = "FBA Transaction fees"
)

// Fulfillment channel tags. Only meaningful on Order and Refund rows.
const (
	FulfillmentAmazon = "Amazon" // FBA
	FulfillmentSeller = "Seller" // FBM, merchant fulfilled
)

// Description values that drive the second-level classification. These encode
// point-in-time marketplace policy and must stay literal, not be generalized.
const (
	DescGeneralAdjustment     = "FBA Inventory Reimbursement - General Adjustment"
	DescCostOfAdvertising     = "Cost of Advertising"
	DescRefundForAdvertiser   = "Refund for Advertiser"
	DescSubscription          = "Subscription"
	DescFBAInboundPlacement   = "FBA Inbound Placement Service Fee"
	DescWeightDimensionChange = "FBA Weight/Dimension Change"

	PriceDiscountPrefix = "Price Discount"
)

// AGL ocean freight line items billed through Service Fee rows.
var aglSelectionDescriptions = []string{
	"FBA International Freight",
	"FBA International Freight Duties and Taxes Charge",
}

// Record is one normalized row of the payment range report. Numeric fields
// are zero-coerced at load time, so aggregation never sees a missing value.
type Record struct {
	Type        string
	Fulfillment string
	Description string
	SKU         string

	Quantity             int
	ProductSales         float64
	ShippingCredits      float64
	GiftWrapCredits      float64
	PromotionalRebates   float64
	SellingFees          float64
	FBAFees              float64
	OtherTransactionFees float64
	Other                float64
	Total                float64
}
