package ledger

import "sort"

// SKURollup is one row of the per-SKU quantity detail sheets.
type SKURollup struct {
	SKU      string
	Quantity int
}

// RollupQuantities groups records by SKU summing quantities, sorted by
// quantity descending. Ties break by SKU so repeated runs emit identical
// sheets.
func RollupQuantities(records []Record) []SKURollup {
	bySKU := make(map[string]int)
	for _, r := range records {
		bySKU[r.SKU] += r.Quantity
	}

	rollup := make([]SKURollup, 0, len(bySKU))
	for sku, quantity := range bySKU {
		rollup = append(rollup, SKURollup{SKU: sku, Quantity: quantity})
	}
	sort.Slice(rollup, func(i, j int) bool {
		if rollup[i].Quantity != rollup[j].Quantity {
			return rollup[i].Quantity > rollup[j].Quantity
		}
		return rollup[i].SKU < rollup[j].SKU
	})
	return rollup
}
