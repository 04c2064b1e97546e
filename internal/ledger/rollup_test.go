package ledger

import "testing"

func TestRollupQuantities(t *testing.T) {
	t.Run("groups and sorts by quantity descending", func(t *testing.T) {
		records := []Record{
			{SKU: "A1", Quantity: 2},
			{SKU: "B1", Quantity: 5},
			{SKU: "A1", Quantity: 1},
		}
		got := RollupQuantities(records)
		want := []SKURollup{{SKU: "B1", Quantity: 5}, {SKU: "A1", Quantity: 3}}
		if len(got) != len(want) {
			t.Fatalf("rows = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("quantity ties order by SKU", func(t *testing.T) {
		records := []Record{
			{SKU: "Z9", Quantity: 4},
			{SKU: "A1", Quantity: 4},
			{SKU: "M5", Quantity: 4},
		}
		got := RollupQuantities(records)
		if got[0].SKU != "A1" || got[1].SKU != "M5" || got[2].SKU != "Z9" {
			t.Errorf("tie-break order = %v", got)
		}
	})

	t.Run("empty input yields no rows", func(t *testing.T) {
		if got := RollupQuantities(nil); len(got) != 0 {
			t.Errorf("rows = %d, want 0", len(got))
		}
	})
}
