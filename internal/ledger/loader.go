package ledger

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The marketplace export prefixes the CSV with a fixed informational preamble
// before the real header row.
const preambleLines = 7

var requiredColumns = []string{
	"type",
	"fulfillment",
	"description",
	"sku",
	"quantity",
	"product sales",
	"shipping credits",
	"gift wrap credits",
	"promotional rebates",
	"selling fees",
	"fba fees",
	"other transaction fees",
	"other",
	"total",
}

// Load reads a payment range report CSV, skips the export preamble and
// returns normalized records. Missing numeric cells become 0 and quantity is
// coerced to a whole integer; a missing required column fails fast with an
// error naming the column.
func Load(r io.Reader) ([]Record, error) {
	buffered := bufio.NewReader(r)
	for i := 0; i < preambleLines; i++ {
		if _, err := buffered.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("payment range report is truncated: expected %d preamble lines", preambleLines)
			}
			return nil, fmt.Errorf("read preamble: %w", err)
		}
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("payment range report has no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	colMap := mapColumns(header)
	for _, column := range requiredColumns {
		if _, ok := colMap[column]; !ok {
			return nil, fmt.Errorf("missing required column: %s", column)
		}
	}

	records := make([]Record, 0, 256)
	for line := 1; ; line++ {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		quantity, err := parseQuantity(readCell(cells, colMap["quantity"]))
		if err != nil {
			return nil, fmt.Errorf("row %d invalid quantity: %w", line, err)
		}

		record := Record{
			Type:        strings.TrimSpace(readCell(cells, colMap["type"])),
			Fulfillment: strings.TrimSpace(readCell(cells, colMap["fulfillment"])),
			Description: strings.TrimSpace(readCell(cells, colMap["description"])),
			SKU:         strings.TrimSpace(readCell(cells, colMap["sku"])),
			Quantity:    quantity,
		}

		numeric := []struct {
			column string
			target *float64
		}{
			{"product sales", &record.ProductSales},
			{"shipping credits", &record.ShippingCredits},
			{"gift wrap credits", &record.GiftWrapCredits},
			{"promotional rebates", &record.PromotionalRebates},
			{"selling fees", &record.SellingFees},
			{"fba fees", &record.FBAFees},
			{"other transaction fees", &record.OtherTransactionFees},
			{"other", &record.Other},
			{"total", &record.Total},
		}
		for _, field := range numeric {
			value, err := parseAmount(readCell(cells, colMap[field.column]))
			if err != nil {
				return nil, fmt.Errorf("row %d invalid %s: %w", line, field.column, err)
			}
			*field.target = value
		}

		records = append(records, record)
	}

	return records, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int, len(header))
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		if _, exists := mapped[normalized]; !exists {
			mapped[normalized] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.Trim(value, `"`)
	value = strings.ToLower(value)
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseAmount reads a currency cell. Empty cells coerce to 0; the export
// formats numbers with thousands separators.
func parseAmount(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return parsed, nil
}

// parseQuantity coerces the quantity cell to a whole integer. Fractional
// values are truncated, empty cells become 0; quantities are never rejected.
func parseQuantity(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return int(parsed), nil
}
