// Package normalize converts raw dashboard payloads into the internal
// view model. The conversion is total: no input shape, however malformed,
// fails it. Every field is defaulted independently, so one bad field never
// poisons the rest of the snapshot.
package normalize

import (
	"strconv"
	"strings"

	"smartspend/internal/core"
)

// Snapshot builds a structurally valid core.Snapshot from an untrusted
// payload as decoded from JSON. A nil or empty payload yields an all-zero
// snapshot with empty (non-nil) slices.
func Snapshot(raw map[string]any) core.Snapshot {
	s := core.Snapshot{
		TotalSpend:       toFloat(raw["totalGasto"]),
		EstimatedSavings: toFloat(raw["economiaEstimada"]),
		PurchasesMonth:   int(toFloat(raw["comprasMes"])),
		Categories:       categories(raw["grafico"]),
	}

	// The purchase list historically arrived under either key.
	feed, ok := raw["compras"].([]any)
	if !ok {
		feed, _ = raw["feed"].([]any)
	}
	s.Purchases = purchases(feed)

	return s
}

func categories(raw any) []core.Category {
	entries, _ := raw.([]any)
	out := make([]core.Category, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		c := core.Category{
			Name:  toString(m["name"]),
			Value: toFloat(m["value"]),
			Color: toString(m["color"]),
		}
		if strings.TrimSpace(c.Name) == "" {
			c.Name = core.FallbackCategoryName
		}
		if strings.TrimSpace(c.Color) == "" {
			c.Color = core.FallbackCategoryColor
		}
		out = append(out, c)
	}
	return out
}

func purchases(entries []any) []core.Purchase {
	out := make([]core.Purchase, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		p := core.Purchase{
			ID:       toInt(m["id"]),
			Merchant: toString(m["mercado"]),
			Date:     toString(m["data"]),
			Total:    toFloat(m["total"]),
			Category: toString(m["categoria"]),
			Items:    lineItems(m["itens"]),
		}
		if strings.TrimSpace(p.Merchant) == "" {
			p.Merchant = core.FallbackMerchant
		}
		out = append(out, p)
	}
	return out
}

func lineItems(raw any) []core.LineItem {
	entries, _ := raw.([]any)
	out := make([]core.LineItem, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		li := core.LineItem{
			Name:     toString(m["nome"]),
			Quantity: toFloat(m["quantidade"]),
			Category: toString(m["categoria"]),
		}
		// Item price arrives as unit price in newer payloads and as a
		// line value in older ones.
		li.Price = toFloat(m["preco"])
		if li.Price == 0 {
			li.Price = toFloat(m["valor"])
		}
		out = append(out, li)
	}
	return out
}

// toFloat coerces any JSON value to a float64, defaulting to 0. Strings
// holding numbers are accepted because the backend has been seen sending
// totals as "100".
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(n, ",", ".")), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func toInt(v any) int64 {
	return int64(toFloat(v))
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// Identifiers occasionally arrive numeric.
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
