// Package drilldown computes the detail view for a selected spending
// category from the current snapshot, without a server round trip. The
// selection is recomputed in full on every invocation; nothing is cached
// across snapshot replacement.
package drilldown

import (
	"strings"

	"smartspend/internal/core"
)

// Resolve gathers the line items belonging to the selected category and
// their aggregate share of total spending.
//
// A line item matches when its own category label equals the selection
// case-insensitively; unlabelled items fall into the "outros" bucket. When
// a purchase carries no matching itemized lines but its purchase-level
// category matches, a single synthetic item stands in for the whole
// purchase, named after the merchant.
func Resolve(category string, snap core.Snapshot) core.CategorySelection {
	target := strings.ToLower(strings.TrimSpace(category))

	sel := core.CategorySelection{
		Category: category,
		Items:    []core.SelectedItem{},
	}
	if target == "" {
		return sel
	}

	var matchedSum float64
	for _, p := range snap.Purchases {
		matched := false
		for _, li := range p.Items {
			if li.CategoryLabel() != target {
				continue
			}
			matched = true
			sel.Items = append(sel.Items, core.SelectedItem{
				Name:     li.Name,
				Quantity: li.Quantity,
				Value:    li.Price,
				Category: li.Category,
				Merchant: p.Merchant,
				Date:     p.Date,
			})
			matchedSum += li.Price
		}

		if !matched && p.CategoryLabel() == target {
			sel.Items = append(sel.Items, core.SelectedItem{
				Name:     p.Merchant,
				Quantity: 1,
				Value:    p.Total,
				Category: p.Category,
				Merchant: p.Merchant,
				Date:     p.Date,
			})
			matchedSum += p.Total
		}
	}

	// The aggregate comes from the chart entry when the snapshot has one;
	// otherwise the matched items carry the value themselves.
	if entry, ok := snap.CategoryByName(target); ok {
		sel.Category = entry.Name
		sel.Total = entry.Value
	} else {
		sel.Total = matchedSum
	}

	if grand := snap.CategoryTotal(); grand > 0 {
		sel.Percentage = sel.Total / grand * 100
	}

	return sel
}
