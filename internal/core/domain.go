package core

import "strings"

const (
	// FallbackCategoryName is assigned to category entries arriving without a name.
	FallbackCategoryName = "Outros"

	// FallbackCategoryColor is assigned to category entries arriving without a color.
	FallbackCategoryColor = "#8B5CF6"

	// FallbackMerchant is assigned to purchases arriving without a merchant name.
	FallbackMerchant = "Mercado Desconhecido"
)

type (
	// Snapshot is the complete view of dashboard data at a point in time.
	// It is owned by the dashboard synchronizer and replaced wholesale on
	// every successful fetch, never patched in place.
	Snapshot struct {
		TotalSpend       float64
		EstimatedSavings float64
		PurchasesMonth   int
		Categories       []Category
		Purchases        []Purchase
	}

	// Category is one slice of the spending breakdown. Insertion order is
	// display order; Name is unique within a snapshot.
	Category struct {
		Name  string
		Value float64
		Color string
	}

	// Purchase is a single parsed receipt as returned by the server.
	// Date is server-formatted and opaque to the client.
	Purchase struct {
		ID       int64
		Merchant string
		Date     string
		Total    float64
		Category string // empty when the server sent none
		Items    []LineItem
	}

	// LineItem is one itemized entry of a purchase.
	LineItem struct {
		Name     string
		Quantity float64 // 0 when the server sent none
		Price    float64
		Category string // empty when the server sent none
	}

	// SelectedItem is a line item annotated with the merchant and date of
	// its originating purchase, for detail-panel display.
	SelectedItem struct {
		Name     string
		Quantity float64
		Value    float64
		Category string
		Merchant string
		Date     string
	}

	// CategorySelection is the drill-down view for one selected category.
	// It is derived and ephemeral: recomputed on every selection, never
	// cached across snapshot replacement.
	CategorySelection struct {
		Category   string
		Total      float64
		Percentage float64
		Items      []SelectedItem
	}
)

// CategoryTotal returns the grand total across all category entries.
func (s Snapshot) CategoryTotal() float64 {
	var total float64
	for _, c := range s.Categories {
		total += c.Value
	}
	return total
}

// CategoryByName finds a category entry by case-insensitive name match.
func (s Snapshot) CategoryByName(name string) (Category, bool) {
	for _, c := range s.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryLabel returns the effective category label of a line item,
// lowercased for matching. Unlabelled items fall into the fallback bucket.
func (li LineItem) CategoryLabel() string {
	if strings.TrimSpace(li.Category) == "" {
		return strings.ToLower(FallbackCategoryName)
	}
	return strings.ToLower(li.Category)
}

// CategoryLabel returns the effective purchase-level category label,
// lowercased for matching.
func (p Purchase) CategoryLabel() string {
	if strings.TrimSpace(p.Category) == "" {
		return strings.ToLower(FallbackCategoryName)
	}
	return strings.ToLower(p.Category)
}
