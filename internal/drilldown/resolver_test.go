package drilldown

import (
	"testing"

	"smartspend/internal/core"
)

func snapshot() core.Snapshot {
	return core.Snapshot{
		TotalSpend: 300,
		Categories: []core.Category{
			{Name: "Alimentos", Value: 200, Color: "#8B5CF6"},
			{Name: "Bebidas", Value: 100, Color: "#3B82F6"},
		},
		Purchases: []core.Purchase{
			{
				ID: 1, Merchant: "Supermercado ABC", Date: "25/01/2026",
				Total: 200, Category: "Alimentos",
				Items: []core.LineItem{
					{Name: "Arroz 5kg", Quantity: 2, Price: 120, Category: "Alimentos"},
					{Name: "Refrigerante 2L", Quantity: 1, Price: 80, Category: "Bebidas"},
				},
			},
			{
				ID: 2, Merchant: "Mercado Central", Date: "24/01/2026",
				Total: 100, Category: "Bebidas",
				Items: []core.LineItem{},
			},
		},
	}
}

func TestResolveCaseInsensitiveMatch(t *testing.T) {
	sel := Resolve("bebidas", snapshot())

	if sel.Category != "Bebidas" {
		t.Fatalf("expected canonical category name, got %q", sel.Category)
	}
	if len(sel.Items) != 2 {
		t.Fatalf("expected itemized match plus synthetic purchase, got %d items", len(sel.Items))
	}
	// Itemized match carries provenance from its purchase.
	if sel.Items[0].Name != "Refrigerante 2L" || sel.Items[0].Merchant != "Supermercado ABC" {
		t.Fatalf("unexpected first item %#v", sel.Items[0])
	}
	// The itemless purchase contributes a synthetic whole-purchase item.
	syn := sel.Items[1]
	if syn.Name != "Mercado Central" || syn.Value != 100 || syn.Quantity != 1 {
		t.Fatalf("unexpected synthetic item %#v", syn)
	}
	if sel.Total != 100 {
		t.Fatalf("aggregate must come from the chart entry, got %v", sel.Total)
	}
}

func TestResolveSyntheticOnlyScenario(t *testing.T) {
	snap := core.Snapshot{
		TotalSpend: 100,
		Categories: []core.Category{{Name: "Alimentos", Value: 100, Color: "#8B5CF6"}},
		Purchases: []core.Purchase{
			{ID: 1, Merchant: "Supermercado ABC", Total: 100, Category: "Alimentos", Items: []core.LineItem{}},
		},
	}

	sel := Resolve("Alimentos", snap)

	if sel.Total != 100 {
		t.Fatalf("expected aggregate 100, got %v", sel.Total)
	}
	if sel.Percentage != 100 {
		t.Fatalf("expected 100%%, got %v", sel.Percentage)
	}
	if len(sel.Items) != 1 || sel.Items[0].Name != "Supermercado ABC" {
		t.Fatalf("expected one synthetic item for the purchase, got %#v", sel.Items)
	}
}

func TestResolvePercentageBounds(t *testing.T) {
	sel := Resolve("Alimentos", snapshot())
	if sel.Percentage < 0 || sel.Percentage > 100 {
		t.Fatalf("percentage out of range: %v", sel.Percentage)
	}

	// Zero grand total is defined as 0%, not a division fault.
	sel = Resolve("Alimentos", core.Snapshot{
		Purchases: []core.Purchase{{Merchant: "X", Category: "Alimentos", Total: 0}},
	})
	if sel.Percentage != 0 {
		t.Fatalf("expected 0%% on zero total, got %v", sel.Percentage)
	}
}

func TestResolveUnlabelledItemsFallToOutros(t *testing.T) {
	snap := core.Snapshot{
		Categories: []core.Category{{Name: "Outros", Value: 30}},
		Purchases: []core.Purchase{
			{ID: 1, Merchant: "Banca", Total: 30, Items: []core.LineItem{
				{Name: "Revista", Price: 30},
			}},
		},
	}

	sel := Resolve("Outros", snap)
	if len(sel.Items) != 1 || sel.Items[0].Name != "Revista" {
		t.Fatalf("expected unlabelled item in Outros, got %#v", sel.Items)
	}
}

func TestResolveUnknownAndEmptyCategory(t *testing.T) {
	sel := Resolve("Viagens", snapshot())
	if len(sel.Items) != 0 || sel.Total != 0 || sel.Percentage != 0 {
		t.Fatalf("expected empty selection for unknown category, got %#v", sel)
	}
	if sel.Items == nil {
		t.Fatal("items slice must not be nil")
	}

	sel = Resolve("  ", snapshot())
	if len(sel.Items) != 0 {
		t.Fatalf("expected empty selection for blank category, got %#v", sel)
	}
}

func TestResolveRecomputesFromSnapshot(t *testing.T) {
	snap := snapshot()
	first := Resolve("Bebidas", snap)

	// Snapshot replacement: the category shrinks.
	snap.Purchases = snap.Purchases[:1]
	snap.Categories[1].Value = 80

	second := Resolve("Bebidas", snap)
	if second.Total != 80 {
		t.Fatalf("expected recomputed aggregate 80, got %v", second.Total)
	}
	if len(second.Items) >= len(first.Items)+1 {
		t.Fatal("selection must not accumulate across invocations")
	}
}
