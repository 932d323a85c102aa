package normalize

import (
	"encoding/json"
	"testing"

	"smartspend/internal/core"
)

func decode(t *testing.T, payload string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return m
}

func TestSnapshotNeverFaults(t *testing.T) {
	payloads := []map[string]any{
		nil,
		{},
		{"totalGasto": "not a number", "grafico": "nope", "compras": 42},
		{"grafico": []any{"junk", nil, 12.5}},
		{"compras": []any{map[string]any{"itens": "not a list"}}},
		{"feed": []any{nil, map[string]any{"id": "7"}}},
	}
	for i, raw := range payloads {
		s := Snapshot(raw)
		if s.Categories == nil {
			t.Fatalf("case %d: categories slice must not be nil", i)
		}
		if s.Purchases == nil {
			t.Fatalf("case %d: purchases slice must not be nil", i)
		}
		for j, p := range s.Purchases {
			if p.Items == nil {
				t.Fatalf("case %d purchase %d: items slice must not be nil", i, j)
			}
		}
	}
}

func TestSnapshotCoercionScenario(t *testing.T) {
	raw := decode(t, `{
		"totalGasto": 100,
		"grafico": [{"name": "Alimentos", "value": 100}],
		"compras": [{"id": 1, "total": "100", "itens": []}]
	}`)

	s := Snapshot(raw)

	if s.TotalSpend != 100 {
		t.Fatalf("expected total 100, got %v", s.TotalSpend)
	}
	if len(s.Categories) != 1 {
		t.Fatalf("expected one category, got %d", len(s.Categories))
	}
	if s.Categories[0].Color != core.FallbackCategoryColor {
		t.Fatalf("expected fallback color, got %q", s.Categories[0].Color)
	}
	if len(s.Purchases) != 1 {
		t.Fatalf("expected one purchase, got %d", len(s.Purchases))
	}
	p := s.Purchases[0]
	if p.ID != 1 {
		t.Fatalf("expected id 1, got %d", p.ID)
	}
	if p.Total != 100 {
		t.Fatalf("expected coerced total 100, got %v", p.Total)
	}
	if len(p.Items) != 0 || p.Items == nil {
		t.Fatalf("expected empty non-nil items, got %#v", p.Items)
	}
	if p.Merchant != core.FallbackMerchant {
		t.Fatalf("expected fallback merchant, got %q", p.Merchant)
	}
}

func TestSnapshotLegacyFeedKey(t *testing.T) {
	raw := decode(t, `{"feed": [{"id": 3, "mercado": "Padaria", "total": 12.5}]}`)
	s := Snapshot(raw)
	if len(s.Purchases) != 1 {
		t.Fatalf("expected purchase from legacy feed key, got %d", len(s.Purchases))
	}
	if s.Purchases[0].Merchant != "Padaria" {
		t.Fatalf("unexpected merchant %q", s.Purchases[0].Merchant)
	}

	// compras wins when both are present
	raw = decode(t, `{"compras": [{"id": 1}], "feed": [{"id": 2}, {"id": 3}]}`)
	s = Snapshot(raw)
	if len(s.Purchases) != 1 || s.Purchases[0].ID != 1 {
		t.Fatalf("expected compras to take precedence, got %#v", s.Purchases)
	}
}

func TestSnapshotLineItems(t *testing.T) {
	raw := decode(t, `{"compras": [{
		"id": 1,
		"mercado": "Supermercado ABC",
		"itens": [
			{"nome": "Arroz 5kg", "quantidade": 2, "preco": 25.90, "categoria": "Alimentos"},
			{"nome": "Refrigerante", "valor": 8.90}
		]
	}]}`)
	s := Snapshot(raw)
	items := s.Purchases[0].Items
	if len(items) != 2 {
		t.Fatalf("expected two items, got %d", len(items))
	}
	if items[0].Price != 25.90 || items[0].Quantity != 2 {
		t.Fatalf("unexpected first item %#v", items[0])
	}
	if items[1].Price != 8.90 {
		t.Fatalf("expected legacy valor key to fill price, got %#v", items[1])
	}
	if items[1].Category != "" {
		t.Fatalf("expected empty category, got %q", items[1].Category)
	}
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{float64(3.5), 3.5},
		{"100", 100},
		{"12,34", 12.34},
		{" 7 ", 7},
		{"abc", 0},
		{true, 1},
		{[]any{}, 0},
	}
	for i, tc := range cases {
		if got := toFloat(tc.in); got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}
