package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Demo is an in-memory stand-in for the backend, selected explicitly via
// configuration. It exists so the app can be explored without the remote
// API; it is never used as a silent fallback when the real backend fails.
type Demo struct {
	mu        sync.Mutex
	nextID    int64
	purchases []demoPurchase
}

type demoPurchase struct {
	id       int64
	merchant string
	date     string
	total    float64
	category string
	items    []demoItem
}

type demoItem struct {
	name     string
	quantity float64
	price    float64
	category string
}

// NewDemo seeds a Demo gateway with a representative dataset.
func NewDemo() *Demo {
	return &Demo{
		nextID: 6,
		purchases: []demoPurchase{
			{1, "Supermercado ABC", "25/01/2026", 245.80, "Alimentos", []demoItem{
				{"Arroz 5kg", 2, 25.90, "Alimentos"},
				{"Feijão 1kg", 3, 8.50, "Alimentos"},
				{"Óleo de Soja", 1, 12.90, "Alimentos"},
			}},
			{2, "Mercado Central", "24/01/2026", 189.50, "Bebidas", []demoItem{
				{"Refrigerante 2L", 4, 8.90, "Bebidas"},
				{"Água Mineral 20L", 2, 15.00, "Bebidas"},
			}},
			{3, "Loja de Limpeza", "23/01/2026", 156.75, "Limpeza", []demoItem{
				{"Detergente", 3, 4.50, "Limpeza"},
				{"Sabão em Pó", 2, 18.90, "Limpeza"},
			}},
			{4, "Farmácia", "22/01/2026", 98.30, "Higiene", []demoItem{
				{"Shampoo", 1, 25.90, "Higiene"},
				{"Sabonete", 4, 3.50, "Higiene"},
			}},
			{5, "Loja de Conveniência", "21/01/2026", 67.40, "Outros", nil},
		},
	}
}

var demoColors = map[string]string{
	"Alimentos": "#8B5CF6",
	"Bebidas":   "#3B82F6",
	"Limpeza":   "#10B981",
	"Higiene":   "#F59E0B",
	"Outros":    "#6B7280",
}

// FetchDashboard implements API. The payload is shaped exactly like the
// backend's wire format so it exercises the same normalization path.
func (d *Demo) FetchDashboard(_ context.Context) (map[string]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var total float64
	byCategory := make(map[string]float64)
	order := make([]string, 0, len(d.purchases))
	compras := make([]any, 0, len(d.purchases))

	for _, p := range d.purchases {
		total += p.total
		if _, seen := byCategory[p.category]; !seen {
			order = append(order, p.category)
		}
		byCategory[p.category] += p.total

		itens := make([]any, 0, len(p.items))
		for _, it := range p.items {
			itens = append(itens, map[string]any{
				"nome":       it.name,
				"quantidade": it.quantity,
				"preco":      it.price,
				"categoria":  it.category,
			})
		}
		compras = append(compras, map[string]any{
			"id":        p.id,
			"mercado":   p.merchant,
			"data":      p.date,
			"total":     p.total,
			"categoria": p.category,
			"itens":     itens,
		})
	}

	grafico := make([]any, 0, len(order))
	for _, name := range order {
		grafico = append(grafico, map[string]any{
			"name":  name,
			"value": byCategory[name],
			"color": demoColors[name],
		})
	}

	return map[string]any{
		"totalGasto":       total,
		"economiaEstimada": total * 0.144,
		"comprasMes":       len(d.purchases),
		"grafico":          grafico,
		"compras":          compras,
	}, nil
}

// UploadReceipt implements API by appending a simulated purchase.
func (d *Demo) UploadReceipt(_ context.Context, data []byte, filename, _ string) (UploadAck, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.purchases = append([]demoPurchase{{
		id:       id,
		merchant: "Mercado Simulado",
		date:     time.Now().Format("02/01/2006"),
		total:    float64(87 + id*13%120),
		category: "Alimentos",
	}}, d.purchases...)

	return UploadAck{
		Success:  true,
		Message:  "Nota processada com sucesso (demo)",
		Filename: filename,
		Size:     int64(len(data)),
		Uploaded: time.Now().Format(time.RFC3339),
	}, nil
}

// DeletePurchase implements API. Unknown ids fail the same way the real
// backend does, with a 404 HTTPError.
func (d *Demo) DeletePurchase(_ context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, p := range d.purchases {
		if p.id == id {
			d.purchases = append(d.purchases[:i], d.purchases[i+1:]...)
			return nil
		}
	}
	return &HTTPError{Status: http.StatusNotFound, Body: fmt.Sprintf("compra %d não encontrada", id)}
}

// Health implements API.
func (d *Demo) Health(_ context.Context) (HealthStatus, error) {
	return HealthStatus{Status: "healthy", Message: "demo backend"}, nil
}
