package http

import "smartspend/internal/core"

// Response shapes mirror the vocabulary the UI widgets already speak, so
// the surface stays a pass-through.

type categoryView struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type lineItemView struct {
	Name     string  `json:"nome"`
	Quantity float64 `json:"quantidade"`
	Price    float64 `json:"preco"`
	Category string  `json:"categoria,omitempty"`
}

type purchaseView struct {
	ID       int64          `json:"id"`
	Merchant string         `json:"mercado"`
	Date     string         `json:"data"`
	Total    float64        `json:"total"`
	Category string         `json:"categoria,omitempty"`
	Items    []lineItemView `json:"itens"`
}

type snapshotView struct {
	TotalSpend       float64        `json:"totalGasto"`
	EstimatedSavings float64        `json:"economiaEstimada"`
	PurchasesMonth   int            `json:"comprasMes"`
	Categories       []categoryView `json:"grafico"`
	Purchases        []purchaseView `json:"compras"`
}

type dashboardView struct {
	State    string       `json:"state"`
	Error    string       `json:"error,omitempty"`
	Snapshot snapshotView `json:"data"`
}

type selectedItemView struct {
	Name     string  `json:"nome"`
	Quantity float64 `json:"quantidade"`
	Value    float64 `json:"valor"`
	Category string  `json:"categoria"`
	Merchant string  `json:"mercado"`
	Date     string  `json:"data"`
}

type selectionView struct {
	Category   string             `json:"categoria"`
	Total      float64            `json:"total"`
	Percentage float64            `json:"percentual"`
	Items      []selectedItemView `json:"itens"`
}

func renderSnapshot(snap core.Snapshot) snapshotView {
	view := snapshotView{
		TotalSpend:       snap.TotalSpend,
		EstimatedSavings: snap.EstimatedSavings,
		PurchasesMonth:   snap.PurchasesMonth,
		Categories:       make([]categoryView, 0, len(snap.Categories)),
		Purchases:        make([]purchaseView, 0, len(snap.Purchases)),
	}
	for _, c := range snap.Categories {
		view.Categories = append(view.Categories, categoryView{Name: c.Name, Value: c.Value, Color: c.Color})
	}
	for _, p := range snap.Purchases {
		pv := purchaseView{
			ID:       p.ID,
			Merchant: p.Merchant,
			Date:     p.Date,
			Total:    p.Total,
			Category: p.Category,
			Items:    make([]lineItemView, 0, len(p.Items)),
		}
		for _, li := range p.Items {
			pv.Items = append(pv.Items, lineItemView{
				Name:     li.Name,
				Quantity: li.Quantity,
				Price:    li.Price,
				Category: li.Category,
			})
		}
		view.Purchases = append(view.Purchases, pv)
	}
	return view
}

func renderSelection(sel core.CategorySelection) selectionView {
	view := selectionView{
		Category:   sel.Category,
		Total:      sel.Total,
		Percentage: sel.Percentage,
		Items:      make([]selectedItemView, 0, len(sel.Items)),
	}
	for _, item := range sel.Items {
		view.Items = append(view.Items, selectedItemView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Value:    item.Value,
			Category: item.Category,
			Merchant: item.Merchant,
			Date:     item.Date,
		})
	}
	return view
}
