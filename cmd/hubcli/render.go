package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ZawadulAmanHredoy/export-import-hub/internal/api"
	"github.com/ZawadulAmanHredoy/export-import-hub/internal/view"
)

func renderProducts(w io.Writer, products []api.Product) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Origin", "Rating", "Price", "Available"})
	for _, p := range products {
		t.AppendRow(table.Row{p.ID, p.Name, p.OriginCountry, ratingCell(p.Rating), fmt.Sprintf("%.2f", p.Price), p.AvailableQty})
	}
	t.Render()
}

func renderImports(w io.Writer, records []api.ImportRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Product", "Origin", "Price", "Imported Qty"})
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, r.Product.Name, r.Product.OriginCountry, fmt.Sprintf("%.2f", r.Product.Price), r.Quantity})
	}
	t.Render()
}

func renderProductDetail(w io.Writer, p *api.Product) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Origin", p.OriginCountry},
		{"Rating", ratingCell(p.Rating)},
		{"Price", fmt.Sprintf("%.2f", p.Price)},
		{"Available Quantity", p.AvailableQty},
		{"Image", p.ImageURL},
	})
	t.Render()
}

func renderStats(w io.Writer, data *view.HomeData) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Products", data.Stats.TotalProducts},
		{"Total stock", data.Stats.TotalStock},
		{"Average rating", fmt.Sprintf("%.1f", data.Stats.AvgRating)},
		{"Origin countries", data.Stats.OriginCount},
	})
	t.Render()
}

func renderOrigins(w io.Writer, origins []view.OriginCount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Origin", "Products"})
	for _, o := range origins {
		t.AppendRow(table.Row{o.Origin, o.Count})
	}
	t.Render()
}

func ratingCell(rating float64) string {
	if rating <= 0 {
		return "unrated"
	}
	return fmt.Sprintf("%.1f", rating)
}
