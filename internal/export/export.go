// Package export renders catalog data as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

const (
	ProductsSheet = "Products"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var productHeader = []any{
	"ID", "Name", "License", "Category", "Rating", "Price", "Featured",
	"Downloads", "Version", "File Size", "Tags", "Demo URL", "Documentation URL",
	"Support Email", "Gallery Images", "Created At",
}

// WriteProducts writes one header row and one row per product as XLSX.
func WriteProducts(w io.Writer, products []models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(ProductsSheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	header := make([]any, len(productHeader))
	for i, h := range productHeader {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		price, _ := p.Price.Float64()
		row := []any{
			p.ID, p.Name, p.License, p.Category, p.Rating, price, p.IsFeatured,
			p.DownloadCount, p.Version, p.FileSize, p.Tags, p.DemoURL, p.DocumentationURL,
			p.SupportEmail, strings.Join(p.GalleryImages, "\n"), p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
