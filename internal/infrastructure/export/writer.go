package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/skinsift/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Output table headers. Column names and order are part of the external
// contract; downstream spreadsheets key on them.
var (
	productHeader = []string{
		"Product Name", "Brand Name", "Product Description", "Price",
		"List Price", "Score", "Product Images", "Product ID", "Source URL",
		"Badge", "Rank Name", "Ingredients", "Size/Volume", "Skin Concern",
		"Product Line Name", "Barcode (EAN/UPC)",
	}
	groupedHeader = []string{
		"Key Ingredient", "Product Rank", "Product Name", "Brand",
		"Price (USD)", "Product Score",
	}
)

const (
	productsSheet = "Products"
	groupedSheet  = "Key Ingredients"
)

// WriteProductsCSV writes the flat product table, one row per product.
func WriteProductsCSV(path string, products []domain.FlatProduct) error {
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, productHeader)
	for _, p := range products {
		rows = append(rows, productRow(p))
	}
	return writeCSV(path, rows)
}

// WriteGroupedCSV writes the grouped/ranked table, one row per
// (ingredient, rank) pair.
func WriteGroupedCSV(path string, groupRows []domain.GroupRow) error {
	rows := make([][]string, 0, len(groupRows)+1)
	rows = append(rows, groupedHeader)
	for _, r := range groupRows {
		rows = append(rows, groupedRow(r))
	}
	return writeCSV(path, rows)
}

// WriteWorkbook writes both tables into a single XLSX workbook with a
// Products sheet and a Key Ingredients sheet.
func WriteWorkbook(path string, products []domain.FlatProduct, groupRows []domain.GroupRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), productsSheet)
	if err := writeSheetRow(f, productsSheet, 1, toCells(productHeader)); err != nil {
		return err
	}
	for i, p := range products {
		if err := writeSheetRow(f, productsSheet, i+2, toCells(productRow(p))); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(groupedSheet); err != nil {
		return err
	}
	if err := writeSheetRow(f, groupedSheet, 1, toCells(groupedHeader)); err != nil {
		return err
	}
	for i, r := range groupRows {
		row := []any{r.KeyIngredient, r.Rank, r.ProductName, r.Brand, r.PriceUSD, r.ProductScore}
		if err := writeSheetRow(f, groupedSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func productRow(p domain.FlatProduct) []string {
	return []string{
		p.Name, p.Brand, p.Description, p.Price.String(),
		p.ListPrice.String(), p.Score.String(), p.Images, p.ProductID,
		p.SourceURL, p.Badge, p.RankName, p.Ingredients, p.SizeVolume,
		p.SkinConcern, p.ProductLine, p.Barcode,
	}
}

func groupedRow(r domain.GroupRow) []string {
	return []string{
		r.KeyIngredient, strconv.Itoa(r.Rank), r.ProductName, r.Brand,
		r.PriceUSD, strconv.Itoa(r.ProductScore),
	}
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
