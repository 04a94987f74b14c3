//go:build ignore

// Generates sample inventory inputs: two CSV stores and one parquet store
// sharing the same columns.
//
//	go run testdata/generate.go
package main

import (
	"encoding/csv"
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type StockItem struct {
	SKU       string `parquet:"sku"`
	Product   string `parquet:"product"`
	Category  string `parquet:"category"`
	Quantity  string `parquet:"quantity"`
	UnitPrice string `parquet:"unit_price"`
	Received  string `parquet:"received"`
}

var header = []string{"sku", "product", "category", "quantity", "unit_price", "received"}

func (s StockItem) record() []string {
	return []string{s.SKU, s.Product, s.Category, s.Quantity, s.UnitPrice, s.Received}
}

func writeCSV(name string, items []StockItem) {
	f, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		log.Fatal(err)
	}
	for _, item := range items {
		if err := w.Write(item.record()); err != nil {
			log.Fatal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
	log.Printf("Generated %s with %d items", name, len(items))
}

func main() {
	writeCSV("store_north.csv", []StockItem{
		{"N-001", "Hammer", "tools", "10", "12.50", "2024-01-05"},
		{"N-002", "Screwdriver Set", "tools", "25", "18.00", "2024-01-12"},
		{"N-003", "Rubber Ball", "toys", "40", "2.75", "2024-02-01"},
		{"N-004", "Garden Rake", "garden", "", "21.00", "2024-02-14"},
	})

	writeCSV("store_south.csv", []StockItem{
		{"S-001", "Hammer", "tools", "4", "12.00", "2024-01-20"},
		{"S-002", "Puzzle", "toys", "12", "9.99", "2024-03-03"},
		{"S-003", "Watering Can", "garden", "7", "14.25", "2024-03-15"},
	})

	file, err := os.Create("store_east.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[StockItem](file)
	if _, err := writer.Write([]StockItem{
		{"E-001", "Wrench", "tools", "15", "7.50", "2024-02-28"},
		{"E-002", "Kite", "toys", "9", "11.00", "2024-04-01"},
	}); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Println("Generated store_east.parquet with 2 items")
}
