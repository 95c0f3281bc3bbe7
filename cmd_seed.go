package main

import (
	"context"
	"fmt"

	"inventory/catalog"
	"inventory/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo categories and products",
	Long: `Creates a few demo categories and products. Categories that already exist
are reused, so running seed twice only adds products again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStores(cmd.Context(), cfg.Database, true, logger)
		if err != nil {
			return err
		}
		defer st.close()

		svc := catalog.NewService(st.categories, st.products, logger)
		n, err := seed(cmd.Context(), svc)
		if err != nil {
			return err
		}
		logger.Info("seed complete", zap.Int("products", n))
		return nil
	},
}

type seedProduct struct {
	name, description, price string
	stock                    int
}

var demoCatalog = []struct {
	category validation.Category
	products []seedProduct
}{
	{
		category: validation.Category{Name: "Dairy", Description: "Milk, cheese and yoghurt"},
		products: []seedProduct{
			{"Whole milk", "One litre of fresh whole milk", "1.19", 40},
			{"Cheddar", "Mature cheddar, 200g", "2.75", 12},
		},
	},
	{
		category: validation.Category{Name: "Bakery", Description: "Bread and pastries baked daily"},
		products: []seedProduct{
			{"Sourdough loaf", "Slow fermented sourdough", "3.20", 8},
		},
	},
	{
		category: validation.Category{Name: "Produce", Description: "Fruit and vegetables"},
		products: []seedProduct{
			{"Apples", "Crisp apples, sold each", "0.45", 120},
			{"Carrots", "Bunch of carrots", "0.99", 30},
		},
	},
}

func seed(ctx context.Context, svc *catalog.Service) (int, error) {
	n := 0
	for _, entry := range demoCatalog {
		category, _, err := svc.CreateCategory(ctx, entry.category, "")
		if err != nil {
			return n, fmt.Errorf("seed category %q: %w", entry.category.Name, err)
		}
		for _, p := range entry.products {
			_, err := svc.CreateProduct(ctx, validation.Product{
				CategoryID:    category.ID,
				Name:          p.name,
				Description:   p.description,
				Price:         decimal.RequireFromString(p.price),
				NumberInStock: p.stock,
			}, "")
			if err != nil {
				return n, fmt.Errorf("seed product %q: %w", p.name, err)
			}
			n++
		}
	}
	return n, nil
}
