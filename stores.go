package main

import (
	"context"
	"time"

	"inventory/catalog"
	"inventory/config"
	"inventory/db"
	"inventory/models"

	"go.uber.org/zap"
)

// stores holds the repositories for the configured driver and how to release them.
type stores struct {
	categories catalog.CategoryStore
	products   catalog.ProductStore
	close      func()
}

// openStores connects to the configured database. When migrate is set the schema (or the
// mongo indexes) is brought up to date first.
func openStores(ctx context.Context, dc config.DatabaseConfig, migrate bool, log *zap.Logger) (*stores, error) {
	if dc.IsSQL() {
		gdb, err := db.Open(dc, log)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := db.Migrate(gdb); err != nil {
				_ = db.Close(gdb)
				return nil, err
			}
		}
		return &stores{
			categories: models.NewCategoriesRepository(gdb),
			products:   models.NewProductsRepository(gdb),
			close: func() {
				if err := db.Close(gdb); err != nil {
					log.Warn("database close failed", zap.Error(err))
				}
			},
		}, nil
	}

	client, database, err := db.OpenMongo(ctx, dc, log)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := models.EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}
	return &stores{
		categories: models.NewMongoCategoriesRepository(database),
		products:   models.NewMongoProductsRepository(database),
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Warn("mongo disconnect failed", zap.Error(err))
			}
		},
	}, nil
}
