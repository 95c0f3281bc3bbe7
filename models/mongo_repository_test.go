package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// --- Helpers ---

func newMockMongo(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func mustDecimal128(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()
	d, err := primitive.ParseDecimal128(s)
	require.NoError(t, err)
	return d
}

func categoryDoc(id, name string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "name", Value: name}, {Key: "description", Value: name + " aisle"}}
}

func productDoc(t *testing.T, id, categoryID, name, price string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "category", Value: categoryID},
		{Key: "name", Value: name},
		{Key: "description", Value: name + " description"},
		{Key: "price", Value: mustDecimal128(t, price)},
		{Key: "number_in_stock", Value: 3},
	}
}

func cursor(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

// --- Tests ---

func TestMongoCategoriesRepository(t *testing.T) {
	ctx := context.Background()
	mt := newMockMongo(t)

	mt.Run("list is sorted by name", func(mt *mtest.T) {
		repo := NewMongoCategoriesRepository(mt.DB)
		mt.AddMockResponses(cursor("test.categories",
			categoryDoc("c2", "Bakery"),
			categoryDoc("c1", "Dairy"),
		))

		list, err := repo.ListCategories(ctx)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "Bakery", list[0].Name)
		assert.Equal(mt, "c1", list[1].ID)
		assert.Equal(mt, "Dairy aisle", list[1].Description)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, "categories", started.Command.Lookup("find").StringValue())
		assert.Equal(mt, int64(1), started.Command.Lookup("sort", "name").AsInt64())
	})

	mt.Run("get maps a missing document to not found", func(mt *mtest.T) {
		repo := NewMongoCategoriesRepository(mt.DB)
		mt.AddMockResponses(cursor("test.categories"))

		_, err := repo.GetCategory(ctx, "missing")
		assert.ErrorIs(mt, err, ErrCategoryNotFound)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find by name", func(mt *mtest.T) {
		repo := NewMongoCategoriesRepository(mt.DB)
		mt.AddMockResponses(cursor("test.categories", categoryDoc("c1", "Dairy")))

		got, err := repo.FindCategoryByName(ctx, "Dairy")
		require.NoError(mt, err)
		assert.Equal(mt, "c1", got.ID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "Dairy", started.Command.Lookup("filter", "name").StringValue())
	})

	mt.Run("create assigns an id", func(mt *mtest.T) {
		repo := NewMongoCategoriesRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		c := &Category{Name: "Produce", Description: "Fruit"}
		require.NoError(mt, repo.CreateCategory(ctx, c))
		assert.Len(mt, c.ID, 36)
		assert.False(mt, c.CreatedAt.IsZero())

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		docs, err := started.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, c.ID, docs[0].Document().Lookup("_id").StringValue())
	})

	mt.Run("update of a missing category", func(mt *mtest.T) {
		repo := NewMongoCategoriesRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.UpdateCategory(ctx, &Category{ID: "missing", Name: "Dairy"})
		assert.ErrorIs(mt, err, ErrCategoryNotFound)
	})

	mt.Run("update of an existing category", func(mt *mtest.T) {
		repo := NewMongoCategoriesRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, repo.UpdateCategory(ctx, &Category{ID: "c1", Name: "Dairy"}))
	})

	mt.Run("count", func(mt *mtest.T) {
		repo := NewMongoCategoriesRepository(mt.DB)
		mt.AddMockResponses(cursor("test.categories", bson.D{{Key: "n", Value: 2}}))

		n, err := repo.CountCategories(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})
}

func TestMongoProductsRepository(t *testing.T) {
	ctx := context.Background()
	mt := newMockMongo(t)

	mt.Run("list joins categories", func(mt *mtest.T) {
		repo := NewMongoProductsRepository(mt.DB)
		mt.AddMockResponses(
			cursor("test.products",
				productDoc(mt.T, "p1", "c1", "Apples", "0.45"),
				productDoc(mt.T, "p2", "c2", "Bread", "3.20"),
			),
			cursor("test.categories",
				categoryDoc("c1", "Produce"),
				categoryDoc("c2", "Bakery"),
			),
		)

		list, err := repo.ListProducts(ctx)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "Apples", list[0].Name)
		assert.Equal(mt, "Produce", list[0].Category.Name)
		assert.Equal(mt, "Bakery", list[1].Category.Name)
		assert.Equal(mt, "3.20", list[1].PriceLabel())

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)
		assert.Equal(mt, "products", events[0].Command.Lookup("find").StringValue())
		assert.Equal(mt, int64(1), events[0].Command.Lookup("sort", "name").AsInt64())

		assert.Equal(mt, "categories", events[1].Command.Lookup("find").StringValue())
		ids, err := events[1].Command.Lookup("filter", "_id", "$in").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, ids, 2)
		assert.Equal(mt, "c1", ids[0].StringValue())
		assert.Equal(mt, "c2", ids[1].StringValue())
	})

	mt.Run("list by category filters on the category field", func(mt *mtest.T) {
		repo := NewMongoProductsRepository(mt.DB)
		mt.AddMockResponses(cursor("test.products", productDoc(mt.T, "p1", "c1", "Apples", "0.45")))

		list, err := repo.ListProductsByCategory(ctx, "c1")
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, "c1", list[0].CategoryID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "c1", started.Command.Lookup("filter", "category").StringValue())
	})

	mt.Run("get attaches the category", func(mt *mtest.T) {
		repo := NewMongoProductsRepository(mt.DB)
		mt.AddMockResponses(
			cursor("test.products", productDoc(mt.T, "p1", "c1", "Milk", "1.25")),
			cursor("test.categories", categoryDoc("c1", "Dairy")),
		)

		p, err := repo.GetProduct(ctx, "p1")
		require.NoError(mt, err)
		assert.Equal(mt, "Milk", p.Name)
		assert.Equal(mt, "Dairy", p.Category.Name)
		assert.Equal(mt, "1.25", p.PriceLabel())
		assert.Equal(mt, 3, p.NumberInStock)
	})

	mt.Run("get maps a missing document to not found", func(mt *mtest.T) {
		repo := NewMongoProductsRepository(mt.DB)
		mt.AddMockResponses(cursor("test.products"))

		_, err := repo.GetProduct(ctx, "missing")
		assert.ErrorIs(mt, err, ErrProductNotFound)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update of a missing product", func(mt *mtest.T) {
		repo := NewMongoProductsRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		p := &Product{ID: "missing", CategoryID: "c1", Name: "Milk"}
		assert.ErrorIs(mt, repo.UpdateProduct(ctx, p), ErrProductNotFound)
	})

	mt.Run("command errors are passed through", func(mt *mtest.T) {
		repo := NewMongoProductsRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad filter",
		}))

		_, err := repo.ListProductsByCategory(ctx, "c1")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
	})
}
