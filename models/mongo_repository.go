package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	categoriesCollection = "categories"
	productsCollection   = "products"
)

type categoryDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Image       string    `bson:"image,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type productDocument struct {
	ID            string               `bson:"_id"`
	Category      string               `bson:"category"`
	Name          string               `bson:"name"`
	Description   string               `bson:"description"`
	Price         primitive.Decimal128 `bson:"price"`
	NumberInStock int                  `bson:"number_in_stock"`
	Image         string               `bson:"image,omitempty"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func toCategoryDocument(c *Category) categoryDocument {
	return categoryDocument{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d categoryDocument) model() Category {
	return Category{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toProductDocument(p *Product) (productDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDocument{}, fmt.Errorf("encode price %s: %w", p.Price, err)
	}
	return productDocument{
		ID:            p.ID,
		Category:      p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         price,
		NumberInStock: p.NumberInStock,
		Image:         p.Image,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func (d productDocument) model() (Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return Product{}, fmt.Errorf("decode price of product %s: %w", d.ID, err)
	}
	return Product{
		ID:            d.ID,
		CategoryID:    d.Category,
		Name:          d.Name,
		Description:   d.Description,
		Price:         price,
		NumberInStock: d.NumberInStock,
		Image:         d.Image,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

// EnsureMongoIndexes creates the lookup indexes used by the mongo repositories.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(categoriesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create categories index: %w", err)
	}
	if _, err := db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create products indexes: %w", err)
	}
	return nil
}

type MongoCategoriesRepository struct {
	coll *mongo.Collection
}

func NewMongoCategoriesRepository(db *mongo.Database) *MongoCategoriesRepository {
	return &MongoCategoriesRepository{coll: db.Collection(categoriesCollection)}
}

func (r *MongoCategoriesRepository) ListCategories(ctx context.Context) ([]Category, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	categories := make([]Category, len(docs))
	for i, d := range docs {
		categories[i] = d.model()
	}
	return categories, nil
}

func (r *MongoCategoriesRepository) findOne(ctx context.Context, filter bson.M) (*Category, error) {
	var doc categoryDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category := doc.model()
	return &category, nil
}

func (r *MongoCategoriesRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoCategoriesRepository) FindCategoryByName(ctx context.Context, name string) (*Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *MongoCategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	category.AssignID()
	now := time.Now()
	category.CreatedAt, category.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, toCategoryDocument(category))
	return err
}

func (r *MongoCategoriesRepository) UpdateCategory(ctx context.Context, category *Category) error {
	category.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": category.ID}, bson.M{"$set": bson.M{
		"name":        category.Name,
		"description": category.Description,
		"image":       category.Image,
		"updated_at":  category.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *MongoCategoriesRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoCategoriesRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

type MongoProductsRepository struct {
	coll       *mongo.Collection
	categories *mongo.Collection
}

func NewMongoProductsRepository(db *mongo.Database) *MongoProductsRepository {
	return &MongoProductsRepository{
		coll:       db.Collection(productsCollection),
		categories: db.Collection(categoriesCollection),
	}
}

func (r *MongoProductsRepository) find(ctx context.Context, filter bson.M) ([]Product, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.model()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// ListProducts returns every product with its category attached.
func (r *MongoProductsRepository) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := r.find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.CategoryID)
	}
	cur, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	byID := make(map[string]Category, len(docs))
	for _, d := range docs {
		byID[d.ID] = d.model()
	}
	for i := range products {
		products[i].Category = byID[products[i].CategoryID]
	}
	return products, nil
}

func (r *MongoProductsRepository) ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	return r.find(ctx, bson.M{"category": categoryID})
}

func (r *MongoProductsRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	product, err := doc.model()
	if err != nil {
		return nil, err
	}
	var cat categoryDocument
	switch err := r.categories.FindOne(ctx, bson.M{"_id": product.CategoryID}).Decode(&cat); {
	case err == nil:
		product.Category = cat.model()
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	product.AssignID()
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now
	doc, err := toProductDocument(product)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return err
}

func (r *MongoProductsRepository) UpdateProduct(ctx context.Context, product *Product) error {
	product.UpdatedAt = time.Now()
	doc, err := toProductDocument(product)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": bson.M{
		"category":        doc.Category,
		"name":            doc.Name,
		"description":     doc.Description,
		"price":           doc.Price,
		"number_in_stock": doc.NumberInStock,
		"image":           doc.Image,
		"updated_at":      doc.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *MongoProductsRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoProductsRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
