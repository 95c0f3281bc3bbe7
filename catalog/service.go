// Package catalog orchestrates the category and product stores: concurrent joins, the
// duplicate-name rule, the category delete guard and image preservation on update.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"inventory/models"
	"inventory/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrCategoryInUse is returned when deleting a category that still has products.
var ErrCategoryInUse = errors.New("category has products")

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
	CountCategories(ctx context.Context) (int64, error)
}

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	CountProducts(ctx context.Context) (int64, error)
}

// Counts is what the home page shows.
type Counts struct {
	Categories int64
	Products   int64
}

// CategoryDetail is a category together with the products that reference it.
type CategoryDetail struct {
	Category *models.Category
	Products []models.Product
}

// ProductEdit is a product together with every category it could be moved to.
type ProductEdit struct {
	Product    *models.Product
	Categories []models.Category
}

type Service struct {
	categories CategoryStore
	products   ProductStore
	log        *zap.Logger
}

func NewService(categories CategoryStore, products ProductStore, log *zap.Logger) *Service {
	return &Service{
		categories: categories,
		products:   products,
		log:        log,
	}
}

// Counts returns the number of categories and products.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.categories.CountCategories(gctx)
		counts.Categories = n
		return err
	})
	g.Go(func() error {
		n, err := s.products.CountProducts(gctx)
		counts.Products = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *Service) Category(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

// CategoryDetail loads the category and its products concurrently.
func (s *Service) CategoryDetail(ctx context.Context, id string) (*CategoryDetail, error) {
	var detail CategoryDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.categories.GetCategory(gctx, id)
		detail.Category = c
		return err
	})
	g.Go(func() error {
		p, err := s.products.ListProductsByCategory(gctx, id)
		detail.Products = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateCategory stores a new category unless one with the same name exists, in which case
// the existing one is returned with created == false.
func (s *Service) CreateCategory(ctx context.Context, in validation.Category, image string) (category *models.Category, created bool, err error) {
	existing, err := s.categories.FindCategoryByName(ctx, in.Name)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, models.ErrCategoryNotFound):
		return nil, false, fmt.Errorf("failed to check category name: %w", err)
	}

	category = &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Image:       image,
	}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, false, fmt.Errorf("failed to create category: %w", err)
	}
	s.log.Info("category created", zap.String("id", category.ID), zap.String("name", category.Name))
	return category, true, nil
}

// UpdateCategory overwrites existing with in. An empty image keeps the stored one.
func (s *Service) UpdateCategory(ctx context.Context, existing *models.Category, in validation.Category, image string) (*models.Category, error) {
	updated := *existing
	updated.Name = in.Name
	updated.Description = in.Description
	if image != "" {
		updated.Image = image
	}
	if err := s.categories.UpdateCategory(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	s.log.Info("category updated", zap.String("id", updated.ID))
	return &updated, nil
}

// DeleteCategory removes the category when no product references it. Otherwise it returns
// the detail together with ErrCategoryInUse.
func (s *Service) DeleteCategory(ctx context.Context, id string) (*CategoryDetail, error) {
	detail, err := s.CategoryDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Products) > 0 {
		s.log.Info("category delete refused",
			zap.String("id", id), zap.Int("products", len(detail.Products)))
		return detail, ErrCategoryInUse
	}
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}
	s.log.Info("category deleted", zap.String("id", id))
	return detail, nil
}

func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *Service) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetProduct(ctx, id)
}

// ProductEdit loads the product and the category choices concurrently.
func (s *Service) ProductEdit(ctx context.Context, id string) (*ProductEdit, error) {
	var edit ProductEdit
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.products.GetProduct(gctx, id)
		edit.Product = p
		return err
	})
	g.Go(func() error {
		c, err := s.categories.ListCategories(gctx)
		edit.Categories = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &edit, nil
}

// CreateProduct stores a new product. The category must exist.
func (s *Service) CreateProduct(ctx context.Context, in validation.Product, image string) (*models.Product, error) {
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	product := &models.Product{
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		NumberInStock: in.NumberInStock,
		Image:         image,
	}
	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.log.Info("product created", zap.String("id", product.ID), zap.String("category", product.CategoryID))
	return product, nil
}

// UpdateProduct overwrites edit.Product with in. An empty image keeps the stored one.
func (s *Service) UpdateProduct(ctx context.Context, edit *ProductEdit, in validation.Product, image string) (*models.Product, error) {
	if !hasCategory(edit.Categories, in.CategoryID) {
		return nil, unknownCategory()
	}
	updated := *edit.Product
	updated.CategoryID = in.CategoryID
	updated.Category = models.Category{}
	updated.Name = in.Name
	updated.Description = in.Description
	updated.Price = in.Price
	updated.NumberInStock = in.NumberInStock
	if image != "" {
		updated.Image = image
	}
	if err := s.products.UpdateProduct(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.log.Info("product updated", zap.String("id", updated.ID))
	return &updated, nil
}

// DeleteProduct removes the product; products have no dependents.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.log.Info("product deleted", zap.String("id", id))
	return nil
}

func (s *Service) requireCategory(ctx context.Context, id string) error {
	_, err := s.categories.GetCategory(ctx, id)
	if errors.Is(err, models.ErrCategoryNotFound) {
		return unknownCategory()
	}
	return err
}

func hasCategory(categories []models.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func unknownCategory() error {
	return validation.Field("category", "Category does not exist.")
}
