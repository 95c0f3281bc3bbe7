package validation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryForm is the raw category submission.
type CategoryForm struct {
	Name        string `form:"name" validate:"required,utf8,nomarkup"`
	Description string `form:"description" validate:"required,utf8,nomarkup"`
}

// Clean returns a copy with every field trimmed.
func (f CategoryForm) Clean() CategoryForm {
	return CategoryForm{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
	}
}

// Category is a validated category submission.
type Category struct {
	Name        string
	Description string
}

// ValidateCategory cleans and checks f.
func ValidateCategory(f CategoryForm) (Category, FieldErrors) {
	f = f.Clean()
	if errs := check(f); len(errs) > 0 {
		return Category{}, errs
	}
	return Category{Name: f.Name, Description: f.Description}, nil
}

// ProductForm is the raw product submission. Numeric fields arrive as text.
type ProductForm struct {
	Category      string `form:"category" validate:"required,utf8,nomarkup"`
	Name          string `form:"name" validate:"required,utf8,nomarkup"`
	Description   string `form:"description" validate:"required,utf8,nomarkup"`
	Price         string `form:"price" validate:"required,price,money"`
	NumberInStock string `form:"number_in_stock" validate:"required,stock"`
}

// Clean returns a copy with every field trimmed.
func (f ProductForm) Clean() ProductForm {
	return ProductForm{
		Category:      strings.TrimSpace(f.Category),
		Name:          strings.TrimSpace(f.Name),
		Description:   strings.TrimSpace(f.Description),
		Price:         strings.TrimSpace(f.Price),
		NumberInStock: strings.TrimSpace(f.NumberInStock),
	}
}

// Product is a validated product submission with typed numeric fields.
type Product struct {
	CategoryID    string
	Name          string
	Description   string
	Price         decimal.Decimal
	NumberInStock int
}

// ValidateProduct cleans and checks f.
func ValidateProduct(f ProductForm) (Product, FieldErrors) {
	f = f.Clean()
	if errs := check(f); len(errs) > 0 {
		return Product{}, errs
	}
	// both parse: the price and stock rules accepted them
	price, _ := decimal.NewFromString(f.Price)
	stock, _ := strconv.Atoi(f.NumberInStock)
	return Product{
		CategoryID:    f.Category,
		Name:          f.Name,
		Description:   f.Description,
		Price:         price,
		NumberInStock: stock,
	}, nil
}
