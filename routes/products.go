package routes

import (
	"errors"
	"strconv"

	"inventory/models"
	"inventory/validation"

	"github.com/gofiber/fiber/v2"
)

// Product handlers
func (h *Handlers) productList(c *fiber.Ctx) error {
	products, err := h.catalog.Products(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("product_list", fiber.Map{
		"Title":    "Products",
		"Products": products,
	})
}

func (h *Handlers) productDetail(c *fiber.Ctx) error {
	product, err := h.catalog.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render("product_detail", fiber.Map{
		"Title":   product.Name,
		"Product": product,
	})
}

func (h *Handlers) productCreateGet(c *fiber.Ctx) error {
	categories, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("product_form", fiber.Map{
		"Title":      "Create Product",
		"Action":     "/product/create",
		"Categories": categories,
		"Form":       validation.ProductForm{},
	})
}

func (h *Handlers) productCreatePost(c *fiber.Ctx) error {
	categories, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return err
	}

	var form validation.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badForm()
	}

	rerender := func(errs validation.FieldErrors) error {
		return c.Render("product_form", fiber.Map{
			"Title":      "Create Product",
			"Action":     "/product/create",
			"Categories": categories,
			"Form":       form.Clean(),
			"Errors":     errs,
		})
	}

	in, errs := validation.ValidateProduct(form)
	if len(errs) > 0 {
		return rerender(errs)
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), in, uploadedFile(c))
	if errs, ok := asFieldErrors(err); ok {
		return rerender(errs)
	}
	if err != nil {
		return err
	}
	return c.Redirect(product.URL(), fiber.StatusSeeOther)
}

func (h *Handlers) productDeleteGet(c *fiber.Ctx) error {
	product, err := h.catalog.Product(c.UserContext(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return c.Redirect("/products")
	}
	if err != nil {
		return err
	}
	return c.Render("product_delete", fiber.Map{
		"Title":   "Delete Product",
		"Product": product,
	})
}

func (h *Handlers) productDeletePost(c *fiber.Ctx) error {
	id := c.FormValue("productid")
	if id == "" {
		id = c.Params("id")
	}
	if err := h.catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *Handlers) productUpdateGet(c *fiber.Ctx) error {
	edit, err := h.catalog.ProductEdit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	p := edit.Product
	return c.Render("product_form", fiber.Map{
		"Title":      "Update Product",
		"Action":     p.URL() + "/update",
		"Product":    p,
		"Categories": edit.Categories,
		"Form": validation.ProductForm{
			Category:      p.CategoryID,
			Name:          p.Name,
			Description:   p.Description,
			Price:         p.Price.String(),
			NumberInStock: strconv.Itoa(p.NumberInStock),
		},
	})
}

func (h *Handlers) productUpdatePost(c *fiber.Ctx) error {
	edit, err := h.catalog.ProductEdit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	var form validation.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return badForm()
	}

	rerender := func(errs validation.FieldErrors) error {
		return c.Render("product_form", fiber.Map{
			"Title":      "Update Product",
			"Action":     edit.Product.URL() + "/update",
			"Product":    edit.Product,
			"Categories": edit.Categories,
			"Form":       form.Clean(),
			"Errors":     errs,
		})
	}

	in, errs := validation.ValidateProduct(form)
	if len(errs) > 0 {
		return rerender(errs)
	}

	updated, err := h.catalog.UpdateProduct(c.UserContext(), edit, in, uploadedFile(c))
	if errs, ok := asFieldErrors(err); ok {
		return rerender(errs)
	}
	if err != nil {
		return err
	}
	return c.Redirect(updated.URL(), fiber.StatusSeeOther)
}

func asFieldErrors(err error) (validation.FieldErrors, bool) {
	var errs validation.FieldErrors
	if err != nil && errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
