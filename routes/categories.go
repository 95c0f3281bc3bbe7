package routes

import (
	"errors"

	"inventory/catalog"
	"inventory/models"
	"inventory/validation"

	"github.com/gofiber/fiber/v2"
)

// Category handlers
func (h *Handlers) categoryList(c *fiber.Ctx) error {
	categories, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("category_list", fiber.Map{
		"Title":      "Categories",
		"Categories": categories,
	})
}

func (h *Handlers) categoryDetail(c *fiber.Ctx) error {
	detail, err := h.catalog.CategoryDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render("category_detail", fiber.Map{
		"Title":    detail.Category.Name,
		"Category": detail.Category,
		"Products": detail.Products,
	})
}

func (h *Handlers) categoryCreateGet(c *fiber.Ctx) error {
	return c.Render("category_form", fiber.Map{
		"Title":  "Create Category",
		"Action": "/category/create",
		"Form":   validation.CategoryForm{},
	})
}

func (h *Handlers) categoryCreatePost(c *fiber.Ctx) error {
	var form validation.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return badForm()
	}

	in, errs := validation.ValidateCategory(form)
	if len(errs) > 0 {
		return c.Render("category_form", fiber.Map{
			"Title":  "Create Category",
			"Action": "/category/create",
			"Form":   form.Clean(),
			"Errors": errs,
		})
	}

	// An existing category with the same name is shown instead of a duplicate.
	category, _, err := h.catalog.CreateCategory(c.UserContext(), in, uploadedFile(c))
	if err != nil {
		return err
	}
	return c.Redirect(category.URL(), fiber.StatusSeeOther)
}

func (h *Handlers) categoryDeleteGet(c *fiber.Ctx) error {
	detail, err := h.catalog.CategoryDetail(c.UserContext(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return c.Redirect("/categories")
	}
	if err != nil {
		return err
	}
	return c.Render("category_delete", fiber.Map{
		"Title":    "Delete Category",
		"Category": detail.Category,
		"Products": detail.Products,
	})
}

func (h *Handlers) categoryDeletePost(c *fiber.Ctx) error {
	detail, err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, catalog.ErrCategoryInUse):
		return c.Render("category_delete", fiber.Map{
			"Title":    "Delete Category",
			"Category": detail.Category,
			"Products": detail.Products,
		})
	case errors.Is(err, models.ErrNotFound):
		// already gone
	case err != nil:
		return err
	}
	return c.Redirect("/categories", fiber.StatusSeeOther)
}

func (h *Handlers) categoryUpdateGet(c *fiber.Ctx) error {
	category, err := h.catalog.Category(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Render("category_form", fiber.Map{
		"Title":    "Update Category",
		"Action":   category.URL() + "/update",
		"Category": category,
		"Form": validation.CategoryForm{
			Name:        category.Name,
			Description: category.Description,
		},
	})
}

func (h *Handlers) categoryUpdatePost(c *fiber.Ctx) error {
	existing, err := h.catalog.Category(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	var form validation.CategoryForm
	if err := c.BodyParser(&form); err != nil {
		return badForm()
	}

	in, errs := validation.ValidateCategory(form)
	if len(errs) > 0 {
		return c.Render("category_form", fiber.Map{
			"Title":    "Update Category",
			"Action":   existing.URL() + "/update",
			"Category": existing,
			"Form":     form.Clean(),
			"Errors":   errs,
		})
	}

	updated, err := h.catalog.UpdateCategory(c.UserContext(), existing, in, uploadedFile(c))
	if err != nil {
		return err
	}
	return c.Redirect(updated.URL(), fiber.StatusSeeOther)
}
