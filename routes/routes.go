package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"inventory/catalog"
	"inventory/config"
	"inventory/models"
	"inventory/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const (
	// uploadField is the multipart field carrying the optional image.
	uploadField = "uploaded_file"
	uploadedKey = "uploadedFile"
	layout      = "layouts/main"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Config  *config.Config
	Catalog *catalog.Service
	Uploads uploads.Store
	Views   fiber.Views
	Log     *zap.Logger
}

type Handlers struct {
	catalog *catalog.Service
	log     *zap.Logger
}

// NewApp builds the fiber application with middleware, static uploads and all routes.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 d.Views,
		ViewsLayout:           layout,
		ErrorHandler:          errorHandler(d.Log),
		BodyLimit:             d.Config.BodyLimit(),
		ReadTimeout:           d.Config.GetReadTimeout(),
		WriteTimeout:          d.Config.GetWriteTimeout(),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: d.Config.Server.CORSOrigins}))

	// Serve uploaded images
	app.Static(d.Config.Uploads.URLPrefix, d.Config.Uploads.Dir)

	SetupRoutes(app, &Handlers{catalog: d.Catalog, log: d.Log}, d.Uploads)
	return app
}

func SetupRoutes(app *fiber.App, h *Handlers, store uploads.Store) {
	upload := captureUpload(store)

	app.Get("/", h.index)

	// Category routes. create must come before the routes that take an id.
	app.Get("/categories", h.categoryList)
	app.Get("/category/create", h.categoryCreateGet)
	app.Post("/category/create", upload, h.categoryCreatePost)
	app.Get("/category/:id/delete", h.categoryDeleteGet)
	app.Post("/category/:id/delete", h.categoryDeletePost)
	app.Get("/category/:id/update", h.categoryUpdateGet)
	app.Post("/category/:id/update", upload, h.categoryUpdatePost)
	app.Get("/category/:id", h.categoryDetail)

	// Product routes
	app.Get("/products", h.productList)
	app.Get("/product/create", h.productCreateGet)
	app.Post("/product/create", upload, h.productCreatePost)
	app.Get("/product/:id/delete", h.productDeleteGet)
	app.Post("/product/:id/delete", h.productDeletePost)
	app.Get("/product/:id/update", h.productUpdateGet)
	app.Post("/product/:id/update", upload, h.productUpdatePost)
	app.Get("/product/:id", h.productDetail)
}

func (h *Handlers) index(c *fiber.Ctx) error {
	counts, err := h.catalog.Counts(c.UserContext())
	if err != nil {
		h.log.Error("failed to count catalog", zap.Error(err))
		return c.Render("index", fiber.Map{
			"Title": "Inventory App Home",
			"Error": err.Error(),
		})
	}
	return c.Render("index", fiber.Map{
		"Title":  "Groceries in minutes",
		"Counts": counts,
	})
}

// captureUpload stores the optional image of a multipart submission before the handler
// runs and leaves its filename in the request locals.
func captureUpload(store uploads.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
			return c.Next()
		}
		file, err := c.FormFile(uploadField)
		if err != nil || file.Size == 0 {
			// no file attached
			return c.Next()
		}
		filename, err := store.Save(file)
		if err != nil {
			return fmt.Errorf("failed to save upload: %w", err)
		}
		c.Locals(uploadedKey, filename)
		return c.Next()
	}
}

func uploadedFile(c *fiber.Ctx) string {
	filename, _ := c.Locals(uploadedKey).(string)
	return filename
}

// errorHandler renders the generic error page. Missing records are 404, fiber errors keep
// their code and everything else is a 500.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong"

		var fe *fiber.Error
		switch {
		case errors.Is(err, models.ErrNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		rerr := c.Status(code).Render("error", fiber.Map{
			"Title":   http.StatusText(code),
			"Status":  code,
			"Message": message,
		})
		if rerr != nil {
			log.Error("failed to render error page", zap.Error(rerr))
			return c.Status(code).SendString(message)
		}
		return nil
	}
}

func badForm() error {
	return fiber.NewError(fiber.StatusBadRequest, "Failed to parse request body")
}
