// Package views holds the embedded HTML templates.
package views

import (
	"embed"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html layouts/*.html
var FS embed.FS

// New returns a template engine over the embedded templates. Stored image names are turned
// into links under uploadPrefix.
func New(uploadPrefix string) *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	prefix := strings.TrimRight(uploadPrefix, "/")
	engine.AddFunc("upload", func(name string) string {
		return prefix + "/" + name
	})
	return engine
}
