package static

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"devserver/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for static files.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the static file catch-all route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/*", h.HandleFile)
}

// HandleFile serves the file or directory listing for the request path.
func (h *Handler) HandleFile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	res, err := h.service.Resolve(c.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).SendString("404 Not Found")
		}
		l.Error("Failed to resolve path", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("500 Internal Server Error")
	}

	if res.IsDir {
		// Relative links in the listing only work with a trailing slash.
		if !strings.HasSuffix(c.Path(), "/") {
			return c.Redirect(c.Path()+"/", fiber.StatusMovedPermanently)
		}
		page, err := h.service.Listing(c.Path(), res.Path)
		if err != nil {
			l.Error("Failed to render listing", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).SendString("500 Internal Server Error")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(page)
	}

	f, err := os.Open(res.Path)
	if err != nil {
		l.Error("Failed to open file", zap.String("path", res.Path), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("500 Internal Server Error")
	}

	c.Set(fiber.HeaderContentType, h.service.ContentType(res.Path))
	return c.SendStream(f, streamSize(res.Size))
}

// streamSize converts a file size to the int fasthttp expects, falling back
// to -1 (chunked transfer) when the size would overflow a 32-bit int.
func streamSize(n int64) int {
	if int64(int(n)) != n {
		return -1
	}
	return int(n)
}
