package secheaders

import "github.com/gofiber/fiber/v2"

// ContentSecurityPolicy is the CSP sent with every response. It mirrors the
// production _headers file and is intentionally the same whether or not
// isolation is enabled; callers wanting a different policy change the
// literal.
const ContentSecurityPolicy = "default-src 'self'; " +
	"connect-src 'self' https://*.supabase.co; " +
	"img-src 'self' data:; " +
	"script-src 'self' 'unsafe-eval'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"worker-src 'self' blob:; " +
	"frame-ancestors 'none'"

// Config selects which headers Compute emits. It is immutable for the
// lifetime of a server run.
type Config struct {
	// Isolated enables the cross-origin isolation headers (COOP/COEP/CORP),
	// a prerequisite for SharedArrayBuffer and high-resolution timers.
	Isolated bool
	// EmbedderPolicy is the Cross-Origin-Embedder-Policy value used when
	// Isolated is set (require-corp, credentialless).
	EmbedderPolicy string
}

// Header is a single response header as an ordered name/value pair.
type Header struct {
	Name  string
	Value string
}

// Compute returns the response headers for the configuration, in the order
// they should be written. It is pure: the same config always yields the
// same set, and nothing is cached between calls.
func Compute(cfg Config) []Header {
	headers := make([]Header, 0, 5)

	// Always good hygiene
	headers = append(headers, Header{"X-Content-Type-Options", "nosniff"})

	if cfg.Isolated {
		headers = append(headers,
			Header{"Cross-Origin-Opener-Policy", "same-origin"},
			Header{"Cross-Origin-Embedder-Policy", cfg.EmbedderPolicy},
			// Mark same-origin assets as embeddable
			Header{"Cross-Origin-Resource-Policy", "same-origin"},
		)
	}

	headers = append(headers, Header{"Content-Security-Policy", ContentSecurityPolicy})
	return headers
}

// New returns a middleware that attaches the computed header set to every
// response, error responses included, before the handler runs.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, h := range Compute(cfg) {
			c.Set(h.Name, h.Value)
		}
		return c.Next()
	}
}
