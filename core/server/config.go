package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen. If taken, nearby
	// ports are tried (see Binder).
	Port int `mapstructure:"port" default:"8000"`
	// Root is the directory static files are served from.
	Root string `mapstructure:"root" default:"."`
	// Isolated enables the cross-origin isolation headers (COOP/COEP/CORP).
	Isolated bool `mapstructure:"isolated" default:"false"`
	// EmbedderPolicy is the Cross-Origin-Embedder-Policy value used when
	// Isolated is enabled (require-corp, credentialless).
	EmbedderPolicy string `mapstructure:"embedder_policy" default:"credentialless"`
}

const (
	EmbedderRequireCorp    = "require-corp"
	EmbedderCredentialless = "credentialless"
)

// IsValidEmbedderPolicy checks if the configured embedder policy is valid.
func (c Config) IsValidEmbedderPolicy() bool {
	switch c.EmbedderPolicy {
	case EmbedderRequireCorp, EmbedderCredentialless:
		return true
	default:
		return false
	}
}
