package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"devserver/core/config"
	"devserver/core/loader"
	"devserver/core/logger"
	"devserver/core/middleware/rayid"
	"devserver/core/middleware/secheaders"
	"devserver/core/server"
	"devserver/feature/static"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveFlags struct {
	host     string
	port     int
	root     string
	isolated bool
	coep     string
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve static files with COOP/COEP and WASM support",
	Long: `Starts the development HTTP server. The requested port is tried first;
if it is taken, the next ports are probed in ascending order before falling
back to an OS-assigned one.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		applyServeFlags(cmd, &cfg.Server)

		if !cfg.Server.IsValidEmbedderPolicy() {
			log.Fatalf("Invalid embedder policy %q (want %s or %s)",
				cfg.Server.EmbedderPolicy, server.EmbedderRequireCorp, server.EmbedderCredentialless)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		root, err := filepath.Abs(cfg.Server.Root)
		if err != nil {
			logg.Fatal("Failed to resolve root directory", zap.Error(err))
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			logg.Fatal("Root is not a directory", zap.String("root", root))
		}

		// 3. Acquire the listening socket before anything else so a bind
		// problem surfaces immediately.
		binder := server.NewBinder()
		res, err := binder.Bind(context.Background(), server.BindRequest{
			Host:        cfg.Server.Host,
			Port:        cfg.Server.Port,
			SearchWidth: server.DefaultSearchWidth,
		})
		if err != nil {
			if errors.Is(err, server.ErrExhausted) {
				logg.Error("Failed to bind any port. Is another server running?", zap.Error(err))
				_ = logg.Sync()
				os.Exit(2)
			}
			logg.Fatal("Failed to bind", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Security / isolation headers on every response
		app.Use(secheaders.New(secheaders.Config{
			Isolated:       cfg.Server.Isolated,
			EmbedderPolicy: cfg.Server.EmbedderPolicy,
		}))

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(static.NewFeature(root, logg))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server on the pre-bound listener
		go func() {
			logg.Info("Serving directory",
				zap.String("dir", root),
				zap.String("url", fmt.Sprintf("http://%s:%d", cfg.Server.Host, res.Port)),
				zap.Bool("isolated", cfg.Server.Isolated),
			)
			if err := app.Listener(res.Listener); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// applyServeFlags overrides loaded configuration with flags the user set
// explicitly, so precedence is flags > environment > .env > defaults.
func applyServeFlags(cmd *cobra.Command, cfg *server.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Host = serveFlags.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = serveFlags.port
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = serveFlags.root
	}
	if cmd.Flags().Changed("isolated") {
		cfg.Isolated = serveFlags.isolated
	}
	if cmd.Flags().Changed("coep") {
		cfg.EmbedderPolicy = serveFlags.coep
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.host, "host", "127.0.0.1", "interface to bind to")
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 8000, "port to listen on (nearby ports are tried when taken)")
	serveCmd.Flags().StringVar(&serveFlags.root, "root", ".", "directory to serve")
	serveCmd.Flags().BoolVar(&serveFlags.isolated, "isolated", false, "enable COOP/COEP (crossOriginIsolated) headers")
	serveCmd.Flags().StringVar(&serveFlags.coep, "coep", server.EmbedderCredentialless, "COEP policy when isolated (require-corp, credentialless)")
	RootCmd.AddCommand(serveCmd)
}
