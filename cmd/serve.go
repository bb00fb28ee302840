package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"node-manager/core/config"
	"node-manager/core/database"
	"node-manager/core/etcd"
	"node-manager/core/loader"
	"node-manager/core/logger"
	"node-manager/core/middleware/auth"
	"node-manager/core/middleware/rayid"
	"node-manager/core/reconcile"

	"node-manager/feature/history"
	"node-manager/feature/nodes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "node-manager/docs/swagger"
)

// @title Node Manager API
// @version 1.0
// @description API for the GPU node inventory.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the node manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// The audit trail only exists when a database is reachable.
		var db *gorm.DB
		if !cfg.Database.IsValidDriver() {
			logg.Warn("Unsupported database driver, audit trail disabled", zap.String("driver", cfg.Database.Driver))
		} else if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to audit database")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Store Client
		store, err := etcd.NewClient(cfg.Etcd)
		if err != nil {
			logg.Fatal("Failed to create store client", zap.Error(err))
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		// History first so its recorder can observe the nodes feature.
		hist := history.NewFeature(db, logg)
		mgr.Register(hist)

		reporter := reconcile.Reporter(reconcile.NewZapReporter(logg))
		if hist.IsEnabled() {
			reporter = reconcile.NewMultiReporter(reporter, hist.Recorder())
		}
		cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
		mgr.Register(nodes.NewFeature(store, logg, reporter, cacheTTL))

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
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
