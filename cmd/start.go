package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schemadiff/core/catalog"
	"schemadiff/core/config"
	"schemadiff/core/loader"
	"schemadiff/core/logger"
	"schemadiff/core/metrics"
	"schemadiff/core/middleware/auth"
	"schemadiff/core/middleware/rayid"
	"schemadiff/core/storage"

	"schemadiff/feature/compare"
	"schemadiff/feature/schema"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "schemadiff/docs/swagger"
)

// @title schemadiff API
// @version 1.0
// @description Structural diff of schema object graphs and stored schema snapshots.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the schemadiff server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Server.Validate(); err != nil {
			log.Fatalf("Invalid server configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Live schema features need a database; snapshot diffs work without one
		var db *gorm.DB
		if conn, err := catalog.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to catalog database", zap.String("host", cfg.Database.Host))
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		recorder, err := metrics.New(prometheus.DefaultRegisterer)
		if err != nil {
			logg.Fatal("Failed to register metrics", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		defaults := cfg.Compare.Options()
		mgr := loader.NewManager()
		mgr.Register(compare.NewFeature(defaults, logg, recorder))
		mgr.Register(schema.NewFeature(schema.NewService(
			db,
			time.Duration(cfg.Database.CacheTTLSeconds)*time.Second,
			store,
			cfg.Storage.Bucket,
			defaults,
			logg,
			recorder,
		)))

		// RayID first so every log line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			l.Info("Request completed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			)
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)
		if cfg.Server.Metrics {
			app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
		}

		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Skip:   []string{"/swagger", "/metrics"},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
