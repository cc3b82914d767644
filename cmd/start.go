package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remote-loader/core/loader"
	"remote-loader/core/logger"
	"remote-loader/core/middleware/auth"
	"remote-loader/core/middleware/rayid"
	"remote-loader/feature/health"
	"remote-loader/feature/remotes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "remote-loader/docs/swagger"
)

// @title Remote Loader API
// @version 1.0
// @description Loads federated remote features by URL and serves their routes and stylesheets.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the remote loader server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := bootstrap(false)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			AppName:               a.cfg.Server.Name,
			DisableStartupMessage: true,
		})

		// Public features first; auth below only guards routes registered after it.
		public := loader.NewManager()
		public.Register(health.NewFeature(a.cfg.Server.Name))

		mgr := loader.NewManager()
		mgr.Register(remotes.NewFeature(a.remotes))

		// RayID must be first to trace everything
		app.Use(rayid.New())

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

		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))
		if err := public.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))
		if !a.cfg.Server.AuthEnabled() {
			logg.Warn("API key not set, remote management routes are unprotected")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", a.cfg.Server.Port),
				zap.Int("remotes", len(a.cfg.Remotes)),
				zap.Bool("catalogue_db", a.store != nil),
			)
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(time.Duration(a.cfg.Server.ShutdownSeconds) * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
