// Package health exposes the liveness endpoint.
package health

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the body of GET /health.
type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Feature implements the loader.Feature interface.
type Feature struct {
	service string
}

// NewFeature creates the health feature reporting service as its name.
func NewFeature(service string) *Feature {
	return &Feature{service: service}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "health"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/health", f.HandleHealth)
	return nil
}

// HandleHealth reports that the service is up.
// @Summary Health Check
// @Description Liveness check.
// @Tags health
// @Produce json
// @Success 200 {object} Response "Service is up"
// @Router /health [get]
func (f *Feature) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(Response{Status: "ok", Service: f.service})
}
