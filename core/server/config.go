package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to manage remotes. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// Name is reported by the health endpoint and the Fiber app.
	Name string `mapstructure:"name" default:"remote-loader"`
	// ShutdownSeconds bounds graceful shutdown.
	ShutdownSeconds int `mapstructure:"shutdown_seconds" default:"10"`
}

// Address returns the listen address for Fiber.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// AuthEnabled reports whether management routes require an API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
