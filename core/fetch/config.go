package fetch

// Config holds configuration for the remote HTTP client.
type Config struct {
	// TimeoutSeconds bounds connection setup and time to first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// MaxBodyBytes caps the size of a downloaded manifest or script.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" default:"5242880"`
}
