package config

import (
	"errors"
	"reflect"
	"strings"

	"remote-loader/core/database"
	"remote-loader/core/fetch"
	"remote-loader/core/jsloader"
	"remote-loader/core/logger"
	"remote-loader/core/remote"
	"remote-loader/core/server"
	"remote-loader/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the bucket remotes are published to.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the remote catalogue database.
	Database database.Config `mapstructure:"database"`
	// Loader holds defaults applied to every remote.
	Loader remote.Config `mapstructure:"loader"`
	// Fetch holds configuration for the HTTP client talking to remotes.
	Fetch fetch.Config `mapstructure:"fetch"`
	// Script holds configuration for entry script evaluation.
	Script jsloader.Config `mapstructure:"script"`
	// Remotes are the remotes declared in config.yaml.
	Remotes []remote.Definition `mapstructure:"remotes"`
}

// LoadConfig loads configuration from an optional config.yaml, environment
// variables and the .env file found in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		switch field.Type.Kind() {
		case reflect.Struct:
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		case reflect.Slice:
			// Lists only come from config.yaml.
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
