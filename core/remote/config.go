package remote

import "time"

// Config holds loader-wide defaults applied to every remote.
type Config struct {
	// ManifestPath is the default stylesheet manifest path.
	ManifestPath string `mapstructure:"manifest_path" default:"assets/assets.json"`
	// FallbackStylesheetPath is the default stable stylesheet path.
	FallbackStylesheetPath string `mapstructure:"fallback_stylesheet_path" default:"assets/style.css"`
	// TimeoutMs is the default module load deadline in milliseconds.
	TimeoutMs int `mapstructure:"timeout_ms" default:"8000"`
	// ExportName is the module field holding the route sequence.
	ExportName string `mapstructure:"export_name" default:"RemoteRoutes"`
}

// Definition is a named remote as declared in configuration or storage.
type Definition struct {
	Name                   string `mapstructure:"name" json:"name"`
	EntryURL               string `mapstructure:"entry_url" json:"entry_url"`
	ExposedKey             string `mapstructure:"exposed_key" json:"exposed_key"`
	ManifestPath           string `mapstructure:"manifest_path" json:"manifest_path,omitempty"`
	FallbackStylesheetPath string `mapstructure:"fallback_stylesheet_path" json:"fallback_stylesheet_path,omitempty"`
	TimeoutMs              int    `mapstructure:"timeout_ms" json:"timeout_ms,omitempty"`
}

// Descriptor converts the definition, filling empty fields from cfg.
func (d Definition) Descriptor(cfg Config) RemoteDescriptor {
	desc := RemoteDescriptor{
		Name:                   d.Name,
		EntryURL:               d.EntryURL,
		ExposedKey:             d.ExposedKey,
		ManifestPath:           d.ManifestPath,
		FallbackStylesheetPath: d.FallbackStylesheetPath,
		Timeout:                time.Duration(d.TimeoutMs) * time.Millisecond,
	}
	if desc.ManifestPath == "" {
		desc.ManifestPath = cfg.ManifestPath
	}
	if desc.FallbackStylesheetPath == "" {
		desc.FallbackStylesheetPath = cfg.FallbackStylesheetPath
	}
	if desc.Timeout == 0 && cfg.TimeoutMs > 0 {
		desc.Timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
	}
	return desc.WithDefaults()
}
