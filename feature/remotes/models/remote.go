package models

import (
	"time"

	"remote-loader/core/remote"
)

// Remote is a row of the 'remotes' table.
type Remote struct {
	ID                     uint      `gorm:"column:id;primaryKey"`
	Name                   string    `gorm:"column:name;size:128;uniqueIndex;not null"`
	EntryURL               string    `gorm:"column:entry_url;size:2048;not null"`
	ExposedKey             string    `gorm:"column:exposed_key;size:255;not null"`
	ManifestPath           string    `gorm:"column:manifest_path;size:512"`
	FallbackStylesheetPath string    `gorm:"column:fallback_stylesheet_path;size:512"`
	TimeoutMs              int       `gorm:"column:timeout_ms"`
	CreatedAt              time.Time `gorm:"column:created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name used by Remote to `remotes`.
func (Remote) TableName() string {
	return "remotes"
}

// Definition converts the row to a remote definition.
func (r Remote) Definition() remote.Definition {
	return remote.Definition{
		Name:                   r.Name,
		EntryURL:               r.EntryURL,
		ExposedKey:             r.ExposedKey,
		ManifestPath:           r.ManifestPath,
		FallbackStylesheetPath: r.FallbackStylesheetPath,
		TimeoutMs:              r.TimeoutMs,
	}
}

// FromDefinition builds a row from a remote definition.
func FromDefinition(d remote.Definition) Remote {
	return Remote{
		Name:                   d.Name,
		EntryURL:               d.EntryURL,
		ExposedKey:             d.ExposedKey,
		ManifestPath:           d.ManifestPath,
		FallbackStylesheetPath: d.FallbackStylesheetPath,
		TimeoutMs:              d.TimeoutMs,
	}
}
