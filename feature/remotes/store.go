package remotes

import (
	"context"
	"errors"
	"fmt"

	"remote-loader/core/remote"
	"remote-loader/feature/remotes/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists remote definitions.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the remotes table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.Remote{}); err != nil {
		return fmt.Errorf("failed to migrate remotes table: %w", err)
	}
	return nil
}

// List returns every stored definition ordered by name.
func (s *Store) List(ctx context.Context) ([]remote.Definition, error) {
	var rows []models.Remote
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	defs := make([]remote.Definition, 0, len(rows))
	for _, r := range rows {
		defs = append(defs, r.Definition())
	}
	return defs, nil
}

// Get returns the definition stored under name.
func (s *Store) Get(ctx context.Context, name string) (remote.Definition, error) {
	var row models.Remote
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return remote.Definition{}, fmt.Errorf("%w: %s", ErrUnknownRemote, name)
	}
	if err != nil {
		return remote.Definition{}, fmt.Errorf("failed to get remote %s: %w", name, err)
	}
	return row.Definition(), nil
}

// Save inserts the definition or replaces the one with the same name.
func (s *Store) Save(ctx context.Context, d remote.Definition) error {
	row := models.FromDefinition(d)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"entry_url", "exposed_key", "manifest_path", "fallback_stylesheet_path", "timeout_ms", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save remote %s: %w", d.Name, err)
	}
	return nil
}

// Delete removes the definition stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Remote{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete remote %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRemote, name)
	}
	return nil
}
