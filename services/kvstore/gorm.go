package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
 * 'KVEntry' maps one portal blob to a row. The whole namespace lives in a
 * single table; the version column backs CompareAndSwap.
 */
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:255;not null"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	Version   uint64         `gorm:"not null;default:0"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName keeps the table name stable regardless of pluralization settings.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormStore persists portal blobs in PostgreSQL through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the kv_entries table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("auto migration failed: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Get(key string, into interface{}) (bool, error) {
	var entry KVEntry
	err := g.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error getting key %s: %w", key, err)
	}
	if err := json.Unmarshal(entry.Value, into); err != nil {
		return false, fmt.Errorf("error decoding value for key %s: %w", key, err)
	}
	return true, nil
}

func (g *GormStore) Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding value for key %s: %w", key, err)
	}
	entry := KVEntry{Key: key, Value: data, Version: 1}
	err = g.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      datatypes.JSON(data),
			"version":    gorm.Expr("kv_entries.version + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("error setting key %s: %w", key, err)
	}
	return nil
}

func (g *GormStore) CompareAndSwap(key string, value interface{}, expected uint64) (uint64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("error encoding value for key %s: %w", key, err)
	}

	if expected == 0 {
		entry := KVEntry{Key: key, Value: data, Version: 1}
		result := g.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		if result.Error != nil {
			return 0, fmt.Errorf("error creating key %s: %w", key, result.Error)
		}
		if result.RowsAffected == 0 {
			return 0, ErrConflict
		}
		return 1, nil
	}

	result := g.db.Model(&KVEntry{}).
		Where("key = ? AND version = ?", key, expected).
		Updates(map[string]interface{}{
			"value":      datatypes.JSON(data),
			"version":    expected + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("error swapping key %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrConflict
	}
	return expected + 1, nil
}

func (g *GormStore) Version(key string) (uint64, error) {
	var entry KVEntry
	err := g.db.Select("version").Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error reading version of key %s: %w", key, err)
	}
	return entry.Version, nil
}

func (g *GormStore) Delete(key string) error {
	if err := g.db.Where("key = ?", key).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("error deleting key %s: %w", key, err)
	}
	return nil
}

func (g *GormStore) Keys(prefix string) ([]string, error) {
	var keys []string
	// Escape LIKE wildcards in the prefix itself.
	escaped := strings.NewReplacer("%", `\%`, "_", `\_`).Replace(prefix)
	err := g.db.Model(&KVEntry{}).
		Where("key LIKE ?", escaped+"%").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("error listing keys with prefix %s: %w", prefix, err)
	}
	return keys, nil
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
