// Package db provides the SQLite-backed cache of link resolutions.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"songlinkbot/bot"
)

// Repository provides access to the resolution cache database.
type Repository struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewSQLiteRepository creates a repository backed by SQLite.
func NewSQLiteRepository(dsn string, gormLogger logger.Interface) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn required")
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	dbDir := filepath.Dir(dsn)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, err
	}

	if err := applySQLitePragmas(db); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&ResolutionModel{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Repository{db: db, ttl: 24 * time.Hour}, nil
}

// ConfigurePool updates the database connection pool settings.
func (r *Repository) ConfigurePool(maxOpen, maxIdle int, maxLifetime time.Duration) error {
	if r == nil || r.db == nil {
		return errors.New("repository not configured")
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	if maxOpen >= 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(maxLifetime)
	}
	return nil
}

// SetTTL sets how long cached resolutions stay valid. Zero disables expiry.
func (r *Repository) SetTTL(ttl time.Duration) {
	r.ttl = ttl
}

// Find returns the cached resolution for a URL, or (nil, nil) on a miss.
// Expired entries are removed and reported as a miss.
func (r *Repository) Find(ctx context.Context, url string) (*bot.ResolvedSong, error) {
	var model ResolutionModel
	err := r.db.WithContext(ctx).Where("url = ?", url).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.ttl > 0 && time.Since(model.UpdatedAt) > r.ttl {
		_ = r.db.WithContext(ctx).Delete(&ResolutionModel{}, model.ID).Error
		return nil, nil
	}

	var song bot.ResolvedSong
	if err := json.Unmarshal([]byte(model.Payload), &song); err != nil {
		// A payload that no longer decodes is useless; drop it.
		_ = r.db.WithContext(ctx).Delete(&ResolutionModel{}, model.ID).Error
		return nil, nil
	}
	return &song, nil
}

// Save upserts a resolution for a URL.
func (r *Repository) Save(ctx context.Context, url string, song *bot.ResolvedSong) error {
	if song == nil {
		return errors.New("song required")
	}
	payload, err := json.Marshal(song)
	if err != nil {
		return fmt.Errorf("encode resolution: %w", err)
	}

	model := ResolutionModel{URL: url, Payload: string(payload)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&model).Error
}

// Count returns the number of cached resolutions.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ResolutionModel{}).Count(&count).Error
	return count, err
}

// PurgeExpired removes entries older than the TTL.
func (r *Repository) PurgeExpired(ctx context.Context) (int64, error) {
	if r.ttl <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-r.ttl)
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&ResolutionModel{})
	return result.RowsAffected, result.Error
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func applySQLitePragmas(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}
