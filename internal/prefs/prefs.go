// Package prefs manages the local console preferences database.
// It opens GORM on SQLite and stores plain key/value pairs, such as the
// console-wide theme.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/vesaa/staffdesk/internal/models"
	"github.com/vesaa/staffdesk/internal/theme"
)

// KeyTheme holds "dark" or "light".
const KeyTheme = "theme"

// DB is the preferences store.
type DB struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite file at path and runs AutoMigrate.
func Open(path string, log logrus.FieldLogger) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&models.Preference{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	if log != nil {
		log.WithField("path", path).Debug("[db] preferences opened")
	}
	return &DB{db: db}, nil
}

// ErrMissing is returned by OpenExisting when no database file exists yet.
var ErrMissing = errors.New("preferences database does not exist")

// OpenExisting is Open for callers that only read preferences: it never
// creates the file.
func OpenExisting(path string, log logrus.FieldLogger) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMissing
		}
		return nil, fmt.Errorf("checking database: %w", err)
	}
	return Open(path, log)
}

// Close releases the underlying connection pool.
func (p *DB) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the value under key; ok is false when it was never set.
func (p *DB) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	var pref models.Preference
	err = p.db.WithContext(ctx).Where("name = ?", key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %q: %w", key, err)
	}
	return pref.Value, true, nil
}

// Set creates or replaces the value under key.
func (p *DB) Set(ctx context.Context, key, value string) error {
	pref := models.Preference{Name: key, Value: value}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}
	return nil
}

// ThemeStorage persists the theme under KeyTheme.
func (p *DB) ThemeStorage() theme.Storage {
	return themeStorage{p}
}

type themeStorage struct{ p *DB }

func (s themeStorage) Load(ctx context.Context) (theme.Mode, bool, error) {
	v, ok, err := s.p.Get(ctx, KeyTheme)
	if err != nil || !ok {
		return "", false, err
	}
	m, valid := theme.ParseMode(v)
	return m, valid, nil
}

func (s themeStorage) Save(ctx context.Context, m theme.Mode) error {
	return s.p.Set(ctx, KeyTheme, string(m))
}
