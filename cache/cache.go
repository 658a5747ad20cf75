// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache remembers which files are already formatted, so that batch
// runs can skip them.
//
// Entries are keyed by path and hold a digest of the file's contents and the
// options it was formatted with. A file is skipped only when both still
// match. The cache is stored in a SQLite database.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Pizzaandy/Gobo-sub001/config"
)

// entry is one row of the cache.
type entry struct {
	Path      string `gorm:"primaryKey"`
	Digest    string
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "formatted_files"
}

// Cache is a persistent record of formatted files. It is safe for concurrent
// use.
type Cache struct {
	mu sync.Mutex
	db *gorm.DB
}

// Open opens the cache database at path, creating it if needed. Use
// ":memory:" for a cache that lives only as long as the process.
func Open(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		_ = closeDB(db)
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return closeDB(c.db)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Formatted reports whether content was recorded as the formatted contents
// of path under opts.
func (c *Cache) Formatted(ctx context.Context, path string, content []byte, opts config.Options) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var e entry
	err := c.db.WithContext(ctx).Where("path = ?", path).Take(&e).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return e.Digest == Digest(content, opts), nil
}

// Mark records content as the formatted contents of path under opts.
func (c *Cache) Mark(ctx context.Context, path string, content []byte, opts config.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.WithContext(ctx).Save(&entry{
		Path:   path,
		Digest: Digest(content, opts),
	}).Error
}

// Forget removes any record of path.
func (c *Cache) Forget(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.WithContext(ctx).Delete(&entry{Path: path}).Error
}

// Digest returns the cache key for content formatted under opts.
func Digest(content []byte, opts config.Options) string {
	h := sha256.New()
	// Options is a flat struct of scalars, so encoding cannot fail.
	options, _ := json.Marshal(opts)
	h.Write(options)
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
