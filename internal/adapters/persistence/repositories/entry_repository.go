package repositories

import (
	"context"
	"time"

	"papatacos/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// entryRepository implements EntryRepository for one entry table
type entryRepository[T models.Entry] struct {
	db *gorm.DB
}

// NewEntryRepository creates a repository over T's table
func NewEntryRepository[T models.Entry](db *gorm.DB) EntryRepository[T] {
	return &entryRepository[T]{db: db}
}

// Create inserts an entry
func (r *entryRepository[T]) Create(ctx context.Context, entry *T) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListBetween lists entries inside [from, to], newest first
func (r *entryRepository[T]) ListBetween(ctx context.Context, from, to time.Time) ([]*T, error) {
	var entries []*T
	err := r.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at <= ?", from.UTC(), to.UTC()).
		Order("occurred_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAll lists every entry, newest first
func (r *entryRepository[T]) ListAll(ctx context.Context) ([]*T, error) {
	var entries []*T
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
