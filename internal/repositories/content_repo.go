package repositories

import (
	"errors"
	"fmt"

	"github.com/faruqeclypst/FLASH-MOSA/internal/models"

	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a content save carries a stale version
// token, meaning another admin session committed in between.
var ErrVersionConflict = errors.New("event content was modified by another session")

type contentRepo struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepo{db: db}
}

// Get loads the singleton event content document. A missing row is not an
// error: it returns nil so callers can render an empty state before the
// first save.
func (r *contentRepo) Get() (*models.EventContent, error) {
	var content models.EventContent
	err := r.db.Where("id = ?", models.ContentID).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event content: %w", err)
	}
	return &content, nil
}

// Save overwrites the whole document, guarded by an optimistic version
// check. The write succeeds only if the stored version still equals
// expectedVersion; the stored version is then advanced by one.
func (r *contentRepo) Save(content *models.EventContent, expectedVersion int) error {
	if content == nil {
		return errors.New("event content cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.EventContent
		err := tx.Select("id", "version").
			Where("id = ?", models.ContentID).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if expectedVersion != 0 {
				return ErrVersionConflict
			}
			content.ID = models.ContentID
			content.Version = 1
			if err := tx.Create(content).Error; err != nil {
				return fmt.Errorf("failed to create event content: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check event content: %w", err)
		}

		if existing.Version != expectedVersion {
			return ErrVersionConflict
		}

		content.ID = models.ContentID
		content.Version = expectedVersion + 1
		if err := tx.Save(content).Error; err != nil {
			return fmt.Errorf("failed to save event content: %w", err)
		}
		return nil
	})
}
