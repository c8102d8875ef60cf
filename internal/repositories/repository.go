package repositories

import (
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"

	"gorm.io/gorm"
)

type Repository struct {
	DB               *gorm.DB
	RegistrationRepo RegistrationRepository
	ContentRepo      ContentRepository
	UserRepo         UserRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:               db,
		RegistrationRepo: NewRegistrationRepository(db),
		ContentRepo:      NewContentRepository(db),
		UserRepo:         NewUserRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	// Migrate models
	return db.AutoMigrate(
		&models.User{},
		&models.EventContent{},
		&models.Registration{},
		&models.RegistrationCounter{},
	)
}

// Interface definitions
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
}

// BulkDeleteReport lists which registrations a bulk delete actually removed.
// Deletion is per item; a mid-sequence failure is reported, not rolled back.
type BulkDeleteReport struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

type RegistrationRepository interface {
	Create(reg *models.Registration) error
	GetByID(id string) (*models.Registration, error)
	GetByCode(code string) (*models.Registration, error)
	ListAll() ([]models.Registration, error)
	UpdateStatus(id string, status models.Status) error
	UpdateQRPath(id, qrPath string) error
	Delete(id string) error
	DeleteAll(ids []string) (*BulkDeleteReport, error)
	CountByStatus() (map[models.Status]int64, error)
}

type ContentRepository interface {
	Get() (*models.EventContent, error)
	Save(content *models.EventContent, expectedVersion int) error
}
