package repositories

import (
	"errors"
	"fmt"

	"github.com/faruqeclypst/FLASH-MOSA/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRegistrationNotFound marks lookups and updates that missed, so
// handlers can answer 404 instead of treating every failure as internal.
var ErrRegistrationNotFound = errors.New("registration not found")

type registrationRepo struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

// FormatCode renders a sequence value as a human-facing registration code.
// The sequence wraps at 10000 so the code stays four digits.
func FormatCode(seq int) string {
	return fmt.Sprintf("FLASH#%04d", seq%10000)
}

// ParseCode extracts the numeric sequence from a registration code.
func ParseCode(code string) (int, error) {
	var seq int
	if _, err := fmt.Sscanf(code, "FLASH#%04d", &seq); err != nil {
		return 0, fmt.Errorf("malformed registration code %q: %w", code, err)
	}
	return seq, nil
}

// Create assigns the next registration code and inserts the record in a
// single transaction. The counter row is locked for update so concurrent
// submissions cannot observe the same sequence value.
func (r *registrationRepo) Create(reg *models.Registration) error {
	if reg == nil {
		return errors.New("registration cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var counter models.RegistrationCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", models.CounterID).
			First(&counter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Two first-ever submissions can race to seed the row; the
			// conflict clause lets the loser fall through to the re-read.
			seed := models.RegistrationCounter{ID: models.CounterID, Next: 0}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return fmt.Errorf("failed to seed registration counter: %w", err)
			}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", models.CounterID).
				First(&counter).Error; err != nil {
				return fmt.Errorf("failed to read registration counter: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to read registration counter: %w", err)
		}

		reg.Seq = counter.Next
		reg.RegistrationCode = FormatCode(counter.Next)

		if err := tx.Model(&models.RegistrationCounter{}).
			Where("id = ?", models.CounterID).
			Update("next", counter.Next+1).Error; err != nil {
			return fmt.Errorf("failed to advance registration counter: %w", err)
		}

		if err := tx.Create(reg).Error; err != nil {
			return fmt.Errorf("failed to create registration: %w", err)
		}
		return nil
	})
}

func (r *registrationRepo) GetByID(id string) (*models.Registration, error) {
	if id == "" {
		return nil, errors.New("registration ID cannot be empty")
	}

	var reg models.Registration
	if err := r.db.Where("id = ?", id).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w with ID: %s", ErrRegistrationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepo) GetByCode(code string) (*models.Registration, error) {
	if code == "" {
		return nil, errors.New("registration code cannot be empty")
	}

	var reg models.Registration
	if err := r.db.Where("registration_code = ?", code).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w with code: %s", ErrRegistrationNotFound, code)
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &reg, nil
}

// ListAll returns the full collection in submission order. The review
// pipeline filters, sorts and paginates in memory over this snapshot.
func (r *registrationRepo) ListAll() ([]models.Registration, error) {
	var regs []models.Registration
	if err := r.db.Order("seq ASC").Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// UpdateStatus writes only the status column, not the whole record.
func (r *registrationRepo) UpdateStatus(id string, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status: %s", status)
	}

	result := r.db.Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w with ID: %s", ErrRegistrationNotFound, id)
	}
	return nil
}

func (r *registrationRepo) UpdateQRPath(id, qrPath string) error {
	result := r.db.Model(&models.Registration{}).
		Where("id = ?", id).
		Update("qr_path", qrPath)
	if result.Error != nil {
		return fmt.Errorf("failed to update QR path: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w with ID: %s", ErrRegistrationNotFound, id)
	}
	return nil
}

func (r *registrationRepo) Delete(id string) error {
	if id == "" {
		return errors.New("registration ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Registration{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete registration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w with ID: %s", ErrRegistrationNotFound, id)
	}
	return nil
}

// DeleteAll removes the given registrations one at a time. Each delete is
// idempotent; an already-gone record counts as deleted. Failures do not stop
// the sequence, they are collected into the report.
func (r *registrationRepo) DeleteAll(ids []string) (*BulkDeleteReport, error) {
	report := &BulkDeleteReport{
		Deleted: make([]string, 0, len(ids)),
		Failed:  make([]string, 0),
	}

	for _, id := range ids {
		result := r.db.Where("id = ?", id).Delete(&models.Registration{})
		if result.Error != nil {
			report.Failed = append(report.Failed, id)
			continue
		}
		report.Deleted = append(report.Deleted, id)
	}

	return report, nil
}

func (r *registrationRepo) CountByStatus() (map[models.Status]int64, error) {
	type row struct {
		Status models.Status
		Count  int64
	}

	var rows []row
	if err := r.db.Model(&models.Registration{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	counts := make(map[models.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
