package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type CompetitionType string

const (
	CompetitionSingle CompetitionType = "single"
	CompetitionTeam   CompetitionType = "team"
)

type SchoolCategory string

const (
	CategorySD    SchoolCategory = "SD/MI"
	CategorySMP   SchoolCategory = "SMP/MTs"
	CategorySMA   SchoolCategory = "SMA/SMK/MA"
	CategoryUmum  SchoolCategory = "UMUM"
)

func (c SchoolCategory) Valid() bool {
	switch c {
	case CategorySD, CategorySMP, CategorySMA, CategoryUmum:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Cities is the fixed list of Aceh localities a registrant can select.
var Cities = []string{
	"Banda Aceh", "Sabang", "Lhokseumawe", "Langsa", "Meulaboh",
	"Bireuen", "Takengon", "Blangpidie", "Calang", "Jantho",
	"Sigli", "Singkil", "Subulussalam", "Suka Makmue", "Tapaktuan",
}

func ValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

type Activity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Competition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Rules       []string         `json:"rules"`
	Icon        string           `json:"icon"`
	Type        CompetitionType  `json:"type"`
	TeamSize    *int             `json:"teamSize,omitempty"`
	Categories  []SchoolCategory `json:"categories"`
}

// EventContent is the singleton document backing the public landing page.
// It is always stored under ContentID; nested lists live in jsonb columns.
type EventContent struct {
	ID           int                                 `gorm:"primaryKey" json:"-"`
	Title        string                              `json:"title"`
	EventDate    string                              `json:"eventDate"` // "YYYY-MM-DDTHH:mm"
	HeroImage    string                              `json:"heroImage"`
	HeroVideo    string                              `json:"heroVideo"`
	AboutFlash   string                              `gorm:"type:text" json:"aboutFlash"`
	AboutImage   string                              `json:"aboutImage"`
	Activities   datatypes.JSONSlice[Activity]       `gorm:"type:jsonb" json:"activities"`
	Competitions datatypes.JSONSlice[Competition]    `gorm:"type:jsonb" json:"competitions"`
	Gallery      datatypes.JSONSlice[string]         `gorm:"type:jsonb" json:"gallery"`
	Version      int                                 `gorm:"not null;default:0" json:"version"`
	UpdatedAt    time.Time                           `json:"updated_at"`
}

// ContentID is the primary key of the single EventContent row.
const ContentID = 1

// FindCompetition returns the competition with the given name, or nil.
func (e *EventContent) FindCompetition(name string) *Competition {
	for i := range e.Competitions {
		if e.Competitions[i].Name == name {
			return &e.Competitions[i]
		}
	}
	return nil
}

type Registration struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RegistrationCode string    `gorm:"uniqueIndex;not null" json:"registrationCode"`
	Seq              int       `gorm:"not null" json:"-"`
	Status           Status    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Competition      string    `gorm:"not null;index" json:"competition"`

	// Individual entries
	Name      string `json:"name,omitempty"`
	Gender    Gender `gorm:"type:varchar(10)" json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`

	// Team entries
	RegistrantName string         `json:"registrantName,omitempty"`
	TeamName       string         `json:"teamName,omitempty"`
	TeamMembers    pq.StringArray `gorm:"type:text[]" json:"teamMembers,omitempty"`

	Email            string         `gorm:"not null" json:"email"`
	WhatsApp         string         `gorm:"not null" json:"whatsapp"`
	SchoolCategory   SchoolCategory `gorm:"type:varchar(20);not null;index" json:"schoolCategory"`
	School           string         `json:"school,omitempty"`
	City             string         `gorm:"not null" json:"city"`
	KTSSuratAktif    string         `json:"ktsSuratAktif,omitempty"`
	BuktiPembayaran  string         `gorm:"not null" json:"buktiPembayaran"`
	RegistrationDate time.Time      `gorm:"not null" json:"registrationDate"`
	QRPath           string         `json:"qr_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTeam reports whether the team field set is the populated variant.
func (r *Registration) IsTeam() bool {
	return r.TeamName != "" || r.RegistrantName != ""
}

// DisplayName is the human-facing name of the entry: the registrant's name
// for individual entries, the team name for team entries.
func (r *Registration) DisplayName() string {
	if r.IsTeam() {
		return r.TeamName
	}
	return r.Name
}

// RegistrationCounter backs the numeric registration-code sequence.
// A single row holds the next sequence value; it is incremented inside the
// same transaction that inserts the registration.
type RegistrationCounter struct {
	ID   int `gorm:"primaryKey"`
	Next int `gorm:"not null;default:0"`
}

const CounterID = 1
